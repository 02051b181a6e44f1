package format

import (
	"fmt"
	"strings"
)

// Binary record layout sent to the server's bulk ingestion command.
//
// A property is a u1 type tag followed by a type-specific payload. A node
// record is a u2 count of emitted properties followed by the properties; a
// relationship record prefixes that with the u8 source and destination node
// indices. Null values are never emitted; the count covers present
// properties only. All integers are little-endian.

// AppendProperty appends one property (tag + payload) to b. Null values must
// be filtered out by the caller; passing one is an error.
func AppendProperty(b []byte, v Value) ([]byte, error) {
	switch v.Tag {
	case TypeBool:
		b = AppendU8(b, uint8(TypeBool))
		if v.Bool {
			return AppendU8(b, 1), nil
		}
		return AppendU8(b, 0), nil
	case TypeLong:
		b = AppendU8(b, uint8(TypeLong))
		return AppendI64(b, v.Long), nil
	case TypeDouble:
		b = AppendU8(b, uint8(TypeDouble))
		return AppendF64(b, v.Dbl), nil
	case TypeString:
		if strings.IndexByte(v.Str, 0) >= 0 {
			return nil, ErrEmbeddedNUL
		}
		b = AppendU8(b, uint8(TypeString))
		b = append(b, v.Str...)
		return AppendU8(b, 0), nil
	case TypeArray:
		b = AppendU8(b, uint8(TypeArray))
		b = AppendU32(b, uint32(len(v.Arr)))
		var err error
		for _, elem := range v.Arr {
			if b, err = AppendProperty(b, elem); err != nil {
				return nil, err
			}
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: tag %d", ErrUnknownType, v.Tag)
}

// AppendNodeRecord appends an encoded node record. vals may contain nulls;
// they are dropped and do not count.
func AppendNodeRecord(b []byte, vals []Value) ([]byte, error) {
	return appendRecordBody(b, vals)
}

// AppendRelationRecord appends an encoded relationship record: the two
// endpoint indices, then the property sequence.
func AppendRelationRecord(b []byte, src, dest uint64, vals []Value) ([]byte, error) {
	b = AppendU64(b, src)
	b = AppendU64(b, dest)
	return appendRecordBody(b, vals)
}

func appendRecordBody(b []byte, vals []Value) ([]byte, error) {
	count := 0
	for _, v := range vals {
		if !v.Null() {
			count++
		}
	}
	b = AppendU16(b, uint16(count))
	var err error
	for _, v := range vals {
		if v.Null() {
			continue
		}
		if b, err = AppendProperty(b, v); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// GroupHeader encodes the per-label (or per-type) header that leads every
// payload token: the group name, the property count, and each property name,
// all NUL-terminated.
func GroupHeader(name string, props []string) ([]byte, error) {
	if strings.IndexByte(name, 0) >= 0 {
		return nil, ErrEmbeddedNUL
	}
	b := make([]byte, 0, len(name)+5+len(props)*8)
	b = append(b, name...)
	b = AppendU8(b, 0)
	b = AppendU32(b, uint32(len(props)))
	for _, p := range props {
		if strings.IndexByte(p, 0) >= 0 {
			return nil, ErrEmbeddedNUL
		}
		b = append(b, p...)
		b = AppendU8(b, 0)
	}
	return b, nil
}
