package bulk

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ostapenkovs/redisgraph-bulk-loader/internal/format"
	"github.com/ostapenkovs/redisgraph-bulk-loader/internal/logger"
)

type entityKind int

const (
	nodeFile entityKind = iota
	relationFile
)

// EntityFile drives one node or relationship CSV: header resolution, row
// parsing, record encoding, and hand-off to the batch builder. It is scoped
// to a single file; the identifier map it writes to (node files) or reads
// from (relation files) belongs to the session.
type EntityFile struct {
	kind entityKind
	spec FileSpec
	cfg  *Config
	ids  *IDMap

	schema *Schema
	count  int
}

func newNodeFile(spec FileSpec, cfg *Config, ids *IDMap) *EntityFile {
	return &EntityFile{kind: nodeFile, spec: spec, cfg: cfg, ids: ids}
}

func newRelationFile(spec FileSpec, cfg *Config, ids *IDMap) *EntityFile {
	return &EntityFile{kind: relationFile, spec: spec, cfg: cfg, ids: ids}
}

// Count returns the number of rows ingested.
func (e *EntityFile) Count() int {
	return e.count
}

// Run reads the whole file and appends one encoded record per row to b.
func (e *EntityFile) Run(b *BatchBuilder) error {
	f, err := os.Open(e.spec.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	// Tolerate a UTF-8 byte-order mark; everything downstream sees clean
	// UTF-8.
	r := csv.NewReader(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	r.Comma = e.cfg.Separator
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return fmt.Errorf("%s: empty input file", e.spec.Path)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", e.spec.Path, err)
	}
	if e.schema, err = e.resolve(header); err != nil {
		return fmt.Errorf("%s: %w", e.spec.Path, err)
	}
	props := e.schema.Properties()

	name := e.spec.Label()
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return fmt.Errorf("%s line %d: %w", e.spec.Path, line, err)
		}
		if err := e.schema.CheckRow(row); err != nil {
			return fmt.Errorf("%s line %d: %w", e.spec.Path, line, err)
		}

		record, err := e.encodeRow(row)
		if err != nil {
			return fmt.Errorf("%s line %d: %w", e.spec.Path, line, err)
		}
		if e.kind == nodeFile {
			err = b.AppendNode(name, props, record)
		} else {
			err = b.AppendRelation(name, props, record)
		}
		if err != nil {
			return err
		}
		e.count++
	}

	logger.L.Debug("entity file ingested", "path", e.spec.Path, "name", name, "rows", e.count)
	return nil
}

func (e *EntityFile) resolve(header []string) (*Schema, error) {
	if e.kind == nodeFile {
		return resolveNodeSchema(header, e.cfg.EnforceSchema)
	}
	return resolveRelationSchema(header, e.cfg.EnforceSchema)
}

// encodeRow turns one CSV row into an encoded record. Node rows register
// their identifier (when the session tracks identifiers at all); relation
// rows resolve both endpoints.
func (e *EntityFile) encodeRow(row []string) ([]byte, error) {
	vals, err := e.rowValues(row)
	if err != nil {
		return nil, err
	}

	s := e.schema
	if e.kind == nodeFile {
		if e.ids != nil {
			if _, err := e.ids.Register(s.Columns[s.idCol].Namespace, row[s.idCol]); err != nil {
				return nil, err
			}
		}
		return format.AppendNodeRecord(nil, vals)
	}

	src, err := e.ids.Resolve(s.Columns[s.startCol].Namespace, row[s.startCol])
	if err != nil {
		return nil, err
	}
	dest, err := e.ids.Resolve(s.Columns[s.endCol].Namespace, row[s.endCol])
	if err != nil {
		return nil, err
	}
	return format.AppendRelationRecord(nil, src, dest, vals)
}

// rowValues parses the property cells of a row, in column order, aligned
// with Schema.Properties.
func (e *EntityFile) rowValues(row []string) ([]format.Value, error) {
	s := e.schema
	var vals []format.Value
	for i, col := range s.Columns {
		switch col.Role {
		case RoleIgnore, RoleStartID, RoleEndID:
			continue
		case RoleIdentifier:
			if i != s.idCol || !s.idAsProp {
				continue
			}
			v, err := e.idValue(row[i])
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
			continue
		}

		var v format.Value
		var err error
		if s.enforced {
			v, err = format.Coerce(row[i], col.Type)
		} else {
			v, err = format.Infer(row[i])
		}
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// idValue converts the identifier cell to its persisted property form.
func (e *EntityFile) idValue(raw string) (format.Value, error) {
	if e.cfg.IDType != IDInteger {
		return format.StringValue(raw), nil
	}
	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return format.Value{}, &format.SchemaError{Literal: raw, Type: format.TypeLong}
	}
	return format.LongValue(i), nil
}
