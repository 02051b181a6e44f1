package bulk

import (
	"fmt"
	"strings"

	"github.com/ostapenkovs/redisgraph-bulk-loader/internal/format"
)

// Role classifies what a CSV column contributes to the graph.
type Role int

const (
	// RoleProperty columns become node or relationship properties.
	RoleProperty Role = iota
	// RoleIdentifier columns carry the node identifier.
	RoleIdentifier
	// RoleStartID and RoleEndID carry relationship endpoints.
	RoleStartID
	RoleEndID
	// RoleIgnore columns are discarded without parsing.
	RoleIgnore
)

// Column describes one header cell: the raw header, the logical property
// name, the declared type (enforced mode only), the role, and the
// identifier namespace for ID/START_ID/END_ID columns.
type Column struct {
	Header    string
	Name      string
	Type      format.Type
	Role      Role
	Namespace string
}

// Schema is the resolved header of one entity file.
type Schema struct {
	Columns []Column

	arity    int
	enforced bool

	// Node files: the identifier column, and whether its value is also
	// persisted as a property.
	idCol    int
	idAsProp bool

	// Relation files.
	startCol int
	endCol   int
}

// Properties returns the property names emitted for every row, in column
// order. The identifier column is included when it doubles as a property.
func (s *Schema) Properties() []string {
	var names []string
	for i, col := range s.Columns {
		if col.Role == RoleProperty || (col.Role == RoleIdentifier && i == s.idCol && s.idAsProp) {
			names = append(names, col.Name)
		}
	}
	return names
}

// CheckRow asserts the row matches the header arity.
func (s *Schema) CheckRow(row []string) error {
	if len(row) != s.arity {
		return fmt.Errorf("Expected %d columns, got %d", s.arity, len(row))
	}
	return nil
}

// resolveNodeSchema interprets a node-file header.
//
// Inferred mode: every column is a property except those whose header starts
// with '_'. The identifier comes from a column named "_identifier" when
// present, otherwise from the first column; a non-underscore identifier
// column stays in the property list.
//
// Enforced mode: each header reads name:TYPE, with exactly one ID column.
func resolveNodeSchema(header []string, enforce bool) (*Schema, error) {
	if enforce {
		return resolveEnforced(header, false)
	}

	s := &Schema{arity: len(header), idCol: 0}
	for i, h := range header {
		col := Column{Header: h, Name: h, Role: RoleProperty}
		if strings.HasPrefix(h, "_") {
			col.Role = RoleIdentifier
		}
		if h == "_identifier" {
			s.idCol = i
		}
		s.Columns = append(s.Columns, col)
	}
	s.idAsProp = s.Columns[s.idCol].Role == RoleProperty
	return s, nil
}

// resolveRelationSchema interprets a relation-file header. Inferred mode
// takes the first two columns as the endpoints and the rest as properties.
func resolveRelationSchema(header []string, enforce bool) (*Schema, error) {
	if len(header) < 2 {
		return nil, fmt.Errorf("should have at least 2 elements, got %d columns", len(header))
	}
	if enforce {
		return resolveEnforced(header, true)
	}

	s := &Schema{arity: len(header), idCol: -1, startCol: 0, endCol: 1}
	for i, h := range header {
		col := Column{Header: h, Name: h, Role: RoleProperty}
		switch i {
		case 0:
			col.Role = RoleStartID
		case 1:
			col.Role = RoleEndID
		}
		s.Columns = append(s.Columns, col)
	}
	return s, nil
}

func resolveEnforced(header []string, relation bool) (*Schema, error) {
	s := &Schema{arity: len(header), enforced: true, idCol: -1, startCol: -1, endCol: -1}
	for i, h := range header {
		col, err := parseTypedHeader(h)
		if err != nil {
			return nil, err
		}
		switch col.Role {
		case RoleIdentifier:
			if relation {
				return nil, fmt.Errorf("relation files cannot declare an ID column ('%s')", h)
			}
			if s.idCol >= 0 {
				return nil, fmt.Errorf("multiple ID columns ('%s' and '%s')", s.Columns[s.idCol].Header, h)
			}
			s.idCol = i
			s.idAsProp = col.Name != ""
		case RoleStartID:
			if !relation {
				return nil, fmt.Errorf("node files cannot declare a START_ID column ('%s')", h)
			}
			if s.startCol >= 0 {
				return nil, fmt.Errorf("multiple START_ID columns")
			}
			s.startCol = i
		case RoleEndID:
			if !relation {
				return nil, fmt.Errorf("node files cannot declare an END_ID column ('%s')", h)
			}
			if s.endCol >= 0 {
				return nil, fmt.Errorf("multiple END_ID columns")
			}
			s.endCol = i
		}
		s.Columns = append(s.Columns, col)
	}

	if relation {
		if s.startCol < 0 || s.endCol < 0 {
			return nil, fmt.Errorf("missing START_ID or END_ID column")
		}
	} else if s.idCol < 0 {
		return nil, fmt.Errorf("missing ID column")
	}
	return s, nil
}

// parseTypedHeader splits an enforced-mode header of the form name:TYPE,
// where ID, START_ID and END_ID accept an optional (namespace) suffix.
func parseTypedHeader(h string) (Column, error) {
	idx := strings.Index(h, ":")
	if idx < 0 {
		return Column{}, fmt.Errorf("column header '%s' does not declare a type", h)
	}
	col := Column{Header: h, Name: h[:idx]}
	spec := h[idx+1:]

	base := spec
	if open := strings.Index(spec, "("); open >= 0 && strings.HasSuffix(spec, ")") {
		base = spec[:open]
		col.Namespace = spec[open+1 : len(spec)-1]
	}

	switch strings.ToUpper(base) {
	case "ID":
		col.Role = RoleIdentifier
	case "START_ID":
		col.Role = RoleStartID
	case "END_ID":
		col.Role = RoleEndID
	case "IGNORE":
		col.Role = RoleIgnore
	case "STRING":
		col.Type = format.TypeString
	case "INT", "LONG":
		col.Type = format.TypeLong
	case "FLOAT", "DOUBLE":
		col.Type = format.TypeDouble
	case "BOOL", "BOOLEAN":
		col.Type = format.TypeBool
	case "ARRAY":
		col.Type = format.TypeArray
	default:
		return Column{}, fmt.Errorf("%w '%s' in column header '%s'", format.ErrUnknownType, base, h)
	}
	return col, nil
}
