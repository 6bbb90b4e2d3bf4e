package schema

import (
	"fmt"

	as "ariga.io/atlas/sql/schema"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"

	"github.com/lambdaquery/lq/validator"
)

// Kind is a column's logical type, as the compiler sees it — coarser
// than any one dialect's native type system, just precise enough to
// drive the `+`-to-Concat promotion rule and caller-value coercion.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBool    Kind = "bool"
	KindTime    Kind = "time"
	KindJSON    Kind = "json"
	KindDecimal Kind = "decimal"
)

// ColumnDef declares one column of a TableDef.
type ColumnDef struct {
	Name     string `json:"name" jsonschema:"required" validate:"required" label:"column name"`
	Kind     Kind   `json:"kind" jsonschema:"required,enum=string,enum=number,enum=bool,enum=time,enum=json,enum=decimal" validate:"required,oneof=string number bool time json decimal" label:"column kind"`
	Nullable bool   `json:"nullable,omitempty"`
}

// TableDef declares one table's shape: its columns by name.
type TableDef struct {
	Name    string      `json:"name" jsonschema:"required" validate:"required" label:"table name"`
	Columns []ColumnDef `json:"columns" jsonschema:"required" validate:"required,min=1,dive" label:"table columns"`
}

// Schema is the phantom schema handle of spec.md §3: it carries no
// runtime table data, only the {tableName -> {columnName -> Kind}}
// shape builder calls are checked against.
type Schema struct {
	tables map[string]TableDef
}

// NewSchema builds an immutable Schema handle from a set of table
// declarations.
func NewSchema(tables ...TableDef) *Schema {
	byName := make(map[string]TableDef, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	return &Schema{tables: byName}
}

// NewSchemaValidated builds a Schema like NewSchema, but first runs
// each TableDef through struct-tag validation — required names,
// non-empty columns, a recognized Kind per column — so a malformed
// declaration fails loudly at construction time instead of surfacing
// later as a confusing "unknown column" error mid-compile.
func NewSchemaValidated(tables ...TableDef) (*Schema, error) {
	for _, t := range tables {
		if err := validator.Validate(t); err != nil {
			return nil, fmt.Errorf("schema: invalid table declaration %q: %w", t.Name, err)
		}
	}

	return NewSchema(tables...), nil
}

// Table returns the declaration for a table, or false if unknown.
func (s *Schema) Table(name string) (TableDef, bool) {
	t, ok := s.tables[name]

	return t, ok
}

// ColumnKind returns the logical Kind of table.column, or false if
// either the table or the column is not declared.
func (s *Schema) ColumnKind(table, column string) (Kind, bool) {
	t, ok := s.tables[table]
	if !ok {
		return "", false
	}

	for _, c := range t.Columns {
		if c.Name == column {
			return c.Kind, true
		}
	}

	return "", false
}

// ColumnNames returns every declared column name of a table, used by
// the compiler's "did you mean" suggestion for unresolved identifiers.
func (s *Schema) ColumnNames(table string) []string {
	t, ok := s.tables[table]
	if !ok {
		return nil
	}

	return lo.Map(t.Columns, func(c ColumnDef, _ int) string { return c.Name })
}

// FromAtlas builds a compiler Schema from an already-inspected Atlas
// schema, bridging internal/schema's live-introspection Service without
// the compiler itself ever opening a connection (spec.md §1's
// out-of-core driver boundary).
func FromAtlas(atlasSchema *as.Schema) (*Schema, error) {
	if atlasSchema == nil {
		return nil, fmt.Errorf("schema: nil atlas schema")
	}

	tables := make([]TableDef, 0, len(atlasSchema.Tables))
	for _, t := range atlasSchema.Tables {
		columns := make([]ColumnDef, 0, len(t.Columns))
		for _, c := range t.Columns {
			columns = append(columns, ColumnDef{
				Name:     c.Name,
				Kind:     atlasKindToKind(c),
				Nullable: c.Type != nil && c.Type.Null,
			})
		}

		tables = append(tables, TableDef{Name: t.Name, Columns: columns})
	}

	return NewSchemaValidated(tables...)
}

// atlasKindToKind maps an Atlas column's raw type string to a Kind. The
// mapping is intentionally coarse: it only needs to separate strings
// (for Concat promotion) from numbers/bools/times from opaque JSON/decimal
// payloads the emitter never arithmetic-promotes.
func atlasKindToKind(c *as.Column) Kind {
	if c.Type == nil {
		return KindString
	}

	switch t := c.Type.Type.(type) {
	case *as.StringType, *as.EnumType:
		return KindString
	case *as.BoolType:
		return KindBool
	case *as.TimeType:
		return KindTime
	case *as.DecimalType:
		return KindDecimal
	case *as.JSONType:
		return KindJSON
	case *as.IntegerType, *as.FloatType:
		return KindNumber
	default:
		_ = t

		return KindString
	}
}

// JSONSchema generates a JSON Schema document describing the TableDef/
// ColumnDef shape, used by `cmd/lqc schema describe` to self-document a
// schema file.
func JSONSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{}

	return reflector.Reflect(&TableDef{})
}
