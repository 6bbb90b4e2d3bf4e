package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdaquery/lq/schema"
)

func TestNewSchemaValidated_AcceptsWellFormedTable(t *testing.T) {
	sch, err := schema.NewSchemaValidated(schema.TableDef{
		Name: "users",
		Columns: []schema.ColumnDef{
			{Name: "id", Kind: schema.KindNumber},
			{Name: "name", Kind: schema.KindString, Nullable: true},
		},
	})
	require.NoError(t, err)

	kind, ok := sch.ColumnKind("users", "name")
	require.True(t, ok)
	assert.Equal(t, schema.KindString, kind)
}

func TestNewSchemaValidated_RejectsMissingTableName(t *testing.T) {
	_, err := schema.NewSchemaValidated(schema.TableDef{
		Columns: []schema.ColumnDef{{Name: "id", Kind: schema.KindNumber}},
	})
	require.Error(t, err)
}

func TestNewSchemaValidated_RejectsEmptyColumnList(t *testing.T) {
	_, err := schema.NewSchemaValidated(schema.TableDef{Name: "users"})
	require.Error(t, err)
}

func TestNewSchemaValidated_RejectsUnrecognizedKind(t *testing.T) {
	_, err := schema.NewSchemaValidated(schema.TableDef{
		Name: "users",
		Columns: []schema.ColumnDef{
			{Name: "id", Kind: schema.Kind("uuid")},
		},
	})
	require.Error(t, err)
}

func TestNewSchemaValidated_RejectsMissingColumnName(t *testing.T) {
	_, err := schema.NewSchemaValidated(schema.TableDef{
		Name: "users",
		Columns: []schema.ColumnDef{
			{Kind: schema.KindNumber},
		},
	})
	require.Error(t, err)
}
