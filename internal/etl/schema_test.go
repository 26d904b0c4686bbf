package etl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lwozniak/sqlparq/pkg/models"
)

func TestSQLTypeMapping(t *testing.T) {
	var mapper SchemaMapper

	cases := map[models.ColumnType]string{
		models.TypeInteger:   "INT",
		models.TypeFloat:     "FLOAT",
		models.TypeTimestamp: "DATETIME2",
		models.TypeText:      "NVARCHAR(255)",
	}
	for colType, want := range cases {
		assert.Equal(t, want, mapper.SQLType(colType))
	}

	// unrecognized values fall through to the text type
	assert.Equal(t, "NVARCHAR(255)", mapper.SQLType(models.ColumnType(99)))
}

func TestSQLTypeDeterministic(t *testing.T) {
	var mapper SchemaMapper
	for i := 0; i < 10; i++ {
		assert.Equal(t, "DATETIME2", mapper.SQLType(models.TypeTimestamp))
	}
}

func TestColumnDefsOrderAndQuoting(t *testing.T) {
	table := models.NewTypedTable([]string{"id", "amount", "created_at", "note"})
	table.Types["id"] = models.TypeInteger
	table.Types["amount"] = models.TypeFloat
	table.Types["created_at"] = models.TypeTimestamp

	var mapper SchemaMapper
	defs := mapper.ColumnDefs(table)

	assert.Equal(t, []string{
		"[id] INT",
		"[amount] FLOAT",
		"[created_at] DATETIME2",
		"[note] NVARCHAR(255)",
	}, defs)
}
