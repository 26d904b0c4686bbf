package etl

import (
	"fmt"

	"github.com/lwozniak/sqlparq/pkg/models"
)

// SchemaMapper turns the semantic types carried on a TypedTable into SQL
// Server column types. The mapping is total: every ColumnType has exactly
// one target type, and unclassified columns land on the bounded text type.
type SchemaMapper struct{}

func (SchemaMapper) SQLType(t models.ColumnType) string {
	switch t {
	case models.TypeInteger:
		return "INT"
	case models.TypeFloat:
		return "FLOAT"
	case models.TypeTimestamp:
		return "DATETIME2"
	default:
		return "NVARCHAR(255)"
	}
}

// ColumnDefs renders bracket-quoted column definitions in source column
// order, ready for a CREATE TABLE statement.
func (m SchemaMapper) ColumnDefs(table *models.TypedTable) []string {
	defs := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		defs = append(defs, fmt.Sprintf("[%s] %s", col, m.SQLType(table.Type(col))))
	}
	return defs
}
