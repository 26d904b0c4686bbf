package etl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lwozniak/sqlparq/pkg/models"
)

func TestSQLServerColumnType(t *testing.T) {
	cases := map[string]models.ColumnType{
		"INT":              models.TypeInteger,
		"BIGINT":           models.TypeInteger,
		"SMALLINT":         models.TypeInteger,
		"TINYINT":          models.TypeInteger,
		"FLOAT":            models.TypeFloat,
		"REAL":             models.TypeFloat,
		"DECIMAL":          models.TypeFloat,
		"MONEY":            models.TypeFloat,
		"DATETIME":         models.TypeTimestamp,
		"DATETIME2":        models.TypeTimestamp,
		"DATE":             models.TypeTimestamp,
		"DATETIMEOFFSET":   models.TypeTimestamp,
		"NVARCHAR":         models.TypeText,
		"VARCHAR":          models.TypeText,
		"BIT":              models.TypeText,
		"UNIQUEIDENTIFIER": models.TypeText,
	}
	for dbType, want := range cases {
		assert.Equal(t, want, sqlServerColumnType(dbType), "type %s", dbType)
	}

	// driver-reported names are matched case-insensitively
	assert.Equal(t, models.TypeInteger, sqlServerColumnType("bigint"))
}

func TestDuckDBColumnType(t *testing.T) {
	cases := map[string]models.ColumnType{
		"BIGINT":                   models.TypeInteger,
		"INTEGER":                  models.TypeInteger,
		"HUGEINT":                  models.TypeInteger,
		"UBIGINT":                  models.TypeInteger,
		"DOUBLE":                   models.TypeFloat,
		"DECIMAL(18,3)":            models.TypeFloat,
		"TIMESTAMP":                models.TypeTimestamp,
		"TIMESTAMP WITH TIME ZONE": models.TypeTimestamp,
		"DATE":                     models.TypeTimestamp,
		"VARCHAR":                  models.TypeText,
		"BOOLEAN":                  models.TypeText,
	}
	for dbType, want := range cases {
		assert.Equal(t, want, duckDBColumnType(dbType), "type %s", dbType)
	}
}
