package etl

import (
	"database/sql"

	"github.com/lwozniak/sqlparq/pkg/models"
)

// scanTypedTable drains a result set into a TypedTable, classifying each
// column once from the driver's reported database type. []byte cells are
// converted to string so downstream code never sees raw driver buffers.
func scanTypedTable(rows *sql.Rows, classify func(dbType string) models.ColumnType) (*models.TypedTable, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	table := models.NewTypedTable(cols)
	for i, ct := range colTypes {
		table.Types[cols[i]] = classify(ct.DatabaseTypeName())
	}

	for rows.Next() {
		values := make([]interface{}, len(cols))
		pointers := make([]interface{}, len(cols))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(cols))
		for i, name := range cols {
			if b, ok := values[i].([]byte); ok {
				row[name] = string(b)
			} else {
				row[name] = values[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}
