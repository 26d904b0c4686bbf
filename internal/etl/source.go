package etl

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lwozniak/sqlparq/pkg/logger"
	"github.com/lwozniak/sqlparq/pkg/models"
)

// SourceReader pulls a whole table or an arbitrary query result out of the
// relational source. Exactly one of Table and Query is set; config
// validation guarantees that before a connection is ever opened.
type SourceReader struct {
	DB    *sql.DB
	Table string
	Query string
}

func (s *SourceReader) Read(ctx context.Context) (*models.TypedTable, error) {
	query := s.Query
	target := "custom query"
	if query == "" {
		query = fmt.Sprintf("SELECT * FROM %s", s.Table)
		target = s.Table
	}
	logger.Get().Info("extracting data from source", zap.String("source", target))

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("source query failed for %s: %w", target, err)
	}
	defer rows.Close()

	table, err := scanTypedTable(rows, sqlServerColumnType)
	if err != nil {
		return nil, fmt.Errorf("scanning source rows for %s: %w", target, err)
	}

	logger.Get().Info("extracted rows from source", zap.Int("rows", table.NumRows()))
	return table, nil
}

// sqlServerColumnType classifies a SQL Server column into one of the
// semantic types. Anything not clearly numeric or temporal is text.
func sqlServerColumnType(dbType string) models.ColumnType {
	switch strings.ToUpper(dbType) {
	case "INT", "BIGINT", "SMALLINT", "TINYINT":
		return models.TypeInteger
	case "FLOAT", "REAL", "DECIMAL", "NUMERIC", "MONEY", "SMALLMONEY":
		return models.TypeFloat
	case "DATE", "DATETIME", "DATETIME2", "SMALLDATETIME", "DATETIMEOFFSET":
		return models.TypeTimestamp
	default:
		return models.TypeText
	}
}
