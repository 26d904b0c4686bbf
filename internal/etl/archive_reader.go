package etl

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2"
	"go.uber.org/zap"

	"github.com/lwozniak/sqlparq/pkg/logger"
	"github.com/lwozniak/sqlparq/pkg/models"
)

// transformViewName is the view the raw archive is exposed as when a
// transform query is supplied.
const transformViewName = "parquet_view"

// ArchiveReader loads a parquet file or directory into a TypedTable
// through an embedded DuckDB instance. An optional transform query runs
// against the archive (exposed as parquet_view) and its result, not the
// raw archive, becomes the table.
type ArchiveReader struct {
	Location       models.ArchiveLocation
	TransformQuery string
}

func (r *ArchiveReader) Read(ctx context.Context) (*models.TypedTable, error) {
	log := logger.Get()
	path := r.Location.Path
	log.Info("loading parquet data", zap.String("path", path))

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("parquet path not found: %s", path)
		}
		return nil, fmt.Errorf("checking parquet path %s: %w", path, err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}
	defer db.Close()

	source := readParquetExpr(path, info.IsDir())
	query := "SELECT * FROM " + source

	if r.TransformQuery != "" {
		log.Info("applying transform query", zap.String("query", r.TransformQuery))
		create := fmt.Sprintf("CREATE VIEW %s AS SELECT * FROM %s", transformViewName, source)
		if _, err := db.ExecContext(ctx, create); err != nil {
			return nil, fmt.Errorf("creating %s over %s: %w", transformViewName, path, err)
		}
		query = r.TransformQuery
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", path, err)
	}
	defer rows.Close()

	table, err := scanTypedTable(rows, duckDBColumnType)
	if err != nil {
		return nil, fmt.Errorf("scanning archive rows from %s: %w", path, err)
	}

	log.Info("loaded rows from parquet", zap.Int("rows", table.NumRows()))
	return table, nil
}

// readParquetExpr builds the read_parquet() source expression. Directories
// are read recursively with hive partition columns restored from the
// directory names.
func readParquetExpr(path string, isDir bool) string {
	if isDir {
		glob := escapeSQLString(filepath.ToSlash(filepath.Join(path, "**", "*.parquet")))
		return fmt.Sprintf("read_parquet('%s', hive_partitioning = true)", glob)
	}
	return fmt.Sprintf("read_parquet('%s')", escapeSQLString(filepath.ToSlash(path)))
}

func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// duckDBColumnType classifies a DuckDB result column. DECIMAL carries a
// precision suffix, so it is matched by prefix.
func duckDBColumnType(dbType string) models.ColumnType {
	t := strings.ToUpper(dbType)
	switch {
	case strings.HasPrefix(t, "DECIMAL"):
		return models.TypeFloat
	case strings.HasPrefix(t, "TIMESTAMP"):
		return models.TypeTimestamp
	}
	switch t {
	case "TINYINT", "SMALLINT", "INTEGER", "BIGINT", "HUGEINT",
		"UTINYINT", "USMALLINT", "UINTEGER", "UBIGINT":
		return models.TypeInteger
	case "FLOAT", "REAL", "DOUBLE":
		return models.TypeFloat
	case "DATE":
		return models.TypeTimestamp
	default:
		return models.TypeText
	}
}
