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

// DestinationWriter reconciles the target table per the existence policy
// and inserts all rows in sequential batches. Each batch is one statement;
// there is no cross-batch transaction, so a failure partway through leaves
// prior batches committed and the remainder unattempted.
type DestinationWriter struct {
	DB        *sql.DB
	Table     string
	Schema    string
	Policy    models.ExistencePolicy
	BatchSize int
	Mapper    SchemaMapper
}

// tableAction is the outcome of the (existence x policy) decision table.
type tableAction int

const (
	actionCreateInsert tableAction = iota
	actionReplaceInsert
	actionAppendInsert
)

// planAction resolves the existence policy against the observed state of
// the destination table. Every combination is handled here so each is
// independently testable.
func planAction(exists bool, policy models.ExistencePolicy, table string) (tableAction, error) {
	if !exists {
		return actionCreateInsert, nil
	}
	switch policy {
	case models.PolicyFail:
		return 0, fmt.Errorf("table %s already exists", table)
	case models.PolicyReplace:
		return actionReplaceInsert, nil
	case models.PolicyAppend:
		return actionAppendInsert, nil
	default:
		return 0, fmt.Errorf("unknown existence policy: %q", policy)
	}
}

func (d *DestinationWriter) Write(ctx context.Context, table *models.TypedTable) error {
	log := logger.Get()

	batchSize := d.BatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}

	exists, err := d.tableExists(ctx)
	if err != nil {
		return fmt.Errorf("checking if table %s exists: %w", d.qualifiedName(), err)
	}

	action, err := planAction(exists, d.Policy, d.qualifiedName())
	if err != nil {
		return err
	}

	switch action {
	case actionReplaceInsert:
		log.Info("dropping existing table", zap.String("table", d.qualifiedName()))
		if err := d.dropTable(ctx); err != nil {
			return err
		}
		if err := d.createTable(ctx, table); err != nil {
			return err
		}
	case actionCreateInsert:
		if err := d.createTable(ctx, table); err != nil {
			return err
		}
	case actionAppendInsert:
		// existing schema is trusted to be compatible
	}

	return d.insertRows(ctx, table, batchSize)
}

func (d *DestinationWriter) qualifiedName() string {
	if d.Schema != "" {
		return fmt.Sprintf("[%s].[%s]", d.Schema, d.Table)
	}
	return fmt.Sprintf("[%s]", d.Table)
}

func (d *DestinationWriter) tableExists(ctx context.Context) (bool, error) {
	// An unqualified probe still has to scope to the connection's default
	// schema; a same-named table elsewhere must not trigger the policy.
	query := "SELECT 1 FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_NAME = @p1 AND TABLE_SCHEMA = SCHEMA_NAME()"
	args := []interface{}{d.Table}
	if d.Schema != "" {
		query = "SELECT 1 FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_NAME = @p1 AND TABLE_SCHEMA = @p2"
		args = append(args, d.Schema)
	}

	var one int
	err := d.DB.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *DestinationWriter) createTable(ctx context.Context, table *models.TypedTable) error {
	defs := d.Mapper.ColumnDefs(table)
	stmt := fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", d.qualifiedName(), strings.Join(defs, ",\n  "))

	if _, err := d.DB.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("creating table %s: %w", d.qualifiedName(), err)
	}
	logger.Get().Info("created table",
		zap.String("table", d.qualifiedName()),
		zap.Int("columns", len(defs)))
	return nil
}

func (d *DestinationWriter) dropTable(ctx context.Context) error {
	if _, err := d.DB.ExecContext(ctx, "DROP TABLE "+d.qualifiedName()); err != nil {
		return fmt.Errorf("dropping table %s: %w", d.qualifiedName(), err)
	}
	return nil
}

func (d *DestinationWriter) insertRows(ctx context.Context, table *models.TypedTable, batchSize int) error {
	log := logger.Get()
	total := table.NumRows()
	log.Info("beginning data insertion",
		zap.String("table", d.qualifiedName()),
		zap.Int("rows", total),
		zap.Int("batch_size", batchSize))

	rowsPerStmt := maxRowsPerStatement(len(table.Columns))
	ranges := batchRanges(total, batchSize)
	for i, r := range ranges {
		if err := d.insertBatch(ctx, table, r, rowsPerStmt); err != nil {
			return fmt.Errorf("inserting batch %d/%d into %s: %w", i+1, len(ranges), d.qualifiedName(), err)
		}
		log.Info("inserted batch",
			zap.Int("batch", i+1),
			zap.Int("batches", len(ranges)),
			zap.Int("rows", r.end-r.start))
	}

	log.Info("data insertion complete", zap.String("table", d.qualifiedName()), zap.Int("rows", total))
	return nil
}

// insertBatch writes one logical batch inside a transaction. A batch that
// would exceed the statement parameter cap is split across several INSERTs,
// but the transaction keeps the batch itself all-or-nothing.
func (d *DestinationWriter) insertBatch(ctx context.Context, table *models.TypedTable, r rowRange, rowsPerStmt int) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, sub := range batchRanges(r.end-r.start, rowsPerStmt) {
		rows := table.Rows[r.start+sub.start : r.start+sub.end]
		stmt, args := buildInsert(d.qualifiedName(), table.Columns, rows)
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// maxParamsPerStmt is SQL Server's hard limit on parameters in one RPC.
const maxParamsPerStmt = 2100

func maxRowsPerStatement(columns int) int {
	if columns <= 0 {
		return 1
	}
	n := maxParamsPerStmt / columns
	if n < 1 {
		n = 1
	}
	return n
}

type rowRange struct {
	start, end int
}

func batchRanges(total, size int) []rowRange {
	var ranges []rowRange
	for start := 0; start < total; start += size {
		end := start + size
		if end > total {
			end = total
		}
		ranges = append(ranges, rowRange{start: start, end: end})
	}
	return ranges
}

// buildInsert assembles one multi-row INSERT with @pN placeholders. Callers
// must keep len(rows)*len(columns) under maxParamsPerStmt.
func buildInsert(table string, columns []string, rows []map[string]interface{}) (string, []interface{}) {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = "[" + col + "]"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ", table, strings.Join(quoted, ", "))

	args := make([]interface{}, 0, len(rows)*len(columns))
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		placeholders := make([]string, len(columns))
		for j, col := range columns {
			args = append(args, row[col])
			placeholders[j] = fmt.Sprintf("@p%d", len(args))
		}
		sb.WriteString("(" + strings.Join(placeholders, ", ") + ")")
	}
	return sb.String(), args
}
