package etl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"go.uber.org/zap"

	"github.com/lwozniak/sqlparq/pkg/logger"
	"github.com/lwozniak/sqlparq/pkg/models"
)

// ExtractionTimestampColumn is the synthetic column appended to every
// archived row, carrying the wall-clock time of the extraction run.
const ExtractionTimestampColumn = "extraction_timestamp"

const extractionTimestampFormat = "2006-01-02 15:04:05"

// hive convention for a null partition value
const nullPartitionValue = "__HIVE_DEFAULT_PARTITION__"

// ArchiveWriter serializes a TypedTable to compressed parquet files at
// the archive location, overwriting whatever is already there. With
// partition columns it produces a hive-style col=value directory tree;
// the partition columns are carried by the directory names, not the files.
type ArchiveWriter struct {
	Location    models.ArchiveLocation
	PartitionBy []string
}

func (w *ArchiveWriter) Write(ctx context.Context, table *models.TypedTable) error {
	log := logger.Get()

	codec, recognized := models.NormalizeCodec(w.Location.Codec)
	if !recognized {
		log.Warn("unrecognized compression codec, using default",
			zap.String("requested", w.Location.Codec),
			zap.String("codec", codec))
	}
	if codec == "lzo" {
		// the parquet engine has no LZO encoder
		log.Warn("lzo compression is not supported by the parquet writer, using default",
			zap.String("codec", models.DefaultCodec))
		codec = models.DefaultCodec
	}
	log.Info("saving data as parquet", zap.String("codec", codec), zap.String("path", w.Location.Path))

	stamp := time.Now().Format(extractionTimestampFormat)
	table.AddColumn(ExtractionTimestampColumn, models.TypeText, stamp)

	for _, col := range w.PartitionBy {
		if _, ok := table.Types[col]; !ok {
			return fmt.Errorf("partition column %q not present in data", col)
		}
	}

	if err := os.RemoveAll(w.Location.Path); err != nil {
		return fmt.Errorf("clearing output path %s: %w", w.Location.Path, err)
	}

	if len(w.PartitionBy) == 0 {
		if err := w.writeSingle(table, codec); err != nil {
			return err
		}
	} else {
		if err := w.writePartitioned(table, codec); err != nil {
			return err
		}
	}

	log.Info("data saved to archive", zap.String("path", w.Location.Path), zap.Int("rows", table.NumRows()))
	return nil
}

func (w *ArchiveWriter) writeSingle(table *models.TypedTable, codec string) error {
	path := w.Location.Path
	if strings.HasSuffix(path, ".parquet") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}
	} else {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		path = filepath.Join(path, "data.parquet")
	}
	return writeParquetFile(path, table.Columns, table, table.Rows, codec)
}

func (w *ArchiveWriter) writePartitioned(table *models.TypedTable, codec string) error {
	dataColumns := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		if !contains(w.PartitionBy, col) {
			dataColumns = append(dataColumns, col)
		}
	}

	for _, part := range partitionGroups(table, w.PartitionBy) {
		dir := w.Location.Path
		for i, col := range w.PartitionBy {
			dir = filepath.Join(dir, fmt.Sprintf("%s=%s", col, part.values[i]))
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating partition directory %s: %w", dir, err)
		}
		if err := writeParquetFile(filepath.Join(dir, "data.parquet"), dataColumns, table, part.rows, codec); err != nil {
			return err
		}
	}
	return nil
}

type partition struct {
	values []string
	rows   []map[string]interface{}
}

// partitionGroups splits rows by the distinct values of the partition
// columns, preserving first-seen order.
func partitionGroups(table *models.TypedTable, partitionBy []string) []*partition {
	index := make(map[string]*partition)
	var order []*partition

	for _, row := range table.Rows {
		values := make([]string, len(partitionBy))
		for i, col := range partitionBy {
			values[i] = partitionValue(row[col])
		}
		key := strings.Join(values, "\x00")
		p, ok := index[key]
		if !ok {
			p = &partition{values: values}
			index[key] = p
			order = append(order, p)
		}
		p.rows = append(p.rows, row)
	}
	return order
}

func partitionValue(v interface{}) string {
	if v == nil {
		return nullPartitionValue
	}
	if t, ok := v.(time.Time); ok {
		return t.Format(extractionTimestampFormat)
	}
	return fmt.Sprintf("%v", v)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// writeParquetFile writes one row group of the given columns to a single
// parquet file.
func writeParquetFile(path string, columns []string, table *models.TypedTable, rows []map[string]interface{}, codec string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating parquet file %s: %w", path, err)
	}
	defer f.Close()

	schema := arrowSchema(columns, table)
	pool := memory.NewGoAllocator()

	props := parquet.NewWriterProperties(parquet.WithCompression(parquetCompression(codec)))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(pool))

	fw, err := pqarrow.NewFileWriter(schema, f, props, arrowProps)
	if err != nil {
		return fmt.Errorf("creating parquet writer for %s: %w", path, err)
	}

	builder := array.NewRecordBuilder(pool, schema)
	defer builder.Release()

	for _, row := range rows {
		for i, col := range columns {
			appendCell(builder.Field(i), row[col])
		}
	}

	record := builder.NewRecord()
	defer record.Release()

	if err := fw.Write(record); err != nil {
		fw.Close()
		return fmt.Errorf("writing parquet file %s: %w", path, err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("closing parquet file %s: %w", path, err)
	}
	return nil
}

func arrowSchema(columns []string, table *models.TypedTable) *arrow.Schema {
	fields := make([]arrow.Field, 0, len(columns))
	for _, col := range columns {
		fields = append(fields, arrow.Field{
			Name:     col,
			Type:     arrowType(table.Type(col)),
			Nullable: true,
		})
	}
	return arrow.NewSchema(fields, nil)
}

func arrowType(t models.ColumnType) arrow.DataType {
	switch t {
	case models.TypeInteger:
		return arrow.PrimitiveTypes.Int64
	case models.TypeFloat:
		return arrow.PrimitiveTypes.Float64
	case models.TypeTimestamp:
		return arrow.FixedWidthTypes.Timestamp_ms
	default:
		return arrow.BinaryTypes.String
	}
}

// appendCell coerces a scanned cell into the column's arrow builder.
// Values the builder cannot represent become nulls rather than failing
// the whole run.
func appendCell(b array.Builder, value interface{}) {
	if value == nil {
		b.AppendNull()
		return
	}

	switch bldr := b.(type) {
	case *array.Int64Builder:
		if v, ok := toInt64(value); ok {
			bldr.Append(v)
		} else {
			bldr.AppendNull()
		}
	case *array.Float64Builder:
		if v, ok := toFloat64(value); ok {
			bldr.Append(v)
		} else {
			bldr.AppendNull()
		}
	case *array.TimestampBuilder:
		if v, ok := toTime(value); ok {
			bldr.Append(arrow.Timestamp(v.UnixMilli()))
		} else {
			bldr.AppendNull()
		}
	case *array.StringBuilder:
		bldr.Append(toString(value))
	default:
		b.AppendNull()
	}
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint64:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

var timeFormats = []string{
	extractionTimestampFormat,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func toTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, f := range timeFormats {
			if parsed, err := time.Parse(f, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.Format(extractionTimestampFormat)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func parquetCompression(codec string) compress.Compression {
	switch codec {
	case "none":
		return compress.Codecs.Uncompressed
	case "gzip":
		return compress.Codecs.Gzip
	case "zstd":
		return compress.Codecs.Zstd
	default:
		return compress.Codecs.Snappy
	}
}
