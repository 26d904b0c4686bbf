package etl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwozniak/sqlparq/pkg/models"
)

func TestArchiveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	source := sampleTable()

	w := &ArchiveWriter{Location: models.ArchiveLocation{Path: dir, Codec: "zstd"}}
	require.NoError(t, w.Write(context.Background(), source))

	r := &ArchiveReader{Location: models.ArchiveLocation{Path: dir}}
	got, err := r.Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, source.NumRows(), got.NumRows())
	assert.Contains(t, got.Columns, ExtractionTimestampColumn)
	assert.Equal(t, models.TypeText, got.Type(ExtractionTimestampColumn))
	assert.Equal(t, models.TypeInteger, got.Type("id"))
	assert.Equal(t, models.TypeFloat, got.Type("amount"))
	assert.Equal(t, models.TypeTimestamp, got.Type("created_at"))
}

func TestArchiveRoundTripPartitioned(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	source := sampleTable()

	w := &ArchiveWriter{Location: models.ArchiveLocation{Path: dir, Codec: "snappy"}, PartitionBy: []string{"region"}}
	require.NoError(t, w.Write(context.Background(), source))

	r := &ArchiveReader{Location: models.ArchiveLocation{Path: dir}}
	got, err := r.Read(context.Background())
	require.NoError(t, err)

	// partition values are restored from the directory names
	assert.Equal(t, source.NumRows(), got.NumRows())
	assert.Contains(t, got.Columns, "region")
	regions := map[string]int{}
	for _, row := range got.Rows {
		regions[toString(row["region"])]++
	}
	assert.Equal(t, map[string]int{"eu": 3, "us": 2}, regions)
}

func TestArchiveReaderMissingPath(t *testing.T) {
	r := &ArchiveReader{Location: models.ArchiveLocation{Path: filepath.Join(t.TempDir(), "nowhere")}}
	_, err := r.Read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parquet path not found")
}

func TestArchiveReaderTransformQuery(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	w := &ArchiveWriter{Location: models.ArchiveLocation{Path: dir, Codec: "snappy"}}
	require.NoError(t, w.Write(context.Background(), sampleTable()))

	r := &ArchiveReader{
		Location:       models.ArchiveLocation{Path: dir},
		TransformQuery: "SELECT region, COUNT(*) AS cnt FROM parquet_view GROUP BY region ORDER BY region",
	}
	got, err := r.Read(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, got.NumRows())
	assert.Equal(t, []string{"region", "cnt"}, got.Columns)
	assert.Equal(t, models.TypeInteger, got.Type("cnt"))
}
