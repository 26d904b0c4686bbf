package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCodecRecognized(t *testing.T) {
	for _, name := range []string{"none", "snappy", "gzip", "lzo", "zstd"} {
		codec, ok := NormalizeCodec(name)
		assert.True(t, ok, "codec %s should be recognized", name)
		assert.Equal(t, name, codec)
	}
}

func TestNormalizeCodecCaseInsensitive(t *testing.T) {
	codec, ok := NormalizeCodec("GZIP")
	assert.True(t, ok)
	assert.Equal(t, "gzip", codec)
}

func TestNormalizeCodecFallback(t *testing.T) {
	codec, ok := NormalizeCodec("brotli")
	assert.False(t, ok)
	assert.Equal(t, DefaultCodec, codec)

	codec, ok = NormalizeCodec("")
	assert.False(t, ok)
	assert.Equal(t, DefaultCodec, codec)
}

func TestParseExistencePolicy(t *testing.T) {
	for input, want := range map[string]ExistencePolicy{
		"fail":    PolicyFail,
		"replace": PolicyReplace,
		"append":  PolicyAppend,
		"REPLACE": PolicyReplace,
	} {
		got, err := ParseExistencePolicy(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseExistencePolicy("upsert")
	assert.Error(t, err)
}

func TestAddColumn(t *testing.T) {
	table := NewTypedTable([]string{"id"})
	table.Types["id"] = TypeInteger
	table.Rows = []map[string]interface{}{
		{"id": int64(1)},
		{"id": int64(2)},
	}

	table.AddColumn("stamp", TypeText, "2024-01-01 00:00:00")

	assert.Equal(t, []string{"id", "stamp"}, table.Columns)
	assert.Equal(t, TypeText, table.Type("stamp"))
	for _, row := range table.Rows {
		assert.Equal(t, "2024-01-01 00:00:00", row["stamp"])
	}
}

func TestTypeDefaultsToText(t *testing.T) {
	table := NewTypedTable([]string{"a"})
	assert.Equal(t, TypeText, table.Type("a"))
	assert.Equal(t, TypeText, table.Type("missing"))
}

func TestRedactedOmitsPassword(t *testing.T) {
	spec := ConnectionSpec{Server: "db01", Database: "sales", Username: "svc", Password: "hunter2"}
	assert.NotContains(t, spec.Redacted(), "hunter2")
	assert.Contains(t, spec.Redacted(), "db01")
}
