package models

import (
	"fmt"
	"strings"
)

// ConnectionSpec holds the parameters for one SQL Server endpoint.
// It is immutable for the run; the password must never reach a log line.
type ConnectionSpec struct {
	Server   string
	Database string
	Username string
	Password string
	Driver   string
}

// Redacted renders the spec for logging with the password omitted.
func (c ConnectionSpec) Redacted() string {
	return fmt.Sprintf("server=%s database=%s user=%s", c.Server, c.Database, c.Username)
}

// ExistencePolicy governs what DestinationWriter does when the target
// table already exists.
type ExistencePolicy string

const (
	PolicyFail    ExistencePolicy = "fail"
	PolicyReplace ExistencePolicy = "replace"
	PolicyAppend  ExistencePolicy = "append"
)

func ParseExistencePolicy(s string) (ExistencePolicy, error) {
	switch ExistencePolicy(strings.ToLower(s)) {
	case PolicyFail:
		return PolicyFail, nil
	case PolicyReplace:
		return PolicyReplace, nil
	case PolicyAppend:
		return PolicyAppend, nil
	default:
		return "", fmt.Errorf("invalid if-exists policy %q (expected fail, replace or append)", s)
	}
}

// DefaultCodec is the compression used when none (or an unrecognized one)
// is requested.
const DefaultCodec = "snappy"

var recognizedCodecs = map[string]struct{}{
	"none":   {},
	"snappy": {},
	"gzip":   {},
	"lzo":    {},
	"zstd":   {},
}

// NormalizeCodec lower-cases a codec name and reports whether it is one of
// the recognized parquet codecs. Unrecognized names come back as the
// default codec with ok=false; the caller decides to warn, never to fail.
func NormalizeCodec(name string) (codec string, ok bool) {
	codec = strings.ToLower(strings.TrimSpace(name))
	if _, found := recognizedCodecs[codec]; found {
		return codec, true
	}
	return DefaultCodec, false
}

// ArchiveLocation points at a parquet archive on disk: a single file or a
// directory of (possibly partitioned) files, plus the codec used to write it.
type ArchiveLocation struct {
	Path  string
	Codec string
}
