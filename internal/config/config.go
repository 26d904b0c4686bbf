// Package config holds the per-run options for both pipelines and the
// validation that has to happen before any connection is opened.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/lwozniak/sqlparq/pkg/models"
)

// DefaultBatchSize is the number of rows inserted per destination batch
// when the operator does not override it.
const DefaultBatchSize = 1000

// Environment variables that provide defaults for connection flags,
// matching the .env keys the tool has always used.
const (
	EnvServer   = "SQL_SERVER"
	EnvDatabase = "SQL_DATABASE"
	EnvUsername = "SQL_USERNAME"
	EnvPassword = "SQL_PASSWORD"
)

// ExtractOptions are the options for one extraction run.
type ExtractOptions struct {
	Connection  models.ConnectionSpec
	Table       string
	Query       string
	OutputPath  string
	Compression string
	PartitionBy []string
}

// RestoreOptions are the options for one restoration run.
type RestoreOptions struct {
	Connection     models.ConnectionSpec
	ParquetPath    string
	TableName      string
	Schema         string
	IfExists       string
	BatchSize      int
	TransformQuery string
}

// ApplyEnvDefaults fills connection fields left empty by flags from the
// environment (populated from .env by main).
func ApplyEnvDefaults(spec *models.ConnectionSpec) {
	if spec.Server == "" {
		spec.Server = os.Getenv(EnvServer)
	}
	if spec.Database == "" {
		spec.Database = os.Getenv(EnvDatabase)
	}
	if spec.Username == "" {
		spec.Username = os.Getenv(EnvUsername)
	}
	if spec.Password == "" {
		spec.Password = os.Getenv(EnvPassword)
	}
}

func validateConnection(spec models.ConnectionSpec) error {
	params := []struct {
		name   string
		value  string
		envVar string
	}{
		{"server", spec.Server, EnvServer},
		{"database", spec.Database, EnvDatabase},
		{"username", spec.Username, EnvUsername},
		{"password", spec.Password, EnvPassword},
	}
	for _, p := range params {
		if p.value == "" {
			return fmt.Errorf("missing SQL Server parameter: %s (provide --%s or set %s)",
				p.name, p.name, p.envVar)
		}
	}
	return nil
}

// Validate checks the extraction options before any I/O happens. Exactly
// one of table and query must be supplied.
func (o *ExtractOptions) Validate() error {
	if o.Table == "" && o.Query == "" {
		return errors.New("either --table or --query must be specified")
	}
	if o.Table != "" && o.Query != "" {
		return errors.New("--table and --query are mutually exclusive")
	}
	if o.OutputPath == "" {
		return errors.New("--output-path must be specified")
	}
	return validateConnection(o.Connection)
}

// Validate checks the restoration options before any I/O happens.
func (o *RestoreOptions) Validate() error {
	if o.ParquetPath == "" {
		return errors.New("--parquet-path must be specified")
	}
	if o.TableName == "" {
		return errors.New("--table-name must be specified")
	}
	if _, err := models.ParseExistencePolicy(o.IfExists); err != nil {
		return err
	}
	if o.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", o.BatchSize)
	}
	return validateConnection(o.Connection)
}
