package cli

import (
	"github.com/spf13/cobra"

	"github.com/lwozniak/sqlparq/internal/config"
)

func NewRestoreCmd() *cobra.Command {
	opts := &config.RestoreOptions{}

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore a parquet archive into a SQL Server table",
		RunE: func(c *cobra.Command, args []string) error {
			return runRestore(c.Context(), opts)
		},
	}

	addConnectionFlags(cmd, &opts.Connection)
	cmd.Flags().StringVar(&opts.Connection.Driver, "driver", "sqlserver", "SQL driver name")
	cmd.Flags().StringVarP(&opts.ParquetPath, "parquet-path", "p", "", "Path to parquet file or directory")
	cmd.Flags().StringVarP(&opts.TableName, "table-name", "t", "", "Target table name")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "Target schema name (default: dbo)")
	cmd.Flags().StringVar(&opts.IfExists, "if-exists", "fail",
		"Action if table exists: fail, replace or append")
	cmd.Flags().IntVarP(&opts.BatchSize, "batch-size", "b", config.DefaultBatchSize, "Rows per insert batch")
	cmd.Flags().StringVar(&opts.TransformQuery, "transform-query", "",
		"SQL query applied to the archive (as parquet_view) before insertion")
	cmd.MarkFlagRequired("parquet-path")
	cmd.MarkFlagRequired("table-name")

	return cmd
}
