package cli

import (
	"github.com/spf13/cobra"

	"github.com/lwozniak/sqlparq/internal/config"
	"github.com/lwozniak/sqlparq/pkg/models"
)

func NewExtractCmd() *cobra.Command {
	opts := &config.ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a table or query result to a parquet archive",
		RunE: func(c *cobra.Command, args []string) error {
			return runExtract(c.Context(), opts)
		},
	}

	addConnectionFlags(cmd, &opts.Connection)
	cmd.Flags().StringVar(&opts.Table, "table", "", "Source table name")
	cmd.Flags().StringVar(&opts.Query, "query", "", "Custom SQL query (alternative to --table)")
	cmd.Flags().StringVarP(&opts.OutputPath, "output-path", "o", "", "Output path for parquet files")
	cmd.Flags().StringVar(&opts.Compression, "compression", models.DefaultCodec,
		"Compression codec (none, snappy, gzip, lzo, zstd)")
	cmd.Flags().StringSliceVar(&opts.PartitionBy, "partition-by", nil, "Columns to partition by")
	cmd.MarkFlagRequired("output-path")

	return cmd
}

func addConnectionFlags(cmd *cobra.Command, spec *models.ConnectionSpec) {
	cmd.Flags().StringVar(&spec.Server, "server", "", "SQL Server hostname (default from SQL_SERVER)")
	cmd.Flags().StringVar(&spec.Database, "database", "", "Database name (default from SQL_DATABASE)")
	cmd.Flags().StringVar(&spec.Username, "username", "", "SQL Server username (default from SQL_USERNAME)")
	cmd.Flags().StringVar(&spec.Password, "password", "", "SQL Server password (default from SQL_PASSWORD)")
}
