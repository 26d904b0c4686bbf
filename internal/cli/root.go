// Package cli wires the command surface with Cobra. The commands are thin:
// they bind flags to run options and hand off to the handlers.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlparq",
		Short: "Move tables between SQL Server and parquet archives",
		Long: `sqlparq performs one-shot batch transfers between a SQL Server database
and parquet archives: extract a table or query result to compressed,
optionally partitioned parquet files, or restore an archive into a new or
existing table.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewExtractCmd(), NewRestoreCmd())

	return rootCmd
}
