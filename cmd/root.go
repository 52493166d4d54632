package cmd

import (
	"fmt"
	"os"

	"github.com/pgschema/pgddl/cmd/table"
	"github.com/pgschema/pgddl/internal/logger"
	"github.com/pgschema/pgddl/internal/version"
	"github.com/spf13/cobra"
)

var Debug bool

var RootCmd = &cobra.Command{
	Use:   "pgddl",
	Short: "PostgreSQL table DDL reconstruction tool",
	Long: fmt.Sprintf(`pgddl reconstructs the DDL of PostgreSQL tables from the live catalog.

Version: %s

Commands:
  table    Reconstruct the DDL of one or more tables
  version  Show version information

Use "pgddl [command] --help" for more information about a command.`, version.Full()),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "Enable debug logging")
	RootCmd.CompletionOptions.DisableDefaultCmd = true
	RootCmd.AddCommand(table.TableCmd)
	RootCmd.AddCommand(VersionCmd)
}

func setupLogger() {
	logger.Setup(Debug)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
