package util

import (
	"fmt"

	"github.com/pgschema/pgddl/internal/config"
	"github.com/spf13/cobra"
)

// ConnectionFlags holds the connection flag values of a command
type ConnectionFlags struct {
	Host            string
	Port            int
	DB              string
	User            string
	Password        string
	Schema          string
	SSLMode         string
	ApplicationName string
	ConfigFile      string
}

// AddConnectionFlags registers the connection flags on cmd
func AddConnectionFlags(cmd *cobra.Command, f *ConnectionFlags) {
	cmd.Flags().StringVar(&f.Host, "host", "localhost", "Database server host (env: PGHOST)")
	cmd.Flags().IntVar(&f.Port, "port", 5432, "Database server port (env: PGPORT)")
	cmd.Flags().StringVar(&f.DB, "db", "", "Database name (required) (env: PGDATABASE)")
	cmd.Flags().StringVar(&f.User, "user", "", "Database user name (required) (env: PGUSER)")
	cmd.Flags().StringVar(&f.Password, "password", "", "Database password (optional, can also use PGPASSWORD env var or .pgpass file)")
	cmd.Flags().StringVar(&f.Schema, "schema", "public", "Schema for unqualified table names")
	cmd.Flags().StringVar(&f.SSLMode, "sslmode", "prefer", "SSL mode (env: PGSSLMODE)")
	cmd.Flags().StringVar(&f.ApplicationName, "application-name", "pgddl", "Application name for database connection (env: PGAPPNAME)")
	cmd.Flags().StringVar(&f.ConfigFile, "config", "", "YAML config file with connection settings")
}

// ResolveConfig loads the configuration file and environment, then applies
// every flag that was set explicitly on the command line.
func ResolveConfig(cmd *cobra.Command, f *ConnectionFlags) (*config.Config, error) {
	cfg, err := config.Load(f.ConfigFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = f.Host
	}
	if flags.Changed("port") {
		cfg.Port = f.Port
	}
	if flags.Changed("db") {
		cfg.Database = f.DB
	}
	if flags.Changed("user") {
		cfg.User = f.User
	}
	if flags.Changed("password") {
		cfg.Password = f.Password
	}
	if flags.Changed("schema") {
		cfg.Schema = f.Schema
	}
	if flags.Changed("sslmode") {
		cfg.SSLMode = f.SSLMode
	}
	if flags.Changed("application-name") {
		cfg.ApplicationName = f.ApplicationName
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.RequireConnection(); err != nil {
		return nil, err
	}
	if cfg.Schema == "" {
		return nil, fmt.Errorf("schema must not be empty")
	}
	return cfg, nil
}
