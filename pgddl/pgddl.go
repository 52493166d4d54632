// Package pgddl provides a programmatic API for reconstructing PostgreSQL table DDL.
package pgddl

import (
	"context"

	"github.com/pgschema/pgddl/catalog"
	"github.com/pgschema/pgddl/cmd/table"
	"github.com/pgschema/pgddl/cmd/util"
	"github.com/pgschema/pgddl/internal/config"
)

// DatabaseConfig holds connection details for a PostgreSQL database.
type DatabaseConfig struct {
	Host            string // Database server host (default: "localhost")
	Port            int    // Database server port (default: 5432)
	Database        string // Database name
	User            string // Database user
	Password        string // Database password (optional)
	Schema          string // Schema for unqualified table names (default: "public")
	SSLMode         string // SSL mode (default: "prefer")
	ApplicationName string // Application name for database connection (default: "pgddl")
}

// GenerateOptions configures how table DDL is rendered.
type GenerateOptions struct {
	Tables           []string         // NAME or SCHEMA.NAME of each table
	Format           string           // "sql" (default) or "json"
	NoComments       bool             // Omit dump and statement headers
	MultiFile        bool             // Write one file per table, File includes them
	File             string           // Output file path (optional unless MultiFile)
	ConstraintSource ConstraintSource // Where constraints are read from (default: catalog)
	Jobs             int              // Tables reconstructed concurrently (default: 4)
	Validate         bool             // Parse every generated statement before rendering
}

// Client provides the main interface for pgddl operations.
type Client struct {
	defaultDB DatabaseConfig
}

// NewClient creates a new pgddl client with default database configuration.
func NewClient(dbConfig DatabaseConfig) *Client {
	return &Client{defaultDB: withDefaults(dbConfig)}
}

// Generate reconstructs the requested tables and returns the rendered output.
// When opts.File is set the output is written there and an empty string is returned.
func (c *Client) Generate(ctx context.Context, opts GenerateOptions) (string, error) {
	if opts.ConstraintSource == "" {
		opts.ConstraintSource = ConstraintSourceCatalog
	}
	if opts.Jobs == 0 {
		opts.Jobs = 4
	}

	cfg := c.config()
	cfg.ConstraintSource = string(opts.ConstraintSource)
	cfg.Jobs = opts.Jobs
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if err := cfg.RequireConnection(); err != nil {
		return "", err
	}

	return table.Execute(ctx, cfg, table.Options{
		Tables:           opts.Tables,
		Format:           opts.Format,
		NoComments:       opts.NoComments,
		MultiFile:        opts.MultiFile,
		File:             opts.File,
		ConstraintSource: cfg.ConstraintSource,
		Jobs:             cfg.Jobs,
		Validate:         opts.Validate,
	})
}

// Tables reconstructs the requested tables and returns their statements.
func (c *Client) Tables(ctx context.Context, source ConstraintSource, tables ...string) ([]TableDDL, error) {
	cfg := c.config()
	if err := cfg.RequireConnection(); err != nil {
		return nil, err
	}
	if source == "" {
		source = ConstraintSourceCatalog
	}
	if _, err := catalog.ParseConstraintSource(string(source)); err != nil {
		return nil, err
	}

	targets, err := table.ParseTableNames(tables, cfg.Schema)
	if err != nil {
		return nil, err
	}

	dbConn, err := util.Connect(ctx, util.ConnectionConfigFrom(cfg))
	if err != nil {
		return nil, err
	}
	defer dbConn.Close()

	inspector := catalog.NewInspector(dbConn, catalog.WithConstraintSource(source))
	return table.Reconstruct(ctx, inspector, targets, cfg.Jobs)
}

func (c *Client) config() *config.Config {
	db := c.defaultDB
	return &config.Config{
		Host:             db.Host,
		Port:             db.Port,
		Database:         db.Database,
		User:             db.User,
		Password:         db.Password,
		SSLMode:          db.SSLMode,
		ApplicationName:  db.ApplicationName,
		Schema:           db.Schema,
		ConstraintSource: string(ConstraintSourceCatalog),
		Jobs:             4,
	}
}

func withDefaults(db DatabaseConfig) DatabaseConfig {
	if db.Host == "" {
		db.Host = "localhost"
	}
	if db.Port == 0 {
		db.Port = 5432
	}
	if db.Schema == "" {
		db.Schema = "public"
	}
	if db.SSLMode == "" {
		db.SSLMode = "prefer"
	}
	if db.ApplicationName == "" {
		db.ApplicationName = "pgddl"
	}
	return db
}
