package util

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pgschema/pgddl/internal/config"
	"github.com/pgschema/pgddl/internal/logger"
)

// ConnectionConfig holds database connection parameters
type ConnectionConfig struct {
	Host            string
	Port            int
	Database        string
	User            string
	Password        string
	SSLMode         string
	ApplicationName string
}

// ConnectionConfigFrom extracts the connection parameters of a resolved configuration
func ConnectionConfigFrom(cfg *config.Config) *ConnectionConfig {
	return &ConnectionConfig{
		Host:            cfg.Host,
		Port:            cfg.Port,
		Database:        cfg.Database,
		User:            cfg.User,
		Password:        cfg.Password,
		SSLMode:         cfg.SSLMode,
		ApplicationName: cfg.ApplicationName,
	}
}

// Connect establishes a database connection using the provided configuration
func Connect(ctx context.Context, config *ConnectionConfig) (*sql.DB, error) {
	log := logger.Get()

	log.Debug("Attempting database connection",
		"host", config.Host,
		"port", config.Port,
		"database", config.Database,
		"user", config.User,
		"sslmode", config.SSLMode,
		"application_name", config.ApplicationName,
	)

	conn, err := sql.Open("pgx", config.DSN())
	if err != nil {
		log.Debug("Database connection failed", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		log.Debug("Database ping failed", "error", err)
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Debug("Database connection established successfully")
	return conn, nil
}

// DSN constructs a keyword/value PostgreSQL connection string
func (c *ConnectionConfig) DSN() string {
	var parts []string

	parts = append(parts, "host="+quoteDSNValue(c.Host))
	parts = append(parts, fmt.Sprintf("port=%d", c.Port))
	parts = append(parts, "dbname="+quoteDSNValue(c.Database))
	parts = append(parts, "user="+quoteDSNValue(c.User))

	if c.Password != "" {
		parts = append(parts, "password="+quoteDSNValue(c.Password))
	}

	if c.SSLMode != "" {
		parts = append(parts, "sslmode="+quoteDSNValue(c.SSLMode))
	}

	if c.ApplicationName != "" {
		parts = append(parts, "application_name="+quoteDSNValue(c.ApplicationName))
	}

	return strings.Join(parts, " ")
}

// quoteDSNValue single-quotes values that are empty or contain spaces, quotes or backslashes
func quoteDSNValue(value string) string {
	if value != "" && !strings.ContainsAny(value, " '\\") {
		return value
	}
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(value)
	return "'" + escaped + "'"
}
