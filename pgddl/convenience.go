package pgddl

import (
	"context"
)

// GenerateTable is a convenience function returning one table's DDL as a plain SQL script.
func GenerateTable(ctx context.Context, dbConfig DatabaseConfig, table string) (string, error) {
	client := NewClient(dbConfig)
	return client.Generate(ctx, GenerateOptions{
		Tables:     []string{table},
		NoComments: true,
	})
}

// GenerateTablesToFile is a convenience function writing the DDL of several tables to one file.
func GenerateTablesToFile(ctx context.Context, dbConfig DatabaseConfig, filePath string, tables ...string) error {
	client := NewClient(dbConfig)
	_, err := client.Generate(ctx, GenerateOptions{
		Tables: tables,
		File:   filePath,
	})
	return err
}

// GenerateTablesMultiFile is a convenience function writing one file per table
// plus a main file at basePath that includes them.
func GenerateTablesMultiFile(ctx context.Context, dbConfig DatabaseConfig, basePath string, tables ...string) error {
	client := NewClient(dbConfig)
	_, err := client.Generate(ctx, GenerateOptions{
		Tables:    tables,
		MultiFile: true,
		File:      basePath,
	})
	return err
}
