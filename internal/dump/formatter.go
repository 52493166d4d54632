// Package dump renders reconstructed table DDL as SQL scripts or JSON.
package dump

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pgschema/pgddl/ddl"
	"github.com/pgschema/pgddl/internal/version"
)

// TableDump is the reconstructed DDL of one table
type TableDump struct {
	Schema     string          `json:"schema"`
	Name       string          `json:"name"`
	Owner      string          `json:"owner,omitempty"`
	Statements []ddl.Statement `json:"statements"`
}

// Formatter handles formatting SQL output for table dumps
type Formatter struct {
	dbVersion    string
	targetSchema string
	noComments   bool
}

// NewFormatter creates a new Formatter. dbVersion is the server version shown
// in the dump header; objects in targetSchema print "-" as their schema.
func NewFormatter(dbVersion string, targetSchema string, noComments bool) *Formatter {
	return &Formatter{
		dbVersion:    dbVersion,
		targetSchema: targetSchema,
		noComments:   noComments,
	}
}

// FormatSingleFile formats all tables as one script with pg_dump-style headers
func (f *Formatter) FormatSingleFile(tables []TableDump) string {
	if f.noComments {
		var output strings.Builder
		for _, table := range tables {
			output.WriteString(ddl.Script(table.Statements))
		}
		return output.String()
	}

	var output strings.Builder
	output.WriteString(f.generateDumpHeader())

	for i, table := range tables {
		if i > 0 {
			output.WriteString("\n")
		}
		f.writeTable(&output, table)
	}

	return output.String()
}

// FormatJSON formats all tables as an indented JSON document
func (f *Formatter) FormatJSON(tables []TableDump) (string, error) {
	document := struct {
		ServerVersion string      `json:"server_version"`
		Tables        []TableDump `json:"tables"`
	}{
		ServerVersion: f.dbVersion,
		Tables:        tables,
	}

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal dump: %w", err)
	}
	return string(data) + "\n", nil
}

// FormatMultiFile writes one file per table under a "tables" directory next to
// outputPath, and a main file at outputPath that includes them in order.
func (f *Formatter) FormatMultiFile(tables []TableDump, outputPath string) error {
	baseDir := filepath.Dir(outputPath)
	tablesDir := filepath.Join(baseDir, "tables")
	if err := os.MkdirAll(tablesDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", tablesDir, err)
	}

	fileNames := f.fileNames(tables)
	includes := make([]string, 0, len(tables))
	for i, table := range tables {
		fileName := fileNames[i]
		filePath := filepath.Join(tablesDir, fileName)

		var content strings.Builder
		if f.noComments {
			content.WriteString(ddl.Script(table.Statements))
		} else {
			f.writeTable(&content, table)
		}
		if err := os.WriteFile(filePath, []byte(content.String()), 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", filePath, err)
		}

		includes = append(includes, fmt.Sprintf("\\i %s", filepath.Join("tables", fileName)))
	}

	var index strings.Builder
	if !f.noComments {
		index.WriteString(f.generateDumpHeader())
	}
	for _, include := range includes {
		index.WriteString(include + "\n")
	}
	if err := os.WriteFile(outputPath, []byte(index.String()), 0644); err != nil {
		return fmt.Errorf("failed to create main file: %w", err)
	}

	return nil
}

// generateDumpHeader generates the header for table dumps with metadata
func (f *Formatter) generateDumpHeader() string {
	var header strings.Builder

	header.WriteString("--\n")
	header.WriteString("-- pgddl table dump\n")
	header.WriteString("--\n")
	header.WriteString("\n")

	header.WriteString(fmt.Sprintf("-- Dumped from database version %s\n", f.dbVersion))
	header.WriteString(fmt.Sprintf("-- Dumped by pgddl version %s\n", version.App()))
	header.WriteString("\n")
	header.WriteString("\n")
	return header.String()
}

// writeTable writes one table's statements, each preceded by an object header
func (f *Formatter) writeTable(output *strings.Builder, table TableDump) {
	for i, stmt := range table.Statements {
		if i > 0 {
			output.WriteString("\n")
		}
		output.WriteString(f.formatObjectCommentHeader(table, stmt))
		output.WriteString(stmt.SQL)
		output.WriteString("\n")
	}
}

// formatObjectCommentHeader generates the comment header for a statement
func (f *Formatter) formatObjectCommentHeader(table TableDump, stmt ddl.Statement) string {
	var output strings.Builder

	schema := table.Schema
	if schema == f.targetSchema {
		schema = "-"
	}
	owner := table.Owner
	if owner == "" {
		owner = "-"
	}

	output.WriteString("--\n")
	output.WriteString(fmt.Sprintf("-- Name: %s; Type: %s; Schema: %s; Owner: %s\n",
		objectName(table, stmt), displayType(stmt.Kind), schema, owner))
	output.WriteString("--\n")
	output.WriteString("\n")

	return output.String()
}

// objectName returns the name shown in a statement header. Constraint and
// default statements are named "table name" like pg_dump does.
func objectName(table TableDump, stmt ddl.Statement) string {
	prefix := table.Schema + "." + table.Name + "."
	if member := strings.TrimPrefix(stmt.Object, prefix); member != stmt.Object {
		return table.Name + " " + member
	}
	return table.Name
}

func displayType(kind ddl.StatementKind) string {
	switch kind {
	case ddl.StatementCreateTable:
		return "TABLE"
	case ddl.StatementAddConstraint:
		return "CONSTRAINT"
	case ddl.StatementSetDefault:
		return "DEFAULT"
	case ddl.StatementOwner:
		return "OWNER"
	default:
		return strings.ToUpper(string(kind))
	}
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// fileName converts a table to a file name, qualified unless it is in the target schema
func (f *Formatter) fileName(table TableDump) string {
	name := table.Name
	if table.Schema != f.targetSchema {
		name = table.Schema + "_" + table.Name
	}

	sanitized := unsafeFileChars.ReplaceAllString(name, "_")
	sanitized = strings.Trim(sanitized, "_")
	if sanitized == "" {
		sanitized = "table"
	}
	return strings.ToLower(sanitized)
}

// fileNames assigns each table a distinct .sql file name. Sanitizing is
// many-to-one, so later tables whose name is taken get a numeric suffix.
func (f *Formatter) fileNames(tables []TableDump) []string {
	names := make([]string, len(tables))
	used := make(map[string]bool, len(tables))
	for i, table := range tables {
		base := f.fileName(table)
		name := base
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		used[name] = true
		names[i] = name + ".sql"
	}
	return names
}
