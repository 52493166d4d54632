package ddl

import "strings"

// StatementKind is the semantic operation a statement performs
type StatementKind string

const (
	StatementCreateTable   StatementKind = "create_table"
	StatementAddConstraint StatementKind = "add_constraint"
	StatementSetDefault    StatementKind = "set_default"
	StatementOwner         StatementKind = "owner"
)

// Statement is one self-contained, terminated SQL statement
type Statement struct {
	SQL  string        `json:"sql"`
	Kind StatementKind `json:"kind"`
	// Object is the dotted path of the object the statement targets,
	// e.g. "public.users", "public.users.users_pkey" or "public.users.email"
	Object string `json:"object"`
}

// Script joins statements into newline-separated SQL text
func Script(statements []Statement) string {
	var b strings.Builder
	for _, stmt := range statements {
		b.WriteString(stmt.SQL)
		b.WriteString("\n")
	}
	return b.String()
}
