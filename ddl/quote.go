package ddl

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// QuoteIdent wraps an identifier in double quotes, doubling any embedded quote.
// Identifiers are always quoted so that case and reserved words survive replay.
func QuoteIdent(identifier string) string {
	return pgx.Identifier{identifier}.Sanitize()
}

// QuoteQualified returns "schema"."name"
func QuoteQualified(schema, name string) string {
	return pgx.Identifier{schema, name}.Sanitize()
}

// QuoteIdents quotes every identifier and joins them with ", "
func QuoteIdents(identifiers []string) string {
	quoted := make([]string, len(identifiers))
	for i, ident := range identifiers {
		quoted[i] = QuoteIdent(ident)
	}
	return strings.Join(quoted, ", ")
}

// UnquoteIdent reverses QuoteIdent. Input that is not wrapped in double quotes
// is returned unchanged.
func UnquoteIdent(quoted string) string {
	if len(quoted) < 2 || quoted[0] != '"' || quoted[len(quoted)-1] != '"' {
		return quoted
	}
	return strings.ReplaceAll(quoted[1:len(quoted)-1], `""`, `"`)
}
