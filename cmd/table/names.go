package table

import (
	"fmt"
	"strings"

	"github.com/pgschema/pgddl/ddl"
)

// ParseTableNames parses each argument with ParseTableName and drops repeats,
// keeping the first occurrence.
func ParseTableNames(args []string, defaultSchema string) ([]ddl.QualifiedName, error) {
	var names []ddl.QualifiedName
	seen := make(map[ddl.QualifiedName]bool)
	for _, arg := range args {
		name, err := ParseTableName(arg, defaultSchema)
		if err != nil {
			return nil, err
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// ParseTableName parses NAME or SCHEMA.NAME. Unquoted parts fold to lower case
// the way PostgreSQL folds identifiers; double-quoted parts are taken literally.
func ParseTableName(arg, defaultSchema string) (ddl.QualifiedName, error) {
	parts, err := splitQualified(arg)
	if err != nil {
		return ddl.QualifiedName{}, fmt.Errorf("invalid table name %q: %w", arg, err)
	}

	switch len(parts) {
	case 1:
		return ddl.QualifiedName{Schema: defaultSchema, Name: parts[0]}, nil
	case 2:
		return ddl.QualifiedName{Schema: parts[0], Name: parts[1]}, nil
	default:
		return ddl.QualifiedName{}, fmt.Errorf("invalid table name %q: expected NAME or SCHEMA.NAME", arg)
	}
}

// splitQualified splits on dots outside double quotes
func splitQualified(s string) ([]string, error) {
	var parts []string
	var current strings.Builder
	inQuotes := false
	quoted := false

	flush := func() error {
		part := strings.ToLower(current.String())
		if quoted {
			part = ddl.UnquoteIdent(current.String())
		}
		current.Reset()
		quoted = false
		if part == "" {
			return fmt.Errorf("empty name part")
		}
		parts = append(parts, part)
		return nil
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(s) && s[i+1] == '"' {
				current.WriteString(`""`)
				i++
				continue
			}
			if !inQuotes && current.Len() > 0 {
				return nil, fmt.Errorf("unexpected quote")
			}
			inQuotes = !inQuotes
			quoted = true
			current.WriteByte(c)
		case c == '.' && !inQuotes:
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			if quoted && !inQuotes {
				return nil, fmt.Errorf("unexpected text after closing quote")
			}
			current.WriteByte(c)
		}
	}

	if inQuotes {
		return nil, fmt.Errorf("unterminated quote")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return parts, nil
}
