package ddl

import (
	"fmt"
	"sort"
	"strings"
)

// constraintGroup collects the rows of one named constraint
type constraintGroup struct {
	name string
	kind ConstraintKind
	rows []ConstraintFacts
}

// AssembleConstraints merges constraint rows by name and renders one
// ALTER TABLE ... ADD CONSTRAINT statement per constraint, ordered by name.
func AssembleConstraints(table QualifiedName, rows []ConstraintFacts) ([]Statement, error) {
	groups := make(map[string]*constraintGroup)
	for _, row := range rows {
		group, exists := groups[row.Name]
		if !exists {
			group = &constraintGroup{name: row.Name, kind: row.Kind}
			groups[row.Name] = group
		} else if group.kind != row.Kind {
			return nil, &ConstraintError{
				Name:   row.Name,
				Reason: fmt.Sprintf("rows disagree on kind (%s vs %s)", group.kind, row.Kind),
				Kind:   ErrAmbiguousConstraint,
			}
		}
		group.rows = append(group.rows, row)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	statements := make([]Statement, 0, len(names))
	for _, name := range names {
		fragment, err := constraintFragment(table, groups[name])
		if err != nil {
			return nil, err
		}
		statements = append(statements, Statement{
			SQL:    fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s %s;", table.Quoted(), QuoteIdent(name), fragment),
			Kind:   StatementAddConstraint,
			Object: table.String() + "." + name,
		})
	}
	return statements, nil
}

// constraintFragment returns the catalog's pre-rendered definition when one
// exists, otherwise synthesizes it from the structured rows.
func constraintFragment(table QualifiedName, group *constraintGroup) (string, error) {
	ref, err := referencedTable(table, group)
	if err != nil {
		return "", err
	}
	for _, row := range group.rows {
		if row.Definition != "" {
			return row.Definition, nil
		}
	}

	switch group.kind {
	case ConstraintPrimaryKey, ConstraintUnique:
		columns := keyColumns(group.rows)
		if len(columns) == 0 {
			return "", incomplete(group.name, "no key columns")
		}
		return fmt.Sprintf("%s (%s)", group.kind, QuoteIdents(columns)) + deferrability(group.rows[0]), nil
	case ConstraintForeignKey:
		if ref == nil {
			return "", incomplete(group.name, "no referenced table")
		}
		return foreignKeyFragment(*ref, group)
	case ConstraintCheck:
		for _, row := range group.rows {
			if row.CheckClause != "" {
				return checkFragment(row.CheckClause), nil
			}
		}
		return "", incomplete(group.name, "no check clause")
	default:
		return "", incomplete(group.name, fmt.Sprintf("unknown constraint kind %q", group.kind))
	}
}

// referencedTable returns the single table referenced by the group's rows, or
// nil when no row names one.
func referencedTable(table QualifiedName, group *constraintGroup) (*QualifiedName, error) {
	var ref *QualifiedName
	for _, row := range group.rows {
		if row.RefTable == "" {
			continue
		}
		refSchema := row.RefSchema
		if refSchema == "" {
			refSchema = table.Schema
		}
		current := QualifiedName{Schema: refSchema, Name: row.RefTable}
		if ref == nil {
			ref = &current
			continue
		}
		if *ref != current {
			return nil, &ConstraintError{
				Name:   group.name,
				Reason: fmt.Sprintf("rows reference both %s and %s", ref, current),
				Kind:   ErrAmbiguousConstraint,
			}
		}
	}
	return ref, nil
}

func foreignKeyFragment(ref QualifiedName, group *constraintGroup) (string, error) {
	columns := keyColumns(group.rows)
	refColumns := referencedColumns(group.rows)
	if len(columns) == 0 {
		return "", incomplete(group.name, "no key columns")
	}
	if len(columns) != len(refColumns) {
		return "", incomplete(group.name, fmt.Sprintf("%d local columns but %d referenced columns", len(columns), len(refColumns)))
	}

	first := group.rows[0]
	fragment := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
		QuoteIdents(columns), ref.Quoted(), QuoteIdents(refColumns))
	if rule := strings.ToUpper(first.UpdateRule); rule != "" && rule != "NO ACTION" {
		fragment += " ON UPDATE " + rule
	}
	if rule := strings.ToUpper(first.DeleteRule); rule != "" && rule != "NO ACTION" {
		fragment += " ON DELETE " + rule
	}
	return fragment + deferrability(first), nil
}

func deferrability(row ConstraintFacts) string {
	switch {
	case row.Deferrable && row.InitiallyDeferred:
		return " DEFERRABLE INITIALLY DEFERRED"
	case row.Deferrable:
		return " DEFERRABLE"
	default:
		return ""
	}
}

// keyColumns returns the distinct local columns in key-ordinal order
func keyColumns(rows []ConstraintFacts) []string {
	sorted := make([]ConstraintFacts, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return distinct(sorted, func(row ConstraintFacts) string { return row.Column })
}

// referencedColumns returns the distinct referenced columns aligned with
// keyColumns. Each row pairs a local column with the column it references,
// so both lists follow the local key position.
func referencedColumns(rows []ConstraintFacts) []string {
	position := func(row ConstraintFacts) int {
		if row.Position > 0 {
			return row.Position
		}
		return row.RefPosition
	}
	sorted := make([]ConstraintFacts, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return position(sorted[i]) < position(sorted[j])
	})
	return distinct(sorted, func(row ConstraintFacts) string { return row.RefColumn })
}

func distinct(rows []ConstraintFacts, field func(ConstraintFacts) string) []string {
	var values []string
	seen := make(map[string]bool)
	for _, row := range rows {
		value := field(row)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}
	return values
}

// checkFragment wraps a check clause so exactly one pair of parentheses
// encloses the whole expression.
func checkFragment(clause string) string {
	expr := strings.TrimSpace(clause)
	if len(expr) > 5 && strings.EqualFold(expr[:5], "check") && (expr[5] == '(' || expr[5] == ' ') {
		expr = strings.TrimSpace(expr[5:])
	}
	if wrapped(expr) {
		return "CHECK " + expr
	}
	return "CHECK (" + expr + ")"
}

// wrapped reports whether the leading parenthesis closes at the last byte
func wrapped(expr string) bool {
	if len(expr) < 2 || expr[0] != '(' {
		return false
	}
	depth := 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i == len(expr)-1
			}
		}
	}
	return false
}

func incomplete(name, reason string) error {
	return &ConstraintError{Name: name, Reason: reason, Kind: ErrIncompleteConstraint}
}
