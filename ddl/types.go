package ddl

import (
	"fmt"
	"strings"
)

// CanonicalType renders a catalog type name with its length, precision and scale
// facts. It never fails: names it does not recognize are returned unchanged.
func CanonicalType(typeName string, length, precision, scale *int) string {
	switch strings.ToLower(strings.TrimSpace(typeName)) {
	case "character varying", "varchar":
		if length != nil {
			return fmt.Sprintf("varchar(%d)", *length)
		}
		return "varchar"
	case "numeric", "decimal":
		if precision != nil && scale != nil {
			return fmt.Sprintf("numeric(%d,%d)", *precision, *scale)
		}
		if precision != nil {
			return fmt.Sprintf("numeric(%d)", *precision)
		}
		return "numeric"
	default:
		return typeName
	}
}

// serialType returns the serial-family type for an integer base type
func serialType(typeName string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(typeName)) {
	case "integer", "int", "int4":
		return "serial", true
	case "bigint", "int8":
		return "bigserial", true
	default:
		return "", false
	}
}
