package ddl

import "testing"

func TestCanonicalType(t *testing.T) {
	tests := []struct {
		name      string
		typeName  string
		length    *int
		precision *int
		scale     *int
		expected  string
	}{
		{name: "varchar with length", typeName: "character varying", length: intPtr(50), expected: "varchar(50)"},
		{name: "varchar without length", typeName: "character varying", expected: "varchar"},
		{name: "varchar alias", typeName: "VARCHAR", length: intPtr(10), expected: "varchar(10)"},
		{name: "numeric precision and scale", typeName: "numeric", precision: intPtr(10), scale: intPtr(2), expected: "numeric(10,2)"},
		{name: "numeric precision only", typeName: "numeric", precision: intPtr(8), expected: "numeric(8)"},
		{name: "numeric zero scale", typeName: "numeric", precision: intPtr(8), scale: intPtr(0), expected: "numeric(8,0)"},
		{name: "bare numeric", typeName: "numeric", expected: "numeric"},
		{name: "scale without precision", typeName: "decimal", scale: intPtr(2), expected: "numeric"},
		{name: "passthrough", typeName: "timestamp with time zone", expected: "timestamp with time zone"},
		{name: "passthrough ignores length", typeName: "character", length: intPtr(3), expected: "character"},
		{name: "user-defined", typeName: "public.mood", expected: "public.mood"},
		{name: "empty", typeName: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalType(tt.typeName, tt.length, tt.precision, tt.scale)
			if got != tt.expected {
				t.Errorf("CanonicalType(%q) = %q, want %q", tt.typeName, got, tt.expected)
			}
			if again := CanonicalType(tt.typeName, tt.length, tt.precision, tt.scale); again != got {
				t.Errorf("CanonicalType is not deterministic: %q then %q", got, again)
			}
		})
	}
}
