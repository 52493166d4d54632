package pgddl

import (
	"context"
	"strings"
	"testing"
)

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(DatabaseConfig{Database: "app", User: "postgres"})

	want := DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		Database:        "app",
		User:            "postgres",
		Schema:          "public",
		SSLMode:         "prefer",
		ApplicationName: "pgddl",
	}
	if client.defaultDB != want {
		t.Errorf("NewClient() config = %+v, want %+v", client.defaultDB, want)
	}
}

func TestGenerateRequiresConnectionSettings(t *testing.T) {
	client := NewClient(DatabaseConfig{User: "postgres"})

	_, err := client.Generate(context.Background(), GenerateOptions{Tables: []string{"users"}})
	if err == nil || !strings.Contains(err.Error(), "database name is required") {
		t.Fatalf("expected missing database error, got %v", err)
	}
}

func TestTablesRejectsUnknownConstraintSource(t *testing.T) {
	client := NewClient(DatabaseConfig{Database: "app", User: "postgres"})

	_, err := client.Tables(context.Background(), ConstraintSource("guess"), "users")
	if err == nil || !strings.Contains(err.Error(), "invalid constraint source") {
		t.Fatalf("expected constraint source error, got %v", err)
	}
}
