package pgddl_test

import (
	"context"
	"fmt"
	"log"

	"github.com/pgschema/pgddl/pgddl"
)

// ExampleGenerateTable demonstrates how to reconstruct one table as a SQL script.
func ExampleGenerateTable() {
	ctx := context.Background()

	dbConfig := pgddl.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "myapp",
		User:     "postgres",
		Password: "password",
	}

	script, err := pgddl.GenerateTable(ctx, dbConfig, "public.users")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(script)
}

// ExampleClient_Tables demonstrates how to inspect the statements of several tables.
func ExampleClient_Tables() {
	ctx := context.Background()

	client := pgddl.NewClient(pgddl.DatabaseConfig{
		Database: "myapp",
		User:     "postgres",
	})

	tables, err := client.Tables(ctx, pgddl.ConstraintSourceInformationSchema, "users", "billing.invoices")
	if err != nil {
		log.Fatal(err)
	}

	for _, table := range tables {
		for _, stmt := range table.Statements {
			fmt.Printf("%s %s\n", stmt.Kind, stmt.Object)
		}
	}
}

// ExampleClient_Generate demonstrates how to render tables as JSON.
func ExampleClient_Generate() {
	ctx := context.Background()

	client := pgddl.NewClient(pgddl.DatabaseConfig{
		Database: "myapp",
		User:     "postgres",
	})

	output, err := client.Generate(ctx, pgddl.GenerateOptions{
		Tables: []string{"users", "orders"},
		Format: "json",
		Jobs:   2,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(output)
}
