package table

import (
	"context"
	"fmt"
	"os"

	"github.com/pgschema/pgddl/catalog"
	"github.com/pgschema/pgddl/cmd/util"
	"github.com/pgschema/pgddl/ddl"
	"github.com/pgschema/pgddl/internal/config"
	"github.com/pgschema/pgddl/internal/dump"
	"github.com/pgschema/pgddl/internal/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	FormatSQL  = "sql"
	FormatJSON = "json"
)

var (
	connFlags        util.ConnectionFlags
	file             string
	format           string
	noComments       bool
	multiFile        bool
	constraintSource string
	jobs             int
	validate         bool
)

var TableCmd = &cobra.Command{
	Use:   "table [flags] TABLE...",
	Short: "Reconstruct the DDL of one or more tables",
	Long: `Reconstruct the CREATE TABLE, constraint, default and ownership statements of
one or more tables from the live catalog.

Tables are given as NAME (resolved in --schema) or SCHEMA.NAME. Unquoted names are
folded to lower case; use double quotes for mixed-case names, e.g. '"Sales"."Orders"'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTable,
}

func init() {
	util.AddConnectionFlags(TableCmd, &connFlags)
	TableCmd.Flags().StringVar(&file, "file", "", "Output file path (default: stdout)")
	TableCmd.Flags().StringVar(&format, "format", FormatSQL, "Output format: sql or json")
	TableCmd.Flags().BoolVar(&noComments, "no-comments", false, "Omit the dump header and per-statement comment headers")
	TableCmd.Flags().BoolVar(&multiFile, "multi-file", false, "Write one file per table next to --file, with --file including them")
	TableCmd.Flags().StringVar(&constraintSource, "constraint-source", string(catalog.ConstraintSourceCatalog), "Where constraints are read from: catalog or information-schema")
	TableCmd.Flags().IntVar(&jobs, "jobs", 4, "Number of tables reconstructed concurrently")
	TableCmd.Flags().BoolVar(&validate, "validate", false, "Parse every generated statement before writing the output")
}

// Options controls one reconstruction run
type Options struct {
	Tables           []string
	Format           string
	NoComments       bool
	MultiFile        bool
	File             string
	ConstraintSource string
	Jobs             int
	Validate         bool
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := util.ResolveConfig(cmd, &connFlags)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("constraint-source") {
		cfg.ConstraintSource = constraintSource
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = jobs
	}

	if multiFile && file == "" {
		// --multi-file needs a main file to write the includes to
		fmt.Fprintf(os.Stderr, "Warning: --multi-file flag requires --file to be specified. Fallback to single-file mode.\n")
		multiFile = false
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	output, err := Execute(ctx, cfg, Options{
		Tables:           args,
		Format:           format,
		NoComments:       noComments,
		MultiFile:        multiFile,
		File:             file,
		ConstraintSource: cfg.ConstraintSource,
		Jobs:             cfg.Jobs,
		Validate:         validate,
	})
	if err != nil {
		return err
	}

	if output != "" {
		fmt.Fprint(cmd.OutOrStdout(), output)
	}
	return nil
}

// Execute connects to the database described by cfg, reconstructs the requested
// tables and renders them. The rendered text is returned unless it was written
// to opts.File.
func Execute(ctx context.Context, cfg *config.Config, opts Options) (string, error) {
	if opts.Format == "" {
		opts.Format = FormatSQL
	}
	if opts.Format != FormatSQL && opts.Format != FormatJSON {
		return "", fmt.Errorf("invalid format %q (use %q or %q)", opts.Format, FormatSQL, FormatJSON)
	}
	if opts.MultiFile && opts.Format == FormatJSON {
		return "", fmt.Errorf("--multi-file is only supported with --format %s", FormatSQL)
	}
	if opts.MultiFile && opts.File == "" {
		return "", fmt.Errorf("multi-file output requires an output file")
	}

	source, err := catalog.ParseConstraintSource(opts.ConstraintSource)
	if err != nil {
		return "", err
	}

	targets, err := ParseTableNames(opts.Tables, cfg.Schema)
	if err != nil {
		return "", err
	}

	dbConn, err := util.Connect(ctx, util.ConnectionConfigFrom(cfg))
	if err != nil {
		return "", err
	}
	defer dbConn.Close()

	inspector := catalog.NewInspector(dbConn, catalog.WithConstraintSource(source))

	tables, err := Reconstruct(ctx, inspector, targets, opts.Jobs)
	if err != nil {
		return "", err
	}

	if opts.Validate {
		if err := ValidateStatements(tables); err != nil {
			return "", err
		}
	}

	serverVersion := "unknown"
	if v, err := inspector.ServerVersion(ctx); err == nil {
		serverVersion = ddl.FormatVersion(v)
	}

	formatter := dump.NewFormatter(serverVersion, cfg.Schema, opts.NoComments)

	if opts.MultiFile {
		if err := formatter.FormatMultiFile(tables, opts.File); err != nil {
			return "", err
		}
		return "", nil
	}

	var output string
	if opts.Format == FormatJSON {
		if output, err = formatter.FormatJSON(tables); err != nil {
			return "", err
		}
	} else {
		output = formatter.FormatSingleFile(tables)
	}

	if opts.File != "" {
		if err := os.WriteFile(opts.File, []byte(output), 0644); err != nil {
			return "", fmt.Errorf("failed to write output file: %w", err)
		}
		return "", nil
	}
	return output, nil
}

// Reconstruct generates the DDL of every table, at most jobs at a time.
// Results keep the order of tables; the first failure cancels the rest.
func Reconstruct(ctx context.Context, source ddl.Catalog, tables []ddl.QualifiedName, jobs int) ([]dump.TableDump, error) {
	generator := ddl.NewGenerator(source)
	results := make([]dump.TableDump, len(tables))

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, table := range tables {
		i, table := i, table
		g.Go(func() error {
			log := logger.ForTable(table.Schema, table.Name)
			log.Debug("Reconstructing table")

			snapshot, err := generator.Collect(gctx, table.Schema, table.Name)
			if err != nil {
				return fmt.Errorf("table %s: %w", table, err)
			}
			statements, err := ddl.Build(snapshot)
			if err != nil {
				return fmt.Errorf("table %s: %w", table, err)
			}

			results[i] = dump.TableDump{
				Schema:     snapshot.Table.Schema,
				Name:       snapshot.Table.Name,
				Owner:      snapshot.Table.Owner,
				Statements: statements,
			}
			log.Debug("Reconstructed table", "statements", len(statements))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
