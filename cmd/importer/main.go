package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"food-facility-api/internal/config"
	"food-facility-api/internal/loader"
	"food-facility-api/internal/models"
	"food-facility-api/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type importOptions struct {
	file      string
	sheet     string
	configDir string
	dryRun    bool
	replace   bool
	summary   bool
}

// importSummary is printed as YAML with --summary.
type importSummary struct {
	File     string         `yaml:"file"`
	Records  int            `yaml:"records"`
	Imported int64          `yaml:"imported"`
	DryRun   bool           `yaml:"dry_run"`
	ByStatus map[string]int `yaml:"by_status"`
}

func main() {
	cmd := newRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:           "importer",
		Short:         "Import a mobile food facility permit dataset into PostgreSQL.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	bindFlags(cmd.Flags(), opts)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func bindFlags(fs *pflag.FlagSet, opts *importOptions) {
	fs.StringVarP(&opts.file, "file", "f", "", "Path to the CSV or XLSX file to import")
	fs.StringVar(&opts.sheet, "sheet", "", "Worksheet to read from an XLSX file (default: first sheet)")
	fs.StringVar(&opts.configDir, "config", "configs", "Directory containing app.env")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Parse the file without touching the database")
	fs.BoolVar(&opts.replace, "replace", false, "Remove existing facilities before importing")
	fs.BoolVar(&opts.summary, "summary", false, "Print a YAML summary of the import")
}

// run writes progress lines to progress so out carries only the YAML summary.
func run(ctx context.Context, opts *importOptions, out, progress io.Writer) error {
	fmt.Fprintf(progress, "Starting import from file: %s\n", opts.file)

	facilities, err := loader.LoadFile(opts.file, opts.sheet)
	if err != nil {
		return fmt.Errorf("parsing dataset: %w", err)
	}

	fmt.Fprintf(progress, "Parsed %d records\n", len(facilities))

	var imported int64
	if !opts.dryRun {
		imported, err = importFacilities(ctx, opts, facilities)
		if err != nil {
			return err
		}
		fmt.Fprintf(progress, "Successfully imported %d records\n", imported)
	}

	if opts.summary {
		return writeSummary(out, summarize(opts, facilities, imported))
	}
	return nil
}

func importFacilities(ctx context.Context, opts *importOptions, facilities []*models.Facility) (int64, error) {
	cfg, err := config.LoadConfig(opts.configDir)
	if err != nil {
		return 0, fmt.Errorf("loading config: %w", err)
	}
	if cfg.DBSource == "" {
		return 0, fmt.Errorf("loading config: DB_SOURCE is not set")
	}

	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		return 0, fmt.Errorf("connecting to database: %w", err)
	}
	defer conn.Close(ctx)

	repo := repository.NewRepository(conn)

	if err := repo.CreateSchema(ctx); err != nil {
		return 0, err
	}

	before := 0
	if opts.replace {
		if err := repo.Truncate(ctx); err != nil {
			return 0, err
		}
	} else {
		before, err = repo.CountFacilities(ctx)
		if err != nil {
			return 0, err
		}
		if before > 0 {
			return 0, fmt.Errorf("facilities table already holds %d records, use --replace to overwrite", before)
		}
	}

	imported, err := repo.ImportFacilities(ctx, facilities)
	if err != nil {
		return 0, err
	}

	count, err := repo.CountFacilities(ctx)
	if err != nil {
		return 0, err
	}
	if count != len(facilities) {
		return 0, fmt.Errorf("record count mismatch: expected %d, got %d", len(facilities), count)
	}

	return imported, nil
}

func summarize(opts *importOptions, facilities []*models.Facility, imported int64) importSummary {
	byStatus := make(map[string]int)
	for _, f := range facilities {
		byStatus[f.Status]++
	}
	return importSummary{
		File:     opts.file,
		Records:  len(facilities),
		Imported: imported,
		DryRun:   opts.dryRun,
		ByStatus: byStatus,
	}
}

func writeSummary(out io.Writer, s importSummary) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return enc.Close()
}
