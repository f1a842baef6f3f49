package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/gosuri/uiprogress"
	"github.com/mmrzaf/novagen/internal/app"
	"github.com/mmrzaf/novagen/internal/config"
	"github.com/mmrzaf/novagen/internal/domain"
	"github.com/mmrzaf/novagen/internal/infra/repos/runs"
	"github.com/mmrzaf/novagen/internal/infra/store"
	"github.com/mmrzaf/novagen/internal/logging"
	"github.com/mmrzaf/novagen/internal/registry"
	"github.com/mmrzaf/novagen/internal/schema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfg        *config.Config
	effective  *config.Config
	dataDir    string
	runsDBPath string
	logLevel   string
)

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:           "novagen",
		Short:         "Nova Score dataset scaffolding: schema, validation and synthetic rows",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			effective = resolveConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", cfg.DataDir, "Data directory")
	rootCmd.PersistentFlags().StringVar(&runsDBPath, "runs-db", cfg.RunsDBPath, "Run history database path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level")

	rootCmd.AddCommand(sampleCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(schemaCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(runsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig applies command-line overrides to the loaded config.
func resolveConfig(cmd *cobra.Command) *config.Config {
	out := cfg
	if cmd.Flags().Changed("data-dir") {
		out = out.WithDataDir(dataDir)
	}
	cp := *out
	if cmd.Flags().Changed("runs-db") {
		cp.RunsDBPath = runsDBPath
	}
	cp.LogLevel = logLevel
	return &cp
}

// newService builds the dataset service; the returned func releases the run history db.
func newService(withRuns bool) (*app.DatasetService, func(), error) {
	logger := logging.NewLogger(effective.LogLevel)
	st := store.NewCSVStore(schema.ColumnTypes())

	var runRepo runs.Repository
	cleanup := func() { _ = logger.Sync() }
	if withRuns {
		repo := runs.NewSQLiteRepository(effective.RunsDBPath)
		if err := repo.Init(); err != nil {
			return nil, nil, err
		}
		runRepo = repo
		cleanup = func() {
			_ = repo.Close()
			_ = logger.Sync()
		}
	}

	svc := app.NewDatasetService(effective, st, runRepo, registry.DefaultGeneratorRegistry(), logger)
	return svc, cleanup, nil
}

func sampleCmd() *cobra.Command {
	var (
		rows   int
		format string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print example rows drawn with the configured seed (not saved or recorded)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := newService(false)
			if err != nil {
				return err
			}
			defer cleanup()

			table, err := svc.Sample(context.Background(), rows)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				data, err := json.MarshalIndent(table, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			case "yaml":
				data, err := yaml.Marshal(table)
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			default:
				printTable(table)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", cfg.SampleRows, "Number of rows")
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table|yaml|json)")
	return cmd
}

func printTable(table *domain.Table) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(table.Columns, "\t"))
	cells := make([]string, len(table.Columns))
	for i := range table.Rows {
		for j, v := range table.Values(i) {
			cells[j] = fmt.Sprint(v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
}

func generateCmd() *cobra.Command {
	var (
		rows     int
		seed     int64
		out      string
		progress bool
		hasSeed  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a seeded synthetic dataset and save it as CSV",
		PreRun: func(cmd *cobra.Command, args []string) {
			hasSeed = cmd.Flags().Changed("seed")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := newService(true)
			if err != nil {
				return err
			}
			defer cleanup()

			if out == "" {
				out = effective.DatasetPath()
			}
			req := &app.GenerateRequest{Rows: rows, OutputPath: out}
			if hasSeed {
				req.Seed = &seed
			}

			if progress && rows > 0 {
				uiprogress.Start()
				bar := uiprogress.AddBar(rows).AppendCompleted().PrependElapsed()
				bar.PrependFunc(func(b *uiprogress.Bar) string {
					return "Generating: "
				})
				req.OnRow = func() { bar.Incr() }
			}

			res, err := svc.Generate(context.Background(), req)
			if progress && rows > 0 {
				uiprogress.Stop()
			}
			if err != nil {
				return err
			}

			fmt.Printf("Run %s: %d rows written to %s\n", res.Run.ID, res.Table.Len(), out)
			fmt.Printf("Seed: %d\n", res.Run.Seed)
			fmt.Printf("Table hash: %s\n", res.Run.TableHash)
			return nil
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", cfg.SampleRows, "Number of rows to generate")
	cmd.Flags().Int64VarP(&seed, "seed", "s", cfg.Seed, "Seed for the random source")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output CSV path (default <data-dir>/"+config.DefaultDatasetFile+")")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Check a CSV dataset for missing required columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := newService(false)
			if err != nil {
				return err
			}
			defer cleanup()

			missing, err := svc.ValidateFile(args[0])
			if err != nil {
				return err
			}
			if len(missing) > 0 {
				fmt.Println("Missing required columns:")
				for _, c := range missing {
					fmt.Printf("  - %s\n", c)
				}
				return fmt.Errorf("%d required columns missing", len(missing))
			}

			fmt.Printf("Dataset '%s' has all required columns\n", args[0])
			return nil
		},
	}
}

type schemaView struct {
	RequiredColumns []string            `json:"required_columns" yaml:"required_columns"`
	TargetColumn    string              `json:"target_column" yaml:"target_column"`
	Rules           []domain.ColumnRule `json:"rules" yaml:"rules"`
}

func schemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect the dataset schema",
	}

	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print required columns, target and generation rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := schemaView{
				RequiredColumns: schema.RequiredColumns(),
				TargetColumn:    schema.TargetColumn,
				Rules:           schema.Rules(),
			}

			switch format {
			case "json":
				data, err := json.MarshalIndent(view, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			case "table":
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "COLUMN\tTYPE\tGENERATOR\tTARGET")
				for _, r := range view.Rules {
					fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", r.Name, r.Type, r.Generator.Type, schema.IsTarget(r.Name))
				}
				w.Flush()
			default:
				data, err := yaml.Marshal(view)
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			}
			return nil
		},
	}
	showCmd.Flags().StringVar(&format, "format", "yaml", "Output format (yaml|json|table)")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the built-in generation rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := newService(false)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.CheckSchema(); err != nil {
				fmt.Printf("Validation failed: %v\n", err)
				return err
			}
			fmt.Printf("Schema rules are valid (%d columns + target)\n", len(schema.RequiredColumns()))
			fmt.Printf("Generators: %s\n", strings.Join(registry.DefaultGeneratorRegistry().List(), ", "))
			return nil
		},
	}

	cmd.AddCommand(showCmd, checkCmd)
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		from         string
		rows         int
		seed         int64
		hasSeed      bool
		targetKind   string
		targetDSN    string
		targetSchema string
		table        string
		mode         string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a dataset (CSV or freshly generated) into a database table",
		PreRun: func(cmd *cobra.Command, args []string) {
			hasSeed = cmd.Flags().Changed("seed")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetKind == "" || targetDSN == "" {
				return fmt.Errorf("--target-kind and --target are required")
			}

			svc, cleanup, err := newService(from == "")
			if err != nil {
				return err
			}
			defer cleanup()

			req := &app.ExportRequest{
				SourcePath: from,
				Rows:       rows,
				Target:     domain.TargetConfig{Kind: targetKind, DSN: targetDSN, Schema: targetSchema},
				Table:      table,
				Mode:       mode,
			}
			if hasSeed {
				req.Seed = &seed
			}

			n, err := svc.Export(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Exported %d rows into %s\n", n, table)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "CSV dataset to export (generates rows when empty)")
	cmd.Flags().IntVarP(&rows, "rows", "n", cfg.SampleRows, "Rows to generate when --from is not set")
	cmd.Flags().Int64VarP(&seed, "seed", "s", cfg.Seed, "Seed for generated rows")
	cmd.Flags().StringVar(&targetKind, "target-kind", "", "Target kind (sqlite|postgres)")
	cmd.Flags().StringVar(&targetDSN, "target", "", "Target DSN")
	cmd.Flags().StringVar(&targetSchema, "target-schema", "", "Postgres schema (default public)")
	cmd.Flags().StringVar(&table, "table", "nova_partners", "Destination table")
	cmd.Flags().StringVar(&mode, "mode", cfg.DefaultMode, "Table mode (create_if_missing|truncate_then_insert|append_only)")
	return cmd
}

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect generation run history",
	}

	var limit int
	var status string
	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepo := runs.NewSQLiteRepository(effective.RunsDBPath)
			if err := runRepo.Init(); err != nil {
				return err
			}
			defer runRepo.Close()

			list, err := runRepo.List(limit, status)
			if err != nil {
				return err
			}

			if format == "json" {
				data, err := json.MarshalIndent(list, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSEED\tROWS\tSTATUS\tSTARTED\tOUTPUT")
			for _, r := range list {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\n",
					r.ID[:8], r.Seed, r.Rows, r.Status, r.StartedAt.Format("2006-01-02 15:04"), r.OutputPath)
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Limit results")
	listCmd.Flags().StringVar(&status, "status", "", "Filter by status")
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <run_id>",
		Short: "Show run details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepo := runs.NewSQLiteRepository(effective.RunsDBPath)
			if err := runRepo.Init(); err != nil {
				return err
			}
			defer runRepo.Close()

			run, err := runRepo.Get(args[0])
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(run)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			if len(run.Stats) > 0 {
				fmt.Printf("stats: %s\n", run.Stats)
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}
