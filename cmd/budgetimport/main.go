// Package main provides the CLI entry point for budgetimport.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/ukaji3/budgetimport-go/internal/store"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/output"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/parser"
)

var (
	outputPath     string
	pretty         bool
	configPath     string
	verbose        bool
	projectID      string
	dryRun         bool
	migrate        bool
	failOnFindings bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "budgetimport",
		Short: "Import construction budget workbooks",
		Long: `budgetimport reads a construction budget workbook, aggregates the summary
sheet into a per-discipline breakdown, cross-checks the detail sheets and
saves the budget to PostgreSQL (DATABASE_URL) or, with --dry-run, nowhere.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML options file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	importCmd := &cobra.Command{
		Use:   "import [budget.xlsx]",
		Short: "Import a budget workbook into a project",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
	importCmd.Flags().StringVarP(&projectID, "project", "p", "", "Project identifier (required)")
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Process the workbook without saving anything")
	importCmd.Flags().BoolVar(&migrate, "migrate", false, "Create missing database tables before importing")
	importCmd.Flags().BoolVar(&failOnFindings, "fail-on-findings", false, "Exit non-zero when validation reports errors")
	_ = importCmd.MarkFlagRequired("project")

	inspectCmd := &cobra.Command{
		Use:   "inspect [budget.xlsx]",
		Short: "Show how the sheets of a workbook would be read",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	rootCmd.AddCommand(importCmd, inspectCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadOptions() (budgetimport.Options, error) {
	if configPath == "" {
		return budgetimport.DefaultOptions(), nil
	}
	opts, err := budgetimport.LoadOptions(configPath)
	if err != nil {
		return budgetimport.Options{}, err
	}
	return opts, nil
}

func readInput(path string) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return os.ReadFile(path)
}

// backend holds the collaborators for one import.
type backend struct {
	projects budgetimport.ProjectLookup
	budgets  budgetimport.BudgetStore
	audit    budgetimport.AuditLog
	close    func()
}

func openBackend(ctx context.Context, logger *slog.Logger) (*backend, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("could not load .env", "error", err)
	}

	url := os.Getenv("DATABASE_URL")
	if dryRun || url == "" {
		if !dryRun {
			logger.Warn("DATABASE_URL not set, running without saving")
		}
		mem := store.NewMemory(models.Project{ID: strings.TrimSpace(projectID), Name: "dry run"})
		return &backend{projects: mem, budgets: mem, audit: mem, close: func() {}}, nil
	}

	pg, err := store.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return &backend{projects: pg, budgets: pg, audit: pg, close: pg.Close}, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	logger := newLogger()

	opts, err := loadOptions()
	if err != nil {
		return err
	}
	data, err := readInput(inputPath)
	if err != nil {
		return err
	}

	be, err := openBackend(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer be.close()

	importer := budgetimport.NewImporter(be.projects, be.budgets, opts).
		WithAuditLog(be.audit).
		WithLogger(logger)

	res, err := importer.Run(cmd.Context(), budgetimport.Request{
		ProjectID: projectID,
		FileName:  filepath.Base(inputPath),
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if err := output.Write(res, outputPath, pretty); err != nil {
		return err
	}

	if !res.Success {
		return errors.New("import did not save a budget")
	}
	if failOnFindings && res.HasErrorFindings() {
		return errors.New("validation reported errors")
	}
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	opts, err := loadOptions()
	if err != nil {
		return err
	}
	data, err := readInput(inputPath)
	if err != nil {
		return err
	}

	wb, err := parser.OpenWorkbook(data)
	if err != nil {
		return fmt.Errorf("inspection failed: %w", err)
	}
	defer wb.Close()

	info, err := budgetimport.Inspect(wb, filepath.Base(inputPath), opts)
	if err != nil {
		return fmt.Errorf("inspection failed: %w", err)
	}
	return output.Write(info, outputPath, pretty)
}
