package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trendscope/star-trends/internal/aggregator"
	"github.com/trendscope/star-trends/internal/config"
	"github.com/trendscope/star-trends/internal/domain"
	apperrors "github.com/trendscope/star-trends/internal/errors"
	"github.com/trendscope/star-trends/internal/export"
	"github.com/trendscope/star-trends/internal/storage"
	"github.com/trendscope/star-trends/internal/storage/mongo"
	"github.com/trendscope/star-trends/internal/storage/postgres"
	"github.com/trendscope/star-trends/internal/storage/sqlite"
	"github.com/trendscope/star-trends/pkg/client"
)

var (
	logger *zap.Logger

	outputJSON bool
	remote     bool
	verbose    bool

	filterCategories []string
	minGrowthPercent float64
	minStarGrowth    int64
	minEndStars      int64

	exportFormat string
	exportOutput string
)

const noDataMessage = "No analysis data available. The analysis producer has not written a batch yet."

var rootCmd = &cobra.Command{
	Use:   "star-trends",
	Short: "GitHub star growth trends dashboard",
	Long: `A terminal dashboard for GitHub repository star-growth trends.

Reads the most recent analysis batch from the trends store, joins it with
repository categories and renders the summary, repository, category and
top-performer tables. Filters narrow the view the same way the web
dashboard's controls do.

By default the store is read directly; --remote talks to a running
dashboard API instead, logging in with DASHBOARD_PASSWORD.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Render the latest analysis dashboard",
	Long: `Render the complete dashboard for the most recent analysis batch:
metadata, summary statistics, the repository table, the category
breakdown and the two top-5 tables.

Examples:
  # Full dashboard for the latest batch
  star-trends show

  # Only machine-learning repositories that gained at least 100 stars
  star-trends show --category ml --min-star-growth 100

  # Render from a running dashboard API
  star-trends show --remote`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the category breakdown",
	Long:  `Display per-category repository counts and star flow for the filtered view.`,
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered repository table",
	Long: `Write the filtered, normalized repository table with the dashboard's
display columns to a file.

Examples:
  # CSV to stdout
  star-trends export

  # Parquet snapshot of the devtools category
  star-trends export --category devtools --format parquet --output devtools.parquet`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&remote, "remote", false, "fetch from a running dashboard API instead of the store")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringSliceVar(&filterCategories, "category", nil, "keep only these categories (repeatable)")
	rootCmd.PersistentFlags().Float64Var(&minGrowthPercent, "min-growth-percent", 0, "minimum growth percent (0 keeps everything)")
	rootCmd.PersistentFlags().Int64Var(&minStarGrowth, "min-star-growth", 0, "minimum star growth (0 keeps everything)")
	rootCmd.PersistentFlags().Int64Var(&minEndStars, "min-end-stars", 0, "minimum end star count (0 keeps everything)")

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv, json or parquet")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout; required for parquet)")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageType {
	case "postgres":
		return postgres.NewPostgresStorage(cfg.PostgresURL)
	case "sqlite":
		return sqlite.NewSQLiteStorage(cfg.SQLitePath)
	default:
		return mongo.NewMongoStorage(cfg.MongoURI, cfg.MongoDatabase, logger)
	}
}

// newRemoteClient logs in to the dashboard API with the configured
// password. Callers own the session and should log out when done.
func newRemoteClient(cfg *config.Config) (*client.Client, error) {
	if cfg.DashboardPassword == "" {
		return nil, apperrors.NewConfigError("DASHBOARD_PASSWORD is required for --remote")
	}
	cl := client.NewClient(cfg.APIEndpoint)
	if err := cl.Login(cfg.DashboardPassword); err != nil {
		return nil, fmt.Errorf("failed to log in to %s: %w", cfg.APIEndpoint, err)
	}
	return cl, nil
}

func filterOptions() domain.FilterOptions {
	return domain.FilterOptions{
		Categories:       filterCategories,
		MinGrowthPercent: minGrowthPercent,
		MinStarGrowth:    minStarGrowth,
		MinEndStars:      minEndStars,
	}
}

func fetchDashboard(cfg *config.Config, opts domain.FilterOptions) (*domain.DashboardView, error) {
	if remote {
		cl, err := newRemoteClient(cfg)
		if err != nil {
			return nil, err
		}
		defer func() { _ = cl.Logout() }()
		return cl.Dashboard(opts)
	}

	store, err := openStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	return aggregator.NewAggregator(store, logger).Dashboard(context.Background(), opts)
}

func fetchRepositories(cfg *config.Config, opts domain.FilterOptions) (*domain.AnalysisBatch, error) {
	if remote {
		cl, err := newRemoteClient(cfg)
		if err != nil {
			return nil, err
		}
		defer func() { _ = cl.Logout() }()
		return cl.Repositories(opts)
	}

	store, err := openStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	return aggregator.NewAggregator(store, logger).Repositories(context.Background(), opts)
}

func fetchCategories(cfg *config.Config, opts domain.FilterOptions) ([]domain.CategoryStat, error) {
	if remote {
		cl, err := newRemoteClient(cfg)
		if err != nil {
			return nil, err
		}
		defer func() { _ = cl.Logout() }()
		return cl.Categories(opts)
	}

	store, err := openStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	return aggregator.NewAggregator(store, logger).Categories(context.Background(), opts)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	view, err := fetchDashboard(cfg, filterOptions())
	if err != nil {
		if apperrors.IsNotFound(err) {
			fmt.Println(noDataMessage)
			return nil
		}
		return fmt.Errorf("failed to render dashboard: %w", err)
	}

	if outputJSON {
		return printJSON(view)
	}

	renderDashboard(view)
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	stats, err := fetchCategories(cfg, filterOptions())
	if err != nil {
		if apperrors.IsNotFound(err) {
			fmt.Println(noDataMessage)
			return nil
		}
		return fmt.Errorf("failed to get category breakdown: %w", err)
	}

	if outputJSON {
		return printJSON(stats)
	}

	renderCategoryStats(stats)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	format, ok := export.ParseFormat(exportFormat)
	if !ok {
		return fmt.Errorf("unsupported format %q (expected csv, json or parquet)", exportFormat)
	}
	if format == export.FormatParquet && exportOutput == "" {
		return fmt.Errorf("parquet export requires --output")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	batch, err := fetchRepositories(cfg, filterOptions())
	if err != nil {
		if apperrors.IsNotFound(err) {
			fmt.Println(noDataMessage)
			return nil
		}
		return fmt.Errorf("failed to fetch repositories: %w", err)
	}

	rows := export.Snapshot(batch.Records)

	if format == export.FormatParquet {
		if err := export.WriteParquet(rows, exportOutput); err != nil {
			return err
		}
		fmt.Printf("Exported %d repositories to %s\n", len(rows), exportOutput)
		return nil
	}

	out := os.Stdout
	if exportOutput != "" {
		file, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	switch format {
	case export.FormatJSON:
		err = export.WriteJSON(out, rows)
	default:
		err = export.WriteCSV(out, rows)
	}
	if err != nil {
		return err
	}

	if exportOutput != "" {
		fmt.Printf("Exported %d repositories to %s\n", len(rows), exportOutput)
	}
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func renderDashboard(view *domain.DashboardView) {
	fmt.Printf("\nGitHub Star Growth Trends\n")
	fmt.Printf("Analysis Date: %s\n", view.Meta.DisplayDate())
	if !view.Meta.StartDate.IsZero() && !view.Meta.EndDate.IsZero() {
		fmt.Printf("Analysis Period: %s to %s (%d days)\n",
			view.Meta.StartDate.Format("2006-01-02"),
			view.Meta.EndDate.Format("2006-01-02"),
			view.Meta.PeriodDays)
	}
	fmt.Printf("Showing %d of %d repositories\n\n", view.FilteredCount, view.TotalCount)

	if view.Summary == nil {
		fmt.Println("No repositories match the current filters.")
		return
	}

	fmt.Println("Summary Statistics")
	renderSummary(view.Summary)

	fmt.Println("\nRepositories")
	renderRepositories(view.Repositories)

	fmt.Println("\nCategory Breakdown")
	renderCategoryStats(view.Categories)

	fmt.Println("\nTop 5 by Growth %")
	renderTopTable(view.TopByGrowthPercent, domain.TopMetricGrowthPercent)

	fmt.Println("\nTop 5 by Star Growth")
	renderTopTable(view.TopByStarGrowth, domain.TopMetricStarGrowth)
}

func renderSummary(s *domain.Summary) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Total Repositories", fmt.Sprintf("%d", s.TotalRepositories)})
	table.Append([]string{"Average Growth %", fmt.Sprintf("%.2f%%", s.AvgGrowthPercent)})
	table.Append([]string{"Max Growth %", fmt.Sprintf("%.2f%%", s.MaxGrowthPercent)})
	table.Append([]string{"Total Star Growth", fmt.Sprintf("%d", s.TotalStarGrowth)})
	table.Append([]string{"Average End Stars", fmt.Sprintf("%.0f", s.AvgEndStars)})
	table.Render()
}

func renderRepositories(records []*domain.RepositoryAnalysis) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(export.Header())
	for _, row := range export.Snapshot(records) {
		table.Append(row.Strings())
	}
	table.Render()
}

func renderCategoryStats(stats []domain.CategoryStat) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Category", "Count", "% of Repos", "Star Flow", "% of Star Flow"})
	for _, s := range stats {
		table.Append([]string{
			domain.DisplayCategory(s.Category),
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.1f%%", s.Percent),
			fmt.Sprintf("%d", s.StarGrowth),
			fmt.Sprintf("%.1f%%", s.StarGrowthPercent),
		})
	}
	table.Render()
}

func renderTopTable(records []*domain.RepositoryAnalysis, metric domain.TopMetric) {
	table := tablewriter.NewWriter(os.Stdout)
	if metric == domain.TopMetricStarGrowth {
		table.SetHeader([]string{"Repository", "Category", "Description", "Star Growth", "Growth %"})
	} else {
		table.SetHeader([]string{"Repository", "Category", "Description", "Growth %", "Star Growth"})
	}
	for _, r := range records {
		growth := fmt.Sprintf("%.2f%%", r.GetGrowthPercent())
		stars := fmt.Sprintf("%d", r.GetStarGrowth())
		cols := []string{r.FullName, domain.DisplayCategory(r.Category), r.Description}
		if metric == domain.TopMetricStarGrowth {
			cols = append(cols, stars, growth)
		} else {
			cols = append(cols, growth, stars)
		}
		table.Append(cols)
	}
	table.Render()
}
