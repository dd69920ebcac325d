package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joshsymonds/sift/internal/analytics"
	"github.com/joshsymonds/sift/internal/catalog"
	"github.com/joshsymonds/sift/internal/cli"
	"github.com/joshsymonds/sift/internal/common"
	"github.com/joshsymonds/sift/internal/config"
	"github.com/joshsymonds/sift/internal/enrich"
	"github.com/joshsymonds/sift/internal/feed"
	"github.com/joshsymonds/sift/internal/filter"
	"github.com/joshsymonds/sift/internal/model"
	"github.com/joshsymonds/sift/internal/report"
)

func init() {
	rootCmd.AddCommand(analyzeCmd())
}

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [feed-file]",
		Short: "Run the full pipeline: parse, filter, enrich, report",
		Long: `Run the complete analytics pipeline over a sales feed.

The pipeline parses and validates the feed, applies optional filters,
enriches the surviving transactions against the product catalog service,
writes the enriched snapshot, and generates the analytics report.

Examples:
  # Analyze the configured feed
  sift analyze

  # Analyze a specific file, filtered to one region
  sift analyze data/q1_sales.txt --region East

  # Prompt interactively for filters
  sift analyze --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().String("region", "", "Only include transactions from this region (case-insensitive)")
	cmd.Flags().Float64("min-amount", 0, "Only include transactions with amount >= this value")
	cmd.Flags().Float64("max-amount", 0, "Only include transactions with amount <= this value")
	cmd.Flags().BoolP("interactive", "i", false, "Prompt for filter criteria")
	cmd.Flags().String("report", "", "Report output path (overrides config)")
	cmd.Flags().String("enriched", "", "Enriched snapshot path (overrides config)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	runID := uuid.New().String()

	feedPath := viper.GetString("feed.path")
	if len(args) > 0 {
		feedPath = args[0]
	}

	slog.Info("📊 Starting sales analysis",
		"run_id", runID,
		"feed", feedPath)

	lines, err := feed.ReadFeed(config.ExpandPath(feedPath))
	if err != nil {
		return err
	}

	transactions, stats := feed.ParseTransactions(lines)
	fmt.Printf("%s parsed=%d invalid=%d valid=%d\n",
		cli.TitleStyle.Render("Feed processed:"),
		stats.TotalParsed, stats.InvalidCount, stats.ValidCount)

	if len(transactions) == 0 {
		return fmt.Errorf("%w in %s", common.ErrNoTransactions, feedPath)
	}

	criteria, err := buildCriteria(cmd, transactions)
	if err != nil {
		return err
	}

	filtered := transactions
	if !criteria.IsZero() {
		var fsummary filter.Summary
		filtered, fsummary = filter.Apply(transactions, criteria)
		fmt.Printf("%s %s → kept %d of %d (region: -%d, amount: -%d)\n",
			cli.TitleStyle.Render("Filters applied:"), criteria,
			fsummary.FinalCount, fsummary.TotalInput,
			fsummary.FilteredByRegion, fsummary.FilteredByAmount)
	}

	enriched, esummary, catalogSkipped := enrichTransactions(cmd, filtered)

	enrichedPath := stringFlagOr(cmd, "enriched", "output.enriched")
	if err := feed.WriteEnriched(config.ExpandPath(enrichedPath), enriched); err != nil {
		// The snapshot is a best-effort artifact; the report can still be
		// produced from the in-memory data.
		common.LogError(err, "Failed to save enriched snapshot", common.Fields{"path": enrichedPath})
		fmt.Println(cli.ErrorStyle.Render("Could not save enriched snapshot: " + err.Error()))
	}

	reportPath := stringFlagOr(cmd, "report", "output.report")
	meta := report.Meta{
		GeneratedAt:    time.Now(),
		RunID:          runID,
		CatalogSkipped: catalogSkipped,
	}
	opts := report.Options{
		TopProducts:          viper.GetInt("report.top_products"),
		TopCustomers:         viper.GetInt("report.top_customers"),
		LowQuantityThreshold: viper.GetInt("report.low_quantity_threshold"),
	}
	if err := report.WriteFile(config.ExpandPath(reportPath), filtered, esummary, opts, meta); err != nil {
		return common.NewUserError("report generation failed", err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Report written to %s", reportPath)))
	if catalogSkipped {
		fmt.Println(cli.WarningStyle.Render("⚠ Enrichment was skipped: catalog service unavailable"))
	}
	return nil
}

// buildCriteria assembles filter criteria from flags, or interactively when
// --interactive is set and no filter flags were given.
func buildCriteria(cmd *cobra.Command, transactions []model.Transaction) (filter.Criteria, error) {
	var criteria filter.Criteria

	criteria.Region, _ = cmd.Flags().GetString("region")
	if cmd.Flags().Changed("min-amount") {
		v, _ := cmd.Flags().GetFloat64("min-amount")
		criteria.MinAmount = &v
	}
	if cmd.Flags().Changed("max-amount") {
		v, _ := cmd.Flags().GetFloat64("max-amount")
		criteria.MaxAmount = &v
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive && criteria.IsZero() {
		prompter := cli.NewFilterPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		return prompter.PromptCriteria(cmd.Context(), analytics.Regions(transactions))
	}

	return criteria, nil
}

// enrichTransactions fetches the catalog and annotates the transactions.
// A fetch failure degrades the run to "enrichment skipped": every record
// is written unmatched and the report carries a notice, but the run
// continues with the unenriched data.
func enrichTransactions(cmd *cobra.Command, filtered []model.Transaction) ([]model.EnrichedTransaction, enrich.Summary, bool) {
	client := catalog.NewClient(viper.GetString("catalog.url"), viper.GetInt("catalog.page_size"))

	products, err := client.FetchProducts(cmd.Context())
	if err != nil {
		slog.Warn("Catalog fetch failed, skipping enrichment", "error", err)
		enriched, esummary := enrich.Enrich(filtered, model.Catalog{})
		return enriched, esummary, true
	}

	bar := progressbar.NewOptions(len(filtered),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Enriching transactions..."),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	enriched, esummary := enrich.Enrich(filtered, catalog.BuildCatalog(products),
		enrich.WithProgress(func() {
			_ = bar.Add(1)
		}))
	return enriched, esummary, false
}

// stringFlagOr returns the flag value when set, else the config value.
func stringFlagOr(cmd *cobra.Command, flag, configKey string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return viper.GetString(configKey)
}
