package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joshsymonds/sift/internal/analytics"
	"github.com/joshsymonds/sift/internal/cli"
	"github.com/joshsymonds/sift/internal/config"
	"github.com/joshsymonds/sift/internal/feed"
)

func init() {
	parseCmd := &cobra.Command{
		Use:   "parse [feed-file]",
		Short: "Parse and validate a feed without running the pipeline",
		Long: `Parse a sales feed and report validation counts without filtering,
enrichment, or report generation. Useful for auditing data quality
before a full run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}

	parseCmd.Flags().BoolP("verbose", "v", false, "List every parsed transaction")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	feedPath := viper.GetString("feed.path")
	if len(args) > 0 {
		feedPath = args[0]
	}

	lines, err := feed.ReadFeed(config.ExpandPath(feedPath))
	if err != nil {
		return err
	}

	transactions, stats := feed.ParseTransactions(lines)

	fmt.Println(cli.TitleStyle.Render("Feed validation summary"))
	fmt.Printf("  Total records parsed:  %d\n", stats.TotalParsed)
	fmt.Printf("  Invalid records:       %d\n", stats.InvalidCount)
	fmt.Printf("  Valid records:         %d\n", stats.ValidCount)

	if len(transactions) > 0 {
		regions := analytics.Regions(transactions)
		fmt.Printf("  Regions:               %d\n", len(regions))
		fmt.Printf("  Total revenue:         %.2f\n", analytics.TotalRevenue(transactions))
	}

	if verbose {
		fmt.Println()
		for _, t := range transactions {
			fmt.Printf("%s %s  %-20s qty=%-4d price=%-8.2f %s/%s\n",
				t.TransactionID, t.Date, t.ProductName, t.Quantity, t.UnitPrice,
				t.CustomerID, t.Region)
		}
	}

	return nil
}
