package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joshsymonds/sift/internal/catalog"
	"github.com/joshsymonds/sift/internal/cli"
)

func init() {
	fetchCatalogCmd := &cobra.Command{
		Use:   "fetch-catalog",
		Short: "Test catalog service connectivity and inspect the data we receive",
		RunE:  runFetchCatalog,
	}

	fetchCatalogCmd.Flags().BoolP("verbose", "v", false, "Show individual catalog entries")

	rootCmd.AddCommand(fetchCatalogCmd)
}

func runFetchCatalog(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	url := viper.GetString("catalog.url")

	slog.Info("Testing catalog connection...", "url", url)

	client := catalog.NewClient(url, viper.GetInt("catalog.page_size"))
	products, err := client.FetchProducts(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}

	mapping := catalog.BuildCatalog(products)

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Fetched %d products (%d distinct IDs)", len(products), len(mapping))))

	if verbose {
		ids := make([]int, 0, len(mapping))
		for id := range mapping {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		for _, id := range ids {
			entry := mapping[id]
			fmt.Printf("  %4d  %-30s %-20s %-15s %.1f\n",
				id, entry.Title, entry.Category, entry.Brand, entry.Rating)
		}
	}

	return nil
}
