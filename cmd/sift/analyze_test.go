package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region\n" +
	"T001|2024-01-05|P101|Widget,Deluxe|10|2.50|C001|East\n" +
	"T002|2024-01-06|P999|Gadget|3|9.99|C002|West\n" +
	"bad line\n"

func writeTestFeed(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "sales_data.txt")
	require.NoError(t, os.WriteFile(path, []byte(testFeed), 0o644))
	return path
}

func testCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"products": []map[string]any{
				{"id": 101, "title": "Widget", "category": "tools", "brand": "Acme", "rating": 4.2},
			},
			"total": 1,
			"skip":  0,
			"limit": 100,
		}))
	}))
}

func TestRunAnalyze_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	feedPath := writeTestFeed(t, dir)
	reportPath := filepath.Join(dir, "report.txt")
	enrichedPath := filepath.Join(dir, "enriched.txt")

	srv := testCatalogServer(t)
	defer srv.Close()

	viper.Set("catalog.url", srv.URL)
	t.Cleanup(viper.Reset)

	cmd := analyzeCmd()
	cmd.SetArgs([]string{feedPath, "--report", reportPath, "--enriched", enrichedPath})
	require.NoError(t, cmd.Execute())

	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "SALES ANALYTICS REPORT")
	assert.Contains(t, string(report), "Records Processed: 2")
	assert.Contains(t, string(report), "Total Enriched: 1")
	assert.NotContains(t, string(report), "Enrichment skipped")

	enriched, err := os.ReadFile(enrichedPath)
	require.NoError(t, err)
	assert.Contains(t, string(enriched), "T001|2024-01-05|P101|WidgetDeluxe|10|2.5|C001|East|tools|Acme|4.2|true")
	assert.Contains(t, string(enriched), "T002|2024-01-06|P999|Gadget|3|9.99|C002|West|None|None|None|false")
}

func TestRunAnalyze_FilterFlags(t *testing.T) {
	dir := t.TempDir()
	feedPath := writeTestFeed(t, dir)
	reportPath := filepath.Join(dir, "report.txt")

	srv := testCatalogServer(t)
	defer srv.Close()

	viper.Set("catalog.url", srv.URL)
	t.Cleanup(viper.Reset)

	cmd := analyzeCmd()
	cmd.SetArgs([]string{feedPath,
		"--region", "east", // case-insensitive match against "East"
		"--report", reportPath,
		"--enriched", filepath.Join(dir, "enriched.txt"),
	})
	require.NoError(t, cmd.Execute())

	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "Records Processed: 1")
}

func TestRunAnalyze_CatalogUnavailable(t *testing.T) {
	dir := t.TempDir()
	feedPath := writeTestFeed(t, dir)
	reportPath := filepath.Join(dir, "report.txt")
	enrichedPath := filepath.Join(dir, "enriched.txt")

	srv := testCatalogServer(t)
	srv.Close() // connection refused from here on

	viper.Set("catalog.url", srv.URL)
	t.Cleanup(viper.Reset)

	// The fetch failure degrades the run instead of failing it.
	cmd := analyzeCmd()
	cmd.SetArgs([]string{feedPath, "--report", reportPath, "--enriched", enrichedPath})
	require.NoError(t, cmd.Execute())

	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "Enrichment skipped: catalog service unavailable")
	assert.Contains(t, string(report), "Total Enriched: 0")

	enriched, err := os.ReadFile(enrichedPath)
	require.NoError(t, err)
	assert.Contains(t, string(enriched), "|None|None|None|false")
}

func TestRunAnalyze_MissingFeed(t *testing.T) {
	cmd := analyzeCmd()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.txt")})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	require.Error(t, cmd.Execute())
}
