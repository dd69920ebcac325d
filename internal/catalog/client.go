// Package catalog fetches the external product catalog and builds the
// read-only ID mapping used for enrichment.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/joshsymonds/sift/internal/common"
)

const defaultPageSize = 100

// Product is one product record as returned by the catalog service.
// Brand and Rating are optional in the service response.
type Product struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	ID       int     `json:"id"`
	Rating   float64 `json:"rating"`
}

// productPage is the paginated envelope of the catalog service response.
type productPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// Client fetches products from the catalog service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
}

// NewClient creates a catalog client for the given products endpoint.
func NewClient(baseURL string, pageSize int) *Client {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		baseURL:  baseURL,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchProducts retrieves the full catalog, paging until the service's
// reported total is reached. A single failed request fails the whole
// fetch; there is no retry, callers degrade to an empty catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	var all []Product
	skip := 0

	for {
		page, err := c.fetchPage(ctx, skip)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Products...)

		if len(page.Products) == 0 || len(all) >= page.Total {
			break
		}
		skip += len(page.Products)
	}

	slog.Info("Fetched product catalog", "products", len(all))
	return all, nil
}

// fetchPage requests a single page of products.
func (c *Client) fetchPage(ctx context.Context, skip int) (*productPage, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog URL %q: %w", c.baseURL, err)
	}

	q := u.Query()
	q.Set("limit", strconv.Itoa(c.pageSize))
	q.Set("skip", strconv.Itoa(skip))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}

	slog.Debug("Requesting catalog page", "skip", skip, "limit", c.pageSize)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCatalogUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d - %s", common.ErrCatalogUnavailable, resp.StatusCode, string(body))
	}

	var page productPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return &page, nil
}
