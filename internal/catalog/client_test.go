package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogServer(t *testing.T, products []Product) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))

		end := skip + limit
		if end > len(products) {
			end = len(products)
		}
		var page []Product
		if skip < len(products) {
			page = products[skip:end]
		}

		require.NoError(t, json.NewEncoder(w).Encode(productPage{
			Products: page,
			Total:    len(products),
			Skip:     skip,
			Limit:    limit,
		}))
	}))
}

func TestFetchProducts(t *testing.T) {
	products := []Product{
		{ID: 1, Title: "Hammer", Category: "tools", Brand: "Acme", Rating: 4.2},
		{ID: 2, Title: "Wrench", Category: "tools"},
		{ID: 3, Title: "Phone", Category: "electronics", Brand: "Umbrella", Rating: 3.9},
	}

	srv := catalogServer(t, products)
	defer srv.Close()

	client := NewClient(srv.URL, 100)
	got, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, products, got)
}

func TestFetchProducts_Paginated(t *testing.T) {
	var products []Product
	for i := 1; i <= 7; i++ {
		products = append(products, Product{ID: i, Title: "Item", Category: "misc"})
	}

	srv := catalogServer(t, products)
	defer srv.Close()

	// Page size 3 forces three requests.
	client := NewClient(srv.URL, 3)
	got, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 7)
	assert.Equal(t, products, got)
}

func TestFetchProducts_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 100)
	_, err := client.FetchProducts(context.Background())
	require.Error(t, err)
}

func TestFetchProducts_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, 100)
	_, err := client.FetchProducts(context.Background())
	require.Error(t, err)
}

func TestBuildCatalog(t *testing.T) {
	products := []Product{
		{ID: 101, Title: "Hammer", Category: "tools", Brand: "Acme", Rating: 4.2},
		{ID: 102, Title: "Mystery", Category: "misc"}, // no brand, no rating
	}

	mapping := BuildCatalog(products)
	require.Len(t, mapping, 2)

	hammer := mapping[101]
	assert.Equal(t, "Hammer", hammer.Title)
	assert.Equal(t, "Acme", hammer.Brand)
	assert.InDelta(t, 4.2, hammer.Rating, 0.001)

	mystery := mapping[102]
	assert.Equal(t, "Unknown", mystery.Brand, "missing brand defaults to Unknown")
	assert.Zero(t, mystery.Rating, "missing rating defaults to 0")
}

func TestBuildCatalog_Empty(t *testing.T) {
	assert.Empty(t, BuildCatalog(nil))
}
