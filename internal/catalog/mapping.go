package catalog

import "github.com/joshsymonds/sift/internal/model"

// unknownBrand is the default for products without a brand.
const unknownBrand = "Unknown"

// BuildCatalog keys the fetched products by their integer ID. Products
// without a brand default to "Unknown"; a missing rating stays 0.0.
func BuildCatalog(products []Product) model.Catalog {
	mapping := make(model.Catalog, len(products))
	for _, p := range products {
		brand := p.Brand
		if brand == "" {
			brand = unknownBrand
		}
		mapping[p.ID] = model.CatalogEntry{
			ID:       p.ID,
			Title:    p.Title,
			Category: p.Category,
			Brand:    brand,
			Rating:   p.Rating,
		}
	}
	return mapping
}
