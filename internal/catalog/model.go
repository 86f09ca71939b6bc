package catalog

import "github.com/shopspring/decimal"

// Catalog entities are owned by the CMS; these are the read-only projections
// served to the storefront client.

type Brand struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type Category struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type FacetCount struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// FiltersMeta is the aggregate behind the product filter sidebar.
type FiltersMeta struct {
	MinPrice   decimal.Decimal `json:"minPrice"`
	MaxPrice   decimal.Decimal `json:"maxPrice"`
	Categories []FacetCount    `json:"categories"`
	Brands     []FacetCount    `json:"brands"`
}
