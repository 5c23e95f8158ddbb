package catalog

import "encoding/json"

// Product is a catalog search document. Item payloads vary per store schema
// and are passed through untouched.
type Product struct {
	ProductID   string            `json:"productId"`
	ProductName string            `json:"productName"`
	Brand       string            `json:"brand"`
	LinkText    string            `json:"linkText"`
	CategoryID  string            `json:"categoryId"`
	Categories  []string          `json:"categories"`
	Items       []json.RawMessage `json:"items"`
}

// PageRange is the result window derived from the backend's resources header.
type PageRange struct {
	From  int
	To    int
	Total int
}

// ProductsResult is a product search response plus its pagination window.
type ProductsResult struct {
	Products []Product
	Range    PageRange
}

// FacetValue is a single selectable facet entry.
type FacetValue struct {
	Name     string `json:"Name"`
	Link     string `json:"Link"`
	Value    string `json:"Value"`
	Map      string `json:"Map"`
	Quantity int    `json:"Quantity"`
}

// CategoryTree is a nested category facet.
type CategoryTree struct {
	ID       int            `json:"Id"`
	Name     string         `json:"Name"`
	Link     string         `json:"Link"`
	Quantity int            `json:"Quantity"`
	Children []CategoryTree `json:"Children"`
}

// FilterFacets groups specification-filter values under their filter name.
type FilterFacets struct {
	Name   string       `json:"Name"`
	Facets []FacetValue `json:"Facets"`
}

// FacetsResult is the facet/category metadata the backend returns for a
// legacy query/map pair. The compatibility resolver also consults it to map
// canonical path segments onto facet tags.
type FacetsResult struct {
	Departments          []FacetValue   `json:"Departments"`
	Brands               []FacetValue   `json:"Brands"`
	CategoriesTrees      []CategoryTree `json:"CategoriesTrees"`
	SpecificationFilters []FilterFacets `json:"SpecificationFilters"`
}
