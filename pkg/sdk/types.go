package sdk

import "encoding/json"

// SearchQuery is the parameter set for product queries. Zero values are left
// out of the request; use Unset semantics via the From/To pointers being nil.
type SearchQuery struct {
	Query                string
	Category             string
	SpecificationFilters []string
	PriceRange           string
	Collection           string
	SalesChannel         string
	OrderBy              string
	From                 *int
	To                   *int
	Map                  string
	HideUnavailableItems bool
	SimulationBehavior   string
}

// FacetsQuery is the parameter set for facets requests.
type FacetsQuery struct {
	Query                string
	Map                  string
	Behavior             string
	HideUnavailableItems bool
}

// Product is a catalog search document.
type Product struct {
	ProductID   string            `json:"productId"`
	ProductName string            `json:"productName"`
	Brand       string            `json:"brand"`
	LinkText    string            `json:"linkText"`
	CategoryID  string            `json:"categoryId"`
	Categories  []string          `json:"categories"`
	Items       []json.RawMessage `json:"items"`
}

// PageRange is the result window of a product search.
type PageRange struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Total int `json:"total"`
}

// ProductSearch is a product search response plus its pagination window.
type ProductSearch struct {
	Products []Product `json:"products"`
	Range    PageRange `json:"range"`
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

// Facets is the facet metadata for a query/map pair.
type Facets struct {
	Departments          []FacetValue   `json:"Departments"`
	Brands               []FacetValue   `json:"Brands"`
	CategoriesTrees      []CategoryTree `json:"CategoriesTrees"`
	SpecificationFilters []FilterFacets `json:"SpecificationFilters"`
}

// Metadata is the resolved request shape for page metadata assembly.
type Metadata struct {
	Term  string `json:"term"`
	Query string `json:"query"`
	Map   string `json:"map"`
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
