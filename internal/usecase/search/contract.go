package search

import (
	"context"

	"github.com/merxlabs/searchgate/internal/catalog"
	domsearch "github.com/merxlabs/searchgate/internal/domain/search"
)

// CatalogClient issues composed requests against the catalog search backend.
type CatalogClient interface {
	Products(ctx context.Context, searchPath string) (catalog.ProductsResult, error)
	Facets(ctx context.Context, query, mapArg string) (catalog.FacetsResult, error)
}

// CompatibilityResolver converts canonical queries to the legacy encoding.
type CompatibilityResolver interface {
	Resolve(ctx context.Context, args domsearch.CompatibilityArgs) (domsearch.CompatibilityArgs, error)
}

// Translator translates a search term to the store's default locale. A no-op
// when the caller's locale already matches the store's.
type Translator interface {
	Translate(ctx context.Context, term string) (string, error)
}
