package compat

import (
	"context"

	"github.com/merxlabs/searchgate/internal/catalog"
	"github.com/merxlabs/searchgate/internal/domain/search"
)

// MappingCache persists resolved canonical-to-legacy mappings.
type MappingCache interface {
	Get(ctx context.Context, canonicalQuery string) (search.CompatibilityArgs, bool)
	Put(ctx context.Context, canonicalQuery string, args search.CompatibilityArgs)
}

// FacetsReader fetches facet/category metadata from the catalog backend.
type FacetsReader interface {
	Facets(ctx context.Context, query, mapArg string) (catalog.FacetsResult, error)
}
