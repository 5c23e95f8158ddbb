package compat

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/merxlabs/searchgate/internal/catalog"
	"github.com/merxlabs/searchgate/internal/domain/search"
)

type mockCache struct {
	entries map[string]search.CompatibilityArgs
	puts    int
}

func (m *mockCache) Get(_ context.Context, q string) (search.CompatibilityArgs, bool) {
	args, ok := m.entries[q]
	return args, ok
}

func (m *mockCache) Put(_ context.Context, q string, args search.CompatibilityArgs) {
	m.puts++
	m.entries[q] = args
}

type mockFacetsReader struct {
	result catalog.FacetsResult
	err    error
	calls  int
}

func (m *mockFacetsReader) Facets(_ context.Context, _, _ string) (catalog.FacetsResult, error) {
	m.calls++
	return m.result, m.err
}

func newTestService(t *testing.T) (*Service, *mockCache, *mockFacetsReader) {
	t.Helper()
	cache := &mockCache{entries: map[string]search.CompatibilityArgs{}}
	facets := &mockFacetsReader{}
	svc := New(cache, facets, zap.NewNop())
	return svc, cache, facets
}

// storeMeta is backend facet metadata for a small store: a clothing>shoes
// category chain, one brand, one specification filter.
func storeMeta() catalog.FacetsResult {
	return catalog.FacetsResult{
		CategoriesTrees: []catalog.CategoryTree{
			{
				Name: "Clothing", Link: "/clothing",
				Children: []catalog.CategoryTree{
					{Name: "Shoes", Link: "/clothing/shoes"},
				},
			},
		},
		Brands: []catalog.FacetValue{
			{Name: "Acme Runners", Link: "/acme-runners"},
		},
		SpecificationFilters: []catalog.FilterFacets{
			{
				Name: "Color",
				Facets: []catalog.FacetValue{
					{Name: "Red", Value: "red", Map: "specificationFilter_10"},
				},
			},
		},
	}
}
