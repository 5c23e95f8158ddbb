package search

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/merxlabs/searchgate/internal/catalog"
	domsearch "github.com/merxlabs/searchgate/internal/domain/search"
)

type mockCatalog struct {
	productsFn func(ctx context.Context, searchPath string) (catalog.ProductsResult, error)
	facetsFn   func(ctx context.Context, query, mapArg string) (catalog.FacetsResult, error)

	lastSearchPath  string
	lastFacetsQuery string
	lastFacetsMap   string
}

func (m *mockCatalog) Products(ctx context.Context, searchPath string) (catalog.ProductsResult, error) {
	m.lastSearchPath = searchPath
	if m.productsFn != nil {
		return m.productsFn(ctx, searchPath)
	}
	return catalog.ProductsResult{}, nil
}

func (m *mockCatalog) Facets(ctx context.Context, query, mapArg string) (catalog.FacetsResult, error) {
	m.lastFacetsQuery = query
	m.lastFacetsMap = mapArg
	if m.facetsFn != nil {
		return m.facetsFn(ctx, query, mapArg)
	}
	return catalog.FacetsResult{}, nil
}

type mockResolver struct {
	resolveFn func(ctx context.Context, args domsearch.CompatibilityArgs) (domsearch.CompatibilityArgs, error)
	calls     int
}

func (m *mockResolver) Resolve(ctx context.Context, args domsearch.CompatibilityArgs) (domsearch.CompatibilityArgs, error) {
	m.calls++
	if m.resolveFn != nil {
		return m.resolveFn(ctx, args)
	}
	return args, nil
}

type mockTranslator struct {
	translateFn func(ctx context.Context, term string) (string, error)
	calls       int
}

func (m *mockTranslator) Translate(ctx context.Context, term string) (string, error) {
	m.calls++
	if m.translateFn != nil {
		return m.translateFn(ctx, term)
	}
	return term, nil
}

func newTestService(t *testing.T) (*Service, *mockCatalog, *mockResolver, *mockTranslator) {
	t.Helper()
	cat := &mockCatalog{}
	resolver := &mockResolver{}
	translator := &mockTranslator{}
	svc := New(cat, resolver, translator, zap.NewNop())
	return svc, cat, resolver, translator
}
