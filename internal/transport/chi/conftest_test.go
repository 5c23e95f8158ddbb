package chi

import (
	"context"
	"net/http"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/merxlabs/searchgate/internal/catalog"
	domsearch "github.com/merxlabs/searchgate/internal/domain/search"
	healthuc "github.com/merxlabs/searchgate/internal/usecase/health"
	searchuc "github.com/merxlabs/searchgate/internal/usecase/search"
)

type mockCatalog struct {
	productsFn func(ctx context.Context, searchPath string) (catalog.ProductsResult, error)
	facetsFn   func(ctx context.Context, query, mapArg string) (catalog.FacetsResult, error)

	lastSearchPath string
}

func (m *mockCatalog) Products(ctx context.Context, searchPath string) (catalog.ProductsResult, error) {
	m.lastSearchPath = searchPath
	if m.productsFn != nil {
		return m.productsFn(ctx, searchPath)
	}
	return catalog.ProductsResult{}, nil
}

func (m *mockCatalog) Facets(ctx context.Context, query, mapArg string) (catalog.FacetsResult, error) {
	if m.facetsFn != nil {
		return m.facetsFn(ctx, query, mapArg)
	}
	return catalog.FacetsResult{}, nil
}

type mockResolver struct {
	resolveFn func(ctx context.Context, args domsearch.CompatibilityArgs) (domsearch.CompatibilityArgs, error)
}

func (m *mockResolver) Resolve(ctx context.Context, args domsearch.CompatibilityArgs) (domsearch.CompatibilityArgs, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, args)
	}
	return args, nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// newTestHandler wires a full router around mocked collaborators.
func newTestHandler(t *testing.T, cat *mockCatalog, resolver *mockResolver, dbErr error) http.Handler {
	t.Helper()

	searchSvc := searchuc.New(cat, resolver, nil, zap.NewNop())
	healthSvc := healthuc.New(&mockPinger{err: dbErr}, nil)
	server := NewServer(searchSvc, healthSvc, zap.NewNop())

	r := chirouter.NewRouter()
	r.Use(SegmentMiddleware())
	server.Routes(r)
	return r
}
