package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/merxlabs/searchgate/internal/catalog"
	"github.com/merxlabs/searchgate/internal/domain"
	domsearch "github.com/merxlabs/searchgate/internal/domain/search"
)

func TestGetFacets_LegacyPair(t *testing.T) {
	cat := &mockCatalog{
		facetsFn: func(_ context.Context, query, mapArg string) (catalog.FacetsResult, error) {
			if query != "shoes" || mapArg != "c" {
				t.Errorf("unexpected backend pair: %q / %q", query, mapArg)
			}
			return catalog.FacetsResult{
				Departments: []catalog.FacetValue{{Name: "Shoes", Quantity: 12}},
			}, nil
		},
	}
	h := newTestHandler(t, cat, &mockResolver{}, nil)

	req := httptest.NewRequest("GET", "/api/facets?query=shoes&map=c", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp catalog.FacetsResult
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Departments) != 1 || resp.Departments[0].Name != "Shoes" {
		t.Errorf("unexpected departments: %+v", resp.Departments)
	}
}

func TestGetFacets_MissingMap_400(t *testing.T) {
	resolver := &mockResolver{
		resolveFn: func(_ context.Context, _ domsearch.CompatibilityArgs) (domsearch.CompatibilityArgs, error) {
			return domsearch.CompatibilityArgs{}, nil
		},
	}
	h := newTestHandler(t, &mockCatalog{}, resolver, nil)

	req := httptest.NewRequest("GET", "/api/facets?query=unknown-thing", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != codeBadRequest {
		t.Errorf("error code: got %s, want %s", errResp.Code, codeBadRequest)
	}
}

func TestGetProducts_Success(t *testing.T) {
	cat := &mockCatalog{
		productsFn: func(_ context.Context, _ string) (catalog.ProductsResult, error) {
			return catalog.ProductsResult{
				Products: []catalog.Product{{ProductID: "1", ProductName: "Runner"}},
			}, nil
		},
	}
	h := newTestHandler(t, cat, &mockResolver{}, nil)

	req := httptest.NewRequest("GET", "/api/products?query=shoes&from=0&to=9", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if !strings.HasSuffix(strings.TrimSuffix(cat.lastSearchPath, "\n"), "shoes?&_from=0&_to=9") {
		t.Errorf("unexpected search path: %q", cat.lastSearchPath)
	}

	var products []catalog.Product
	if err := json.NewDecoder(rr.Body).Decode(&products); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(products) != 1 || products[0].ProductID != "1" {
		t.Errorf("unexpected products: %+v", products)
	}
}

func TestGetProducts_EmptyResult_JSONArray(t *testing.T) {
	h := newTestHandler(t, &mockCatalog{}, &mockResolver{}, nil)

	req := httptest.NewRequest("GET", "/api/products?query=shoes", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

func TestGetProducts_NonIntegerFrom_400(t *testing.T) {
	h := newTestHandler(t, &mockCatalog{}, &mockResolver{}, nil)

	req := httptest.NewRequest("GET", "/api/products?query=shoes&from=abc", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestGetProducts_ToBeyondLimit_400(t *testing.T) {
	h := newTestHandler(t, &mockCatalog{}, &mockResolver{}, nil)

	req := httptest.NewRequest("GET", "/api/products?query=shoes&to=2501", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestGetProductSearch_Range(t *testing.T) {
	cat := &mockCatalog{
		productsFn: func(_ context.Context, _ string) (catalog.ProductsResult, error) {
			return catalog.ProductsResult{
				Products: []catalog.Product{{ProductID: "1"}},
				Range:    catalog.PageRange{From: 0, To: 9, Total: 120},
			}, nil
		},
	}
	h := newTestHandler(t, cat, &mockResolver{}, nil)

	req := httptest.NewRequest("GET", "/api/product-search?query=shoes", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}

	var resp productSearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Range.Total != 120 || resp.Range.To != 9 {
		t.Errorf("unexpected range: %+v", resp.Range)
	}
	if len(resp.Products) != 1 {
		t.Errorf("unexpected products: %+v", resp.Products)
	}
}

func TestGetProductSearch_NotFound_404(t *testing.T) {
	cat := &mockCatalog{
		productsFn: func(_ context.Context, _ string) (catalog.ProductsResult, error) {
			return catalog.ProductsResult{}, domain.ErrNotFound
		},
	}
	h := newTestHandler(t, cat, &mockResolver{}, nil)

	req := httptest.NewRequest("GET", "/api/product-search?query=shoes", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestGetProductSearch_BackendStatus_502(t *testing.T) {
	cat := &mockCatalog{
		productsFn: func(_ context.Context, _ string) (catalog.ProductsResult, error) {
			return catalog.ProductsResult{}, domain.NewBackendStatus(http.StatusServiceUnavailable)
		},
	}
	h := newTestHandler(t, cat, &mockResolver{}, nil)

	req := httptest.NewRequest("GET", "/api/product-search?query=shoes", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadGateway)
	}

	var resp map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["upstream_status"] != float64(http.StatusServiceUnavailable) {
		t.Errorf("unexpected upstream_status: %v", resp["upstream_status"])
	}
}

func TestGetSearchMetadata_ResolvesPair(t *testing.T) {
	resolver := &mockResolver{
		resolveFn: func(_ context.Context, _ domsearch.CompatibilityArgs) (domsearch.CompatibilityArgs, error) {
			return domsearch.CompatibilityArgs{Query: "clothing/shoes", Map: "c,c"}, nil
		},
	}
	h := newTestHandler(t, &mockCatalog{}, resolver, nil)

	req := httptest.NewRequest("GET", "/api/search-metadata?query=clothing/shoes&map=category-1/category-2", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp metadataResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Query != "clothing/shoes" || resp.Map != "c,c" {
		t.Errorf("unexpected metadata: %+v", resp)
	}
}

func TestGetProducts_SegmentChannelInURL(t *testing.T) {
	cat := &mockCatalog{}
	h := newTestHandler(t, cat, &mockResolver{}, nil)

	// {"channel":"3"} base64-encoded
	req := httptest.NewRequest("GET", "/api/products?query=shoes&hideUnavailableItems=true", http.NoBody)
	req.Header.Set("X-Segment-Token", "eyJjaGFubmVsIjoiMyJ9")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(cat.lastSearchPath, "fq=isAvailablePerSalesChannel_3:1") {
		t.Errorf("expected session channel clause, got %q", cat.lastSearchPath)
	}
}

func TestHealthCheck_Healthy_200(t *testing.T) {
	h := newTestHandler(t, &mockCatalog{}, &mockResolver{}, nil)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}

	var resp healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Checks["database"] != "ok" {
		t.Errorf("unexpected health response: %+v", resp)
	}
}

func TestHealthCheck_Degraded_503(t *testing.T) {
	h := newTestHandler(t, &mockCatalog{}, &mockResolver{}, context.DeadlineExceeded)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}
