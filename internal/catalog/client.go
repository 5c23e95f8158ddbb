// Package catalog is the HTTP client for the remote catalog-search backend.
// It owns outbound URL composition, in-flight deduplication of identical
// concurrent requests, and the translation of backend failures into the
// gateway's error taxonomy.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/merxlabs/searchgate/internal/domain"
	"github.com/merxlabs/searchgate/internal/metrics"
	"github.com/merxlabs/searchgate/internal/session"
)

const defaultTimeout = 10 * time.Second

// resourcesHeader carries the result window, e.g. "0-9/120".
const resourcesHeader = "Resources"

// Client talks to the catalog search backend. Identical concurrent GETs are
// coalesced through a singleflight group keyed by RequestKey; joined callers
// share the leader's response bytes. Cancellation of a joined caller does not
// cancel the leader's request.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
	group   singleflight.Group
}

// Config holds catalog backend connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates a catalog backend client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Products runs a composed product-search request path against the backend.
func (c *Client) Products(ctx context.Context, searchPath string) (ProductsResult, error) {
	resp, err := c.get(ctx, "products", searchPath)
	if err != nil {
		return ProductsResult{}, err
	}

	var products []Product
	if err := json.Unmarshal(resp.body, &products); err != nil {
		return ProductsResult{}, fmt.Errorf("decode products response: %w", err)
	}

	return ProductsResult{
		Products: products,
		Range:    parseResources(resp.resources),
	}, nil
}

// Facets fetches facet metadata for a legacy query/map pair.
func (c *Client) Facets(ctx context.Context, query, mapArg string) (FacetsResult, error) {
	resp, err := c.get(ctx, "facets", BuildFacetsURL(query, mapArg))
	if err != nil {
		return FacetsResult{}, err
	}

	var facets FacetsResult
	if err := json.Unmarshal(resp.body, &facets); err != nil {
		return FacetsResult{}, fmt.Errorf("decode facets response: %w", err)
	}
	return facets, nil
}

// HealthCheck probes backend reachability. Any HTTP response counts as
// reachable; only transport-level failures are reported.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("catalog backend unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

type response struct {
	body      []byte
	resources string
}

// get issues a GET for a composed request path, deduplicating identical
// concurrent calls.
func (c *Client) get(ctx context.Context, endpoint, requestPath string) (response, error) {
	key := c.dedupKey(ctx, requestPath)

	v, err, shared := c.group.Do(key, func() (any, error) {
		return c.fetch(ctx, endpoint, requestPath)
	})
	if shared {
		metrics.CatalogDedupTotal.WithLabelValues("shared").Inc()
	} else {
		metrics.CatalogDedupTotal.WithLabelValues("leader").Inc()
	}
	if err != nil {
		return response{}, err
	}
	return v.(response), nil
}

// dedupKey splits the composed path into its path and parameter parts and
// derives the deduplication key, folding in the caller's segment token.
// A query string ParseQuery cannot handle (filter values render verbatim, so a
// raw "%" or ";" gets through) is folded in as-is: such keys lose parameter
// order canonicalization but never collide across distinct requests.
func (c *Client) dedupKey(ctx context.Context, requestPath string) string {
	rawPath, rawQuery, _ := strings.Cut(requestPath, "?")
	token := session.FromContext(ctx).Token

	query := strings.TrimPrefix(rawQuery, "&")
	params, err := url.ParseQuery(query)
	if err != nil {
		return c.baseURL + rawPath + "&" + query + "&segmentToken=" + token
	}
	return RequestKey(c.baseURL, rawPath, params, token)
}

func (c *Client) fetch(ctx context.Context, endpoint, requestPath string) (response, error) {
	u := c.baseURL + "/" + requestPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return response{}, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token := session.FromContext(ctx).Token; token != "" {
		req.Header.Set("X-Segment-Token", token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return response{}, fmt.Errorf("catalog request failed: %w: %s", domain.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.CatalogRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.CatalogRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())

	if resp.StatusCode == http.StatusNotFound {
		return response{}, domain.ErrNotFound
	}
	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Warn("catalog backend error",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("path", requestPath),
		)
		return response{}, domain.NewBackendStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("read catalog response: %w: %s", domain.ErrBackendUnavailable, err)
	}

	return response{
		body:      body,
		resources: resp.Header.Get(resourcesHeader),
	}, nil
}

// parseResources extracts the result window from a "from-to/total" header
// value. A missing or malformed header yields a zero range.
func parseResources(raw string) PageRange {
	window, total, ok := strings.Cut(raw, "/")
	if !ok {
		return PageRange{}
	}
	fromStr, toStr, ok := strings.Cut(window, "-")
	if !ok {
		return PageRange{}
	}

	from, err1 := strconv.Atoi(fromStr)
	to, err2 := strconv.Atoi(toStr)
	totalN, err3 := strconv.Atoi(total)
	if err1 != nil || err2 != nil || err3 != nil {
		return PageRange{}
	}
	return PageRange{From: from, To: to, Total: totalN}
}
