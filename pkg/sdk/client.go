package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client is the searchgate SDK entry point.
type Client struct {
	baseURL      string
	apiKey       string
	segmentToken string
	httpc        *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithSegmentToken sets the segment token sent with every request.
func WithSegmentToken(token string) Option {
	return func(c *Client) { c.segmentToken = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New creates a searchgate Client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("sdk: base URL is required")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Facets fetches facet metadata for a query/map pair.
func (c *Client) Facets(ctx context.Context, q FacetsQuery) (Facets, error) {
	params := url.Values{}
	setParam(params, "query", q.Query)
	setParam(params, "map", q.Map)
	setParam(params, "behavior", q.Behavior)
	if q.HideUnavailableItems {
		params.Set("hideUnavailableItems", "true")
	}

	var facets Facets
	if err := c.get(ctx, "/api/facets", params, &facets); err != nil {
		return Facets{}, err
	}
	return facets, nil
}

// Products runs a product search and returns the matching documents.
func (c *Client) Products(ctx context.Context, q SearchQuery) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "/api/products", searchParams(q), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductSearch runs a product search and returns the documents together with
// the pagination window.
func (c *Client) ProductSearch(ctx context.Context, q SearchQuery) (ProductSearch, error) {
	var result ProductSearch
	if err := c.get(ctx, "/api/product-search", searchParams(q), &result); err != nil {
		return ProductSearch{}, err
	}
	return result, nil
}

// SearchMetadata resolves a query/map pair and the translated term.
func (c *Client) SearchMetadata(ctx context.Context, query, mapArg string) (Metadata, error) {
	params := url.Values{}
	setParam(params, "query", query)
	setParam(params, "map", mapArg)

	var meta Metadata
	if err := c.get(ctx, "/api/search-metadata", params, &meta); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// Health checks the health of the gateway and its dependencies.
// A degraded gateway answers 503 with a valid body, so the status is returned
// alongside a nil error whenever a report could be decoded.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	req, err := c.newRequest(ctx, "/health", nil)
	if err != nil {
		return HealthStatus{}, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("sdk: health request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return HealthStatus{}, fmt.Errorf("sdk: decode health response: %w", err)
	}
	return status, nil
}

func searchParams(q SearchQuery) url.Values {
	params := url.Values{}
	setParam(params, "query", q.Query)
	setParam(params, "category", q.Category)
	for _, f := range q.SpecificationFilters {
		params.Add("specificationFilters", f)
	}
	setParam(params, "priceRange", q.PriceRange)
	setParam(params, "collection", q.Collection)
	setParam(params, "salesChannel", q.SalesChannel)
	setParam(params, "orderBy", q.OrderBy)
	setParam(params, "map", q.Map)
	if q.From != nil {
		params.Set("from", strconv.Itoa(*q.From))
	}
	if q.To != nil {
		params.Set("to", strconv.Itoa(*q.To))
	}
	if q.HideUnavailableItems {
		params.Set("hideUnavailableItems", "true")
	}
	setParam(params, "simulationBehavior", q.SimulationBehavior)
	return params
}

func setParam(params url.Values, name, value string) {
	if value != "" {
		params.Set(name, value)
	}
}

func (c *Client) newRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("sdk: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.segmentToken != "" {
		req.Header.Set("X-Segment-Token", c.segmentToken)
	}
	return req, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := c.newRequest(ctx, path, params)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sdk: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("sdk: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var envelope struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Code == "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "unknown",
			Message:    strings.TrimSpace(string(body)),
		}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       envelope.Code,
		Message:    envelope.Message,
	}
}
