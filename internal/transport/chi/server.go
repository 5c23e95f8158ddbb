package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/merxlabs/searchgate/internal/catalog"
	"github.com/merxlabs/searchgate/internal/domain"
	domsearch "github.com/merxlabs/searchgate/internal/domain/search"
	healthuc "github.com/merxlabs/searchgate/internal/usecase/health"
	searchuc "github.com/merxlabs/searchgate/internal/usecase/search"
)

// errorCode identifies an error class in JSON responses.
type errorCode string

const (
	codeBadRequest        errorCode = "bad_request"
	codeNotFound          errorCode = "not_found"
	codeBackendError      errorCode = "backend_error"
	codeTranslationFailed errorCode = "translation_failed"
	codeInternalError     errorCode = "internal_error"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the search gateway operations over HTTP.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		backendStatusHandler,
		sentinelHandler(domain.ErrInvalidArgs, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrTranslationFailed, http.StatusBadGateway, codeTranslationFailed),
		sentinelHandler(domain.ErrBackendUnavailable, http.StatusBadGateway, codeBackendError),
	}
	return s
}

// Routes registers the API routes on a chi router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/facets", s.GetFacets)
	r.Get("/api/products", s.GetProducts)
	r.Get("/api/product-search", s.GetProductSearch)
	r.Get("/api/search-metadata", s.GetSearchMetadata)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// GetFacets handles GET /api/facets.
func (s *Server) GetFacets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	args := domsearch.FacetsArgs{
		Query:                q.Get("query"),
		Map:                  q.Get("map"),
		Behavior:             domsearch.Behavior(q.Get("behavior")),
		HideUnavailableItems: q.Get("hideUnavailableItems") == "true",
	}

	facets, err := s.search.Facets(r.Context(), args)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, facets)
}

// productSearchResponse carries products plus the backend's result window.
type productSearchResponse struct {
	Products []catalog.Product `json:"products"`
	Range    pageRange         `json:"range"`
}

type pageRange struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Total int `json:"total"`
}

// GetProducts handles GET /api/products.
func (s *Server) GetProducts(w http.ResponseWriter, r *http.Request) {
	args, err := parseSearchArgs(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	products, err := s.search.Products(r.Context(), args)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

// GetProductSearch handles GET /api/product-search.
func (s *Server) GetProductSearch(w http.ResponseWriter, r *http.Request) {
	args, err := parseSearchArgs(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	result, err := s.search.ProductSearch(r.Context(), args)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if result.Products == nil {
		result.Products = []catalog.Product{}
	}

	writeJSON(w, http.StatusOK, productSearchResponse{
		Products: result.Products,
		Range: pageRange{
			From:  result.Range.From,
			To:    result.Range.To,
			Total: result.Range.Total,
		},
	})
}

// metadataResponse is the resolved request shape for page metadata assembly.
type metadataResponse struct {
	Term  string `json:"term"`
	Query string `json:"query"`
	Map   string `json:"map"`
}

// GetSearchMetadata handles GET /api/search-metadata.
func (s *Server) GetSearchMetadata(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	meta, err := s.search.SearchMetadata(r.Context(), q.Get("query"), q.Get("map"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, metadataResponse{
		Term:  meta.Term,
		Query: meta.CompatibilityArgs.Query,
		Map:   meta.CompatibilityArgs.Map,
	})
}

// healthResponse is the JSON body of GET /health.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// parseSearchArgs builds a search argument bag from query parameters. Absent
// pagination bounds stay Unset.
func parseSearchArgs(q url.Values) (domsearch.Args, error) {
	args := domsearch.Args{
		Query:                q.Get("query"),
		Category:             q.Get("category"),
		SpecificationFilters: q["specificationFilters"],
		PriceRange:           q.Get("priceRange"),
		Collection:           q.Get("collection"),
		SalesChannel:         q.Get("salesChannel"),
		OrderBy:              q.Get("orderBy"),
		Map:                  q.Get("map"),
		HideUnavailableItems: q.Get("hideUnavailableItems") == "true",
		SimulationBehavior:   domsearch.SimulationBehavior(q.Get("simulationBehavior")),
	}

	var err error
	if args.From, err = intParam(q, "from"); err != nil {
		return domsearch.Args{}, err
	}
	if args.To, err = intParam(q, "to"); err != nil {
		return domsearch.Args{}, err
	}
	return args, nil
}

func intParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return domsearch.Unset, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidArgs,
		domain.ErrNotFound,
		domain.ErrBackendUnavailable,
		domain.ErrTranslationFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// backendStatusHandler handles backend status errors with the upstream status attached.
func backendStatusHandler(w http.ResponseWriter, err error, msg string) bool {
	var bse *domain.BackendStatusError
	if !errors.As(err, &bse) {
		return false
	}
	writeJSON(w, http.StatusBadGateway, map[string]any{
		"code":            codeBackendError,
		"message":         msg,
		"upstream_status": bse.Status,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
