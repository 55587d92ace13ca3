package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain"
	domcat "github.com/aliemreeser/HotelRoomSearch/internal/domain/catalog"
	"github.com/aliemreeser/HotelRoomSearch/internal/domain/search/query"
	"github.com/aliemreeser/HotelRoomSearch/internal/domain/search/request"
	"github.com/aliemreeser/HotelRoomSearch/internal/logger"
	"github.com/aliemreeser/HotelRoomSearch/internal/metrics"
	analyzeuc "github.com/aliemreeser/HotelRoomSearch/internal/usecase/analyze"
	healthuc "github.com/aliemreeser/HotelRoomSearch/internal/usecase/health"
	searchuc "github.com/aliemreeser/HotelRoomSearch/internal/usecase/search"
)

// Error response codes.
const (
	codeBadRequest           = "bad_request"
	codeEmptyQuery           = "empty_query"
	codeInvalidRequest       = "invalid_request"
	codeItemNotFound         = "item_not_found"
	codeEmbeddingUnavailable = "embedding_unavailable"
	codeInternal             = "internal_error"
	codeUnauthorized         = "unauthorized"
)

// ErrorResponse is the wire shape of an API error.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CatalogSource provides catalog snapshots for searching.
type CatalogSource interface {
	Snapshot() *domcat.Catalog
	Len() int
}

// RankingDefaults are the server-level defaults applied when a search
// request does not override them.
type RankingDefaults struct {
	KeywordWeight    float64
	SemanticWeight   float64
	KeywordMinScore  float64
	SemanticMinScore float64
	MaxResults       int
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server is the HTTP API: search, ingestion, health, metrics.
type Server struct {
	parser        searchuc.Parser
	search        *searchuc.Service
	analyze       *analyzeuc.Service
	health        *healthuc.Service
	catalog       CatalogSource
	imageURLs     []string
	defaults      RankingDefaults
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. imageURLs is the configured set of
// images the ingestion endpoint analyzes.
func NewServer(
	parser searchuc.Parser,
	search *searchuc.Service,
	analyze *analyzeuc.Service,
	health *healthuc.Service,
	catalog CatalogSource,
	imageURLs []string,
	defaults RankingDefaults,
	log *zap.Logger,
) *Server {
	s := &Server{
		parser:    parser,
		search:    search,
		analyze:   analyze,
		health:    health,
		catalog:   catalog,
		imageURLs: imageURLs,
		defaults:  defaults,
		logger:    log,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeEmptyQuery),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeInvalidRequest),
		sentinelHandler(domain.ErrItemNotFound, http.StatusNotFound, codeItemNotFound),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway, codeEmbeddingUnavailable),
	}
	return s
}

// Routes builds the router with middleware and all endpoints.
func (s *Server) Routes(apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(apiKeys))

	r.Post("/search", s.handleSearch)
	r.Post("/analyze", s.handleAnalyze)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// requestLogger stores a request-scoped logger in the context so lower
// layers can attach the request id to degradation warnings.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLog := s.logger.With(zap.String("request_id", chiMiddleware.GetReqID(r.Context())))
		ctx := logger.ContextWithLogger(r.Context(), reqLog)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type searchRequestBody struct {
	Query            string   `json:"query"`
	KeywordWeight    *float64 `json:"keyword_weight,omitempty"`
	SemanticWeight   *float64 `json:"semantic_weight,omitempty"`
	KeywordMinScore  *float64 `json:"keyword_min_score,omitempty"`
	SemanticMinScore *float64 `json:"semantic_min_score,omitempty"`
	MaxResults       *int     `json:"max_results,omitempty"`
}

type structuredQueryBody struct {
	RoomType    *string  `json:"room_type,omitempty"`
	MaxCapacity *int     `json:"max_capacity,omitempty"`
	ViewType    *string  `json:"view_type,omitempty"`
	Features    []string `json:"features"`
	RawText     string   `json:"raw_text"`
}

type searchResponse struct {
	Query           string                     `json:"query"`
	StructuredQuery structuredQueryBody        `json:"structured_query"`
	Results         []searchuc.FormattedResult `json:"results"`
	Count           int                        `json:"count"`
}

// handleSearch handles POST /search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body searchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if body.Query == "" {
		writeError(w, http.StatusBadRequest, codeEmptyQuery, "Query cannot be empty")
		return
	}

	ctx := r.Context()

	q, err := s.parser.Parse(ctx, body.Query)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		s.handleDomainError(w, ctx, err)
		return
	}

	req, err := s.buildRequest(q, body)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		s.handleDomainError(w, ctx, err)
		return
	}

	snapshot := s.catalog.Snapshot()
	results, err := s.search.Search(ctx, snapshot, req)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		s.handleDomainError(w, ctx, err)
		return
	}

	metrics.SearchesTotal.WithLabelValues("ok").Inc()
	formatted := searchuc.Format(results, snapshot)
	writeJSON(w, http.StatusOK, searchResponse{
		Query:           body.Query,
		StructuredQuery: structuredQueryToBody(q),
		Results:         formatted,
		Count:           len(formatted),
	})
}

// buildRequest merges the server defaults with per-call overrides.
func (s *Server) buildRequest(q query.Query, body searchRequestBody) (request.Request, error) {
	keywordWeight := s.defaults.KeywordWeight
	if body.KeywordWeight != nil {
		keywordWeight = *body.KeywordWeight
	}
	semanticWeight := s.defaults.SemanticWeight
	if body.SemanticWeight != nil {
		semanticWeight = *body.SemanticWeight
	}
	keywordMinScore := s.defaults.KeywordMinScore
	if body.KeywordMinScore != nil {
		keywordMinScore = *body.KeywordMinScore
	}
	semanticMinScore := s.defaults.SemanticMinScore
	if body.SemanticMinScore != nil {
		semanticMinScore = *body.SemanticMinScore
	}
	maxResults := s.defaults.MaxResults
	if body.MaxResults != nil {
		maxResults = *body.MaxResults
	}
	return request.New(q, keywordWeight, semanticWeight, keywordMinScore, semanticMinScore, maxResults)
}

type analyzeRequestBody struct {
	Force bool `json:"force"`
}

type analyzeResponse struct {
	Analyzed    int `json:"analyzed"`
	CatalogSize int `json:"catalog_size"`
}

// handleAnalyze handles POST /analyze.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body analyzeRequestBody
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	analyzed, err := s.analyze.AnalyzeAll(r.Context(), s.imageURLs, body.Force)
	if err != nil {
		s.handleDomainError(w, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Analyzed:    analyzed,
		CatalogSize: s.catalog.Len(),
	})
}

type healthResponse struct {
	Status      string            `json:"status"`
	Checks      map[string]string `json:"checks"`
	CatalogSize int               `json:"catalog_size"`
}

// handleHealth handles GET /health. A degraded semantic channel still
// serves keyword searches, so degraded reports 200.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:      string(report.Status),
		Checks:      checks,
		CatalogSize: report.CatalogSize,
	})
}

func structuredQueryToBody(q query.Query) structuredQueryBody {
	body := structuredQueryBody{
		Features: q.Features(),
		RawText:  q.RawText(),
	}
	if body.Features == nil {
		body.Features = []string{}
	}
	if v, ok := q.RoomType(); ok {
		body.RoomType = &v
	}
	if v, ok := q.MaxCapacity(); ok {
		body.MaxCapacity = &v
	}
	if v, ok := q.ViewType(); ok {
		body.ViewType = &v
	}
	return body
}

// handleDomainError maps domain sentinels to HTTP statuses; anything
// unmatched is a 500.
func (s *Server) handleDomainError(w http.ResponseWriter, ctx context.Context, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	logger.FromContext(ctx).Error("Unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "Internal server error")
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if errors.Is(err, sentinel) {
			writeError(w, status, code, err.Error())
			return true
		}
		return false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
