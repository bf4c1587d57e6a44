package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/biosearch/internal/domain"
	blobuc "github.com/kailas-cloud/biosearch/internal/usecase/blob"
	healthuc "github.com/kailas-cloud/biosearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/biosearch/internal/usecase/search"
)

// ErrorCode is the machine-readable code of an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeInvalidFacet     ErrorCode = "invalid_facet"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeMethodNotAllowed ErrorCode = "method_not_allowed"
	ErrorCodeThrottled        ErrorCode = "throttled"
	ErrorCodeGatewayError     ErrorCode = "gateway_error"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the JSON body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// CountResponse is the JSON body of the count endpoints.
type CountResponse struct {
	Count int64 `json:"count"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the biography and story search API.
type Server struct {
	search        *searchuc.Service
	blobs         *blobuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. blobs may be nil when no document
// store is configured; the blob route is then not mounted.
func NewServer(
	search *searchuc.Service,
	blobs *blobuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search: search,
		blobs:  blobs,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidFacet, http.StatusBadRequest, ErrorCodeInvalidFacet),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, ErrorCodeBadRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrThrottled, http.StatusServiceUnavailable, ErrorCodeThrottled),
		sentinelHandler(domain.ErrGatewayFailure, http.StatusBadGateway, ErrorCodeGatewayError),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Route("/biographies", func(r chi.Router) {
			r.Get("/search", s.SearchBiographies)
			r.Get("/born", s.BiographiesBorn)
			r.Get("/by-ids", s.BiographiesByIDs)
			r.Get("/count", s.CountBiographies)
		})
		r.Route("/stories", func(r chi.Router) {
			r.Get("/search", s.SearchStories)
			r.Get("/by-tags", s.StoriesByTags)
			r.Get("/by-ids", s.StoriesByIDs)
			r.Get("/tags/counts", s.TagCounts)
			r.Get("/count", s.CountStories)
		})
		if s.blobs != nil {
			r.Get("/blobs/{container}/{name}", s.GetBlob)
		}
	})
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

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a message for the client without exposing internals.
// Caller mistakes and remote search failures are reported in full.
func safeDomainMessage(err error) string {
	propagated := []error{
		domain.ErrInvalidInput,
		domain.ErrInvalidFacet,
		domain.ErrThrottled,
		domain.ErrGatewayFailure,
	}
	for _, s := range propagated {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound.Error()
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
