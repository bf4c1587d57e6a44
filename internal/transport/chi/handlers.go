package chi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/biosearch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/biosearch/internal/logger"
)

// SearchBiographies handles GET /api/biographies/search.
func (s *Server) SearchBiographies(w http.ResponseWriter, r *http.Request) {
	q, err := parseTextQuery(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writePage(w, r)(s.search.SearchBiographies(r.Context(), q))
}

// BiographiesBorn handles GET /api/biographies/born.
func (s *Server) BiographiesBorn(w http.ResponseWriter, r *http.Request) {
	q, err := parseDateQuery(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writePage(w, r)(s.search.BiographiesBorn(r.Context(), q))
}

// BiographiesByIDs handles GET /api/biographies/by-ids.
func (s *Server) BiographiesByIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDs(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writePage(w, r)(s.search.BiographiesByIDs(r.Context(), ids))
}

// CountBiographies handles GET /api/biographies/count.
func (s *Server) CountBiographies(w http.ResponseWriter, r *http.Request) {
	s.writeCount(w, r, s.search.CountBiographies)
}

// SearchStories handles GET /api/stories/search.
func (s *Server) SearchStories(w http.ResponseWriter, r *http.Request) {
	q, err := parseTextQuery(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writePage(w, r)(s.search.SearchStories(r.Context(), q))
}

// StoriesByTags handles GET /api/stories/by-tags.
func (s *Server) StoriesByTags(w http.ResponseWriter, r *http.Request) {
	q, err := parseTagQuery(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writePage(w, r)(s.search.StoriesByTags(r.Context(), q))
}

// StoriesByIDs handles GET /api/stories/by-ids.
func (s *Server) StoriesByIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDs(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writePage(w, r)(s.search.StoriesByIDs(r.Context(), ids))
}

// TagCounts handles GET /api/stories/tags/counts.
func (s *Server) TagCounts(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writePage(w, r)(s.search.TagCounts(r.Context(), sel))
}

// CountStories handles GET /api/stories/count.
func (s *Server) CountStories(w http.ResponseWriter, r *http.Request) {
	s.writeCount(w, r, s.search.CountStories)
}

// GetBlob handles GET /api/blobs/{container}/{name}. The body is the stored bytes.
func (s *Server) GetBlob(w http.ResponseWriter, r *http.Request) {
	b, err := s.blobs.Fetch(r.Context(), chi.URLParam(r, "container"), chi.URLParam(r, "name"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", b.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(b.Length, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b.Data); err != nil {
		s.requestLogger(r).Warn("write blob", zap.Error(err))
	}
}

// writePage returns a sink for a service call's (page, err) pair.
func (s *Server) writePage(w http.ResponseWriter, r *http.Request) func(*result.Page, error) {
	return func(page *result.Page, err error) {
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		if page.Documents == nil {
			page.Documents = []result.Document{}
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func (s *Server) writeCount(w http.ResponseWriter, r *http.Request, count func(context.Context) (int64, error)) {
	n, err := count(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CountResponse{Count: n})
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logpkg.FromContextOr(r.Context(), s.logger)
}
