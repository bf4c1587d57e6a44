package azsearch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/kailas-cloud/biosearch/internal/domain"
)

// StatusError is a non-2xx response from the search service.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("search service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("search service returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status to domain.ErrThrottled (429, 503) or domain.ErrGatewayFailure.
func (e *StatusError) Unwrap() error {
	if IsThrottleStatus(e.StatusCode) {
		return domain.ErrThrottled
	}
	return domain.ErrGatewayFailure
}

// IsThrottleStatus reports whether the service shed the call under load.
func IsThrottleStatus(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

// maxErrorBody bounds how much of an error body is read.
const maxErrorBody = 4 << 10

// parseErrorBody extracts the service's error message, falling back to the raw body.
func parseErrorBody(body []byte) string {
	var parsed struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
		if parsed.Error.Code != "" {
			return parsed.Error.Code + ": " + parsed.Error.Message
		}
		return parsed.Error.Message
	}
	return strings.TrimSpace(string(body))
}
