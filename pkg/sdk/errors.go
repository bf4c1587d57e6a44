package biosearch

import (
	"errors"

	"github.com/kailas-cloud/biosearch/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput   = domain.ErrInvalidInput
	ErrInvalidFacet   = domain.ErrInvalidFacet
	ErrNotFound       = domain.ErrNotFound
	ErrGatewayFailure = domain.ErrGatewayFailure
	ErrThrottled      = domain.ErrThrottled
)

// ErrBlobsNotConfigured is returned by Blobs() calls on a client without WithRedis.
var ErrBlobsNotConfigured = errors.New("biosearch: blob store not configured (use WithRedis)")
