package domain

import "errors"

var (
	// ErrInvalidInput signals a malformed request rejected before any remote call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidFacet signals a facet value rejected by strict validation.
	ErrInvalidFacet = errors.New("invalid facet")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrGatewayFailure signals a failure of the remote search or storage service.
	ErrGatewayFailure = errors.New("search service failure")
	// ErrThrottled signals the remote service rejected the call due to load.
	ErrThrottled = errors.New("search service throttled")
)
