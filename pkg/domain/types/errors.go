package types

import "github.com/m-mizutani/goerr/v2"

// Error tags for classifying failures at the HTTP boundary
var (
	// ErrTagInvalidPayload marks client input errors (malformed or missing
	// fields). Handlers map these to 4xx responses.
	ErrTagInvalidPayload = goerr.NewTag("invalid_payload")
)
