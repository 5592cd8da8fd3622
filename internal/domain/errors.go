package domain

import "errors"

// Error taxonomy shared by the gateway and the aggregation use cases.
// Identity-establishing fetches surface these directly; enrichment fetches
// swallow them and degrade to zero values.
var (
	// ErrNotFound means the referenced resource does not exist upstream.
	ErrNotFound = errors.New("resource not found")
	// ErrRateLimited means the upstream API refused the call due to rate limits.
	ErrRateLimited = errors.New("rate limited by upstream API")
	// ErrNetwork is a transport-level failure or timeout.
	ErrNetwork = errors.New("network failure")
	// ErrMalformed means the response body did not match the expected shape.
	ErrMalformed = errors.New("malformed upstream response")
	// ErrIndexOutOfRange means the requested contributor index exceeds the fetched list.
	ErrIndexOutOfRange = errors.New("contributor index out of range")
	// ErrInvalidReference means the submitted URL could not be classified.
	ErrInvalidReference = errors.New("invalid repository or organization URL")
)
