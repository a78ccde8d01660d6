package domain

import "errors"

// Error taxonomy for upstream calls. The provider adapter classifies every
// failure into exactly one of these; callers branch with errors.Is.
var (
	// ErrCoinNotFound: the symbol resolves to nothing, or the provider
	// answered 404. Distinct from transport failures so the HTTP layer can
	// answer 404 instead of 5xx.
	ErrCoinNotFound = errors.New("coin not found")

	// ErrTimeout: the bounded wait for the provider was exceeded.
	ErrTimeout = errors.New("provider request timed out")

	// ErrNetwork: the provider host was unreachable or the connection failed.
	ErrNetwork = errors.New("provider unreachable")

	// ErrParse: the provider answered 2xx but the body was not JSON or did
	// not match the expected shape.
	ErrParse = errors.New("malformed provider response")

	// ErrUpstream: any other non-2xx provider status.
	ErrUpstream = errors.New("provider request failed")

	// ErrNoData: the provider answered with an empty series where the caller
	// needs at least one point.
	ErrNoData = errors.New("no data for coin")
)
