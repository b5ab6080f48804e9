package narrative

import "errors"

var (
	// ErrUnavailable indicates the narrative service is unreachable.
	ErrUnavailable = errors.New("narrative service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("narrative request timed out")

	// ErrMalformedResponse indicates the service answered with something
	// other than completion text.
	ErrMalformedResponse = errors.New("malformed narrative response")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("narrative retry attempts exhausted")
)
