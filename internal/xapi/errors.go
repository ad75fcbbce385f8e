package xapi

import "errors"

// Posting API errors.
// These errors are returned when a live post or credential preflight fails.
//
// Design decision: We define specific error types rather than wrapping all
// errors generically. This lets the CLI distinguish a credentials problem
// (fix the .env) from rate limiting (wait for tomorrow's cron run) in the
// message it prints.
var (
	// ErrUnauthorized is returned when the API rejects the request
	// credentials (HTTP 401/403). The keys are missing write permission,
	// revoked, or simply wrong.
	ErrUnauthorized = errors.New("posting API rejected the credentials")

	// ErrRateLimited is returned when the API reports too many requests
	// (HTTP 429). The daily posting quota may be exhausted.
	ErrRateLimited = errors.New("posting API rate limit exceeded")

	// ErrRejected is returned for any other non-success API response,
	// such as a duplicate status or a malformed request.
	ErrRejected = errors.New("posting API rejected the request")

	// ErrEmptyStatus is returned when the composed status text is empty.
	ErrEmptyStatus = errors.New("refusing to post an empty status")
)
