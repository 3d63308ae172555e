package domain

import "errors"

// Sentinel errors for the failure taxonomy. Callers classify wrapped
// errors with errors.Is.
var (
	// ErrMissingConfig means a required environment variable is absent.
	// It is raised before any network call is attempted.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrAuthentication means the GitHub token was rejected.
	ErrAuthentication = errors.New("github authentication failed")

	// ErrNetwork means the GitHub API was unreachable or returned a
	// non-credential transport failure.
	ErrNetwork = errors.New("github api request failed")

	// ErrFetchTimeout means a fetch exceeded its bounded deadline.
	ErrFetchTimeout = errors.New("fetch timed out")

	// ErrInvalidInput means a fetcher violated its contract by returning
	// no record sequence at all.
	ErrInvalidInput = errors.New("invalid input from fetcher")
)
