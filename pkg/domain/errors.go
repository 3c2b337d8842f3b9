package domain

import "errors"

// Error kinds surfaced by the rate client, the symbol cache and the services.
var (
	// ErrNetwork is returned when the upstream API could not be reached or answered with a non-2xx status
	ErrNetwork = errors.New("network error")
	// ErrEmptyResponse is returned when the upstream API answered with no data
	ErrEmptyResponse = errors.New("empty response")
	// ErrMalformedResponse is returned when the upstream payload does not have the expected shape
	ErrMalformedResponse = errors.New("malformed response")
	// ErrInvalidInput is returned for amounts or codes that cannot be used for a conversion
	ErrInvalidInput = errors.New("invalid input")
	// ErrCacheWrite is returned when a symbol cache reset failed and was rolled back
	ErrCacheWrite = errors.New("symbol cache write failed")
	// ErrEmptyCache is returned when a lookup needs a populated symbol cache
	ErrEmptyCache = errors.New("symbol cache is empty")
	// ErrSymbolNotFound is returned when no cached symbol has the requested code
	ErrSymbolNotFound = errors.New("symbol not found")
)

// NetworkError wraps a transport failure of a single upstream operation.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return "network error: " + e.Op
	}
	return "network error: " + e.Op + ": " + e.Err.Error()
}

// Unwrap exposes both the ErrNetwork kind and the underlying cause.
func (e *NetworkError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNetwork}
	}
	return []error{ErrNetwork, e.Err}
}

// CacheWriteError wraps the storage failure that aborted a cache reset.
type CacheWriteError struct {
	Err error
}

func (e *CacheWriteError) Error() string {
	return "symbol cache write failed: " + e.Err.Error()
}

func (e *CacheWriteError) Unwrap() []error {
	return []error{ErrCacheWrite, e.Err}
}
