package errors

import "errors"

// Audit errors
var (
	// ErrMissingScheme is returned when a URL does not start with http:// or https://.
	ErrMissingScheme = errors.New("url is missing an http:// or https:// scheme")
	// ErrRequestFailed wraps every transport-level failure of the outbound request.
	ErrRequestFailed = errors.New("request failed")
)

// Presentation errors
var (
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrMethodNotAllowed  = errors.New("method not allowed")
)
