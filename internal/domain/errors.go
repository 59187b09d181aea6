package domain

import (
	"context"
	"errors"
	"net"
)

var (
	// ErrMissingImage is returned when no image bytes were supplied
	ErrMissingImage = errors.New("image is required")

	// ErrInvalidMIMEType is returned when the MIME type is missing or not an accepted image type
	ErrInvalidMIMEType = errors.New("invalid image MIME type")

	// ErrEncoding is returned when the image stream cannot be read or encoded
	ErrEncoding = errors.New("image encoding failed")

	// ErrAuth is returned when no API key is configured for the model endpoint
	ErrAuth = errors.New("model API key not configured")

	// ErrTransport is returned for network failures, timeouts and cancellations
	ErrTransport = errors.New("model request transport failure")

	// ErrUpstream is returned when the model endpoint answers with a non-2xx status or no content
	ErrUpstream = errors.New("model API request failed")

	// ErrEmptyResponse is returned when the parser is handed blank model output
	ErrEmptyResponse = errors.New("empty model response")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidPresentation is returned when generated presentation content fails validation
	ErrInvalidPresentation = errors.New("generated presentation is invalid")
)

// IsRetryable reports whether the caller may retry the operation that produced err.
// Nothing is retried internally.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrUpstream) ||
		errors.Is(err, ErrEmptyResponse) ||
		errors.Is(err, ErrInvalidPresentation)
}

// IsTimeout reports whether err was caused by a deadline or transport timeout
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
