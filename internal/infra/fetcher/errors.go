package fetcher

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by Fetch.
var (
	ErrInvalidURL       = errors.New("invalid url")
	ErrPrivateIP        = errors.New("url resolves to a private address")
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrTimeout          = errors.New("request timed out")
	ErrBodyTooLarge     = errors.New("response body too large")
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned HTTP %d", e.StatusCode)
}
