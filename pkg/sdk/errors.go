package sdk

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped from API error codes.
// Use errors.Is() to check.
var (
	ErrBadRequest        = errors.New("sdk: bad request")
	ErrNotFound          = errors.New("sdk: not found")
	ErrUnauthorized      = errors.New("sdk: unauthorized")
	ErrBackendError      = errors.New("sdk: catalog backend error")
	ErrTranslationFailed = errors.New("sdk: translation failed")
)

// APIError carries the decoded error envelope of a non-2xx response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sdk: api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps the API error code onto a sentinel.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "bad_request":
		if e.StatusCode == 401 {
			return ErrUnauthorized
		}
		return ErrBadRequest
	case "not_found":
		return ErrNotFound
	case "backend_error":
		return ErrBackendError
	case "translation_failed":
		return ErrTranslationFailed
	default:
		return nil
	}
}
