package domain

import (
	"errors"
	"fmt"
)

// KeyPrefix namespaces all keys written to the mapping store.
const KeyPrefix = "searchgate:"

var (
	// ErrInvalidArgs signals a rejected request: malformed query, missing
	// query/map on a facets request, or an out-of-range pagination bound.
	ErrInvalidArgs = errors.New("invalid arguments")
	// ErrNotFound signals a well-formed lookup that matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrBackendUnavailable signals a catalog backend transport failure.
	ErrBackendUnavailable = errors.New("catalog backend unavailable")
	// ErrTranslationFailed signals a translation provider failure.
	ErrTranslationFailed = errors.New("translation failed")
)

// BackendStatusError wraps ErrBackendUnavailable with the HTTP status the
// catalog backend answered with.
type BackendStatusError struct {
	Status int
}

func (e *BackendStatusError) Error() string {
	return fmt.Sprintf("%s: status %d", ErrBackendUnavailable.Error(), e.Status)
}

func (e *BackendStatusError) Unwrap() error { return ErrBackendUnavailable }

// NewBackendStatus creates a backend status error.
func NewBackendStatus(status int) error {
	return &BackendStatusError{Status: status}
}
