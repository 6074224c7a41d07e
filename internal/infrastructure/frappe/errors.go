package frappe

import (
	"errors"
	"net/http"
)

// BackendError is the single failure kind surfaced by the client: transport
// failures (StatusCode 0), undecodable bodies and non-2xx responses.
type BackendError struct {
	StatusCode int
	Message    string
	// ExcType is the backend exception class when it sent one, e.g. DoesNotExistError.
	ExcType string
	Err     error
}

func (e *BackendError) Error() string { return e.Message }

func (e *BackendError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a backend "document does not exist" answer.
func IsNotFound(err error) bool {
	var be *BackendError
	if !errors.As(err, &be) {
		return false
	}
	return be.StatusCode == http.StatusNotFound || be.ExcType == "DoesNotExistError"
}
