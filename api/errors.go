package api

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Error is a non-2xx answer from the backend. Message carries the server's
// human-readable explanation when one was sent; callers show it to the user
// as-is.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the backend, i.e. the
// stored token is missing, expired or revoked.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	// the backend answers either {"error": "..."} or {"message": "..."}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var shape struct {
		Err     string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &shape); err == nil {
		if shape.Err != "" {
			apiErr.Message = shape.Err
		} else {
			apiErr.Message = shape.Message
		}
	}
	return apiErr
}
