package api

import (
	"errors"
	"fmt"
)

// DefaultErrorMessage is used when a failed response carries no error text.
const DefaultErrorMessage = "Request failed"

// APIError is a non-2xx response to a write request.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// LoadError is returned by FetchJSON for any failed read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return "failed to load: " + e.Path
}

func (e *LoadError) Unwrap() error { return e.Err }

type errorPayload struct {
	Error string `json:"error"`
}

// UserMessage returns the text to show a user for err: the server's message
// for an APIError, fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
