package api

import (
	"fmt"
	"net/http"

	"github.com/hammamikhairi/recipegen/internal/domain"
)

// ConnectionError reports that no response reached the client. Its
// message is the fixed connectivity text; the cause is kept for logs.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string { return domain.MsgConnection }

func (e *ConnectionError) Unwrap() error { return e.Err }

// APIError is a well-formed error answer from the service. Its message
// is the service's error field, verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// StatusError is a non-2xx answer that carried no error field.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// RetrievalError reports a failed history fetch.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string { return domain.MsgRetrieval }

func (e *RetrievalError) Unwrap() error { return e.Err }

// errorBody is the service's error envelope.
type errorBody struct {
	Error string `json:"error"`
}
