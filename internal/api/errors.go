package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

// Error is a non-success response from the translation service
type Error struct {
	StatusCode int
	// Detail is the server supplied message, empty when the body had none
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Detail returns the server supplied message wrapped in err, if any
func Detail(err error) (string, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}

// Message picks the text shown to the user for err: the server detail
// when present, otherwise fallback.
func Message(err error, fallback string) string {
	if detail, ok := Detail(err); ok {
		return detail
	}
	return fallback
}

// parseError builds an *Error from a failed response body. Only a string
// detail counts; anything else leaves Detail empty.
func parseError(status int, body []byte) *Error {
	apiErr := &Error{StatusCode: status}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		apiErr.Detail = detail
	}
	return apiErr
}
