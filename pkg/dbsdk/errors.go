package dbsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes emitted by the database service.
const (
	CodeNotFound           = "not_found"
	CodeInvalidState       = "invalid_state"
	CodeValidation         = "validation_error"
	CodeAlreadyExists      = "already_exists"
	CodeServerError        = "server_error"
	CodeServiceUnavailable = "service_unavailable"
)

// Error is a non-2xx answer from the database service, or a transport
// failure reported as 503.
type Error struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *Error) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("dbsdk: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("dbsdk: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

// IsNotFound reports whether err is a 404 from the database service.
func IsNotFound(err error) bool { return statusOf(err) == http.StatusNotFound }

// IsUnavailable reports whether the database service could not be reached.
func IsUnavailable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeServiceUnavailable
}

func statusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// ParseError builds an *Error from a non-2xx response body. Bodies in the service
// format keep their code; anything else keeps the raw text as description.
func ParseError(status int, body []byte) *Error {
	e := &Error{StatusCode: status}
	if json.Unmarshal(body, e) == nil && e.Code != "" {
		return e
	}

	// FastAPI-style {"detail": "..."} bodies from older deployments.
	var detail struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &detail) == nil && detail.Detail != "" {
		e.Description = detail.Detail
	} else {
		e.Description = strings.TrimSpace(string(body))
	}
	e.Code = strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	return e
}

func unavailable(err error) *Error {
	return &Error{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        CodeServiceUnavailable,
		Description: err.Error(),
	}
}
