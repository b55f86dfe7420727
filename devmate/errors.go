package devmate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the DevMate client
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid devmate configuration")
	// ErrIllegalArgument is returned before any request is sent when an id or
	// a required payload field is missing or out of range
	ErrIllegalArgument = errors.New("illegal argument")
	// ErrInvalidResponse indicates a payload could not be decoded as requested
	ErrInvalidResponse = errors.New("invalid response from DevMate API")

	// ErrIncorrectParams is the kind of a 400 response
	ErrIncorrectParams = errors.New("incorrect parameters")
	// ErrNotFound is the kind of a 404 response
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is the kind of a 409 response
	ErrConflict = errors.New("conflict")
	// ErrClient is the kind of any other 4xx response
	ErrClient = errors.New("client error")
	// ErrServer is the kind of a 5xx response
	ErrServer = errors.New("server error")
	// ErrRequest is the kind of any other non-2xx response, 3xx included
	ErrRequest = errors.New("request error")
)

// APIError is a single entry of the "errors" array the API reports
type APIError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// RequestError is returned for every non-2xx response
type RequestError struct {
	// Kind is one of ErrIncorrectParams, ErrNotFound, ErrConflict, ErrClient,
	// ErrServer or ErrRequest
	Kind       error
	StatusCode int
	Errors     []APIError
}

// Error implements the error interface
func (e *RequestError) Error() string {
	msg := fmt.Sprintf("devmate API error: status %d: %s", e.StatusCode, e.Kind)
	if len(e.Errors) == 0 {
		return msg
	}

	details := make([]string, 0, len(e.Errors))
	for _, apiErr := range e.Errors {
		if apiErr.Detail == "" {
			details = append(details, apiErr.Title)
			continue
		}
		details = append(details, apiErr.Title+": "+apiErr.Detail)
	}
	return msg + " (" + strings.Join(details, "; ") + ")"
}

// Unwrap exposes the kind so errors.Is(err, ErrNotFound) works
func (e *RequestError) Unwrap() error {
	return e.Kind
}

// IsNotFound checks if the error indicates a not found response
func (e *RequestError) IsNotFound() bool {
	return e.Kind == ErrNotFound
}

// IsConflict checks if the error indicates a conflicting resource
func (e *RequestError) IsConflict() bool {
	return e.Kind == ErrConflict
}

// statusRule pairs a status predicate with the error kind it produces.
// A nil kind means success
type statusRule struct {
	match func(code int) bool
	kind  error
}

func statusIn(lo, hi int) func(int) bool {
	return func(code int) bool {
		return code >= lo && code <= hi
	}
}

func statusIs(want int) func(int) bool {
	return func(code int) bool {
		return code == want
	}
}

// statusRules is evaluated top to bottom; specific codes come before the
// ranges that contain them
var statusRules = []statusRule{
	{match: statusIn(200, 299), kind: nil},
	{match: statusIs(400), kind: ErrIncorrectParams},
	{match: statusIs(404), kind: ErrNotFound},
	{match: statusIs(409), kind: ErrConflict},
	{match: statusIn(400, 499), kind: ErrClient},
	{match: statusIn(500, 599), kind: ErrServer},
}

// classifyStatus returns the error kind for a status code, or nil on success
func classifyStatus(code int) error {
	for _, rule := range statusRules {
		if rule.match(code) {
			return rule.kind
		}
	}
	return ErrRequest
}

// checkResponse turns a non-2xx status into a *RequestError carrying the
// errors reported in the body, if any
func checkResponse(statusCode int, body []byte) error {
	kind := classifyStatus(statusCode)
	if kind == nil {
		return nil
	}

	return &RequestError{
		Kind:       kind,
		StatusCode: statusCode,
		Errors:     parseAPIErrors(body),
	}
}

func parseAPIErrors(body []byte) []APIError {
	var payload struct {
		Errors []APIError `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	return payload.Errors
}
