package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized marks a 401 from the backend. The session is already cleared when it is returned.
	ErrUnauthorized = errors.New("backend rejected credentials")
	// ErrBackendUnavailable is returned while the circuit breaker is open
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// fieldOrder is the order in which per-field validation messages are surfaced
var fieldOrder = []string{"email", "password", "name"}

// APIError is a non-2xx, non-401 backend response, passed through as is
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
	ErrorText  string
	Errors     []string
	Fields     map[string][]string
	Body       []byte
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.ErrorText
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// FirstError returns the first validation message: email, password, name, then any other field
func (e *APIError) FirstError() string {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	for _, f := range fieldOrder {
		if msgs := e.Fields[f]; len(msgs) > 0 {
			return msgs[0]
		}
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if msgs := e.Fields[k]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	return ""
}

// IsUnauthorized reports whether err came from a 401 response
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsStatus reports whether err is an APIError with the given status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Message derives the user-facing text for err: message, then error, then the
// first validation error, else fallback. Transport failures always yield fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	for _, s := range []string{apiErr.Message, apiErr.ErrorText, apiErr.FirstError()} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return fallback
}

type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Method:     method,
		Path:       path,
		Body:       body,
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return apiErr
	}

	apiErr.Message = rawString(eb.Message)
	apiErr.ErrorText = rawString(eb.Error)
	apiErr.Errors, apiErr.Fields = parseErrors(eb.Errors)
	return apiErr
}

// rawString returns raw as a string when it is a JSON string, empty otherwise
func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// parseErrors accepts ["msg", ...] or {"field": ["msg", ...] | "msg"}
func parseErrors(raw json.RawMessage) ([]string, map[string][]string) {
	if len(raw) == 0 {
		return nil, nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s := rawString(item); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, nil
	}

	out := make(map[string][]string, len(fields))
	for k, v := range fields {
		if s := rawString(v); s != "" {
			out[k] = []string{s}
			continue
		}
		var msgs []string
		if err := json.Unmarshal(v, &msgs); err == nil && len(msgs) > 0 {
			out[k] = msgs
		}
	}
	return nil, out
}
