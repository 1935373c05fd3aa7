package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"

	"github.com/jsamuelsen/quoteshare/internal/adapters/clients"
	"github.com/jsamuelsen/quoteshare/internal/domain"
)

// maxErrorBody caps how much of an error body is read.
const maxErrorBody = 64 << 10

// ErrorResponse is an error body from the Quotes API. Three shapes are
// understood: the nested envelope {"error":{"code","message","details"}},
// a flat {"code","message"}, and FastAPI's {"detail": ...} where detail is
// either a string or a list of {"loc","msg"} entries.
type ErrorResponse struct {
	Error   ErrorDetail     `json:"error"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Detail  json.RawMessage `json:"detail,omitempty"`
	TraceID string          `json:"traceId,omitempty"`
}

// ErrorDetail contains error information from the nested envelope.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// fastAPIValidationItem is one entry of a FastAPI 422 detail list.
type fastAPIValidationItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// GetCode returns the error code from either nested or top-level format.
func (e *ErrorResponse) GetCode() string {
	if e.Error.Code != "" {
		return e.Error.Code
	}

	return e.Code
}

// GetMessage returns the most specific human-readable message available.
func (e *ErrorResponse) GetMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}

	if e.Message != "" {
		return e.Message
	}

	if s, ok := e.detailString(); ok {
		return s
	}

	if items := e.detailItems(); len(items) > 0 {
		return items[0].Msg
	}

	return ""
}

// FieldErrors returns per-field messages from either the envelope details
// or a FastAPI validation list. The field is the last element of loc.
func (e *ErrorResponse) FieldErrors() map[string]string {
	if len(e.Error.Details) > 0 {
		return e.Error.Details
	}

	items := e.detailItems()
	if len(items) == 0 {
		return nil
	}

	out := make(map[string]string, len(items))
	for _, it := range items {
		if len(it.Loc) == 0 {
			continue
		}

		out[fmt.Sprint(it.Loc[len(it.Loc)-1])] = it.Msg
	}

	return out
}

func (e *ErrorResponse) detailString() (string, bool) {
	if len(e.Detail) == 0 {
		return "", false
	}

	var s string
	if err := json.Unmarshal(e.Detail, &s); err != nil {
		return "", false
	}

	return s, true
}

func (e *ErrorResponse) detailItems() []fastAPIValidationItem {
	if len(e.Detail) == 0 {
		return nil
	}

	var items []fastAPIValidationItem
	if err := json.Unmarshal(e.Detail, &items); err != nil {
		return nil
	}

	return items
}

// Error codes emitted by the Quotes API envelope.
const (
	ExternalCodeNotFound     = "NOT_FOUND"
	ExternalCodeValidation   = "VALIDATION_ERROR"
	ExternalCodeForbidden    = "FORBIDDEN"
	ExternalCodeUnauthorized = "UNAUTHORIZED"
	ExternalCodeInternal     = "INTERNAL_ERROR"
)

// ParseErrorResponse attempts to parse an error response body.
// Returns nil if the body is empty or cannot be parsed.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.GetCode() == "" && errResp.GetMessage() == "" && len(errResp.FieldErrors()) == 0 {
		return nil
	}

	return &errResp
}

// MapHTTPError maps an HTTP response or client failure to a domain error.
//
// Parameters:
//   - resp: The HTTP response (may be nil for transport errors)
//   - clientErr: Any error from the HTTP client (may be nil)
//   - serviceName: Name of the remote service for error context
//   - operation: The operation being performed (e.g., "update quote")
//   - entityID: The quote id involved, used for NotFoundError
//
// Returns nil for 2xx responses.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation, entityID string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewNetworkError(serviceName, operation, errors.New("no response received"))
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	var errResp *ErrorResponse
	if resp.Body != nil {
		errResp = ParseErrorResponse(resp.Body)
	}

	return mapStatusCode(resp.StatusCode, errResp, serviceName, operation, entityID)
}

// mapClientError translates client-level errors to domain errors.
// Both an open circuit and a transport failure mean no response was read.
func mapClientError(err error, serviceName, operation string) error {
	return domain.NewNetworkError(serviceName, operation, transportCause(err))
}

// transportCause strips the clients.ErrTransport marker so the domain error
// carries the underlying cause (context.DeadlineExceeded, *net.OpError, ...).
func transportCause(err error) error {
	multi, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return err
	}

	for _, e := range multi.Unwrap() {
		if e != clients.ErrTransport { //nolint:errorlint // identity check on the marker itself
			return e
		}
	}

	return err
}

// mapStatusCode translates HTTP status codes to domain errors.
func mapStatusCode(status int, errResp *ErrorResponse, serviceName, operation, entityID string) error {
	message := defaultMessageForStatus(status, operation)
	if errResp != nil && errResp.GetMessage() != "" {
		message = errResp.GetMessage()
	}

	switch status {
	case http.StatusUnauthorized:
		return domain.NewAuthError(message)

	case http.StatusForbidden:
		return domain.NewForbiddenError(operation, message)

	case http.StatusNotFound:
		return domain.NewNotFoundError("quote", entityID)

	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return validationFrom(errResp, message)

	case http.StatusTooManyRequests:
		return domain.NewServerError(serviceName, status, message)

	default:
		if status >= http.StatusInternalServerError {
			return domain.NewServerError(serviceName, status, message)
		}

		if errResp != nil && errResp.GetCode() != "" {
			return mapExternalCode(errResp.GetCode(), status, errResp, message, serviceName, operation, entityID)
		}

		// Unknown 4xx errors default to validation.
		return domain.NewValidationError("", message)
	}
}

// validationFrom picks a deterministic field error when the body names one.
func validationFrom(errResp *ErrorResponse, message string) error {
	if errResp == nil {
		return domain.NewValidationError("", message)
	}

	fields := errResp.FieldErrors()
	if len(fields) == 0 {
		return domain.NewValidationError("", message)
	}

	// text before author, then anything else alphabetically
	for _, f := range []string{"text", "author"} {
		if msg, ok := fields[f]; ok {
			return domain.NewValidationError(f, msg)
		}
	}

	first := slices.Sorted(maps.Keys(fields))[0]

	return domain.NewValidationError(first, fields[first])
}

// defaultMessageForStatus returns a default message for an HTTP status.
func defaultMessageForStatus(status int, operation string) string {
	switch status {
	case http.StatusNotFound:
		return "quote not found"
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "invalid request"
	case http.StatusForbidden:
		return "not authorized"
	case http.StatusUnauthorized:
		return "authentication required"
	case http.StatusTooManyRequests:
		return "rate limit exceeded"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	default:
		return fmt.Sprintf("%s failed with status %d", operation, status)
	}
}

// mapExternalCode classifies a status the switch does not cover (409, 410,
// 418, ...) by its envelope code. Unknown codes stay validation errors.
func mapExternalCode(code string, status int, errResp *ErrorResponse, message, serviceName, operation, entityID string) error {
	switch code {
	case ExternalCodeNotFound:
		return domain.NewNotFoundError("quote", entityID)
	case ExternalCodeForbidden:
		return domain.NewForbiddenError(operation, message)
	case ExternalCodeUnauthorized:
		return domain.NewAuthError(message)
	case ExternalCodeInternal:
		return domain.NewServerError(serviceName, status, message)
	default:
		return validationFrom(errResp, message)
	}
}
