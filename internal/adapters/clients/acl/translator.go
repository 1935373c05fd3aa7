package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen/quoteshare/internal/adapters/clients"
	"github.com/jsamuelsen/quoteshare/internal/domain"
)

// BaseAdapter provides request execution and error mapping for ACL adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter creates a new base adapter with the given client and service name.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{
		client:      client,
		serviceName: serviceName,
	}
}

// ServiceName returns the name of the external service.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// call describes one outbound request.
type call struct {
	method    string
	path      string
	body      io.Reader
	operation string
	entityID  string
	opts      []clients.RequestOption
}

// do executes the call. On a 2xx the body is returned and the caller must
// close it; anything else is drained, closed and mapped to a domain error.
func (a *BaseAdapter) do(ctx context.Context, c call) (io.ReadCloser, error) {
	var (
		resp *http.Response
		err  error
	)

	switch c.method {
	case http.MethodGet:
		resp, err = a.client.Get(ctx, c.path, c.opts...)
	case http.MethodPost:
		resp, err = a.client.Post(ctx, c.path, c.body, c.opts...)
	case http.MethodPut:
		resp, err = a.client.Put(ctx, c.path, c.body, c.opts...)
	case http.MethodDelete:
		resp, err = a.client.Delete(ctx, c.path, c.opts...)
	default:
		return nil, fmt.Errorf("unsupported method %s", c.method)
	}

	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, c.operation, c.entityID)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer closeQuietly(resp.Body)

		return nil, MapHTTPError(resp, nil, a.serviceName, c.operation, c.entityID)
	}

	return resp.Body, nil
}

// closeQuietly drains a little of the body so the connection can be reused.
func closeQuietly(body io.ReadCloser) {
	_, _ = io.CopyN(io.Discard, body, maxErrorBody)
	_ = body.Close()
}

// DecodeResponse reads and decodes a JSON response body into the target type.
// Closes the body after reading.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// ValidateRequired checks that a required field is not blank.
// Returns a domain.ValidationError carrying the rejected value.
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationErrorWithValue(fieldName, "is required", value)
	}

	return nil
}

// Translator is a function type that translates an external DTO to a domain type.
// The function should validate the external data and return a domain error
// if validation fails.
type Translator[External any, Domain any] func(ext *External) (*Domain, error)

// TranslateSlice applies a translator function to a slice of external DTOs.
// The result is never nil. If any translation fails, returns the first error.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, *translated)
	}

	return result, nil
}
