package dto

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrBinding marks a quote body that is not a JSON object of strings.
var ErrBinding = errors.New("request body must be a JSON object")

// FieldErrors maps a JSON field of a quote body to what is wrong with it.
// It becomes the "details" object of a VALIDATION_ERROR response.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for _, field := range slices.Sorted(maps.Keys(f)) {
		parts = append(parts, field+": "+f[field])
	}

	return "invalid quote: " + strings.Join(parts, "; ")
}

// fieldMessages holds the response wording per validator tag.
var fieldMessages = map[string]string{
	"required": "field required",
	"notblank": "must not be empty",
}

var quoteValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
})

// BindQuote decodes a POST or PUT quote body. A body that does not decode
// wraps ErrBinding; a body with a missing or blank field returns FieldErrors.
func BindQuote(c *gin.Context) (*QuoteRequest, error) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBinding, err)
	}

	if err := quoteValidator().Struct(&req); err != nil {
		return nil, fieldErrors(err)
	}

	return &req, nil
}

func fieldErrors(err error) error {
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}

	out := make(FieldErrors, len(invalid))
	for _, fe := range invalid {
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "failed validation: " + fe.Tag()
		}

		out[fe.Field()] = msg
	}

	return out
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}
