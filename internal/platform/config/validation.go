package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// devJWTSecret is the signing secret shipped in defaults. It is fine for a
// laptop and refused in prod.
const devJWTSecret = "local-development-secret"

var configValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report koanf keys, the names an operator actually sets
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("koanf")
	})
	v.RegisterStructValidation(validateProdSecret, Config{})

	return v
})

func validateProdSecret(sl validator.StructLevel) {
	cfg, _ := sl.Current().Interface().(Config)
	if cfg.App.Environment == "prod" && cfg.Auth.JWTSecret == devJWTSecret {
		sl.ReportError(cfg.Auth.JWTSecret, "Auth.JWTSecret", "jwt_secret", "notdefault", "")
	}
}

// Validate checks the loaded configuration. Both binaries refuse to start
// on an invalid config. Each problem names the key and its APP_ variable.
func (c *Config) Validate() error {
	err := configValidator().Struct(c)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}

	lines := make([]string, 0, len(invalid))
	for _, fe := range invalid {
		lines = append(lines, describe(fe))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

func describe(fe validator.FieldError) string {
	key := keyPath(fe)
	subject := fmt.Sprintf("%s (%s)", key, envName(key))

	switch fe.Tag() {
	case "required":
		return subject + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", subject, requiredIfCondition(fe.Param()))
	case "min":
		return fmt.Sprintf("%s must be at least %s", subject, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", subject, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", subject, fe.Param())
	case "url":
		return subject + " must be a valid URL"
	case "notdefault":
		return subject + " must be changed from the development default in prod"
	default:
		return fmt.Sprintf("%s failed validation: %s", subject, fe.Tag())
	}
}

// keyPath turns "Config.auth.jwt_secret" into "auth.jwt_secret". The struct
// level check reports under the root, so its field is filled in by hand.
func keyPath(fe validator.FieldError) string {
	if fe.Tag() == "notdefault" {
		return "auth.jwt_secret"
	}

	_, key, _ := strings.Cut(fe.Namespace(), ".")

	return key
}

// envName is the inverse of envKey: store.max_conns is APP_STORE_MAX__CONNS.
func envName(key string) string {
	return "APP_" + strings.ToUpper(strings.ReplaceAll(strings.ReplaceAll(key, "_", "__"), ".", "_"))
}

// requiredIfCondition renders "Driver postgres" as "driver is postgres".
func requiredIfCondition(param string) string {
	field, value, ok := strings.Cut(param, " ")
	if !ok {
		return param
	}

	return fmt.Sprintf("%s is %s", strings.ToLower(field), value)
}
