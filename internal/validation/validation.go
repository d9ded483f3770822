package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	app_errors "supportbot/internal/errors"

	"github.com/go-playground/validator/v10"
)

// This package provides a shared validator for outgoing client payloads,
// incoming dev-backend requests and the loaded configuration. The validator
// caches struct metadata, so a single instance is reused.

var (
	validate *validator.Validate
	once     sync.Once
)

func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct checks payload against the rules in its `validate` tags.
// A failure is returned as a wrapped app_errors.ErrValidation listing every
// offending field.
func Struct(payload any) error {
	err := getInstance().Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: an unexpected error occurred during validation: %s", app_errors.ErrValidation, err.Error())
	}

	var errorMessages []string
	for _, fieldErr := range validationErrors {
		// Example output: "Field 'Rating' failed on the 'max' tag"
		errorMessages = append(errorMessages, fmt.Sprintf("Field '%s' failed on the '%s' tag", fieldErr.Field(), fieldErr.Tag()))
	}

	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(errorMessages, "; "))
}

// Var checks a single value against a tag such as "min=1,max=5".
func Var(value any, tag string) error {
	if err := getInstance().Var(value, tag); err != nil {
		return fmt.Errorf("%w: value %v failed on '%s'", app_errors.ErrValidation, value, tag)
	}
	return nil
}
