// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can declare constraints on bound requests.
package validator

import (
	"github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *validator.Validate
}

// New creates a request validator for the echo server.
func New() *echoValidator {
	return &echoValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator.
func (v *echoValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
