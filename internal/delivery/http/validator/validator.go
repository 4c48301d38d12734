// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "creatorkit/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *validator.Validate
}

// New builds the request validator installed on the echo server.
func New() *echoValidator {
	return &echoValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
