// Package forms validates the drafts the views collect before submitting
// them. The only rule is the sign-up gate: a password of at least five
// characters, typed twice. Everything else is checked by the server.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest password a user form accepts.
const MinPasswordLength = 5

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError lists every field that failed, in struct order.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Validate checks v against its `validate` struct tags.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	ve := &ValidationError{Problems: make([]string, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		ve.Problems = append(ve.Problems, describe(fe))
	}
	return ve
}

// CanSubmit reports whether the draft passes validation.
func CanSubmit(v any) bool {
	return Validate(v) == nil
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
