package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Base is a coded error shared across modules. Code is stable and intended
// for programmatic handling; Message is a human-readable default.
type Base struct {
	Code    string
	Message string
	Details string
}

func (e *Base) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
}

func NewError(code, message, details string) *Base {
	return &Base{Code: code, Message: message, Details: details}
}

// ValidationErrors maps a field name to its failure.
type ValidationErrors map[string]*Base

// ProcessValidatorErrors converts go-playground validator failures into
// field-keyed coded errors.
func ProcessValidatorErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = NewError(
			"VALIDATION_"+fe.Tag(),
			fmt.Sprintf("field %s failed on the %q rule", fe.Field(), fe.Tag()),
			fe.Param(),
		)
	}
	return out
}
