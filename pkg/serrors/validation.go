package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors maps a struct field name to the error describing why the
// field was rejected.
type ValidationErrors map[string]*BaseError

func (v ValidationErrors) First() *BaseError {
	for _, err := range v {
		return err
	}
	return nil
}

// ProcessValidatorErrors converts go-playground/validator errors into coded
// validation errors keyed by field name.
func ProcessValidatorErrors(errs validator.ValidationErrors, localeKey func(field string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fieldErr := range errs {
		key := ""
		if localeKey != nil {
			key = localeKey(fieldErr.Field())
		}
		switch fieldErr.Tag() {
		case "required":
			out[fieldErr.Field()] = NewFieldRequiredError(fieldErr.Field(), key)
		default:
			out[fieldErr.Field()] = &BaseError{
				Code:      "VALIDATION_FAILED",
				Message:   fmt.Sprintf("%s failed on the %q rule", fieldErr.Field(), fieldErr.Tag()),
				LocaleKey: key,
			}
		}
	}
	return out
}
