package serrors

import "fmt"

// BaseError is a coded error shared by all modules. Code is stable and
// machine-readable, Message is the human-readable reason, LocaleKey is an
// optional translation key for the presentation layer.
type BaseError struct {
	Code      string
	Message   string
	LocaleKey string
}

func (e *BaseError) Error() string {
	return e.Message
}

func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return other.Code == e.Code
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

// Errorf builds a BaseError with a formatted message while keeping the code.
func Errorf(code, localeKey, format string, args ...any) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		LocaleKey: localeKey,
	}
}

func NewFieldRequiredError(field, localeKey string) *BaseError {
	return &BaseError{
		Code:      "FIELD_REQUIRED",
		Message:   fmt.Sprintf("%s is required", field),
		LocaleKey: localeKey,
	}
}
