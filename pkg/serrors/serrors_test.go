package serrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBaseError_IsMatchesByCode(t *testing.T) {
	sentinel := NewError("WORKLOG_CAPACITY_EXCEEDED", "cannot log more hours", "")
	wrapped := fmt.Errorf("record worklog: %w", Errorf("WORKLOG_CAPACITY_EXCEEDED", "", "only %.1f hours remaining", 2.5))

	require.True(t, errors.Is(wrapped, sentinel))

	var be *BaseError
	require.True(t, errors.As(wrapped, &be))
	require.Equal(t, "only 2.5 hours remaining", be.Message)
}

func TestBaseError_IsRejectsDifferentCode(t *testing.T) {
	a := NewError("COMPONENT_LOCKED", "component is completed", "")
	b := NewError("WORKLOG_CAPACITY_EXCEEDED", "over capacity", "")
	require.False(t, errors.Is(a, b))
}

func TestNewFieldRequiredError(t *testing.T) {
	err := NewFieldRequiredError("HoursLogged", "WorkTracking.Fields.hours")
	require.Equal(t, "FIELD_REQUIRED", err.Code)
	require.Equal(t, "HoursLogged is required", err.Message)
	require.Equal(t, "WorkTracking.Fields.hours", err.LocaleKey)
}
