package composables

import (
	"context"
	"errors"

	"github.com/pulseworks/worktrack/pkg/constants"
)

var ErrNoCaller = errors.New("no caller found in context")

// Caller identifies the authenticated employee a request acts on behalf of.
// Role is the raw role tag; modules interpret it against their own role enums.
type Caller struct {
	ID        int64
	Role      string
	ManagerID int64
}

func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, constants.CallerKey, caller)
}

func UseCaller(ctx context.Context) (Caller, error) {
	caller, ok := ctx.Value(constants.CallerKey).(Caller)
	if !ok {
		return Caller{}, ErrNoCaller
	}
	return caller, nil
}
