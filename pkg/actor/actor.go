// Package actor carries the label of whoever performs a mutation through a request context.
package actor

import (
	"context"
	"strings"
)

const System = "System"

type nameKey struct{}

func WithName(ctx context.Context, name string) context.Context {
	name = strings.TrimSpace(name)
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, nameKey{}, name)
}

// Name returns the actor stored in ctx, or System when none was set.
func Name(ctx context.Context) string {
	if name, ok := ctx.Value(nameKey{}).(string); ok && name != "" {
		return name
	}
	return System
}
