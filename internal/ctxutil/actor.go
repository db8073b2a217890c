// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import (
	"context"
	"log/slog"
)

// ActorKey is the context key for actor ID.
// Exported so it can be used consistently across packages.
type ActorKey struct{}

// WithActorID returns a context with the actor ID embedded.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorKey{}, actorID)
}

// ActorFromContext returns the actor ID from context, or empty string if not set.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ActorKey{}).(string); ok {
		return v
	}
	return ""
}

// ActorHandler is a slog.Handler that adds the context's actor to every record.
type ActorHandler struct {
	slog.Handler
}

// Handle adds an "actor" attribute when the context carries one.
func (h ActorHandler) Handle(ctx context.Context, r slog.Record) error {
	if actor := ActorFromContext(ctx); actor != "" {
		r.AddAttrs(slog.String("actor", actor))
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps the wrapper when attributes are added.
func (h ActorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ActorHandler{h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the wrapper when a group is opened.
func (h ActorHandler) WithGroup(name string) slog.Handler {
	return ActorHandler{h.Handler.WithGroup(name)}
}
