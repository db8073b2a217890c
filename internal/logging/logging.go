// Package logging builds the structured logger shared by every component.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/example/casedesk/internal/ctxutil"
)

// New returns a slog logger writing to w at the given level ("debug",
// "info", "warn", "error") in the given format ("text" or "json").
// Records logged with a context carrying an actor get an "actor" attribute.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(ctxutil.ActorHandler{Handler: slog.NewTextHandler(w, opts)}), nil
	case "json":
		return slog.New(ctxutil.ActorHandler{Handler: slog.NewJSONHandler(w, opts)}), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", format)
	}
}
