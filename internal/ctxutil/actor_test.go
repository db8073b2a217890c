package ctxutil

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestActorRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := ActorFromContext(ctx); got != "" {
		t.Errorf("empty context actor = %q", got)
	}
	ctx = WithActorID(ctx, "analyst-a")
	if got := ActorFromContext(ctx); got != "analyst-a" {
		t.Errorf("actor = %q, want analyst-a", got)
	}
}

func TestActorHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(ActorHandler{slog.NewTextHandler(&buf, nil)}).With("component", "test")

	logger.InfoContext(WithActorID(context.Background(), "bob"), "case updated")
	if !strings.Contains(buf.String(), "actor=bob") {
		t.Errorf("expected actor attribute, got %q", buf.String())
	}

	buf.Reset()
	logger.InfoContext(context.Background(), "case updated")
	if strings.Contains(buf.String(), "actor=") {
		t.Errorf("unexpected actor attribute in %q", buf.String())
	}
}
