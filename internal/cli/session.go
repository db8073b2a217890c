package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/casedesk/internal/app"
	"github.com/example/casedesk/internal/config"
	"github.com/example/casedesk/internal/ports/primary"
	"github.com/example/casedesk/internal/ports/secondary"
	"github.com/example/casedesk/internal/wire"
)

var noticeColor = color.New(color.FgYellow)

// openSession loads the case set and reports on stderr when sample data
// had to be generated.
func openSession(cmd *cobra.Command) (*app.Session, *config.Config, error) {
	cfg, err := wire.Config()
	if err != nil {
		return nil, nil, err
	}
	session, resp, err := wire.NewSession(cmd.Context())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cases: %w", err)
	}
	reportLoad(cmd, resp)
	return session, cfg, nil
}

func reportLoad(cmd *cobra.Command, resp *primary.LoadResponse) {
	if resp.Source != primary.SourceSeeded {
		return
	}
	w := cmd.ErrOrStderr()
	switch resp.FailureKind {
	case string(secondary.ReadCorrupt):
		if resp.QuarantinedTable != "" {
			noticeColor.Fprintf(w, "⚠ case table was unreadable; moved to %s and reseeded %d cases\n",
				resp.QuarantinedTable, len(resp.Cases))
			return
		}
		noticeColor.Fprintf(w, "⚠ case table was unreadable; replaced with %d sample cases\n", len(resp.Cases))
	default:
		noticeColor.Fprintf(w, "No case table found; seeded %d sample cases\n", len(resp.Cases))
	}
}
