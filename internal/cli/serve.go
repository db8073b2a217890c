package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/example/casedesk/internal/adapters/httpapi"
	"github.com/example/casedesk/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the case dashboard API over HTTP",
		Long: `Serve the case dashboard API over HTTP.

The case set is loaded once at startup and shared by all requests.
Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, cfg, err := openSession(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ListenAddr
			}
			if cfg.LogLevel != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			h := httpapi.NewHandler(session, wire.Logger(), cfg.ExportPath, cfg.DefaultMinRisk)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %d cases on http://%s\n", len(session.Cases()), addr)
			return httpapi.Serve(ctx, addr, h)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}
