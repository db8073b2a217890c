package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/casedesk/internal/wire"
)

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	var filters filterFlags
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered cases to CSV",
		Long: `Export the cases matching the filters to a CSV file.
An existing file is overwritten.

Examples:
  casedesk export
  casedesk export --status Open --min-risk 50 --out open_high_risk.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, cfg, err := openSession(cmd)
			if err != nil {
				return err
			}

			dest := outPath
			if dest == "" {
				dest = cfg.ExportPath
			}

			req := filters.request(cmd, session.DefaultFilter(cfg.DefaultMinRisk))
			n, err := session.Export(cmd.Context(), req, dest)
			if err != nil {
				return fmt.Errorf("failed to export cases: %w", err)
			}
			wire.Logger().Info("exported cases", "path", dest, "rows", n, "filter", describe(req))

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d case(s) to %s\n", n, dest)
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination file (default from config)")

	return cmd
}
