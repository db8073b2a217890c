package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	var filters filterFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the risk histogram and status breakdown",
		Long: `Show the risk score histogram (bins of width 5, split by case type)
and the status breakdown for the cases matching the filters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, cfg, err := openSession(cmd)
			if err != nil {
				return err
			}

			req := filters.request(cmd, session.DefaultFilter(cfg.DefaultMinRisk))
			summary, err := session.Summary(req)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, summary)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d case(s) (%s)\n\n", summary.Total, describe(req))
			renderSummary(out, summary)
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")

	return cmd
}
