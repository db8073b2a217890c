package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/casedesk/internal/core/cases"
	"github.com/example/casedesk/internal/ports/primary"
	"github.com/example/casedesk/internal/wire"
)

// CasesCmd returns the cases command
func CasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "List, show and update compliance cases",
	}

	cmd.AddCommand(casesListCmd())
	cmd.AddCommand(casesShowCmd())
	cmd.AddCommand(casesUpdateCmd())

	return cmd
}

func casesListCmd() *cobra.Command {
	var filters filterFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cases matching the filters",
		Long: `List cases matching the filters.

Without --status or --type every value present in the data is selected.
Without --min-risk the configured default (20) is used.

Examples:
  casedesk cases list
  casedesk cases list --status Open --status "In Progress" --min-risk 60
  casedesk cases list --type "Wash Trading" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, cfg, err := openSession(cmd)
			if err != nil {
				return err
			}

			req := filters.request(cmd, session.DefaultFilter(cfg.DefaultMinRisk))
			matched, err := session.Filter(req)
			if err != nil {
				return err
			}
			wire.Logger().Debug("listed cases", "filter", describe(req), "count", len(matched))

			if asJSON {
				return writeJSON(cmd, matched)
			}
			renderTable(cmd.OutOrStdout(), matched)
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print cases as JSON")

	return cmd
}

func casesShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [case-id]",
		Short: "Show one case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := openSession(cmd)
			if err != nil {
				return err
			}

			c, err := session.Get(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, c)
			}
			renderCase(cmd.OutOrStdout(), c)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the case as JSON")

	return cmd
}

func casesUpdateCmd() *cobra.Command {
	var status string
	var comments string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "update [case-id]",
		Short: "Update a case's status and comments",
		Long: `Update a case's status and comments and save the whole table.

Comments not given are cleared. Use --dry-run to preview the change.

Examples:
  casedesk cases update C5 --status Closed --comments "false positive"
  casedesk cases update C5 --status "In Progress" --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := openSession(cmd)
			if err != nil {
				return err
			}

			before, err := session.Get(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if dryRun {
				if err := cases.CanUpdateCase(cases.UpdateCaseContext{CaseID: args[0], Status: status}).Error(); err != nil {
					return err
				}
				after := *before
				after.Status = status
				after.Comments = comments
				renderDiff(out, caseLine(before), caseLine(&after))
				fmt.Fprintln(out, "(dry run, nothing saved)")
				return nil
			}

			updated, err := session.Update(cmd.Context(), primary.UpdateCaseRequest{
				CaseID:   args[0],
				Status:   status,
				Comments: comments,
			})
			if err != nil {
				return fmt.Errorf("failed to update case: %w", err)
			}

			renderDiff(out, caseLine(before), caseLine(updated))
			fmt.Fprintf(out, "✓ Case %s updated successfully\n", updated.CaseID)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status (Open, In Progress, Closed)")
	cmd.Flags().StringVar(&comments, "comments", "", "New comments")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the change without saving")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
