package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/casedesk/internal/ports/primary"
)

// filterFlags holds the three dashboard selectors as command flags.
type filterFlags struct {
	statuses  []string
	minRisk   int
	caseTypes []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.statuses, "status", nil, "Status to include (repeatable; default all present)")
	cmd.Flags().IntVar(&f.minRisk, "min-risk", 0, "Minimum risk score (default from config)")
	cmd.Flags().StringArrayVar(&f.caseTypes, "type", nil, "Case type to include (repeatable; default all present)")
}

// request builds a FilterRequest. Flags not given fall back to defaults,
// which hold every present status and case type.
func (f *filterFlags) request(cmd *cobra.Command, defaults primary.FilterRequest) primary.FilterRequest {
	req := defaults
	if cmd.Flags().Changed("status") {
		req.Statuses = nonEmpty(f.statuses)
	}
	if cmd.Flags().Changed("min-risk") {
		req.MinRisk = f.minRisk
	}
	if cmd.Flags().Changed("type") {
		req.CaseTypes = nonEmpty(f.caseTypes)
	}
	return req
}

// describe renders the active selectors for headers and log lines.
func describe(req primary.FilterRequest) string {
	return fmt.Sprintf("status=%v min_risk=%d type=%v", req.Statuses, req.MinRisk, req.CaseTypes)
}

// nonEmpty drops blank values so that --status "" selects nothing.
func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
