package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/example/casedesk/internal/core/cases"
	"github.com/example/casedesk/internal/ports/primary"
)

// barWidth is the longest bar drawn by the report charts.
const barWidth = 40

var (
	headerColor = color.New(color.Bold)
	openColor   = color.New(color.FgRed)
	activeColor = color.New(color.FgYellow)
	closedColor = color.New(color.FgGreen)
	dimColor    = color.New(color.Faint)
	addColor    = color.New(color.FgGreen, color.Underline)
	delColor    = color.New(color.FgRed, color.CrossedOut)
)

// statusColor returns the colour a status is printed in.
func statusColor(status string) *color.Color {
	switch status {
	case cases.StatusOpen:
		return openColor
	case cases.StatusInProgress:
		return activeColor
	case cases.StatusClosed:
		return closedColor
	default:
		return dimColor
	}
}

// renderTable prints cases as a fixed-width table.
func renderTable(w io.Writer, set []*primary.Case) {
	if len(set) == 0 {
		fmt.Fprintln(w, "No cases match the current filters")
		return
	}

	headerColor.Fprintf(w, "%-8s %-9s %-20s %4s  %-11s %-11s %-12s %s\n",
		"Case_ID", "Trader_ID", "Case_Type", "Risk", "Assigned_To", "Status", "Date_Flagged", "Comments")
	for _, c := range set {
		fmt.Fprintf(w, "%-8s %-9d %-20s %4d  %-11s %s %-12s %s\n",
			c.CaseID, c.TraderID, c.CaseType, c.RiskScore, c.AssignedTo,
			statusColor(c.Status).Sprintf("%-11s", c.Status),
			c.DateFlagged, oneLine(c.Comments))
	}
	fmt.Fprintf(w, "\n%d case(s)\n", len(set))
}

// renderCase prints every field of one case.
func renderCase(w io.Writer, c *primary.Case) {
	fmt.Fprintf(w, "Case %s\n", c.CaseID)
	fmt.Fprintf(w, "  Trader:        %d\n", c.TraderID)
	fmt.Fprintf(w, "  Type:          %s\n", c.CaseType)
	fmt.Fprintf(w, "  Risk score:    %d\n", c.RiskScore)
	fmt.Fprintf(w, "  Assigned to:   %s\n", c.AssignedTo)
	fmt.Fprintf(w, "  Status:        %s\n", statusColor(c.Status).Sprint(c.Status))
	fmt.Fprintf(w, "  Date flagged:  %s\n", c.DateFlagged)
	fmt.Fprintf(w, "  Comments:      %s\n", c.Comments)
}

// renderSummary prints the risk histogram and status breakdown as bars.
func renderSummary(w io.Writer, s *primary.Summary) {
	headerColor.Fprintln(w, "Risk Score Distribution")
	if s.Total == 0 {
		fmt.Fprintln(w, "  (no cases)")
	}

	peak := 0
	for _, b := range s.RiskBins {
		if b.Total > peak {
			peak = b.Total
		}
	}
	for _, b := range s.RiskBins {
		if b.Total == 0 {
			continue
		}
		fmt.Fprintf(w, "  %3d-%-3d %-*s %3d  %s\n",
			b.Lower, b.Upper, barWidth, bar(b.Total, peak), b.Total, dimColor.Sprint(byType(b.ByType)))
	}
	fmt.Fprintf(w, "  mean risk: %s\n\n", s.MeanRisk.StringFixed(2))

	headerColor.Fprintln(w, "Case Status Breakdown")
	for _, share := range s.Breakdown {
		fmt.Fprintf(w, "  %-11s %s %3d (%s%%)\n",
			share.Status,
			statusColor(share.Status).Sprintf("%-*s", barWidth, bar(share.Count, s.Total)),
			share.Count, share.Percent.StringFixed(2))
	}
}

// renderDiff prints a character diff between two renderings of a case.
func renderDiff(w io.Writer, before, after string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var out strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			if color.NoColor {
				out.WriteString("{+" + d.Text + "+}")
			} else {
				out.WriteString(addColor.Sprint(d.Text))
			}
		case diffmatchpatch.DiffDelete:
			if color.NoColor {
				out.WriteString("[-" + d.Text + "-]")
			} else {
				out.WriteString(delColor.Sprint(d.Text))
			}
		default:
			out.WriteString(d.Text)
		}
	}
	fmt.Fprintln(w, out.String())
}

// caseLine renders the editable view of a case on one line.
func caseLine(c *primary.Case) string {
	return fmt.Sprintf("%s Status=%q Comments=%q", c.CaseID, c.Status, c.Comments)
}

func bar(n, max int) string {
	if n <= 0 || max <= 0 {
		return ""
	}
	width := n * barWidth / max
	if width == 0 {
		width = 1
	}
	return strings.Repeat("█", width)
}

func byType(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s:%d", k, counts[k])
	}
	return strings.Join(parts, " ")
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
