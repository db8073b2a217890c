package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/casedesk/internal/adapters/sqlite"
	"github.com/example/casedesk/internal/app"
	"github.com/example/casedesk/internal/config"
	"github.com/example/casedesk/internal/core/cases"
	"github.com/example/casedesk/internal/ports/secondary"
	"github.com/example/casedesk/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for store validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate casedesk config and case store",
		Long: `Health check for the casedesk config and case store.

Unlike other commands, doctor never seeds or rewrites the table.

Validates:
- Config file and environment overrides
- Database connectivity
- Case table readability
- Unique Case_IDs and valid field values
- Leftover quarantined tables

Examples:
  casedesk doctor              # Run full health check
  casedesk doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := runChecks(cmd.Context())

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				printChecks(cmd.OutOrStdout(), results, hasErrors)
			}

			if hasErrors {
				return fmt.Errorf("case store validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func runChecks(ctx context.Context) []CheckResult {
	cfg, err := wire.Config()
	if err != nil {
		return []CheckResult{{Name: "Config", Status: "✗", Details: "  " + err.Error()}}
	}
	results := []CheckResult{checkConfig(cfg)}

	database, err := wire.DB()
	if err != nil {
		return append(results, CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()})
	}
	results = append(results, CheckResult{Name: "Database", Status: "✓"})

	records, err := sqlite.NewCaseRepository(database).ReadAll(ctx)
	results = append(results, checkReadable(err))
	if err == nil {
		results = append(results, checkUniqueIDs(records), checkValues(records))
	}

	return append(results, checkQuarantine(ctx, database))
}

func printChecks(w io.Writer, results []CheckResult, hasErrors bool) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check              Status")
	fmt.Fprintln(w, "─────────────────────────")
	for _, r := range results {
		fmt.Fprintf(w, "%-18s %s\n", r.Name, r.Status)
	}
	fmt.Fprintln(w)

	hasDetails := false
	for _, r := range results {
		if r.Status != "✓" && r.Details != "" {
			if !hasDetails {
				fmt.Fprintln(w, "Details:")
				hasDetails = true
			}
			fmt.Fprintf(w, "\n%s:\n%s\n", r.Name, r.Details)
		}
	}

	if hasErrors {
		fmt.Fprintln(w, "\n⚠ Issues found. Run 'casedesk seed --yes' to regenerate sample data.")
	} else {
		fmt.Fprintln(w, "All checks passed.")
	}
}

func checkConfig(cfg *config.Config) CheckResult {
	if cfg.CorruptPolicy == app.CorruptReplace {
		return CheckResult{
			Name:    "Config",
			Status:  "⚠",
			Details: "  corrupt_policy=replace: an unreadable table is dropped without a copy",
		}
	}
	return CheckResult{Name: "Config", Status: "✓"}
}

func checkReadable(err error) CheckResult {
	if err == nil {
		return CheckResult{Name: "Case Table", Status: "✓"}
	}
	if secondary.AsReadFailure(err).Kind == secondary.ReadMissing {
		return CheckResult{
			Name:    "Case Table",
			Status:  "⚠",
			Details: "  Table does not exist yet; it is seeded on first use",
		}
	}
	return CheckResult{Name: "Case Table", Status: "✗", Details: "  " + err.Error()}
}

// checkUniqueIDs reports Case_IDs that occur more than once.
func checkUniqueIDs(records []*secondary.CaseRecord) CheckResult {
	seen := make(map[string]int, len(records))
	var dups []string
	for _, r := range records {
		seen[r.CaseID]++
		if seen[r.CaseID] == 2 {
			dups = append(dups, r.CaseID)
		}
	}
	if len(dups) > 0 {
		return CheckResult{
			Name:    "Case IDs",
			Status:  "✗",
			Details: "  Duplicated: " + strings.Join(dups, ", "),
		}
	}
	return CheckResult{Name: "Case IDs", Status: "✓"}
}

// checkValues reports rows whose status or risk score is out of range.
func checkValues(records []*secondary.CaseRecord) CheckResult {
	var bad []string
	for _, r := range records {
		switch {
		case !cases.IsValidStatus(r.Status):
			bad = append(bad, fmt.Sprintf("  %s: status %q", r.CaseID, r.Status))
		case r.RiskScore < cases.MinRiskScore || r.RiskScore > cases.MaxRiskScore:
			bad = append(bad, fmt.Sprintf("  %s: risk score %d", r.CaseID, r.RiskScore))
		}
	}
	if len(bad) > 0 {
		return CheckResult{Name: "Field Values", Status: "✗", Details: strings.Join(bad, "\n")}
	}
	return CheckResult{Name: "Field Values", Status: "✓"}
}

func checkQuarantine(ctx context.Context, database *sql.DB) CheckResult {
	rows, err := database.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name LIKE 'cases_corrupt_%' ORDER BY name")
	if err != nil {
		return CheckResult{Name: "Quarantine", Status: "⚠", Details: "  " + err.Error()}
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return CheckResult{Name: "Quarantine", Status: "⚠", Details: "  " + err.Error()}
		}
		names = append(names, name)
	}
	if len(names) > 0 {
		return CheckResult{
			Name:    "Quarantine",
			Status:  "⚠",
			Details: "  Unreadable tables kept aside: " + strings.Join(names, ", "),
		}
	}
	return CheckResult{Name: "Quarantine", Status: "✓"}
}
