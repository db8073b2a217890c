package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/casedesk/internal/app"
	"github.com/example/casedesk/internal/wire"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	var size int
	var randSeed uint64
	var yes bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace every case with freshly generated sample data",
		Long: `Replace every case with freshly generated sample data.

The existing table is dropped. Pass --yes to confirm.

Examples:
  casedesk seed --yes
  casedesk seed --yes --size 500 --rand-seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("seed replaces all cases; pass --yes to confirm")
			}
			if cmd.Flags().Changed("size") && size <= 0 {
				return fmt.Errorf("--size must be positive, got %d", size)
			}

			o := wire.Configured()
			o.SeedSize = size
			o.RandSeed = randSeed
			wire.Configure(o)

			svc, err := wire.CaseService()
			if err != nil {
				return err
			}
			seeded, err := app.NewSession(svc).Reseed(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to seed cases: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Seeded %d cases\n", len(seeded))
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "Number of cases to generate (default from config)")
	cmd.Flags().Uint64Var(&randSeed, "rand-seed", 0, "Seed for reproducible data (0 = random)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm replacing all cases")

	return cmd
}
