package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/casedesk/internal/config"
	"github.com/example/casedesk/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config and create the case table",
		Long: `Write .casedesk/config.json with default settings and load the case
table, seeding sample data if it does not exist yet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := wire.Configured().Dir
			if dir == "" {
				dir = "."
			}
			out := cmd.OutOrStdout()

			path := config.Path(dir)
			_, statErr := os.Stat(path)
			switch {
			case statErr == nil && !force:
				fmt.Fprintf(out, "Config already exists at %s (use --force to overwrite)\n", path)
			case statErr != nil && !os.IsNotExist(statErr):
				return fmt.Errorf("failed to check config: %w", statErr)
			default:
				if err := config.SaveConfig(dir, config.Default()); err != nil {
					return err
				}
				fmt.Fprintf(out, "✓ Wrote %s\n", path)
			}

			session, cfg, err := openSession(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ %d cases in %s\n", len(session.Cases()), cfg.DBPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")

	return cmd
}
