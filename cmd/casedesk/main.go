package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/casedesk/internal/cli"
	"github.com/example/casedesk/internal/version"
	"github.com/example/casedesk/internal/wire"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes one command. The database is closed whether or not the
// command succeeds.
func run(args []string) (err error) {
	defer func() {
		if cerr := wire.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func newRootCmd() *cobra.Command {
	var overrides wire.Overrides

	rootCmd := &cobra.Command{
		Use:     "casedesk",
		Short:   "casedesk - compliance case desk",
		Version: version.String(),
		Long: `casedesk filters, reviews and updates compliance cases stored in SQLite.
It can also serve the same case view over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			wire.Configure(overrides)
		},
	}

	rootCmd.PersistentFlags().StringVar(&overrides.Dir, "dir", "", "Directory holding .casedesk/config.json (default current)")
	rootCmd.PersistentFlags().StringVar(&overrides.DBPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&overrides.LogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.CasesCmd())
	rootCmd.AddCommand(cli.ReportCmd())
	rootCmd.AddCommand(cli.ExportCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	return rootCmd
}
