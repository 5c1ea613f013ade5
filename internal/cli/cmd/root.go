// Package cmd provides Cobra CLI commands for dusk.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/dusk/internal/cli"
)

var (
	app     *cli.App
	version = "dev"

	// exitCode lets commands report failure without bypassing cleanup the
	// way a mid-command os.Exit would.
	exitCode int

	rootCmd = &cobra.Command{
		Use:   "dusk",
		Short: "Watch the host's dark/light theme preference and act on changes",
		Long: `Dusk polls the host's theme preference and runs a configured command
exactly once per observed transition between dark and light.

It picks a probe strategy for the environment it finds itself in: a native
Linux desktop (gsettings), legacy Linux (XDG desktop portal via dbus-send),
macOS (defaults), Windows and WSL (reg.exe), Docker containers and remote
hosts (a preference file), or SSH sessions (the terminal's background color
via OSC 11).

Use 'dusk watch' to start polling, 'dusk detect' for a one-shot probe, and
'dusk doctor' to diagnose missing tooling.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.Version = version
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetVersion sets the build version (called from main before Execute).
func SetVersion(v string) {
	version = v
}
