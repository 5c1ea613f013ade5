package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dusk/internal/infrastructure/environ"
	"github.com/bnema/dusk/internal/infrastructure/probe"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the classified environment and the probe it selects",
	Args:  cobra.NoArgs,
	RunE:  runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)
}

func runEnv(_ *cobra.Command, _ []string) error {
	app := GetApp()

	facts := environ.Snapshot()
	env := environ.Classify(facts)
	if app.Config.Environment != "" {
		forced, ok := environ.Parse(app.Config.Environment)
		if !ok {
			return fmt.Errorf("unknown environment %q in config", app.Config.Environment)
		}
		fmt.Printf("Environment: %s %s\n", forced, app.Theme.Subtle.Render("(forced by config, detected: "+env.String()+")"))
		env = forced
	} else {
		fmt.Printf("Environment: %s\n", env)
	}

	fmt.Printf("OS:          %s\n", facts.OS)
	if facts.KernelRelease != "" {
		fmt.Printf("Kernel:      %s\n", facts.KernelRelease)
	}
	fmt.Printf("SSH session: %v\n", facts.SSHSession)
	fmt.Printf("Docker:      %v\n", facts.DockerMarker)
	fmt.Printf("Pref file:   %v\n", facts.PreferenceFile)

	if !env.Supported() {
		fmt.Println(app.Theme.Warning.Render("No probe strategy applies; dusk watch would stay idle."))
		return nil
	}

	prefPath, err := prefFilePath()
	if err != nil {
		return err
	}
	strategy, err := probe.ForEnvironment(env, prefPath)
	if err != nil {
		return err
	}
	if strategy.Command == "" {
		fmt.Println("Probe:       terminal background query (OSC 11)")
	} else {
		fmt.Printf("Probe:       %s\n", app.Theme.Subtle.Render(strategy.Command))
	}

	return nil
}
