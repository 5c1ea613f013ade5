package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	xdg "github.com/bnema/dusk/internal/config"
	"github.com/bnema/dusk/internal/infrastructure/environ"
	"github.com/bnema/dusk/internal/infrastructure/probe"
	"github.com/bnema/dusk/internal/watch"
)

var (
	detectPlain   bool
	detectTimeout time.Duration
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Probe the theme preference once and print it",
	Long: `Detect classifies the environment, runs a single probe, and prints the
result. With --plain the output is exactly "dark" or "light", for use in
scripts.`,
	Args: cobra.NoArgs,
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().BoolVar(&detectPlain, "plain", false, "Print bare dark/light without styling")
	detectCmd.Flags().DurationVar(&detectTimeout, "timeout", 5*time.Second, "Give up on the probe after this long")
}

func runDetect(_ *cobra.Command, _ []string) error {
	app := GetApp()

	env, err := resolveEnvironment(app.Config.Environment)
	if err != nil {
		return err
	}
	if !env.Supported() {
		return fmt.Errorf("unsupported environment: no probe strategy applies here")
	}

	prefPath, err := prefFilePath()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(app.Ctx(), detectTimeout)
	defer cancel()

	isDark, err := watch.DetectOnce(ctx, env, probe.NewShellExecutor(), prefPath)
	if err != nil {
		return err
	}

	if detectPlain {
		if isDark {
			fmt.Println("dark")
		} else {
			fmt.Println("light")
		}
		return nil
	}

	fmt.Printf("%s %s\n", app.Theme.ModeBadge(isDark), app.Theme.Subtle.Render("("+env.String()+")"))
	return nil
}

// resolveEnvironment honors the config override, falling back to
// classification.
func resolveEnvironment(override string) (environ.Environment, error) {
	if override != "" {
		env, ok := environ.Parse(override)
		if !ok {
			return environ.Unsupported, fmt.Errorf("unknown environment %q in config", override)
		}
		return env, nil
	}
	return environ.Classify(environ.Snapshot()), nil
}

func prefFilePath() (string, error) {
	return xdg.GetPreferenceFile()
}
