package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/dusk/internal/cli/styles"
	"github.com/bnema/dusk/internal/infrastructure/environ"
	"github.com/bnema/dusk/internal/infrastructure/probe"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check probe tooling for the classified environment",
	Long: `Doctor classifies the environment and verifies that the tooling its
probe strategy depends on is actually present: gsettings on native Linux,
dbus-send for the portal-based strategy, reg.exe on WSL, defaults on macOS,
the preference file for containers and remote hosts, and the helper script
for SSH sessions.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	app := GetApp()

	env, err := resolveEnvironment(app.Config.Environment)
	if err != nil {
		return err
	}

	report := styles.DoctorReport{Environment: env.String()}

	if env.Supported() && env != environ.RemoteTerminalProbe {
		prefPath, pathErr := prefFilePath()
		if pathErr == nil {
			if strategy, stratErr := probe.ForEnvironment(env, prefPath); stratErr == nil {
				report.Command = strategy.Command
			}
		}
	}

	checks := doctorChecks(env)
	results := make([]styles.DoctorCheck, len(checks))

	var g errgroup.Group
	for i, check := range checks {
		g.Go(func() error {
			results[i] = check()
			return nil
		})
	}
	_ = g.Wait()

	report.Checks = results
	fmt.Print(app.Theme.RenderDoctorReport(report))

	// Failure is signalled through the exit code, not an error: the report
	// itself is the diagnosis. Exiting here directly would skip app cleanup.
	if !report.OverallOK() {
		exitCode = 1
	}
	return nil
}

type doctorCheckFunc func() styles.DoctorCheck

// doctorChecks returns the checks relevant for an environment. Tools the
// strategy does not use are reported as skipped so the output shape stays
// stable across environments.
func doctorChecks(env environ.Environment) []doctorCheckFunc {
	return []doctorCheckFunc{
		func() styles.DoctorCheck {
			return toolCheck("gsettings", env == environ.NativeLinux,
				"Install the GNOME settings tools or force another environment in config")
		},
		func() styles.DoctorCheck {
			return toolCheck("dbus-send", env == environ.LinuxLegacy,
				"Install the dbus tools (e.g. 'apt install dbus' or 'pacman -S dbus')")
		},
		func() styles.DoctorCheck {
			return toolCheck("reg.exe", env == environ.WindowsOrWSL,
				"reg.exe should be on PATH inside WSL; check /etc/wsl.conf interop settings")
		},
		func() styles.DoctorCheck {
			return toolCheck("defaults", env == environ.Darwin, "")
		},
		func() styles.DoctorCheck { return prefFileCheck(env) },
		func() styles.DoctorCheck { return helperCheck(env) },
	}
}

func toolCheck(tool string, required bool, advice string) styles.DoctorCheck {
	check := styles.DoctorCheck{Name: tool, Skipped: !required, Advice: advice}
	if path, err := exec.LookPath(tool); err == nil {
		check.OK = true
		check.Detail = path
	}
	return check
}

func prefFileCheck(env environ.Environment) styles.DoctorCheck {
	required := env == environ.DockerLinux || env == environ.RemoteLinuxFile
	check := styles.DoctorCheck{
		Name:    "preference file",
		Skipped: !required,
		Advice:  "Write 'dark' or 'light' to the preference file",
	}
	path, err := prefFilePath()
	if err != nil {
		check.Detail = err.Error()
		return check
	}
	check.Detail = path
	if _, statErr := os.Stat(path); statErr == nil {
		check.OK = true
	}
	return check
}

func helperCheck(env environ.Environment) styles.DoctorCheck {
	required := env == environ.RemoteTerminalProbe
	check := styles.DoctorCheck{
		Name:    "terminal helper",
		Skipped: !required,
		Advice:  "Run 'dusk watch' once over SSH to install the helper, or remove a stale copy",
	}

	path := environ.InstalledHelper()
	if path == "" {
		check.Detail = "not installed (falls back to a direct OSC 11 query)"
		// Fallback exists, so absence is a note rather than a failure.
		check.OK = true
		return check
	}

	check.Detail = path
	installed, err := os.ReadFile(path) //nolint:gosec // fixed user-local path
	if err != nil {
		check.Detail = err.Error()
		return check
	}
	if !bytes.Equal(installed, environ.BundledHelper()) {
		check.Detail = path + " (outdated, delete it to reinstall)"
		return check
	}
	check.OK = true
	return check
}
