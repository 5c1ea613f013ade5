package environ

import (
	"bytes"
	"context"
	_ "embed"
	"os"
	"path/filepath"

	"github.com/bnema/dusk/internal/logging"
)

// The helper script answers the OSC 11 background query through /dev/tty so
// that the probe works inside tmux and over plain SSH where dusk's own stdin
// may not be the controlling terminal.
//
//go:embed termbg.sh
var termbgScript []byte

const helperName = "dusk-termbg"

// HelperPath returns the install location of the terminal background helper
// script (~/.local/bin/dusk-termbg).
func HelperPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "bin", helperName), nil
}

// InstallHelper copies the bundled helper script to the user-local bin
// directory. Install failures are non-fatal: the remote-terminal strategy
// falls back to its default without the helper, so problems are logged at
// debug level and an empty path is returned.
func InstallHelper(ctx context.Context) string {
	log := logging.FromContext(ctx)

	path, err := HelperPath()
	if err != nil {
		log.Debug().Err(err).Msg("cannot determine helper path")
		return ""
	}

	if info, statErr := os.Stat(path); statErr == nil {
		if info.Mode()&0o111 != 0 {
			return path
		}
		// Present but not executable; leave the user's file alone.
		log.Debug().Str("path", path).Msg("helper exists but is not executable")
		return ""
	}

	if mkErr := os.MkdirAll(filepath.Dir(path), 0o750); mkErr != nil {
		log.Debug().Err(mkErr).Msg("cannot create helper directory")
		return ""
	}

	if writeErr := os.WriteFile(path, termbgScript, 0o755); writeErr != nil { //nolint:gosec // user-local executable
		log.Debug().Err(writeErr).Str("path", path).Msg("cannot install helper script")
		return ""
	}

	log.Info().Str("path", path).Msg("installed terminal background helper")
	return path
}

// InstalledHelper returns the helper path when the script is already present
// and executable, otherwise an empty string.
func InstalledHelper() string {
	path, err := HelperPath()
	if err != nil {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil || info.Mode()&0o111 == 0 {
		return ""
	}
	return path
}

// BundledHelper exposes the embedded script, used by doctor to verify an
// installed copy is current.
func BundledHelper() []byte {
	return bytes.Clone(termbgScript)
}
