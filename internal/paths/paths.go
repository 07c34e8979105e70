package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	daemonName = "dockhand"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the directory for runtime files (sockets, PIDs).
//
//	Linux:   $XDG_RUNTIME_DIR/dockhand or /run/user/<uid>/dockhand
//	macOS:   ~/Library/Caches/dockhand/run
func Runtime() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, daemonName)
	}
	return filepath.Join(xdg.CacheHome, daemonName, "run")
}

// Default path to the Unix domain socket for client-to-daemon communication.
func Socket() string {
	return filepath.Join(Runtime(), daemonName+".sock")
}

// Default path to the PID file.
func PIDFile() string {
	return filepath.Join(Runtime(), daemonName+".pid")
}

// Path to the daemon configuration file.
//
//	Linux:   ~/.config/dockhand/config.yaml
//	macOS:   ~/Library/Application Support/dockhand/config.yaml
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, daemonName, "config.yaml")
}

// Default directory for pulled base image archives, keyed by digest.
//
//	Linux:   ~/.cache/dockhand/images
//	macOS:   ~/Library/Caches/dockhand/images
func ImageStore() string {
	return filepath.Join(xdg.CacheHome, daemonName, "images")
}
