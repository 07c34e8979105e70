package internal

import (
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
)

// Name used for the binary, socket group, and containerd namespace.
const Name = "dockhand"

// String to indicate an undefined variable.
const defaultUndefined = "(undefined)"

// String to indicate a local (non-pipeline) build.
const defaultLocalBuild = "(local)"

var (
	version   = "" // Version number (e.g., "1.2.3")
	gitCommit = "" // Git commit hash (e.g., "a1b2c3d4")

	rawQuiet = "false" // Whether to enable quiet mode
	rawDebug = "false" // Whether to enable debug mode
)

var (
	quietMode atomic.Bool // Indicates whether quiet mode is enabled.
	debugMode atomic.Bool // Indicates whether debug logging is enabled.
)

// Level applied to the default slog handler. Mutable after flag parsing so
// the handler created in main can be reconfigured by the CLI.
var LogLevel = new(slog.LevelVar)

// Parses the linker flags into usable runtime variables.
//
// The rawQuiet and rawDebug variables should be set via ldflags during the
// build process. If not set, they default to "false".
func init() {
	if v, err := strconv.ParseBool(rawQuiet); err == nil {
		quietMode.Store(v)
	}
	if v, err := strconv.ParseBool(rawDebug); err == nil {
		debugMode.Store(v)
	}
}

// Returns true if quiet mode is enabled.
func IsQuiet() bool {
	return quietMode.Load()
}

// Returns true if debug mode is enabled.
func IsDebug() bool {
	return debugMode.Load()
}

// Returns the current version with any "v" prefix stripped.
//
// If the version is not set, returns "(undefined)".
func Version() string {
	v := strings.TrimSpace(version)
	if v == "" {
		return defaultUndefined
	}
	return strings.TrimPrefix(strings.ToLower(v), "v")
}

// Returns the git commit hash, or "(undefined)" when unset.
func GitCommit() string {
	c := strings.TrimSpace(gitCommit)
	if c == "" {
		return defaultUndefined
	}
	return c
}

// Returns true if this is a local (non-pipeline) build.
//
// A build is considered local if the version or git commit variables are
// unset. Pipeline builds should set both via linker flags.
func IsLocal() bool {
	return strings.TrimSpace(version) == "" || strings.TrimSpace(gitCommit) == ""
}

// Returns a detailed version string.
//
// If this is a local build, returns "(local)". Otherwise, returns a string
// formatted as "<version> <git-commit> [<arch>]".
func VersionString() string {
	if IsLocal() {
		return defaultLocalBuild
	}
	return fmt.Sprintf("%s %s [%s]", Version(), GitCommit(), runtime.GOARCH)
}
