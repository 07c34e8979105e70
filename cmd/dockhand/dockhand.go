package main

import (
	"log/slog"
	"os"

	"github.com/dockhandhq/dockhand/internal"
	"github.com/dockhandhq/dockhand/internal/cli"
)

// The entry point for the dockhand binary.
//
// Initializes logging, displays startup information, and executes the root
// command. If any error occurs during execution, it exits with a non-zero code.
func main() {
	slog.SetDefault(logger())

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("dockhand started",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	if err := cli.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// Creates the default logger seeded from build-time linker flags.
//
// The level is held in a shared [slog.LevelVar] so cli.Execute can adjust it
// after flag parsing without replacing the handler.
func logger() *slog.Logger {
	internal.LogLevel.Set(logLevel())

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: internal.LogLevel,
	})
	return slog.New(handler)
}

// Returns the log level derived from build-time linker flags.
func logLevel() slog.Level {
	if internal.IsDebug() {
		return slog.LevelDebug
	}
	if internal.IsQuiet() {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
