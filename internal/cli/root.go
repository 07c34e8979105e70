package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/dockhandhq/dockhand/internal"
)

// Represents the root command for the dockhand binary.
var RootCmd struct {
	Quiet   bool   `short:"q" help:"Suppress informational output."`
	Verbose bool   `short:"v" help:"Enable verbose output."`
	Debug   bool   `short:"d" help:"Enable debug output."`
	Socket  string `short:"s" help:"Override the default Unix socket path." placeholder:"PATH"`

	Start    StartCmd    `cmd:"" help:"Start the daemon."`
	Build    BuildCmd    `cmd:"" help:"Build an app image from its manifest."`
	Up       UpCmd       `cmd:"" help:"Deploy a built app."`
	Status   StatusCmd   `cmd:"" help:"Show daemon status."`
	Shutdown ShutdownCmd `cmd:"" help:"Stop the daemon."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("The dockhand app builder and runner.\n\nBuilds application images from manifests and runs them as containers."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
//
// Flags override the build-time defaults baked in via linker flags. The
// handler itself is installed in main before parsing; its level is adjusted
// here, and verbose mode swaps in a handler that records source locations.
func configureLogger() {
	debug := RootCmd.Debug || internal.IsDebug()
	quiet := RootCmd.Quiet || internal.IsQuiet()

	switch {
	case debug:
		internal.LogLevel.Set(slog.LevelDebug)
	case quiet:
		internal.LogLevel.Set(slog.LevelWarn)
	default:
		internal.LogLevel.Set(slog.LevelInfo)
	}

	if RootCmd.Verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     internal.LogLevel,
			AddSource: true,
		})))
	}
}
