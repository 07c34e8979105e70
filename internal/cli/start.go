package cli

import (
	"context"
	"log/slog"

	"github.com/dockhandhq/dockhand/internal"
	"github.com/dockhandhq/dockhand/internal/server"
)

// Represents the 'dockhand start' command.
type StartCmd struct{}

// Executes the start command.
//
// Loads the daemon configuration, starts the socket server, and blocks until
// the context is cancelled (e.g. via SIGINT or SIGTERM) or the server stops
// itself after a shutdown command.
func (c *StartCmd) Run(ctx context.Context) error {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return err
	}

	if RootCmd.Socket != "" {
		cfg.Socket = RootCmd.Socket
	}

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	if err := srv.Start(); err != nil {
		return err
	}

	slog.Info("dockhand is running")

	stopped := make(chan struct{})
	go func() {
		srv.Wait()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
		return srv.Stop()
	case <-stopped:
		slog.Info("daemon stopped")
		return nil
	}
}
