package cli

import (
	"context"
	"log/slog"

	"github.com/dockhandhq/dockhand/internal/client"
	"github.com/dockhandhq/dockhand/internal/protocol"
)

// Represents the 'dockhand shutdown' command.
type ShutdownCmd struct{}

// Executes the shutdown command.
func (c *ShutdownCmd) Run(ctx context.Context) error {
	if _, err := client.Call[struct{}](ctx, newClient(), protocol.CmdShutdown, nil); err != nil {
		return err
	}

	slog.Info("daemon shutting down")
	return nil
}
