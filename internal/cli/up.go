package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dockhandhq/dockhand/internal/client"
	"github.com/dockhandhq/dockhand/internal/protocol"
)

// Represents the 'dockhand up' command.
type UpCmd struct {
	Manifest string `short:"f" help:"Path to the app manifest." default:"dockhand.yaml" placeholder:"PATH"`
	Wait     bool   `short:"w" help:"Block until the server process exits and propagate its exit code."`
}

// Executes the up command.
//
// Deploys the app image built from the manifest. With --wait the command
// blocks for the lifetime of the server and exits with its exit code; the
// daemon holds the connection open until then.
func (c *UpCmd) Run(ctx context.Context) error {
	app, _, err := loadApp(c.Manifest)
	if err != nil {
		return err
	}

	result, err := client.Call[protocol.DeployResult](ctx, newClient(), protocol.CmdDeploy, &protocol.DeployRequest{
		ID:   uuid.NewString(),
		App:  app,
		Wait: c.Wait,
	})
	if err != nil {
		return err
	}

	if result.ServerExit != nil {
		slog.Info("server exited", "app", app.Name, "exit_code", *result.ServerExit)
		if *result.ServerExit != 0 {
			return fmt.Errorf("server exited with code %d", *result.ServerExit)
		}
		return nil
	}

	slog.Info("app running",
		"app", app.Name,
		"container", result.Container,
		"port", result.Port,
	)
	fmt.Printf("%s listening on port %d\n", app.Name, result.Port)
	return nil
}
