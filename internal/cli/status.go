package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dockhandhq/dockhand/internal/client"
	"github.com/dockhandhq/dockhand/internal/protocol"
)

// Represents the 'dockhand status' command.
type StatusCmd struct{}

// Executes the status command.
//
// An unreachable daemon is reported as not running, not as an error.
func (c *StatusCmd) Run(ctx context.Context) error {
	status, err := client.Call[protocol.StatusResult](ctx, newClient(), protocol.CmdStatus, nil)
	if err != nil {
		if errors.Is(err, client.ErrConnect) {
			fmt.Println("daemon: not running")
			return nil
		}
		return err
	}

	fmt.Println("daemon: running")
	fmt.Printf("version: %s\n", status.Version)
	fmt.Printf("pid: %d\n", status.Pid)
	fmt.Printf("uptime: %s\n", status.Uptime)
	fmt.Printf("builds: %d\n", status.Builds)
	fmt.Printf("deploys: %d\n", status.Deploys)
	return nil
}
