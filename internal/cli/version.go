package cli

import (
	"context"
	"fmt"

	"github.com/dockhandhq/dockhand/internal"
)

// Represents the 'dockhand version' command.
type VersionCmd struct{}

// Executes the version command.
func (c *VersionCmd) Run(ctx context.Context) error {
	fmt.Println(internal.VersionString())
	return nil
}
