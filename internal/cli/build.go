package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dockhandhq/dockhand/internal/client"
	"github.com/dockhandhq/dockhand/internal/manifest"
	"github.com/dockhandhq/dockhand/internal/protocol"
)

// Represents the 'dockhand build' command.
type BuildCmd struct {
	Manifest string `short:"f" help:"Path to the app manifest." default:"dockhand.yaml" placeholder:"PATH"`
	Output   string `short:"o" help:"Directory for the exported image archive." placeholder:"DIR"`
}

// Executes the build command.
//
// The manifest is loaded and validated locally, then shipped to the daemon
// for building. Manifest errors therefore fail fast on the client, without a
// round trip.
func (c *BuildCmd) Run(ctx context.Context) error {
	app, root, err := loadApp(c.Manifest)
	if err != nil {
		return err
	}

	result, err := client.Call[protocol.BuildResult](ctx, newClient(), protocol.CmdBuild, &protocol.BuildRequest{
		ID:     uuid.NewString(),
		App:    app,
		Root:   root,
		Output: c.Output,
	})
	if err != nil {
		return err
	}

	slog.Info("build complete",
		"app", app.Name,
		"image", result.Image,
		"archive", result.Output,
		"cache", cacheLabel(result.CacheHit),
	)
	fmt.Println(result.Output)
	return nil
}

// Loads the app manifest and returns it with its absolute root directory.
func loadApp(path string) (*manifest.App, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}

	app, err := manifest.Load(abs)
	if err != nil {
		return nil, "", err
	}

	return app, filepath.Dir(abs), nil
}

// Returns a daemon client honoring the socket override flag.
func newClient() *client.Client {
	return client.New(RootCmd.Socket)
}

func cacheLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
