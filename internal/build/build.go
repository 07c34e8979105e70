package build

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dockhandhq/dockhand/internal/manifest"
	"github.com/dockhandhq/dockhand/internal/runtime"
	"github.com/opencontainers/go-digest"
)

// Resolves a base image reference to a local OCI archive and its digest.
//
// Implemented by the registry store; abstracted here so builds can be
// driven from pre-resolved archives as well.
type BaseResolver interface {
	Resolve(ctx context.Context, ref string) (path string, dgst digest.Digest, err error)
}

// Container operations the pipeline drives. Satisfied by [runtime.Container].
type Container interface {
	Exec(ctx context.Context, shell, command string, env []string, workdir string) (*runtime.ExecResult, error)
	MkdirAll(ctx context.Context, path string) error
	CopyTo(ctx context.Context, r io.Reader, destDir string) error
	Stop(ctx context.Context) error
	Commit(ctx context.Context, tag string, mut *runtime.ImageMutation) error
	Destroy(ctx context.Context)
}

// Runtime surface the pipeline needs for images and build containers.
type ContainerRuntime interface {
	ImageExists(ctx context.Context, tag string) (bool, error)
	StartContainer(ctx context.Context, path, id string) (Container, error)
	StartFromTag(ctx context.Context, tag, id string) (Container, error)
	ExportTag(ctx context.Context, tag, output string) (string, error)
}

// Adapts the concrete runtime to the [ContainerRuntime] surface.
type runtimeAdapter struct {
	rt *runtime.Runtime
}

func (a runtimeAdapter) ImageExists(ctx context.Context, tag string) (bool, error) {
	return a.rt.ImageExists(ctx, tag)
}

func (a runtimeAdapter) StartContainer(ctx context.Context, path, id string) (Container, error) {
	return a.rt.StartContainer(ctx, path, id)
}

func (a runtimeAdapter) StartFromTag(ctx context.Context, tag, id string) (Container, error) {
	return a.rt.StartFromTag(ctx, tag, id)
}

func (a runtimeAdapter) ExportTag(ctx context.Context, tag, output string) (string, error) {
	return a.rt.ExportTag(ctx, tag, output)
}

// Controls a build.
type Options struct {
	App     *manifest.App // App manifest to build.
	Root    string        // Directory the manifest was loaded from, for resolving relative paths.
	Output  string        // Directory for the exported image archive.
	BuildID string        // Correlation ID for log lines. Optional.
}

// Returned after a successful build.
type Result struct {
	Image    string // Containerd tag the app image is retained under.
	Output   string // Path of the exported OCI archive.
	CacheHit bool   // Whether the package-and-dependency layer was reused.
}

// Builds an application image per the manifest.
//
// The dependency manifest is validated first, then the pipeline executes its
// steps in order against a build container. On success the image is retained
// in containerd under [runtime.AppTag] and exported to the output directory.
func Run(ctx context.Context, rt *runtime.Runtime, resolver BaseResolver, opts Options) (*Result, error) {
	app := opts.App

	slog.Info("building app",
		"app", app.Name,
		"base", app.Base,
		"build_id", opts.BuildID,
		"output", opts.Output,
	)

	if err := os.MkdirAll(opts.Output, 0755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	result, err := newPipeline(runtimeAdapter{rt: rt}, resolver, opts).run(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: app %s: %w", ErrBuild, app.Name, err)
	}

	return result, nil
}
