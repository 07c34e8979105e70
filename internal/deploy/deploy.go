package deploy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dockhandhq/dockhand/internal/manifest"
	"github.com/dockhandhq/dockhand/internal/runtime"
)

// Shell used for both startup phases inside the container.
const shell = "/bin/sh"

// Container operations a deployment drives. Satisfied by [runtime.Container].
type Container interface {
	ID() string
	Exec(ctx context.Context, shell, command string, env []string, workdir string) (*runtime.ExecResult, error)
	ExecStream(ctx context.Context, shell, command string, env []string, workdir string, stdout, stderr io.Writer) (int, error)
	Destroy(ctx context.Context)
}

// Starts app containers from retained image tags.
type Launcher interface {
	ImageExists(ctx context.Context, tag string) (bool, error)
	StartFromTag(ctx context.Context, tag, id string) (Container, error)
}

// Adapts the concrete runtime to the [Launcher] surface.
type runtimeLauncher struct {
	rt *runtime.Runtime
}

func (l runtimeLauncher) ImageExists(ctx context.Context, tag string) (bool, error) {
	return l.rt.ImageExists(ctx, tag)
}

func (l runtimeLauncher) StartFromTag(ctx context.Context, tag, id string) (Container, error) {
	return l.rt.StartFromTag(ctx, tag, id)
}

// Controls a deployment.
type Options struct {
	App      *manifest.App // App manifest to deploy.
	DeployID string        // Correlation ID for log lines. Optional.

	// Block until the server process exits instead of returning once it is
	// running. The server's exit code is then reported in the result.
	Wait bool
}

// Returned after a successful deployment.
type Result struct {
	Container string // ID of the running app container.
	Port      int    // Port the server listens on.

	// Exit code of the server process. Only set when the deployment waited
	// for the server to finish.
	ServerExit *int
}

// Deploys a built application image.
//
// The app container starts from the image committed by the build, then the
// startup sequence runs: the release command first, blocking, and the server
// only once the release has exited zero. A non-zero release exit destroys
// the container and fails the deployment with [ErrRelease]; the server is
// never started in that case.
func Run(ctx context.Context, rt *runtime.Runtime, opts Options) (*Result, error) {
	return run(ctx, runtimeLauncher{rt: rt}, opts)
}

func run(ctx context.Context, launcher Launcher, opts Options) (*Result, error) {
	app := opts.App
	tag := runtime.AppTag(app.Name)

	slog.Info("deploying app",
		"app", app.Name,
		"image", tag,
		"deploy_id", opts.DeployID,
	)

	exists, err := launcher.ImageExists(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("%w: app %s: %w", ErrDeploy, app.Name, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: app %s: %w: %s", ErrDeploy, app.Name, ErrImageMissing, tag)
	}

	ctr, err := launcher.StartFromTag(ctx, tag, containerID(app.Name))
	if err != nil {
		return nil, fmt.Errorf("%w: app %s: %w", ErrDeploy, app.Name, err)
	}

	if err := runRelease(ctx, ctr, app); err != nil {
		ctr.Destroy(ctx)
		return nil, fmt.Errorf("%w: app %s: %w", ErrDeploy, app.Name, err)
	}

	result := &Result{Container: ctr.ID(), Port: app.Port}

	if opts.Wait {
		exit, err := runServer(ctx, ctr, app)
		if err != nil {
			ctr.Destroy(ctx)
			return nil, fmt.Errorf("%w: app %s: %w", ErrDeploy, app.Name, err)
		}
		result.ServerExit = &exit
		return result, nil
	}

	// The request context is cancelled when the client disconnects; the
	// server must outlive it.
	go func() {
		exit, err := runServer(context.Background(), ctr, app)
		if err != nil {
			slog.Error("server failed", "app", app.Name, "error", err)
			return
		}
		slog.Info("server exited", "app", app.Name, "exit_code", exit)
	}()

	return result, nil
}

// Runs the release phase, blocking until it completes.
//
// Apps without a release command skip straight to the server.
func runRelease(ctx context.Context, ctr Container, app *manifest.App) error {
	if app.Release == "" {
		return nil
	}

	slog.Info("running release", "app", app.Name, "command", app.Release)

	res, err := ctr.Exec(ctx, shell, app.Release, app.Environ(), app.Source.Dest)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%w: exit code %d: %s",
			ErrRelease, res.ExitCode, strings.TrimSpace(res.Stderr))
	}

	slog.Debug("release complete", "app", app.Name)
	return nil
}

// Runs the server phase with output streamed to the daemon log. Blocks
// until the server process exits.
func runServer(ctx context.Context, ctr Container, app *manifest.App) (int, error) {
	command := app.RenderServe(manifest.BindAddr)

	slog.Info("starting server",
		"app", app.Name,
		"command", command,
		"addr", manifest.BindAddr,
		"port", app.Port,
	)

	stdout := newLogWriter(app.Name, slog.LevelInfo)
	stderr := newLogWriter(app.Name, slog.LevelWarn)
	defer stdout.Flush()
	defer stderr.Flush()

	return ctr.ExecStream(ctx, shell, command, app.Environ(), app.Source.Dest, stdout, stderr)
}

// Returns the container ID an app deploys under. One container per app.
func containerID(name string) string {
	return name + "-app"
}
