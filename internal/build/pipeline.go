package build

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dockhandhq/dockhand/internal/manifest"
	"github.com/dockhandhq/dockhand/internal/runtime"
)

// Holds shared state while a single app builds.
type pipeline struct {
	rt       ContainerRuntime // Container runtime for image and container operations.
	resolver BaseResolver     // Resolves the base reference to an archive and digest.
	app      *manifest.App    // App being built.
	root     string           // Root for resolving the dependency manifest and source paths.
	output   string           // Output directory for the exported archive.
	buildID  string           // Correlation ID for log lines.
}

// Creates a new [pipeline] from the given options.
func newPipeline(rt ContainerRuntime, resolver BaseResolver, opts Options) *pipeline {
	return &pipeline{
		rt:       rt,
		resolver: resolver,
		app:      opts.App,
		root:     opts.Root,
		output:   opts.Output,
		buildID:  opts.BuildID,
	}
}

// Executes the build end-to-end.
//
// Ordering is the pipeline's contract: the dependency manifest is read and
// validated before any container exists, the package and dependency steps
// run (or are skipped on a cache hit) before the source copy, and the final
// commit happens only after every step has succeeded.
func (p *pipeline) run(ctx context.Context) (*Result, error) {
	requirements, err := p.readRequirements()
	if err != nil {
		return nil, err
	}

	basePath, baseDigest, err := p.resolver.Resolve(ctx, p.app.Base)
	if err != nil {
		return nil, err
	}

	pkgCmd := packagesCommand(p.app.PackagesInstall, p.app.Packages)
	key := cacheKey(baseDigest, pkgCmd, requirements, p.app.Dependencies.Install)
	tag := cacheTag(key)

	hit, err := p.rt.ImageExists(ctx, tag)
	if err != nil {
		return nil, err
	}

	slog.Info("dependency layer", "cache", cacheLabel(hit), "key", key, "build_id", p.buildID)

	ctr, err := p.startBuildContainer(ctx, basePath, tag, hit)
	if err != nil {
		return nil, err
	}
	defer ctr.Destroy(ctx)

	if !hit {
		if err := p.installPackages(ctx, ctr); err != nil {
			return nil, err
		}
		if err := p.installDependencies(ctx, ctr, requirements); err != nil {
			return nil, err
		}
		if err := ctr.Commit(ctx, tag, nil); err != nil {
			return nil, err
		}
	}

	if err := p.copySource(ctx, ctr); err != nil {
		return nil, err
	}

	appTag, err := p.commitApp(ctx, ctr)
	if err != nil {
		return nil, err
	}

	path, err := p.rt.ExportTag(ctx, appTag, p.output)
	if err != nil {
		return nil, err
	}

	return &Result{Image: appTag, Output: path, CacheHit: hit}, nil
}

// Reads and validates the dependency manifest from the host.
//
// Returns the raw bytes, which feed both the cache key and the in-container
// install. Validation failures surface here, before the build has any side
// effects.
func (p *pipeline) readRequirements() ([]byte, error) {
	path := p.requirementsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: dependency manifest: %w", ErrFileSystemOperation, err)
	}

	reqs, err := manifest.ParseRequirements(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	slog.Debug("dependency manifest parsed", "path", path, "requirements", len(reqs))
	return data, nil
}

// Returns the host path of the dependency manifest.
func (p *pipeline) requirementsPath() string {
	path := p.app.Dependencies.Manifest
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.root, path)
	}
	return path
}

// Starts the build container from the cached layer on a hit, or from the
// resolved base archive on a miss.
func (p *pipeline) startBuildContainer(ctx context.Context, basePath, cacheTag string, hit bool) (Container, error) {
	id := p.app.Name + "-build"

	if hit {
		return p.rt.StartFromTag(ctx, cacheTag, id)
	}
	return p.rt.StartContainer(ctx, basePath, id)
}

// Installs the system package list in a single package-manager invocation.
//
// A non-zero exit from the package manager aborts the build.
func (p *pipeline) installPackages(ctx context.Context, ctr Container) error {
	if len(p.app.Packages) == 0 {
		return nil
	}

	cmd := packagesCommand(p.app.PackagesInstall, p.app.Packages)
	slog.Info("installing system packages", "packages", p.app.Packages, "build_id", p.buildID)

	return p.exec(ctx, ctr, cmd, "")
}

// Installs the dependency manifest inside the container.
//
// Only the manifest file is copied in; the source tree follows in a later
// step, so the committed cache layer depends on nothing but the manifest,
// packages, and base.
func (p *pipeline) installDependencies(ctx context.Context, ctr Container, requirements []byte) error {
	dest := p.app.Source.Dest
	if err := ctr.MkdirAll(ctx, dest); err != nil {
		return err
	}

	name := filepath.Base(p.app.Dependencies.Manifest)
	if err := copyBytes(ctx, ctr, requirements, name, dest); err != nil {
		return err
	}

	cmd := renderInstall(p.app.Dependencies.Install, name)
	slog.Info("installing dependencies", "command", cmd, "build_id", p.buildID)

	return p.exec(ctx, ctr, cmd, dest)
}

// Copies the application source tree into the image.
func (p *pipeline) copySource(ctx context.Context, ctr Container) error {
	src := p.app.Source.Path
	if !filepath.IsAbs(src) {
		src = filepath.Join(p.root, src)
	}

	slog.Info("copying source", "src", src, "dest", p.app.Source.Dest, "build_id", p.buildID)
	return copyHostDir(ctx, ctr, src, p.app.Source.Dest)
}

// Stops the build container and commits it as the app image with its
// startup metadata.
func (p *pipeline) commitApp(ctx context.Context, ctr Container) (string, error) {
	if err := ctr.Stop(ctx); err != nil {
		return "", err
	}

	tag := runtime.AppTag(p.app.Name)
	mut := &runtime.ImageMutation{
		Entrypoint:  p.app.Entrypoint(),
		Env:         p.app.Environ(),
		ExposedPort: p.app.Port,
		WorkingDir:  p.app.Source.Dest,
	}

	if err := ctr.Commit(ctx, tag, mut); err != nil {
		return "", err
	}
	return tag, nil
}

// Runs a shell command in the container, failing on a non-zero exit.
func (p *pipeline) exec(ctx context.Context, ctr Container, cmd, workdir string) error {
	result, err := ctr.Exec(ctx, "/bin/sh", cmd, nil, workdir)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("%w: %q exited %d: %s", ErrCommandFailed, cmd, result.ExitCode, result.Stderr)
	}
	return nil
}

// Returns a human-readable cache decision for log lines.
func cacheLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
