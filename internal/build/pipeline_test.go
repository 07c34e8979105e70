package build

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/dockhandhq/dockhand/internal/manifest"
	"github.com/dockhandhq/dockhand/internal/runtime"
	"github.com/opencontainers/go-digest"
)

// Records every runtime and container operation in call order.
type fakeRuntime struct {
	calls    []string
	cacheHit bool
}

func (f *fakeRuntime) ImageExists(ctx context.Context, tag string) (bool, error) {
	f.calls = append(f.calls, "image-exists")
	return f.cacheHit, nil
}

func (f *fakeRuntime) StartContainer(ctx context.Context, path, id string) (Container, error) {
	f.calls = append(f.calls, "start-base")
	return &fakeBuildContainer{rt: f}, nil
}

func (f *fakeRuntime) StartFromTag(ctx context.Context, tag, id string) (Container, error) {
	f.calls = append(f.calls, "start-cached")
	return &fakeBuildContainer{rt: f}, nil
}

func (f *fakeRuntime) ExportTag(ctx context.Context, tag, output string) (string, error) {
	f.calls = append(f.calls, "export")
	return filepath.Join(output, "image.tar"), nil
}

type fakeBuildContainer struct {
	rt *fakeRuntime
}

func (c *fakeBuildContainer) Exec(ctx context.Context, shell, command string, env []string, workdir string) (*runtime.ExecResult, error) {
	label := "exec-deps"
	if strings.HasPrefix(command, "apt-get") {
		label = "exec-packages"
	}
	c.rt.calls = append(c.rt.calls, label)
	return &runtime.ExecResult{}, nil
}

func (c *fakeBuildContainer) MkdirAll(ctx context.Context, path string) error {
	c.rt.calls = append(c.rt.calls, "mkdir")
	return nil
}

func (c *fakeBuildContainer) CopyTo(ctx context.Context, r io.Reader, destDir string) error {
	// Drain the stream so the pipe-writing goroutine can finish.
	io.Copy(io.Discard, r)
	c.rt.calls = append(c.rt.calls, "copy")
	return nil
}

func (c *fakeBuildContainer) Stop(ctx context.Context) error {
	c.rt.calls = append(c.rt.calls, "stop")
	return nil
}

func (c *fakeBuildContainer) Commit(ctx context.Context, tag string, mut *runtime.ImageMutation) error {
	if strings.HasPrefix(tag, "cache/") {
		c.rt.calls = append(c.rt.calls, "commit-cache")
	} else {
		c.rt.calls = append(c.rt.calls, "commit-app")
	}
	return nil
}

func (c *fakeBuildContainer) Destroy(ctx context.Context) {
	c.rt.calls = append(c.rt.calls, "destroy")
}

type fakeResolver struct {
	called bool
}

func (r *fakeResolver) Resolve(ctx context.Context, ref string) (string, digest.Digest, error) {
	r.called = true
	return "base.tar", digest.FromString(ref), nil
}

// Writes a buildable app root (requirements plus a source file) and returns
// the matching manifest.
func buildFixture(t *testing.T, requirements string) (*manifest.App, string) {
	t.Helper()

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "requirements.txt"), []byte(requirements), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "manage.py"), []byte("#!/usr/bin/env python"), 0644); err != nil {
		t.Fatal(err)
	}

	app := &manifest.App{
		Name:         "quizhub",
		Base:         "python:3.12-slim",
		Packages:     []string{"ffmpeg"},
		Dependencies: manifest.Dependencies{Manifest: "requirements.txt", Install: manifest.DefaultInstall},
		Source:       manifest.Source{Path: ".", Dest: "/app"},
		Port:         8000,
		Serve:        manifest.Serve{Command: "gunicorn core.wsgi", Workers: 4},
	}
	return app, root
}

func TestPipelineCorruptManifestFailsBeforeContainer(t *testing.T) {
	app, root := buildFixture(t, "Django==5.0.6\n!!!broken\n")
	rt := &fakeRuntime{}
	resolver := &fakeResolver{}

	p := newPipeline(rt, resolver, Options{App: app, Root: root, Output: t.TempDir()})

	_, err := p.run(context.Background())
	if !errors.Is(err, manifest.ErrRequirements) {
		t.Fatalf("err = %v, want ErrRequirements", err)
	}
	if len(rt.calls) != 0 {
		t.Errorf("runtime touched before validation: %v", rt.calls)
	}
	if resolver.called {
		t.Error("base resolved despite corrupt dependency manifest")
	}
}

func TestPipelineMissingManifestFailsBeforeContainer(t *testing.T) {
	app, root := buildFixture(t, "Django==5.0.6\n")
	app.Dependencies.Manifest = "absent.txt"
	rt := &fakeRuntime{}

	p := newPipeline(rt, &fakeResolver{}, Options{App: app, Root: root, Output: t.TempDir()})

	_, err := p.run(context.Background())
	if !errors.Is(err, ErrFileSystemOperation) {
		t.Fatalf("err = %v, want ErrFileSystemOperation", err)
	}
	if len(rt.calls) != 0 {
		t.Errorf("runtime touched before validation: %v", rt.calls)
	}
}

func TestPipelineStepOrder(t *testing.T) {
	app, root := buildFixture(t, "Django==5.0.6\n")
	rt := &fakeRuntime{}

	p := newPipeline(rt, &fakeResolver{}, Options{App: app, Root: root, Output: t.TempDir()})

	result, err := p.run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.CacheHit {
		t.Error("CacheHit = true on a cold cache")
	}

	want := []string{
		"image-exists",
		"start-base",
		"exec-packages",
		"mkdir", "copy", "exec-deps",
		"commit-cache",
		"mkdir", "copy",
		"stop", "commit-app",
		"export",
		"destroy",
	}
	if !slices.Equal(rt.calls, want) {
		t.Errorf("calls = %v\nwant    %v", rt.calls, want)
	}
}

func TestPipelineCacheHitSkipsInstallSteps(t *testing.T) {
	app, root := buildFixture(t, "Django==5.0.6\n")
	rt := &fakeRuntime{cacheHit: true}

	p := newPipeline(rt, &fakeResolver{}, Options{App: app, Root: root, Output: t.TempDir()})

	result, err := p.run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.CacheHit {
		t.Error("CacheHit = false on a warm cache")
	}

	want := []string{
		"image-exists",
		"start-cached",
		"mkdir", "copy",
		"stop", "commit-app",
		"export",
		"destroy",
	}
	if !slices.Equal(rt.calls, want) {
		t.Errorf("calls = %v\nwant    %v", rt.calls, want)
	}
}
