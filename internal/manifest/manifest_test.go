package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const minimalManifest = `app: quizhub
base: python:3.12-slim
dependencies:
  manifest: requirements.txt
serve:
  command: gunicorn core.wsgi --bind {addr}:{port}
`

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	app, err := Load(writeManifest(t, minimalManifest))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if app.Name != "quizhub" {
		t.Errorf("Name = %q, want quizhub", app.Name)
	}
	if app.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", app.Port, DefaultPort)
	}
	if app.Serve.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", app.Serve.Workers, DefaultWorkers)
	}
	if app.Source.Path != "." {
		t.Errorf("Source.Path = %q, want .", app.Source.Path)
	}
	if app.Source.Dest != DefaultSourceDest {
		t.Errorf("Source.Dest = %q, want %s", app.Source.Dest, DefaultSourceDest)
	}
	if app.Dependencies.Install != DefaultInstall {
		t.Errorf("Install = %q, want default install command", app.Dependencies.Install)
	}
}

func TestLoadFull(t *testing.T) {
	app, err := Load(writeManifest(t, `app: quizhub
base: python:3.12-slim
packages: [ffmpeg, libpq5]
dependencies:
  manifest: requirements.txt
source:
  path: ./src
  dest: /srv/app
port: 9000
release: python manage.py migrate
serve:
  command: gunicorn core.wsgi --bind {addr}:{port} --workers {workers}
  workers: 8
env:
  DJANGO_SETTINGS_MODULE: core.settings
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(app.Packages) != 2 || app.Packages[0] != "ffmpeg" {
		t.Errorf("Packages = %v", app.Packages)
	}
	if app.Port != 9000 {
		t.Errorf("Port = %d, want 9000", app.Port)
	}
	if app.Release != "python manage.py migrate" {
		t.Errorf("Release = %q", app.Release)
	}
	if app.Serve.Workers != 8 {
		t.Errorf("Workers = %d, want 8", app.Serve.Workers)
	}
	if app.Env["DJANGO_SETTINGS_MODULE"] != "core.settings" {
		t.Errorf("Env = %v", app.Env)
	}
}

func TestLoadUnknownField(t *testing.T) {
	_, err := Load(writeManifest(t, minimalManifest+"volumes: [data]\n"))
	if !errors.Is(err, ErrManifest) {
		t.Fatalf("err = %v, want ErrManifest", err)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrManifest) {
		t.Fatalf("err = %v, want ErrManifest", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() App {
		return App{
			Name:         "quizhub",
			Base:         "python:3.12-slim",
			Dependencies: Dependencies{Manifest: "requirements.txt", Install: DefaultInstall},
			Source:       Source{Path: ".", Dest: DefaultSourceDest},
			Port:         DefaultPort,
			Serve:        Serve{Command: "gunicorn core.wsgi", Workers: DefaultWorkers},
		}
	}

	tests := []struct {
		name   string
		mutate func(*App)
		valid  bool
	}{
		{"complete", func(a *App) {}, true},
		{"missing name", func(a *App) { a.Name = "" }, false},
		{"uppercase name", func(a *App) { a.Name = "QuizHub" }, false},
		{"name with slash", func(a *App) { a.Name = "quiz/hub" }, false},
		{"missing base", func(a *App) { a.Base = "" }, false},
		{"missing dependency manifest", func(a *App) { a.Dependencies.Manifest = "" }, false},
		{"port zero", func(a *App) { a.Port = 0 }, false},
		{"port out of range", func(a *App) { a.Port = 70000 }, false},
		{"missing serve command", func(a *App) { a.Serve.Command = "" }, false},
		{"zero workers", func(a *App) { a.Serve.Workers = 0 }, false},
		{"empty package name", func(a *App) { a.Packages = []string{"ffmpeg", ""} }, false},
		{"no packages", func(a *App) { a.Packages = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := valid()
			tt.mutate(&app)

			err := app.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrManifest) {
				t.Errorf("err = %v, want ErrManifest", err)
			}
		})
	}
}
