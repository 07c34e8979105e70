package manifest

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (

	// Default filename looked up when no manifest path is given.
	DefaultFilename = "dockhand.yaml"

	// Default service port declared on the image.
	DefaultPort = 8000

	// Default number of server workers.
	DefaultWorkers = 4

	// Default in-image destination for the application source.
	DefaultSourceDest = "/app"

	// Default dependency install command. The {manifest} placeholder expands
	// to the in-image path of the dependency manifest.
	DefaultInstall = "pip install --no-cache-dir -r {manifest}"
)

// App names must work as container IDs and image tags.
var appNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Describes one deployable application.
//
// JSON tags mirror the YAML tags so the manifest can travel inside protocol
// payloads unchanged.
type App struct {
	Name            string            `yaml:"app" json:"app"`
	Base            string            `yaml:"base" json:"base"`
	Packages        []string          `yaml:"packages" json:"packages,omitempty"`
	PackagesInstall string            `yaml:"packages_install" json:"packages_install,omitempty"`
	Dependencies    Dependencies      `yaml:"dependencies" json:"dependencies"`
	Source          Source            `yaml:"source" json:"source"`
	Port            int               `yaml:"port" json:"port"`
	Release         string            `yaml:"release" json:"release,omitempty"`
	Serve           Serve             `yaml:"serve" json:"serve"`
	Env             map[string]string `yaml:"env" json:"env,omitempty"`
}

// Locates the application dependency manifest and how to install it.
type Dependencies struct {
	Manifest string `yaml:"manifest" json:"manifest"`
	Install  string `yaml:"install" json:"install"`
}

// Describes the application source tree to copy into the image.
type Source struct {
	Path string `yaml:"path" json:"path"`
	Dest string `yaml:"dest" json:"dest"`
}

// Describes the server phase of the startup sequence.
type Serve struct {
	Command string `yaml:"command" json:"command"`
	Workers int    `yaml:"workers" json:"workers"`
}

// Reads and validates an app manifest from a YAML file.
//
// Unknown fields are rejected. Defaults are applied before validation, so a
// minimal manifest only needs app, base, a dependency manifest path, and a
// serve command.
func Load(path string) (*App, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var app App
	if err := dec.Decode(&app); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrManifest, path, err)
	}

	app.applyDefaults()
	if err := app.Validate(); err != nil {
		return nil, err
	}

	return &app, nil
}

// Fills in defaults for optional fields.
func (a *App) applyDefaults() {
	if a.Dependencies.Install == "" {
		a.Dependencies.Install = DefaultInstall
	}
	if a.Source.Path == "" {
		a.Source.Path = "."
	}
	if a.Source.Dest == "" {
		a.Source.Dest = DefaultSourceDest
	}
	if a.Port == 0 {
		a.Port = DefaultPort
	}
	if a.Serve.Workers == 0 {
		a.Serve.Workers = DefaultWorkers
	}
}

// Checks that the manifest describes a buildable, launchable application.
func (a *App) Validate() error {
	switch {
	case a.Name == "":
		return fmt.Errorf("%w: app name is required", ErrManifest)
	case !appNamePattern.MatchString(a.Name):
		return fmt.Errorf("%w: app name %q must match %s", ErrManifest, a.Name, appNamePattern)
	case a.Base == "":
		return fmt.Errorf("%w: base image is required", ErrManifest)
	case a.Dependencies.Manifest == "":
		return fmt.Errorf("%w: dependency manifest path is required", ErrManifest)
	case a.Port < 1 || a.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrManifest, a.Port)
	case a.Serve.Command == "":
		return fmt.Errorf("%w: serve command is required", ErrManifest)
	case a.Serve.Workers < 1:
		return fmt.Errorf("%w: serve workers must be at least 1", ErrManifest)
	}

	for _, pkg := range a.Packages {
		if pkg == "" {
			return fmt.Errorf("%w: empty system package name", ErrManifest)
		}
	}

	return nil
}
