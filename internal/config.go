package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/dockhandhq/dockhand/internal/paths"
	"github.com/ilyakaznacheev/cleanenv"
)

// Daemon configuration, loaded from the config file with environment
// variable overrides.
//
// Every field has a usable default, so a missing config file is not an
// error: the daemon runs with defaults plus whatever DOCKHAND_* variables
// are set.
type Config struct {
	Socket              string `yaml:"socket" env:"DOCKHAND_SOCKET"`
	ContainerdAddress   string `yaml:"containerd_address" env:"DOCKHAND_CONTAINERD_ADDRESS" env-default:"/run/containerd/containerd.sock"`
	ContainerdNamespace string `yaml:"containerd_namespace" env:"DOCKHAND_CONTAINERD_NAMESPACE" env-default:"dockhand"`
	ImageStore          string `yaml:"image_store" env:"DOCKHAND_IMAGE_STORE"`
	Output              string `yaml:"output" env:"DOCKHAND_OUTPUT" env-default:"dist"`
}

// Loads the daemon configuration.
//
// Reads the YAML config file under the XDG config dir when present, then
// applies environment overrides. Path-valued fields left empty fall back to
// the XDG-derived defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	path := paths.ConfigFile()
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read config from environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	if cfg.Socket == "" {
		cfg.Socket = paths.Socket()
	}
	if cfg.ImageStore == "" {
		cfg.ImageStore = paths.ImageStore()
	}

	return cfg, nil
}
