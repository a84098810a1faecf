package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"headless/pkg/scene"
)

const appName = "headless"

var (
	configHomePath string
	stateHomePath  string
)

// Config holds defaults for the renderer. Zero values mean "not set": flags
// win over config, config wins over built-in defaults.
type Config struct {
	// Viewport width in pixels
	Width int `yaml:"width,omitempty" json:"width,omitempty"`
	// Viewport height in pixels
	Height int `yaml:"height,omitempty" json:"height,omitempty"`
	// Output image path
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
	// Also write JSON logs to this file
	LogFile string `yaml:"logFile,omitempty" json:"logFile,omitempty"`
	// Colors and geometry of the demo scene
	Theme scene.Theme `yaml:"theme,omitempty" json:"theme,omitempty"`
}

// Load loads the configuration from the config file.
// It searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/headless/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/headless/config.yml
// If no config file is found, or there is no config directory at all, it
// returns an empty Config struct.
func Load(profile string) (*Config, error) {
	cfg := &Config{}
	dir := configPath()
	if dir == "" {
		return cfg, nil
	}
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(dir, fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(dir, "config"))
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			p := basePath + ext
			b, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config %s: %w", p, err)
			}
			return cfg, nil
		}
	}
	return cfg, nil
}

// configPath returns the path to the configuration directory, or "" when
// neither XDG_CONFIG_HOME nor a home directory is available.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, appName)
	} else if home, err := os.UserHomeDir(); err == nil {
		configHomePath = filepath.Join(home, ".config", appName)
	}
	return configHomePath
}

// StateHomePath returns the directory for state such as error dumps.
func StateHomePath() (string, error) {
	if stateHomePath != "" {
		return stateHomePath, nil
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, appName)
		return stateHomePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find state directory: %w", err)
	}
	stateHomePath = filepath.Join(home, ".local", "state", appName)
	return stateHomePath, nil
}
