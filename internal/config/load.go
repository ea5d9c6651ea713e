package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the per-project config file vmdclip looks for in the working
// directory.
const FileName = "vmdclip.yaml"

// Load resolves the configuration for one vmdclip run. Later sources win:
//
//  1. built-in defaults
//  2. the file named by -config, or else the first of SearchPaths that exists
//  3. command-line overrides in f
//
// The merged result is validated. A nil f skips step 3.
func Load(f *Flags) (*Config, error) {
	cfg := Default()

	path := f.ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	f.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists the implicit config locations in lookup order: a
// project-local vmdclip.yaml, then the user-wide config.yaml.
func SearchPaths() []string {
	return []string{
		FileName,
		filepath.Join(ConfigDir(), "config.yaml"),
	}
}

func findConfigFile() string {
	for _, path := range SearchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the user-wide vmdclip directory: Application Support on
// macOS, %APPDATA% on Windows, $XDG_CONFIG_HOME or ~/.config elsewhere.
func ConfigDir() string {
	const app = "vmdclip"
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "VMDClip")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "VMDClip")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, app)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", app)
}

// loadFromFile overlays the keys present in a YAML file onto cfg; absent
// keys keep their current values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
