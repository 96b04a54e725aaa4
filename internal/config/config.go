package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the scan root.
const FileName = ".commentcheck.yaml"

// AppConfig represents the contents of .commentcheck.yaml.
// Pointer and empty values mean "not set".
type AppConfig struct {
	Threshold    *float64 `yaml:"threshold"`
	Tool         string   `yaml:"tool"`
	ExcludeDirs  []string `yaml:"exclude_dirs"`
	ExcludeLangs []string `yaml:"exclude_langs"`
	Format       string   `yaml:"format"`
	Theme        string   `yaml:"theme"`
	Debug        bool     `yaml:"debug"`
}

// LoadConfig reads the config file. An explicit path must exist; otherwise
// the scan root and then the user config dir are searched, and finding
// nothing yields an empty config. The returned path is "" when no file was read.
func LoadConfig(root, explicit string) (*AppConfig, string, error) {
	path := explicit
	if path == "" {
		path = getConfigPath(root)
	}
	if path == "" {
		return &AppConfig{}, "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read config file %s: %w", path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, "", fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &cfg, path, nil
}

// getConfigPath looks for the config file in root, then in the XDG user
// config dir.
func getConfigPath(root string) string {
	local := filepath.Join(root, FileName)
	if _, err := os.Stat(local); err == nil {
		return local
	}

	configHome, err := os.UserConfigDir()
	// UserConfigDir may return "/" in minimal containers; not a usable base.
	if err == nil && configHome != "" && configHome != "/" {
		xdgPath := filepath.Join(configHome, "commentcheck", FileName)
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	return ""
}
