// Package config loads and applies .yarara.yml configuration files for
// analysis defaults. Flags given explicitly on the command line always
// win over config values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the .yarara.yml configuration file. Zero values mean
// "not set" and leave the CLI defaults in place.
type Config struct {
	Filetype            string   `yaml:"filetype,omitempty"`
	FindSecrets         bool     `yaml:"find_secrets,omitempty"`
	DisableExternalLint bool     `yaml:"disable_external_lint,omitempty"`
	Format              string   `yaml:"format,omitempty"`
	FailOn              string   `yaml:"fail_on,omitempty"`
	LogLevel            string   `yaml:"log_level,omitempty"`
	DisabledRules       []string `yaml:"disabled_rules,omitempty"`
}

// maxConfigSize guards against accidentally pointing at a huge file.
const maxConfigSize = 1 << 20

// Load reads the .yarara.yml or .yarara.yaml config file from the given
// path. If path is a file, its parent directory is used. If no config
// file is found, it returns a zero Config (not an error).
func Load(dir string) (Config, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for _, name := range []string{".yarara.yml", ".yarara.yaml"} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		if info.Size() > maxConfigSize {
			return Config{}, fmt.Errorf("config file too large: %s (%d bytes, max 1 MB)", path, info.Size())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		return cfg, nil
	}
	return Config{}, nil
}
