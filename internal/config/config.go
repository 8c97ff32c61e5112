// Package config loads optional on-disk defaults for the encrypt command -
// default cost and worker count - the same way the teacher
// loads torrent-creation presets: a small versioned YAML file, found by
// searching a fixed list of locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// currentVersion is the only schema version this package understands.
const currentVersion = 1

// Defaults holds the values cmd falls back to when a flag isn't set.
type Defaults struct {
	Version int  `yaml:"version"`
	Cost    *int `yaml:"cost"`
	Workers *int `yaml:"workers"`
}

// builtin are the values used when no config file is found at all.
var builtin = Defaults{Cost: intPtr(10), Workers: intPtr(0)}

func intPtr(v int) *int { return &v }

// ResolveCost returns the configured default cost, or the built-in default.
func (d *Defaults) ResolveCost() int {
	if d == nil || d.Cost == nil {
		return *builtin.Cost
	}
	return *d.Cost
}

// ResolveWorkers returns the configured default worker count, or the
// built-in default (0, meaning "let the codec decide").
func (d *Defaults) ResolveWorkers() int {
	if d == nil || d.Workers == nil {
		return *builtin.Workers
	}
	return *d.Workers
}

// FindConfigFile searches known locations for a config file, preferring an
// explicitly supplied path.
func FindConfigFile(explicitPath string) (string, error) {
	locations := []string{
		explicitPath,
		"fcrypt.yaml",
	}

	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "fcrypt", "config.yaml"))
	}

	for _, loc := range locations {
		if loc == "" {
			continue
		}
		if _, err := os.Stat(loc); err == nil {
			return loc, nil
		}
	}

	return "", fmt.Errorf("could not find a config file in known locations")
}

// Load reads and validates a config file. A missing version or mismatched
// version is rejected, matching the teacher's preset version gate.
func Load(configPath string) (*Defaults, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}

	if d.Version != currentVersion {
		return nil, fmt.Errorf("unsupported config version: %d", d.Version)
	}

	return &d, nil
}
