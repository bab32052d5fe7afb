package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional `.vlangrc.yaml` read from the working directory.
// Grounded on SPEC_FULL.md §4's configuration expansion: search-path
// overrides, color on/off, and the REPL prompt string.
type Config struct {
	SearchPaths []string `yaml:"search_paths"`
	Color       *bool    `yaml:"color"`
	Prompt      string   `yaml:"prompt"`
}

// loadConfig reads .vlangrc.yaml from dir if present; a missing file is
// not an error, just an empty Config.
func loadConfig(dir string) (Config, error) {
	data, err := os.ReadFile(dir + "/.vlangrc.yaml")
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
