package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".lox.yaml"

// fileConfig is the optional YAML configuration. Command line flags take
// precedence over anything set here.
type fileConfig struct {
	LogLevel     string     `yaml:"log_level"`
	LogFile      string     `yaml:"log_file"`
	MaxCallDepth int        `yaml:"max_call_depth"`
	REPL         replConfig `yaml:"repl"`
}

type replConfig struct {
	HistoryFile string `yaml:"history_file"`
}

// loadConfig reads path, or .lox.yaml in the working directory when path is
// empty. A missing default file is not an error; a missing explicit one is.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.MaxCallDepth < 0 {
		return fileConfig{}, fmt.Errorf("config: %s: max_call_depth must not be negative", path)
	}
	return cfg, nil
}
