package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/skelsey/tes3io/pkg/esm"
)

// Config represents the tes3io configuration file (~/.config/tes3io/config.yaml).
type Config struct {
	// Text handling defaults for export/import.
	UnixNewlines *bool `yaml:"unix_newlines"`
	TrimTails    *bool `yaml:"trim_tails"`

	// Output
	LogLevel string `yaml:"log_level"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tes3io", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't exist.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// codec builds a codec from config defaults with CLI flags taking priority.
func (cfg Config) codec(flagSet func(string) bool, unixNewlines, trimTails bool) esm.Codec {
	c := esm.Codec{UnixNewlines: unixNewlines, TrimTails: trimTails}
	if cfg.UnixNewlines != nil && !flagSet("unix-newlines") {
		c.UnixNewlines = *cfg.UnixNewlines
	}
	if cfg.TrimTails != nil && !flagSet("trim-tails") {
		c.TrimTails = *cfg.TrimTails
	}
	return c
}
