package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvDataDir  = "QUEST_DIR"
	EnvLogLevel = "QUEST_LOG_LEVEL"
)

// Config holds user settings.
type Config struct {
	DataDir   string `yaml:"data_dir,omitempty"`
	GoalsFile string `yaml:"goals_file,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
	// LogFile is where the TUI writes its log. Relative paths are resolved
	// against DataDir.
	LogFile string `yaml:"log_file,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:   DefaultDataDir(),
		GoalsFile: "goals.txt",
		LogLevel:  "info",
		LogFile:   "quest.log",
	}
}

// Load reads the config file at path and applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := cfg.merge(data); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.DataDir = dir
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

// merge overlays the non-empty values from a YAML document.
func (c *Config) merge(data []byte) error {
	var file Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if file.DataDir != "" {
		c.DataDir = expandHome(file.DataDir)
	}
	if file.GoalsFile != "" {
		c.GoalsFile = file.GoalsFile
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	if file.LogFile != "" {
		c.LogFile = file.LogFile
	}
	return nil
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
