package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "quest"

// DefaultDataDir returns the OS-appropriate default data directory.
//
//   - macOS:   ~/Library/Application Support/quest
//   - Linux:   $XDG_DATA_HOME/quest (fallback ~/.local/share/quest)
//   - Windows: %LOCALAPPDATA%\quest (fallback %APPDATA%\quest)
func DefaultDataDir() string {
	return defaultDataDirForOS(runtime.GOOS)
}

func defaultDataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, appName)
		}
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, appName)
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, ".local", "share", appName)
	}
}

// DefaultConfigPath returns the location of config.yaml.
func DefaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName, "config.yaml")
}
