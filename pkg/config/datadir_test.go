package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDataDirMacOS(t *testing.T) {
	home, _ := os.UserHomeDir()
	dir := defaultDataDirForOS("darwin")
	assert.Equal(t, filepath.Join(home, "Library", "Application Support", "quest"), dir)
}

func TestDefaultDataDirLinux(t *testing.T) {
	home, _ := os.UserHomeDir()

	t.Setenv("XDG_DATA_HOME", "")
	dir := defaultDataDirForOS("linux")
	assert.Equal(t, filepath.Join(home, ".local", "share", "quest"), dir)

	t.Setenv("XDG_DATA_HOME", "/custom/data")
	dir = defaultDataDirForOS("linux")
	assert.Equal(t, filepath.Join("/custom/data", "quest"), dir)
}

func TestDefaultDataDirWindows(t *testing.T) {
	t.Setenv("LOCALAPPDATA", `C:\Users\test\AppData\Local`)
	dir := defaultDataDirForOS("windows")
	assert.Equal(t, filepath.Join(`C:\Users\test\AppData\Local`, "quest"), dir)

	t.Setenv("LOCALAPPDATA", "")
	t.Setenv("APPDATA", `C:\Users\test\AppData\Roaming`)
	dir = defaultDataDirForOS("windows")
	assert.Equal(t, filepath.Join(`C:\Users\test\AppData\Roaming`, "quest"), dir)
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, filepath.Join("/custom/config", "quest", "config.yaml"), DefaultConfigPath())
}
