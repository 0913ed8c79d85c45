package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2.0, cfg.Frame.Width)
	assert.Equal(t, 1.2, cfg.Frame.Height)
	assert.Equal(t, 32, cfg.Frame.CircleSegments)
	assert.Equal(t, 0.1, cfg.Frame.LineThickness)
	assert.Equal(t, 10.0, cfg.Zoom.ReferenceOrthoSize)
	assert.Equal(t, 0.7, cfg.Arrow.HeadLength)
	assert.Equal(t, 25.0, cfg.Arrow.HeadAngle)
	assert.Equal(t, 0.3, cfg.Arrow.EndOffset)
	assert.Equal(t, 10.0, cfg.Camera.MinSize)
	assert.Equal(t, 200.0, cfg.Camera.MaxSize)
	assert.False(t, cfg.Cluster.Enabled)
	assert.Equal(t, 80.0, cfg.Cluster.CellSizePixels)
	assert.Equal(t, "Saves", cfg.Saves.Dir)
	assert.Equal(t, "map01.json", cfg.Saves.DefaultName)
	assert.Equal(t, 1600, cfg.Window.Width)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "symbolsense.json")
	body := `{
		"logLevel": "debug",
		"frame": { "width": 3, "circleSegments": 48 },
		"cluster": { "enabled": true }
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3.0, cfg.Frame.Width)
	assert.Equal(t, 48, cfg.Frame.CircleSegments)
	assert.Equal(t, 1.2, cfg.Frame.Height, "unset keys keep defaults")
	assert.True(t, cfg.Cluster.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/symbolsense.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_RejectsInvalidFrame(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"frame": {"width": 0}}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame size must be positive")
}

func TestLoad_RejectsTinyWindow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"window": {"width": 1600, "height": 20}}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window must be at least")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SYMBOLSENSE_SAVES_DIR", "/tmp/maps")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/maps", cfg.Saves.Dir)
}

func TestBindFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "info", "")
	require.NoError(t, fs.Parse([]string{"--log-level=warn"}))

	l := NewLoader()
	require.NoError(t, l.BindFlags(fs, map[string]string{"logLevel": "log-level"}))

	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)

	err = l.BindFlags(fs, map[string]string{"saves.dir": "no-such-flag"})
	require.Error(t, err)
}
