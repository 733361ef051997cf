package grid

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 500, config.Ticker.IntervalMs)
	assert.NoError(t, config.Validate())
}

func TestValidate(t *testing.T) {
	config := DefaultConfig()
	config.Ticker.IntervalMs = -1
	assert.Error(t, config.Validate())

	var nilConfig *Config
	assert.NoError(t, nilConfig.Validate())
}

func TestLoadConfig(t *testing.T) {
	URL := path.Join(t.TempDir(), "config.yaml")
	data := []byte("ticker:\n  intervalMs: 250\nsnapshot:\n  url: /var/lib/grid/state.snapshot\n")
	require.NoError(t, os.WriteFile(URL, data, 0o644))

	config, err := LoadConfig(context.Background(), URL)
	require.NoError(t, err)
	assert.Equal(t, 250, config.Ticker.IntervalMs)
	assert.Equal(t, "/var/lib/grid/state.snapshot", config.Snapshot.URL)
}

func TestLoadConfigDefaults(t *testing.T) {
	URL := path.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(URL, []byte("snapshot:\n  url: s\n"), 0o644))

	config, err := LoadConfig(context.Background(), URL)
	require.NoError(t, err)
	assert.Equal(t, 500, config.Ticker.IntervalMs, "omitted fields inherit defaults")
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(context.Background(), path.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	URL := path.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(URL, []byte("ticker:\n  intervalMs: -5\n"), 0o644))

	_, err := LoadConfig(context.Background(), URL)
	assert.Error(t, err)
}
