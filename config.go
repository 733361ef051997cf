package grid

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the control-plane configuration.
// It can be populated from JSON or YAML. The zero-value is useful – all
// nested fields inherit their package defaults.
type Config struct {
	Ticker   TickerConfig   `json:"ticker" yaml:"ticker"`
	Snapshot SnapshotConfig `json:"snapshot" yaml:"snapshot"`
}

// TickerConfig configures the periodic update loop.
type TickerConfig struct {
	// IntervalMs is the sleep between update passes, in milliseconds.
	IntervalMs int `json:"intervalMs" yaml:"intervalMs"`
}

// SnapshotConfig configures state persistence.
type SnapshotConfig struct {
	// URL locates the snapshot blob; any scheme supported by the abstract
	// file storage works (file, mem, s3, gs, ...).
	URL string `json:"url" yaml:"url"`
}

// DefaultConfig returns a Config populated with the package defaults.
// Callers may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		Ticker: TickerConfig{IntervalMs: 500},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Ticker.IntervalMs < 0 {
		return fmt.Errorf("ticker.intervalMs must be >= 0")
	}
	return nil
}

// LoadConfig reads a YAML config from the supplied URL via the abstract file
// storage. Omitted fields inherit the package defaults.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return config, nil
}
