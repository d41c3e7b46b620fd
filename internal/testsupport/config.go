package testsupport

import (
	"path/filepath"
	"testing"

	"vesper/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Drive.RootFolderID = "root"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithTargetDuration overrides the target video duration in seconds.
func WithTargetDuration(seconds int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Render.TargetDurationSeconds = seconds
	}
}

// WithHorizonHours overrides the publish window horizon.
func WithHorizonHours(hours int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Render.HorizonHours = hours
	}
}

// WithImageCount overrides the images selected per job.
func WithImageCount(count int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Render.ImageCount = count
	}
}
