package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains local directory configuration.
type Paths struct {
	WorkDir string `toml:"work_dir"`
	LogDir  string `toml:"log_dir"`
}

// Drive contains the asset store location and OAuth credentials.
// Credential fields are normally left empty in the file and supplied via the
// OAUTH_CLIENT_ID, OAUTH_CLIENT_SECRET, and OAUTH_REFRESH_TOKEN environment
// variables; the root folder falls back to DRIVE_ROOT_FOLDER_ID.
type Drive struct {
	RootFolderID string `toml:"root_folder_id"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RefreshToken string `toml:"refresh_token"`
}

// Render contains the publish window and media pipeline tuning knobs.
type Render struct {
	HorizonHours          int     `toml:"horizon_hours"`
	TargetDurationSeconds int     `toml:"target_duration_seconds"`
	MinSlideshowSeconds   int     `toml:"min_slideshow_seconds"`
	ImageCount            int     `toml:"image_count"`
	FrameRate             int     `toml:"frame_rate"`
	VideoWidth            int     `toml:"video_width"`
	VideoHeight           int     `toml:"video_height"`
	MusicGain             float64 `toml:"music_gain"`
	RecentImagesMax       int     `toml:"recent_images_max"`
	RecentMusicMax        int     `toml:"recent_music_max"`
}

// Tools contains the external transcoder binaries and their timeout.
type Tools struct {
	FFmpeg                string `toml:"ffmpeg"`
	FFprobe               string `toml:"ffprobe"`
	TranscodeTimeoutSecs  int    `toml:"transcode_timeout"`
	SynthesizeTimeoutSecs int    `toml:"synthesize_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Vesper.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Drive   Drive   `toml:"drive"`
	Render  Render  `toml:"render"`
	Tools   Tools   `toml:"tools"`
	Logging Logging `toml:"logging"`
}

// Convenience accessors used throughout the pipeline.

func (c *Config) WorkDir() string { return c.Paths.WorkDir }
func (c *Config) LogDir() string  { return c.Paths.LogDir }

// DefaultConfigPath returns the canonical config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vesper", "config.toml"), nil
}

// Load reads configuration from the provided path (or the default location
// when path is empty), applies environment fallbacks, normalizes paths, and
// validates the result. It returns the config, the path consulted, and
// whether a file was actually found there.
func Load(path string) (*Config, string, bool, error) {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, "", false, err
		}
		resolved = defaultPath
	}
	expanded, err := expandPath(resolved)
	if err != nil {
		return nil, resolved, false, fmt.Errorf("expand config path: %w", err)
	}

	cfg := Default()
	found := false
	data, err := os.ReadFile(expanded)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, expanded, true, fmt.Errorf("parse config %s: %w", expanded, err)
		}
		found = true
	case errors.Is(err, fs.ErrNotExist):
		// Defaults plus environment are enough to run.
	default:
		return nil, expanded, false, fmt.Errorf("read config %s: %w", expanded, err)
	}

	cfg.applyEnvironment()
	if err := cfg.normalize(); err != nil {
		return nil, expanded, found, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, expanded, found, err
	}
	return &cfg, expanded, found, nil
}

func (c *Config) applyEnvironment() {
	if v := strings.TrimSpace(os.Getenv("DRIVE_ROOT_FOLDER_ID")); v != "" {
		c.Drive.RootFolderID = v
	}
	if v := strings.TrimSpace(os.Getenv("OAUTH_CLIENT_ID")); v != "" {
		c.Drive.ClientID = v
	}
	if v := strings.TrimSpace(os.Getenv("OAUTH_CLIENT_SECRET")); v != "" {
		c.Drive.ClientSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("OAUTH_REFRESH_TOKEN")); v != "" {
		c.Drive.RefreshToken = v
	}
}

// EnsureDirectories creates the local work and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", expanded, err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Clean(trimmed), nil
}
