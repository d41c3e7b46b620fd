package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDrive(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDrive() error {
	if c.Drive.RootFolderID == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/vesper/config.toml"
		}
		return fmt.Errorf("drive.root_folder_id is required. Set DRIVE_ROOT_FOLDER_ID env var or edit %s (create with 'vesper config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.MinSlideshowSeconds > c.Render.TargetDurationSeconds {
		return errors.New("render.min_slideshow_seconds must not exceed render.target_duration_seconds")
	}
	return nil
}

// ValidateCredentials checks the OAuth fields needed for a live Drive
// connection. Kept separate from Validate so offline commands (config show,
// history) work without credentials.
func (c *Config) ValidateCredentials() error {
	if c.Drive.ClientID == "" || c.Drive.ClientSecret == "" || c.Drive.RefreshToken == "" {
		return errors.New("missing OAUTH_CLIENT_ID, OAUTH_CLIENT_SECRET, or OAUTH_REFRESH_TOKEN")
	}
	return nil
}
