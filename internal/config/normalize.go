package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRender()
	c.normalizeTools()
	c.normalizeLogging()
	c.Drive.RootFolderID = strings.TrimSpace(c.Drive.RootFolderID)
	c.Drive.ClientID = strings.TrimSpace(c.Drive.ClientID)
	c.Drive.ClientSecret = strings.TrimSpace(c.Drive.ClientSecret)
	c.Drive.RefreshToken = strings.TrimSpace(c.Drive.RefreshToken)
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRender() {
	if c.Render.HorizonHours <= 0 {
		c.Render.HorizonHours = defaultHorizonHours
	}
	if c.Render.TargetDurationSeconds <= 0 {
		c.Render.TargetDurationSeconds = defaultTargetDuration
	}
	if c.Render.MinSlideshowSeconds <= 0 {
		c.Render.MinSlideshowSeconds = defaultMinSlideshowSeconds
	}
	if c.Render.ImageCount <= 0 {
		c.Render.ImageCount = defaultImageCount
	}
	if c.Render.FrameRate <= 0 {
		c.Render.FrameRate = defaultFrameRate
	}
	if c.Render.VideoWidth <= 0 {
		c.Render.VideoWidth = defaultVideoWidth
	}
	if c.Render.VideoHeight <= 0 {
		c.Render.VideoHeight = defaultVideoHeight
	}
	if c.Render.MusicGain <= 0 || c.Render.MusicGain >= 1 {
		c.Render.MusicGain = defaultMusicGain
	}
	if c.Render.RecentImagesMax <= 0 {
		c.Render.RecentImagesMax = defaultRecentImagesMax
	}
	if c.Render.RecentMusicMax <= 0 {
		c.Render.RecentMusicMax = defaultRecentMusicMax
	}
}

func (c *Config) normalizeTools() {
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
	if c.Tools.TranscodeTimeoutSecs <= 0 {
		c.Tools.TranscodeTimeoutSecs = defaultTranscodeTimeoutSecs
	}
	if c.Tools.SynthesizeTimeoutSecs <= 0 {
		c.Tools.SynthesizeTimeoutSecs = defaultSynthesizeTimeoutSecs
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format != "json" {
		format = defaultLogFormat
	}
	c.Logging.Format = format
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
}
