package config

const (
	defaultWorkDir               = "~/.local/share/vesper/work"
	defaultLogDir                = "~/.local/share/vesper/logs"
	defaultHorizonHours          = 12
	defaultTargetDuration        = 480
	defaultMinSlideshowSeconds   = 60
	defaultImageCount            = 8
	defaultFrameRate             = 30
	defaultVideoWidth            = 1280
	defaultVideoHeight           = 720
	defaultMusicGain             = 0.18
	defaultRecentImagesMax       = 20
	defaultRecentMusicMax        = 8
	defaultFFmpegBinary          = "ffmpeg"
	defaultFFprobeBinary         = "ffprobe"
	defaultTranscodeTimeoutSecs  = 900
	defaultSynthesizeTimeoutSecs = 300
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Render: Render{
			HorizonHours:          defaultHorizonHours,
			TargetDurationSeconds: defaultTargetDuration,
			MinSlideshowSeconds:   defaultMinSlideshowSeconds,
			ImageCount:            defaultImageCount,
			FrameRate:             defaultFrameRate,
			VideoWidth:            defaultVideoWidth,
			VideoHeight:           defaultVideoHeight,
			MusicGain:             defaultMusicGain,
			RecentImagesMax:       defaultRecentImagesMax,
			RecentMusicMax:        defaultRecentMusicMax,
		},
		Tools: Tools{
			FFmpeg:                defaultFFmpegBinary,
			FFprobe:               defaultFFprobeBinary,
			TranscodeTimeoutSecs:  defaultTranscodeTimeoutSecs,
			SynthesizeTimeoutSecs: defaultSynthesizeTimeoutSecs,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
