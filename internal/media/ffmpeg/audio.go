package ffmpeg

import (
	"context"
	"errors"
	"fmt"
)

// narrationSampleRate matches the synthesis boundary's fixed output rate.
const narrationSampleRate = 24000

// ConcatAudio joins the listed audio chunk files (concat demuxer list
// format) into one mono PCM track at the narration sample rate.
func (e *Engine) ConcatAudio(ctx context.Context, listPath, outPath string) error {
	if listPath == "" || outPath == "" {
		return errors.New("concat audio: paths required")
	}
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
		"-ac", "1",
		"-ar", fmt.Sprint(narrationSampleRate),
		"-c:a", "pcm_s16le",
		outPath,
	}
	return e.run(ctx, args)
}

// MixAudio produces the final audio track at exactly targetSeconds. Without
// music the narration is padded with silence; with music the track is
// looped, attenuated to the fixed low gain, and mixed under the narration.
// A fixed gain, not dynamic ducking, keeps narration intelligible.
func (e *Engine) MixAudio(ctx context.Context, narrationPath, musicPath string, targetSeconds float64, outPath string) error {
	if narrationPath == "" || outPath == "" {
		return errors.New("mix audio: paths required")
	}
	target := formatSeconds(targetSeconds)

	if musicPath == "" {
		args := []string{
			"-y", "-hide_banner", "-loglevel", "error",
			"-i", narrationPath,
			"-af", fmt.Sprintf("apad=whole_dur=%s", target),
			"-t", target,
			"-c:a", "aac", "-b:a", "192k",
			outPath,
		}
		return e.run(ctx, args)
	}

	filter := fmt.Sprintf(
		"[0:a]apad=whole_dur=%s[voice];[1:a]volume=%.2f[bg];[voice][bg]amix=inputs=2:duration=first:normalize=0[mix]",
		target, e.musicGain,
	)
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", narrationPath,
		"-stream_loop", "-1", "-i", musicPath,
		"-filter_complex", filter,
		"-map", "[mix]",
		"-t", target,
		"-c:a", "aac", "-b:a", "192k",
		outPath,
	}
	return e.run(ctx, args)
}
