package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Slideshow assembles the selected images into a video of exactly
// baseSeconds. Each image is cover-scaled past the frame and cropped with a
// slow sinusoidal pan, which stays stable across arbitrary aspect ratios
// and avoids the transition artifacts of cross-dissolves.
func (e *Engine) Slideshow(ctx context.Context, imagePaths []string, baseSeconds float64, outPath string) error {
	if len(imagePaths) == 0 {
		return errors.New("slideshow: at least one image required")
	}
	if outPath == "" {
		return errors.New("slideshow: output path required")
	}
	perImage := baseSeconds / float64(len(imagePaths))

	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	for _, path := range imagePaths {
		args = append(args, "-loop", "1", "-t", formatSeconds(perImage), "-i", path)
	}

	var filter strings.Builder
	for i := range imagePaths {
		fmt.Fprintf(&filter, "[%d:v]%s[v%d];", i, e.panFilter(), i)
	}
	for i := range imagePaths {
		fmt.Fprintf(&filter, "[v%d]", i)
	}
	fmt.Fprintf(&filter, "concat=n=%d:v=1:a=0[out]", len(imagePaths))

	args = append(args,
		"-filter_complex", filter.String(),
		"-map", "[out]",
		"-t", formatSeconds(baseSeconds),
		"-r", fmt.Sprint(e.frameRate),
		"-c:v", "libx264", "-preset", "medium", "-pix_fmt", "yuv420p",
		outPath,
	)
	return e.run(ctx, args)
}

// panFilter scales the source a quarter past the output frame and sweeps
// the crop window with offset = margin/2 * (1 + sin(t/period)), a
// continuous function of elapsed time.
func (e *Engine) panFilter() string {
	scaleW := e.width * 5 / 4
	scaleH := e.height * 5 / 4
	return fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=increase,"+
			"crop=%d:%d:x='(iw-%d)/2*(1+sin(t/9))':y='(ih-%d)/2*(1+sin(t/13))',"+
			"setsar=1,fps=%d,format=yuv420p",
		scaleW, scaleH, e.width, e.height, e.width, e.height, e.frameRate,
	)
}

// Mux combines the slideshow and the mixed audio into the final video. The
// video input loops because the slideshow may be shorter than the target;
// -shortest truncates against the audio track.
func (e *Engine) Mux(ctx context.Context, videoPath, audioPath string, targetSeconds float64, outPath string) error {
	if videoPath == "" || audioPath == "" || outPath == "" {
		return errors.New("mux: paths required")
	}
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-stream_loop", "-1", "-i", videoPath,
		"-i", audioPath,
		"-map", "0:v", "-map", "1:a",
		"-c:v", "libx264", "-preset", "medium", "-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-r", fmt.Sprint(e.frameRate),
		"-shortest",
		"-t", formatSeconds(targetSeconds),
		outPath,
	}
	return e.run(ctx, args)
}
