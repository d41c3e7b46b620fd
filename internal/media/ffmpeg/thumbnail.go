package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Thumbnail renders the job thumbnail: the first selected image
// cover-cropped to frame size, a translucent darkening box for legibility,
// and the word-wrapped title centered on top. The title arrives as a text
// file path so no user-controlled text is spliced into the filter graph.
func (e *Engine) Thumbnail(ctx context.Context, imagePath, titleFilePath, outPath string) error {
	if imagePath == "" || outPath == "" {
		return errors.New("thumbnail: paths required")
	}

	var filter strings.Builder
	fmt.Fprintf(&filter,
		"scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
		e.width, e.height, e.width, e.height,
	)
	filter.WriteString(",drawbox=x=0:y=ih/4:w=iw:h=ih/2:color=black@0.45:t=fill")
	if titleFilePath != "" {
		fmt.Fprintf(&filter,
			",drawtext=textfile=%s:fontcolor=white:fontsize=%d:line_spacing=%d:x=(w-text_w)/2:y=(h-text_h)/2",
			titleFilePath, e.height/10, e.height/40,
		)
	}

	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", imagePath,
		"-vf", filter.String(),
		"-frames:v", "1",
		"-q:v", "3",
		outPath,
	}
	return e.run(ctx, args)
}

// WrapTitle word-wraps a title to at most maxLines lines of roughly
// lineWidth runes, for use with drawtext's textfile input. Overflow past
// the last line is dropped with an ellipsis.
func WrapTitle(title string, lineWidth, maxLines int) string {
	words := strings.Fields(title)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	current := ""
	for i, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if len([]rune(candidate)) <= lineWidth || current == "" {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
		if len(lines) == maxLines-1 {
			rest := strings.Join(words[i:], " ")
			if len([]rune(rest)) > lineWidth {
				rest = strings.TrimSpace(string([]rune(rest)[:lineWidth-1])) + "…"
			}
			return strings.Join(append(lines, rest), "\n")
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n")
}
