package runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vesper/internal/drive"
	"vesper/internal/logging"
	"vesper/internal/media/ffmpeg"
	"vesper/internal/orders"
	"vesper/internal/recency"
	"vesper/internal/script"
	"vesper/internal/services"
	"vesper/internal/tts"
)

// thumbnail title layout, tuned by eye against the 16:9 frame.
const (
	titleLineWidth = 24
	titleMaxLines  = 3
)

type jobArtifacts struct {
	narrationSeconds float64
	imageCount       int
	musicName        string
}

// renderJob runs the full pipeline for one eligible order. All local work
// happens in a per-job scratch directory that is removed afterwards; nothing
// is uploaded until every stage has succeeded.
func (r *Runner) renderJob(ctx context.Context, layout *drive.Layout, pools *poolCache, state *recency.State, order orders.WorkOrder, jobID string, logger *slog.Logger) (jobArtifacts, error) {
	var artifacts jobArtifacts

	jobDir := filepath.Join(r.cfg.WorkDir(), jobID)
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return artifacts, services.Wrap(services.ErrPipelineStage, "prepare", "scratch", jobDir, err)
	}
	defer os.RemoveAll(jobDir) //nolint:errcheck

	narration, err := r.loadNarration(ctx, layout, order)
	if err != nil {
		return artifacts, err
	}
	track := order.ExplicitTrack
	if track == "" {
		track = narration.ExplicitTrack
	}

	imagePaths, imageNames, err := r.fetchImages(ctx, layout, pools, state, order, jobDir)
	if err != nil {
		return artifacts, err
	}
	artifacts.imageCount = len(imagePaths)

	narrationPath, err := r.synthesizeNarration(ctx, narration.Text, order, jobDir)
	if err != nil {
		return artifacts, err
	}

	seconds, err := r.probe(ctx, narrationPath)
	if err != nil {
		return artifacts, services.Wrap(services.ErrExternalTool, "probe", "narration", narrationPath, err)
	}
	artifacts.narrationSeconds = seconds
	target := float64(r.cfg.Render.TargetDurationSeconds)
	base := clampSeconds(seconds, float64(r.cfg.Render.MinSlideshowSeconds), target)
	logger.Info("narration synthesized",
		logging.String(logging.FieldStage, "synthesize"),
		logging.Float64("seconds", seconds),
		logging.Float64("base_seconds", base),
	)

	musicPath, musicName, err := r.fetchMusic(ctx, pools, state, order, narration.MusicPolicy, track, jobDir)
	if err != nil {
		return artifacts, err
	}
	artifacts.musicName = musicName

	slideshowPath := filepath.Join(jobDir, "slideshow.mp4")
	if err := r.engine.Slideshow(ctx, imagePaths, base, slideshowPath); err != nil {
		return artifacts, services.Wrap(services.ErrPipelineStage, "slideshow", "transcode", "", err)
	}

	audioPath := filepath.Join(jobDir, "audio.m4a")
	if err := r.engine.MixAudio(ctx, narrationPath, musicPath, target, audioPath); err != nil {
		return artifacts, services.Wrap(services.ErrPipelineStage, "mix", "transcode", "", err)
	}

	videoPath := filepath.Join(jobDir, jobID+".mp4")
	if err := r.engine.Mux(ctx, slideshowPath, audioPath, target, videoPath); err != nil {
		return artifacts, services.Wrap(services.ErrPipelineStage, "mux", "transcode", "", err)
	}

	thumbPath, err := r.renderThumbnail(ctx, order, jobID, imagePaths[0], jobDir)
	if err != nil {
		return artifacts, err
	}

	if err := r.uploadOutputs(ctx, layout, order, jobID, videoPath, thumbPath); err != nil {
		return artifacts, err
	}

	state.RecordImages(order.Language, imageNames, r.cfg.Render.RecentImagesMax)
	state.RecordMusic(order.Language, musicName, r.cfg.Render.RecentMusicMax)
	return artifacts, nil
}

// loadNarration downloads the slot script and extracts narration text plus
// music directives. A missing script skips the job rather than failing it.
func (r *Runner) loadNarration(ctx context.Context, layout *drive.Layout, order orders.WorkOrder) (script.Narration, error) {
	name := fmt.Sprintf("%s_%s.tsv", order.Slot, order.Language)
	file, err := drive.FindFile(ctx, r.store, layout.Scripts, name)
	if err != nil {
		return script.Narration{}, services.Wrap(services.ErrAssetUnavailable, "script", "find", name, err)
	}
	data, err := r.store.Download(ctx, file.ID)
	if err != nil {
		return script.Narration{}, services.Wrap(services.ErrExternalTool, "script", "download", name, err)
	}
	steps := script.Parse(bytes.NewReader(data))
	return script.ExtractNarration(steps, order.MusicPolicy), nil
}

// fetchImages selects the slideshow pool for the slot (with the shared
// fallback pool) and downloads the picks into the scratch directory.
func (r *Runner) fetchImages(ctx context.Context, layout *drive.Layout, pools *poolCache, state *recency.State, order orders.WorkOrder, jobDir string) ([]string, []string, error) {
	pool, err := pools.images(ctx, layout, order.Slot)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrExternalTool, "images", "list", order.Slot, err)
	}
	picks, err := r.selector.SelectImages(pool, r.cfg.Render.ImageCount, recency.Avoid(state.Images(order.Language)))
	if err != nil {
		return nil, nil, err
	}

	paths := make([]string, 0, len(picks))
	names := make([]string, 0, len(picks))
	for i, pick := range picks {
		data, err := r.store.Download(ctx, pick.ID)
		if err != nil {
			return nil, nil, services.Wrap(services.ErrExternalTool, "images", "download", pick.Name, err)
		}
		path := filepath.Join(jobDir, fmt.Sprintf("img_%02d%s", i, extensionOr(pick.Name, ".jpg")))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, nil, services.Wrap(services.ErrPipelineStage, "images", "write", pick.Name, err)
		}
		paths = append(paths, path)
		names = append(names, pick.Name)
	}
	return paths, names, nil
}

// synthesizeNarration chunks the text under the request limit, synthesizes
// each chunk, and concatenates the results into one narration track.
func (r *Runner) synthesizeNarration(ctx context.Context, text string, order orders.WorkOrder, jobDir string) (string, error) {
	chunks := tts.Split(text, tts.RequestLimit)
	if len(chunks) == 0 {
		return "", services.Wrap(services.ErrAssetUnavailable, "synthesize", "chunk", "empty narration", nil)
	}

	var listBuf strings.Builder
	for i, chunk := range chunks {
		audio, err := r.synthesizeChunk(ctx, chunk, order)
		if err != nil {
			return "", services.Wrap(services.ErrPipelineStage, "synthesize", fmt.Sprintf("chunk %d/%d", i+1, len(chunks)), "", err)
		}
		chunkPath := filepath.Join(jobDir, fmt.Sprintf("chunk_%02d.wav", i))
		if err := os.WriteFile(chunkPath, audio, 0o644); err != nil {
			return "", services.Wrap(services.ErrPipelineStage, "synthesize", "write chunk", chunkPath, err)
		}
		fmt.Fprintf(&listBuf, "file '%s'\n", strings.ReplaceAll(chunkPath, "'", `'\''`))
	}

	listPath := filepath.Join(jobDir, "chunks.txt")
	if err := os.WriteFile(listPath, []byte(listBuf.String()), 0o644); err != nil {
		return "", services.Wrap(services.ErrPipelineStage, "synthesize", "write concat list", listPath, err)
	}
	narrationPath := filepath.Join(jobDir, "narration.wav")
	if err := r.engine.ConcatAudio(ctx, listPath, narrationPath); err != nil {
		return "", services.Wrap(services.ErrPipelineStage, "synthesize", "concat", "", err)
	}
	return narrationPath, nil
}

func (r *Runner) synthesizeChunk(ctx context.Context, chunk string, order orders.WorkOrder) ([]byte, error) {
	if timeout := r.cfg.Tools.SynthesizeTimeoutSecs; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}
	return r.synth.Synthesize(ctx, chunk, order.Language)
}

// fetchMusic resolves and downloads the background track. A nil pick means
// narration-only audio, which is valid output, not an error.
func (r *Runner) fetchMusic(ctx context.Context, pools *poolCache, state *recency.State, order orders.WorkOrder, policy orders.MusicPolicy, track, jobDir string) (string, string, error) {
	bgPool, err := pools.music(ctx, pools.layout.MusicBG)
	if err != nil {
		return "", "", services.Wrap(services.ErrExternalTool, "music", "list background pool", "", err)
	}
	mariaPool, err := pools.music(ctx, pools.layout.MusicMaria)
	if err != nil {
		return "", "", services.Wrap(services.ErrExternalTool, "music", "list dedicated pool", "", err)
	}

	pick := r.selector.SelectMusic(policy, track, bgPool, mariaPool, recency.Avoid(state.Music(order.Language)))
	if pick == nil {
		return "", "", nil
	}
	data, err := r.store.Download(ctx, pick.ID)
	if err != nil {
		return "", "", services.Wrap(services.ErrExternalTool, "music", "download", pick.Name, err)
	}
	path := filepath.Join(jobDir, "music"+extensionOr(pick.Name, ".mp3"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", services.Wrap(services.ErrPipelineStage, "music", "write", pick.Name, err)
	}
	return path, pick.Name, nil
}

func (r *Runner) renderThumbnail(ctx context.Context, order orders.WorkOrder, jobID, coverPath, jobDir string) (string, error) {
	titlePath := ""
	if wrapped := ffmpeg.WrapTitle(order.Title, titleLineWidth, titleMaxLines); wrapped != "" {
		titlePath = filepath.Join(jobDir, "title.txt")
		if err := os.WriteFile(titlePath, []byte(wrapped), 0o644); err != nil {
			return "", services.Wrap(services.ErrPipelineStage, "thumbnail", "write title", "", err)
		}
	}
	thumbPath := filepath.Join(jobDir, jobID+".jpg")
	if err := r.engine.Thumbnail(ctx, coverPath, titlePath, thumbPath); err != nil {
		return "", services.Wrap(services.ErrPipelineStage, "thumbnail", "transcode", "", err)
	}
	return thumbPath, nil
}

// uploadOutputs publishes the video and thumbnail. Both reads happen before
// either upload so a local problem cannot leave a half-published job.
func (r *Runner) uploadOutputs(ctx context.Context, layout *drive.Layout, order orders.WorkOrder, jobID, videoPath, thumbPath string) error {
	video, err := os.ReadFile(videoPath)
	if err != nil {
		return services.Wrap(services.ErrPipelineStage, "upload", "read video", "", err)
	}
	thumb, err := os.ReadFile(thumbPath)
	if err != nil {
		return services.Wrap(services.ErrPipelineStage, "upload", "read thumbnail", "", err)
	}
	if _, err := r.store.Upload(ctx, layout.Videos[order.Language], jobID+".mp4", video, drive.MimeMP4); err != nil {
		return services.Wrap(services.ErrExternalTool, "upload", "video", jobID, err)
	}
	if _, err := r.store.Upload(ctx, layout.Thumbs[order.Language], jobID+".jpg", thumb, drive.MimeJPEG); err != nil {
		return services.Wrap(services.ErrExternalTool, "upload", "thumbnail", jobID, err)
	}
	return nil
}

func clampSeconds(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func extensionOr(name, fallback string) string {
	if ext := filepath.Ext(name); ext != "" {
		return ext
	}
	return fallback
}
