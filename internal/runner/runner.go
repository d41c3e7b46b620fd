package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"vesper/internal/assets"
	"vesper/internal/config"
	"vesper/internal/drive"
	"vesper/internal/history"
	"vesper/internal/logging"
	"vesper/internal/media/ffmpeg"
	"vesper/internal/media/ffprobe"
	"vesper/internal/orders"
	"vesper/internal/recency"
	"vesper/internal/services"
	"vesper/internal/tts"
)

// State is the terminal state of one job in a run.
type State string

const (
	StateRendered State = "RENDERED"
	StateSkipped  State = "SKIPPED"
	StateFailed   State = "FAILED"
)

// JobResult is the recorded outcome of one work order.
type JobResult struct {
	JobID            string
	Order            orders.WorkOrder
	State            State
	Reason           string
	NarrationSeconds float64
	ImageCount       int
	MusicName        string
}

// Summary aggregates one batch invocation.
type Summary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Jobs       []JobResult
}

// Rendered counts jobs that produced output.
func (s *Summary) Rendered() int { return s.count(StateRendered) }

// Skipped counts jobs skipped before or during rendering.
func (s *Summary) Skipped() int { return s.count(StateSkipped) }

// Failed counts jobs that hit a pipeline failure.
func (s *Summary) Failed() int { return s.count(StateFailed) }

func (s *Summary) count(state State) int {
	n := 0
	for _, job := range s.Jobs {
		if job.State == state {
			n++
		}
	}
	return n
}

// ProbeFunc measures a media file's duration in seconds.
type ProbeFunc func(ctx context.Context, path string) (float64, error)

// Runner executes batch invocations against a fixed set of collaborators.
type Runner struct {
	cfg      *config.Config
	store    drive.Store
	synth    tts.Synthesizer
	engine   *ffmpeg.Engine
	selector *assets.Selector
	probe    ProbeFunc
	history  *history.Store
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithProbe overrides the duration probe (primarily for tests).
func WithProbe(probe ProbeFunc) Option {
	return func(r *Runner) {
		if probe != nil {
			r.probe = probe
		}
	}
}

// WithSelector injects a seeded asset selector.
func WithSelector(selector *assets.Selector) Option {
	return func(r *Runner) {
		if selector != nil {
			r.selector = selector
		}
	}
}

// WithHistory records finished runs to the given ledger.
func WithHistory(store *history.Store) Option {
	return func(r *Runner) { r.history = store }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// New constructs a Runner.
func New(cfg *config.Config, store drive.Store, synth tts.Synthesizer, engine *ffmpeg.Engine, logger *slog.Logger, opts ...Option) *Runner {
	runner := &Runner{
		cfg:      cfg,
		store:    store,
		synth:    synth,
		engine:   engine,
		selector: assets.New(nil),
		logger:   logging.WithComponent(logger, "runner"),
		now:      time.Now,
	}
	runner.probe = func(ctx context.Context, path string) (float64, error) {
		result, err := ffprobe.Inspect(ctx, cfg.Tools.FFprobe, path)
		if err != nil {
			return 0, err
		}
		return result.DurationSeconds(), nil
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// Run executes one batch invocation. The returned summary is valid even when
// an error is also returned; a non-nil error then reports a post-render
// persistence problem rather than a rendering one.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "run", "prepare", "create local directories", err)
	}

	lock := flock.New(filepath.Join(r.cfg.WorkDir(), "vesper.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "run", "lock", "acquire run lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "run", "lock", "another invocation holds the run lock", nil)
	}
	defer lock.Unlock() //nolint:errcheck

	summary := &Summary{RunID: uuid.NewString(), StartedAt: r.now().UTC()}
	logger := r.logger.With(logging.String(logging.FieldRunID, summary.RunID))
	logger.Info("run starting")

	layout, err := drive.ResolveLayout(ctx, r.store, r.cfg.Drive.RootFolderID)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "run", "layout", "resolve folder structure", err)
	}

	list, err := r.loadOrders(ctx, layout, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("work orders loaded", logging.Int("orders", len(list)))

	state := recency.Load(ctx, r.store, layout.Config)
	pools := newPoolCache(r.store, layout)

	decisions, err := orders.SelectPending(ctx, list, r.now().UTC(), time.Duration(r.cfg.Render.HorizonHours)*time.Hour, r.outputExists(layout, pools))
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "run", "classify", "check existing output", err)
	}

	for _, decision := range decisions {
		jobLogger := logger.With(
			logging.String(logging.FieldJobID, decision.JobID),
			logging.String(logging.FieldLanguage, decision.Order.Language.String()),
		)
		if !decision.Eligible {
			jobLogger.Info("job skipped", logging.String("reason", decision.Reason))
			summary.Jobs = append(summary.Jobs, JobResult{
				JobID:  decision.JobID,
				Order:  decision.Order,
				State:  StateSkipped,
				Reason: decision.Reason,
			})
			continue
		}

		jobLogger.Info("job eligible, rendering")
		artifacts, renderErr := r.renderJob(ctx, layout, pools, state, decision.Order, decision.JobID, jobLogger)
		result := JobResult{JobID: decision.JobID, Order: decision.Order}
		if renderErr != nil {
			result.Reason = services.Reason(renderErr)
			if services.ClassifyOutcome(renderErr) == services.OutcomeSkipped {
				result.State = StateSkipped
				jobLogger.Warn("job skipped", logging.String("reason", result.Reason))
			} else {
				result.State = StateFailed
				jobLogger.Error("job failed", logging.Error(renderErr))
			}
		} else {
			result.State = StateRendered
			result.NarrationSeconds = artifacts.narrationSeconds
			result.ImageCount = artifacts.imageCount
			result.MusicName = artifacts.musicName
			jobLogger.Info("job rendered",
				logging.Float64("narration_seconds", artifacts.narrationSeconds),
				logging.Int("images", artifacts.imageCount),
				logging.String("music", artifacts.musicName),
			)
		}
		summary.Jobs = append(summary.Jobs, result)
	}

	summary.FinishedAt = r.now().UTC()
	logger.Info("run finished",
		logging.Int("rendered", summary.Rendered()),
		logging.Int("skipped", summary.Skipped()),
		logging.Int("failed", summary.Failed()),
	)
	return summary, r.persist(ctx, layout, state, summary, logger)
}

// persist saves anti-repetition state, records history, and uploads the run
// log. Rendering already finished; failures here are reported but can no
// longer change any job outcome.
func (r *Runner) persist(ctx context.Context, layout *drive.Layout, state *recency.State, summary *Summary, logger *slog.Logger) error {
	var firstErr error
	if summary.Rendered() > 0 {
		if err := recency.Save(ctx, r.store, layout.Config, state); err != nil {
			firstErr = services.Wrap(services.ErrPersistence, "run", "state", "save anti-repetition state", err)
			logger.Error("state save failed", logging.Error(err))
		}
	}
	if r.history != nil {
		if err := r.recordHistory(ctx, summary); err != nil {
			if firstErr == nil {
				firstErr = services.Wrap(services.ErrPersistence, "run", "history", "record run", err)
			}
			logger.Error("history record failed", logging.Error(err))
		}
	}
	logName := "log_renderer_" + summary.StartedAt.Format("20060102T150405Z") + ".txt"
	if _, err := r.store.Upload(ctx, layout.Logs, logName, []byte(renderRunLog(summary)), drive.MimeText); err != nil {
		if firstErr == nil {
			firstErr = services.Wrap(services.ErrPersistence, "run", "log", "upload run log", err)
		}
		logger.Error("run log upload failed", logging.Error(err))
	}
	return firstErr
}

func (r *Runner) recordHistory(ctx context.Context, summary *Summary) error {
	run := history.Run{
		ID:         summary.RunID,
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
		Orders:     len(summary.Jobs),
		Rendered:   summary.Rendered(),
		Skipped:    summary.Skipped(),
		Failed:     summary.Failed(),
	}
	jobs := make([]history.Job, 0, len(summary.Jobs))
	for _, result := range summary.Jobs {
		jobs = append(jobs, history.Job{
			RunID:            summary.RunID,
			JobID:            result.JobID,
			Language:         result.Order.Language.String(),
			Slot:             result.Order.Slot,
			State:            string(result.State),
			Reason:           result.Reason,
			NarrationSeconds: result.NarrationSeconds,
			ImageCount:       result.ImageCount,
			MusicName:        result.MusicName,
		})
	}
	return r.history.RecordRun(ctx, run, jobs)
}

// loadOrders fetches and normalizes the work-order document. A missing
// document is an empty batch, not an error; only credential and root
// configuration problems may abort a run.
func (r *Runner) loadOrders(ctx context.Context, layout *drive.Layout, logger *slog.Logger) ([]orders.WorkOrder, error) {
	file, err := drive.FindFile(ctx, r.store, layout.Config, drive.WorkOrdersName)
	if err != nil {
		if errors.Is(err, drive.ErrNotFound) {
			logger.Warn("no work order document, nothing to do", logging.String("name", drive.WorkOrdersName))
			return nil, nil
		}
		return nil, services.Wrap(services.ErrExternalTool, "run", "orders", "locate "+drive.WorkOrdersName, err)
	}
	data, err := r.store.Download(ctx, file.ID)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "run", "orders", "download "+drive.WorkOrdersName, err)
	}
	return orders.Normalize(data), nil
}

// outputExists reports whether the destination folder already holds output
// for the job. The destination listing is the sole idempotency source of
// truth; concurrent invocations on different machines can still race between
// this check and the upload, which is accepted.
func (r *Runner) outputExists(layout *drive.Layout, pools *poolCache) orders.ExistsFunc {
	return func(ctx context.Context, order orders.WorkOrder, jobID string) (bool, error) {
		folderID, ok := layout.Videos[order.Language]
		if !ok {
			return false, fmt.Errorf("no video folder for language %s", order.Language)
		}
		files, err := pools.list(ctx, folderID)
		if err != nil {
			return false, err
		}
		for _, f := range files {
			if strings.Contains(f.Name, jobID) {
				return true, nil
			}
		}
		return false, nil
	}
}

func renderRunLog(summary *Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s\n", summary.RunID)
	fmt.Fprintf(&b, "started  %s\n", summary.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "finished %s\n\n", summary.FinishedAt.Format(time.RFC3339))
	for _, job := range summary.Jobs {
		switch job.State {
		case StateRendered:
			fmt.Fprintf(&b, "%s\t%s\t%s\tnarration=%.1fs images=%d music=%s\n",
				job.JobID, job.Order.Language, job.State, job.NarrationSeconds, job.ImageCount, job.MusicName)
		default:
			fmt.Fprintf(&b, "%s\t%s\t%s\t%s\n", job.JobID, job.Order.Language, job.State, job.Reason)
		}
	}
	fmt.Fprintf(&b, "\ntotal=%d rendered=%d skipped=%d failed=%d\n",
		len(summary.Jobs), summary.Rendered(), summary.Skipped(), summary.Failed())
	return b.String()
}
