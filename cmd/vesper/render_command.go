package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vesper/internal/history"
	"vesper/internal/logging"
	"vesper/internal/media/ffmpeg"
	"vesper/internal/runner"
)

func newRenderCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render every due work order and publish the outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			store, err := cmdCtx.driveStore(ctx)
			if err != nil {
				return err
			}
			synth, err := cmdCtx.synthesizer(ctx)
			if err != nil {
				return err
			}
			engine, err := ffmpeg.New(
				cfg.Tools.FFmpeg,
				cfg.Tools.TranscodeTimeoutSecs,
				cfg.Render.VideoWidth,
				cfg.Render.VideoHeight,
				cfg.Render.FrameRate,
				cfg.Render.MusicGain,
			)
			if err != nil {
				return err
			}
			ledger, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer ledger.Close()

			summary, err := runner.New(cfg, store, synth, engine, logger, runner.WithHistory(ledger)).Run(ctx)
			if summary != nil {
				printSummary(cmd, summary)
			}
			return err
		},
	}
}

func printSummary(cmd *cobra.Command, summary *runner.Summary) {
	out := cmd.OutOrStdout()
	rows := make([][]string, 0, len(summary.Jobs))
	for _, job := range summary.Jobs {
		detail := job.Reason
		if job.State == runner.StateRendered {
			detail = fmt.Sprintf("%.0fs narration, %d images", job.NarrationSeconds, job.ImageCount)
			if job.MusicName != "" {
				detail += ", music " + job.MusicName
			}
		}
		rows = append(rows, []string{job.JobID, job.Order.Language.String(), string(job.State), detail})
	}
	fmt.Fprintln(out, renderRows(out, []string{"JOB", "LANG", "STATE", "DETAIL"}, rows))
	fmt.Fprintf(out, "run %s: %d rendered, %d skipped, %d failed in %s\n",
		summary.RunID,
		summary.Rendered(), summary.Skipped(), summary.Failed(),
		summary.FinishedAt.Sub(summary.StartedAt).Round(time.Second),
	)
}
