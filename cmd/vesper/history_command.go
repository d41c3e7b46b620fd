package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"vesper/internal/history"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded runs, or the job outcomes of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			ledger, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer ledger.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				jobs, err := ledger.JobsForRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(jobs) == 0 {
					fmt.Fprintf(out, "no jobs recorded for run %s\n", args[0])
					return nil
				}
				rows := make([][]string, 0, len(jobs))
				for _, job := range jobs {
					rows = append(rows, []string{
						job.JobID, job.Language, job.Slot, job.State, job.Reason,
						fmt.Sprintf("%.0fs", job.NarrationSeconds),
						strconv.Itoa(job.ImageCount),
						job.MusicName,
					})
				}
				fmt.Fprintln(out, renderRows(out,
					[]string{"JOB", "LANG", "SLOT", "STATE", "REASON", "NARRATION", "IMAGES", "MUSIC"}, rows))
				return nil
			}

			runs, err := ledger.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.StartedAt.Local().Format(time.DateTime),
					run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String(),
					strconv.Itoa(run.Orders),
					strconv.Itoa(run.Rendered),
					strconv.Itoa(run.Skipped),
					strconv.Itoa(run.Failed),
				})
			}
			fmt.Fprintln(out, renderRows(out,
				[]string{"RUN", "STARTED", "TOOK", "ORDERS", "RENDERED", "SKIPPED", "FAILED"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
