package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vesper/internal/drive"
	"vesper/internal/orders"
)

// newOrdersCommand classifies the current work-order document without
// rendering anything. It runs the same window and idempotency checks as a
// real batch.
func newOrdersCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "Show the work orders and how the next render run would treat them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			store, err := cmdCtx.driveStore(ctx)
			if err != nil {
				return err
			}
			layout, err := drive.ResolveLayout(ctx, store, cfg.Drive.RootFolderID)
			if err != nil {
				return fmt.Errorf("resolve folder structure: %w", err)
			}
			ordersFile, err := drive.FindFile(ctx, store, layout.Config, drive.WorkOrdersName)
			if err != nil {
				return fmt.Errorf("locate %s: %w", drive.WorkOrdersName, err)
			}
			data, err := store.Download(ctx, ordersFile.ID)
			if err != nil {
				return fmt.Errorf("download %s: %w", drive.WorkOrdersName, err)
			}

			decisions, err := orders.SelectPending(ctx, orders.Normalize(data), time.Now().UTC(),
				time.Duration(cfg.Render.HorizonHours)*time.Hour,
				destinationExists(store, layout))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(decisions))
			for _, decision := range decisions {
				publish := "-"
				if decision.Order.PublishAt != nil {
					publish = decision.Order.PublishAt.Format(time.RFC3339)
				}
				status, detail := "PENDING", "eligible"
				if !decision.Eligible {
					status, detail = "SKIP", decision.Reason
				}
				rows = append(rows, []string{
					decision.JobID,
					decision.Order.Language.String(),
					decision.Order.Slot,
					publish,
					status,
					detail,
				})
			}
			fmt.Fprintln(out, renderRows(out, []string{"JOB", "LANG", "SLOT", "PUBLISH AT", "STATUS", "DETAIL"}, rows))
			return nil
		},
	}
}

// destinationExists checks the per-language output folders, caching each
// listing for the lifetime of the command.
func destinationExists(store drive.Store, layout *drive.Layout) orders.ExistsFunc {
	listings := map[string][]drive.File{}
	return func(ctx context.Context, order orders.WorkOrder, jobID string) (bool, error) {
		folderID, ok := layout.Videos[order.Language]
		if !ok {
			return false, nil
		}
		files, cached := listings[folderID]
		if !cached {
			var err error
			files, err = store.ListFolder(ctx, folderID)
			if err != nil {
				return false, err
			}
			listings[folderID] = files
		}
		for _, f := range files {
			if strings.Contains(f.Name, jobID) {
				return true, nil
			}
		}
		return false, nil
	}
}
