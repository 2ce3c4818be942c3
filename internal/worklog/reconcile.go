package worklog

import (
	"context"

	"golang.org/x/sync/errgroup"

	applog "agrilog/internal/log"
	"agrilog/models"
)

// RemoveDerived deletes every derived record linked to the work log
// across all three derived collections. The deletions run concurrently
// and are jointly awaited; any single failure fails the whole removal.
// Collections with no matching records are a no-op, so the operation
// is idempotent.
func (c *Coordinator) RemoveDerived(ctx context.Context, workLogID uint) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return c.db.WithContext(groupCtx).
			Where("work_log_id = ?", workLogID).
			Delete(&models.FertilizerUse{}).Error
	})
	group.Go(func() error {
		return c.db.WithContext(groupCtx).
			Where("work_log_id = ?", workLogID).
			Delete(&models.SeedUse{}).Error
	})
	group.Go(func() error {
		return c.db.WithContext(groupCtx).
			Where("work_log_id = ?", workLogID).
			Delete(&models.PesticideUse{}).Error
	})

	if err := group.Wait(); err != nil {
		applog.Error(ctx, "derived record removal failed", "error", err, "workLogID", workLogID)
		return err
	}
	return nil
}
