package bot

import (
	"fmt"
	"time"

	"github.com/awhatson15/rsvp-bot/handlers"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// NewDraftSweeper schedules periodic removal of drafts idle for longer than ttl.
// The returned scheduler is not started.
func NewDraftSweeper(schedule string, ttl time.Duration, drafts *handlers.DraftStore, log *zap.Logger) (*cron.Cron, error) {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(schedule, func() {
		sweepDrafts(drafts, ttl, log)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid draft sweep schedule %q: %w", schedule, err)
	}

	return scheduler, nil
}

func sweepDrafts(drafts *handlers.DraftStore, ttl time.Duration, log *zap.Logger) int {
	removed := drafts.Sweep(ttl)
	if removed > 0 {
		log.Info("discarded idle drafts", zap.Int("removed", removed), zap.Int("remaining", drafts.Len()))
	}
	return removed
}
