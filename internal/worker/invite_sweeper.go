package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/talkserve/backend/internal/repository"
)

// StartInviteSweeper schedules an hourly cleanup of expired, unused invites.
// The returned cron is already running; stop it during shutdown.
func StartInviteSweeper(invites repository.InviteRepository, logger *zap.Logger) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		removed, err := invites.DeleteExpired(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("invite sweep failed", zap.Error(err))
			return
		}
		if removed > 0 {
			logger.Info("expired invites removed", zap.Int64("count", removed))
		}
	})
	if err != nil {
		logger.Error("invite sweeper schedule", zap.Error(err))
		return c
	}
	c.Start()
	return c
}
