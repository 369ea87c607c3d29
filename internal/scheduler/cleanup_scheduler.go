package scheduler

import (
	"time"

	"github.com/pageturn/bookstore-backend/internal/app/repository"
	"github.com/pageturn/bookstore-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// retentionPeriod is how long soft deleted cart items stay recoverable
// before the janitor removes them for good.
const retentionPeriod = 30 * 24 * time.Hour

// CleanupScheduler permanently purges cart items that were soft deleted
// longer than the retention period ago.
type CleanupScheduler struct {
	cron     *cron.Cron
	cartRepo repository.CartRepository
}

func NewCleanupScheduler(cartRepo repository.CartRepository) *CleanupScheduler {
	return &CleanupScheduler{
		cron:     cron.New(),
		cartRepo: cartRepo,
	}
}

// Start schedules the purge to run daily at 4:00 AM.
func (s *CleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("0 4 * * *", func() {
		logger.Info("Starting scheduled cart item purge", nil)

		cutoff := time.Now().Add(-retentionPeriod)
		purged, err := s.cartRepo.PurgeDeletedItemsBefore(cutoff)
		if err != nil {
			logger.Error("Failed to purge deleted cart items", err)
			return
		}

		logger.Info("Scheduled cart item purge completed", map[string]interface{}{
			"purged": purged,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for cart item purge", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cleanup scheduler started successfully (daily at 4:00 AM)", nil)

	return nil
}

func (s *CleanupScheduler) Stop() {
	logger.Info("Stopping cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cleanup scheduler stopped", nil)
}
