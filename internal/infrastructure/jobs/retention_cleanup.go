package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"passlink.backend/internal/domain/repositories"
	"passlink.backend/internal/usecases"
	"passlink.backend/pkg/logger"
	"passlink.backend/pkg/metrics"
)

// RetentionCleanupJob reaps login tokens and verification links past their
// retention windows on a fixed interval. Failures are logged and skipped;
// the next tick tries again.
type RetentionCleanupJob struct {
	tokens        *usecases.TokenUsecase
	linkRepo      repositories.VerificationLinkRepository
	linkRetention time.Duration
	interval      time.Duration
	stop          chan struct{}
}

func NewRetentionCleanupJob(tokens *usecases.TokenUsecase, linkRepo repositories.VerificationLinkRepository, linkRetention, interval time.Duration) *RetentionCleanupJob {
	return &RetentionCleanupJob{
		tokens:        tokens,
		linkRepo:      linkRepo,
		linkRetention: linkRetention,
		interval:      interval,
		stop:          make(chan struct{}),
	}
}

func (j *RetentionCleanupJob) Start(ctx context.Context) {
	logger.Info(ctx, "retention cleanup job started", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "retention cleanup job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "retention cleanup job stopped")
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *RetentionCleanupJob) Stop() {
	close(j.stop)
}

func (j *RetentionCleanupJob) runOnce(ctx context.Context) {
	tokenCount, err := j.tokens.CleanupExpired(ctx)
	if err != nil {
		logger.Error(ctx, "login token cleanup failed", zap.Error(err))
	}

	linkCount, err := j.linkRepo.DeleteOlderThan(ctx, time.Now().Add(-j.linkRetention))
	if err != nil {
		logger.Error(ctx, "verification link cleanup failed", zap.Error(err))
	} else if linkCount > 0 {
		metrics.TokensReaped.WithLabelValues("verification_links").Add(float64(linkCount))
	}

	if tokenCount > 0 || linkCount > 0 {
		logger.Info(ctx, "retention cleanup pass finished",
			zap.Int64("tokens_removed", tokenCount),
			zap.Int64("links_removed", linkCount),
		)
	}
}
