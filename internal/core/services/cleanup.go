package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/ports"
)

// TokenSweeper periodically deletes used and expired password reset tokens.
type TokenSweeper struct {
	resets   ports.PasswordResetRepository
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewTokenSweeper(resets ports.PasswordResetRepository, interval time.Duration, logger *zap.Logger) *TokenSweeper {
	if interval <= 0 {
		interval = time.Minute
	}

	return &TokenSweeper{
		resets:   resets,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *TokenSweeper) RunBackgroundCleanup(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("reset token sweeper started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reset token sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *TokenSweeper) sweep(ctx context.Context) {
	n, err := s.resets.Sweep(ctx, s.now())
	if err != nil {
		s.logger.Error("failed to sweep reset tokens", zap.Error(err))
		return
	}

	if n > 0 {
		s.logger.Info("swept reset tokens", zap.Int64("count", n))
	}
}
