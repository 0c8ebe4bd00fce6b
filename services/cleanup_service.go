package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"go.pilab.hu/ssoadmin/domain"
	"go.pilab.hu/ssoadmin/internal/metrics"
)

// CleanupService periodically deletes expired authorization records. It
// shares no state with the provisioning services; its only coupling is the
// authorization store.
type CleanupService struct {
	authorizations domain.AuthorizationRepository
}

// NewCleanupService creates a new CleanupService.
func NewCleanupService(authorizations domain.AuthorizationRepository) *CleanupService {
	return &CleanupService{authorizations: authorizations}
}

// Sweep deletes every authorization with at least one expiry timestamp
// before now and returns the number of deleted rows.
func (s *CleanupService) Sweep(ctx context.Context) (int64, error) {
	rows, err := s.authorizations.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired authorizations: %w", err)
	}

	metrics.CleanupRunsTotal.Inc()
	metrics.AuthorizationsPurgedTotal.Add(float64(rows))
	log.Ctx(ctx).Info().Int64("rows_affected", rows).Msg("expired authorization cleanup finished")

	return rows, nil
}

// Run sweeps once every hour, on the hour, until ctx is cancelled. A
// failed sweep is logged and not retried; the next tick reattempts
// against whatever is expired by then.
func (s *CleanupService) Run(ctx context.Context) {
	for {
		timer := time.NewTimer(time.Until(nextSweep(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Ctx(ctx).Info().Msg("cleanup loop stopped")
			return
		case <-timer.C:
		}

		if _, err := s.Sweep(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("expired authorization cleanup failed")
		}
	}
}

// nextSweep returns the next top-of-the-hour instant after now.
func nextSweep(now time.Time) time.Time {
	return now.Truncate(time.Hour).Add(time.Hour)
}
