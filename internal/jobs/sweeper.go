package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/placementdrive/listing-server-go/internal/repository"
)

// TokenSweeper periodically clears session tokens whose expiry has
// passed, so stale credentials do not linger on admin rows.
type TokenSweeper struct {
	adminRepo repository.AdminRepository
	interval  time.Duration
	done      chan struct{}
}

func NewTokenSweeper(adminRepo repository.AdminRepository, interval time.Duration) *TokenSweeper {
	return &TokenSweeper{
		adminRepo: adminRepo,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

func (j *TokenSweeper) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("token sweeper started")
}

func (j *TokenSweeper) Stop() {
	close(j.done)
	log.Info().Msg("token sweeper stopped")
}

func (j *TokenSweeper) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.sweep()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *TokenSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := j.adminRepo.ClearExpiredTokens(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to clear expired session tokens")
	} else if count > 0 {
		log.Info().Int64("count", count).Msg("cleared expired session tokens")
	}
}
