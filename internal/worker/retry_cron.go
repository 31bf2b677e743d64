package worker

// retry_cron.go
// Background goroutine that periodically drains the email DLQ back into the
// live queue once the SMTP circuit breaker has recovered. Without it, jobs
// that failed during a mail outage would need manual requeueing.

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	RDB *redis.Client
	CB  *infra.CircuitBreaker
}

// StartRetryCron launches a background goroutine that ticks every 30s and,
// when the circuit breaker allows traffic, moves DLQ'd email jobs back to
// QueueEmail for a fresh attempt. It respects the context for graceful
// shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed mail server
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	requeued := 0
	for i := 0; i < retryBatchSize; i++ {
		entry, err := PopFromDLQ(ctx, cfg.RDB, QueueEmail)
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				log.Error().Err(err).Msg("retry_cron: failed to pop from DLQ")
			}
			break
		}

		job := Job{Type: entry.JobType, Payload: entry.Payload}
		encoded, err := json.Marshal(job)
		if err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to marshal requeued job")
			continue
		}
		if err := cfg.RDB.LPush(ctx, QueueEmail, encoded).Err(); err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to requeue job")
			// Put the entry back so it is not lost
			SendToDLQ(ctx, cfg.RDB, QueueEmail, entry.JobType, entry.Payload, entry.Reason, entry.Attempts)
			break
		}
		requeued++
	}

	if requeued > 0 {
		log.Info().Int("count", requeued).Msg("retry_cron: requeued DLQ'd email jobs")
	}
}
