package worker

// retry_cron.go
// Periodically re-drives dead-lettered receipt jobs. Entries that used every
// attempt are parked for manual inspection. Ticks are skipped while the SMTP
// breaker is open.

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"jerosmotos/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10

	// MaxReciboIntentos is the number of processing attempts a receipt job
	// gets before it is parked.
	MaxReciboIntentos = 3
)

type RetryCronConfig struct {
	RDB      redis.Cmdable
	CB       *infra.CircuitBreaker
	Interval time.Duration // defaults to 30s
}

// StartRetryCron re-drives up to retryBatchSize receipts per tick until ctx
// is cancelled.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	interval := cfg.Interval
	if interval <= 0 {
		interval = retryTickInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				if n := redrive(ctx, cfg); n > 0 {
					log.Info().Int("count", n).Msg("retry_cron: receipts re-queued")
				}
			}
		}
	}()
}

// redrive moves dead-lettered receipt jobs back to QueueRecibos and returns
// how many were re-queued.
func redrive(ctx context.Context, cfg RetryCronConfig) int {
	if cfg.CB != nil && cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return 0
	}

	key := dlqKey(QueueRecibos)
	requeued := 0
	for i := 0; i < retryBatchSize; i++ {
		raw, err := cfg.RDB.RPop(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to pop DLQ entry")
			break
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Msg("retry_cron: discarding malformed DLQ entry")
			continue
		}

		if entry.Attempts >= MaxReciboIntentos {
			if err := cfg.RDB.LPush(ctx, parkedKey(entry.OriginalQueue), raw).Err(); err != nil {
				log.Error().Err(err).Msg("retry_cron: failed to park exhausted entry")
			}
			log.Error().
				Str("job_type", entry.JobType).
				Int("attempts", entry.Attempts).
				Str("reason", entry.Reason).
				Msg("retry_cron: max attempts exceeded, parked")
			continue
		}

		job := Job{Type: entry.JobType, Payload: entry.Payload, Intentos: entry.Attempts}
		if err := pushJob(ctx, cfg.RDB, entry.OriginalQueue, job); err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to re-queue job")
			_ = cfg.RDB.RPush(ctx, key, raw).Err()
			break
		}
		requeued++
	}
	return requeued
}
