package worker

// dlq.go
// Dead-letter lists, one per source queue: dlq:{queue}. Jobs that failed to
// process land here with the failure reason and the attempt count; the retry
// loop re-drives them and parks exhausted ones under dlq:{queue}:agotados.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DLQPrefix    = "dlq:"
	parkedSuffix = ":agotados"
)

// DLQEntry is a failed job plus what is needed to re-drive it.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      time.Time       `json:"failed_at"`
	Attempts      int             `json:"attempts"`
}

func dlqKey(queue string) string    { return DLQPrefix + queue }
func parkedKey(queue string) string { return DLQPrefix + queue + parkedSuffix }

// SendToDLQ records job as failed after attempts tries.
func SendToDLQ(ctx context.Context, rdb redis.Cmdable, queue string, job Job, reason string, attempts int) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       job.Type,
		Payload:       job.Payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC(),
		Attempts:      attempts,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal entry")
		return
	}
	if err := rdb.LPush(ctx, dlqKey(queue), data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: push failed, job lost")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("job_type", job.Type).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job dead-lettered")
}

// DLQStats is reported by the health endpoint.
type DLQStats struct {
	Pendientes int64 `json:"pendientes"`
	Agotados   int64 `json:"agotados"`
}

func DLQLength(ctx context.Context, rdb redis.Cmdable, queue string) (DLQStats, error) {
	var s DLQStats
	var err error
	if s.Pendientes, err = rdb.LLen(ctx, dlqKey(queue)).Result(); err != nil {
		return s, err
	}
	s.Agotados, err = rdb.LLen(ctx, parkedKey(queue)).Result()
	return s, err
}
