package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueRecibos  = "jobs:recibos"
	JobTypeRecibo = "recibo"
	brpopTimeout  = 5 * time.Second
)

// Job is the envelope stored in every queue.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Intentos int             `json:"intentos,omitempty"`
}

// Dispatcher enqueues jobs into Redis lists (LPUSH); the pool consumes them
// with BRPOP.
type Dispatcher struct {
	rdb redis.Cmdable
}

func NewDispatcher(rdb redis.Cmdable) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueRecibo pushes a receipt job.
func (d *Dispatcher) EnqueueRecibo(ctx context.Context, payload ReciboJobPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return pushJob(ctx, d.rdb, QueueRecibos, Job{Type: JobTypeRecibo, Payload: data})
}

func pushJob(ctx context.Context, rdb redis.Cmdable, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches n consumers of QueueRecibos. The returned
// WaitGroup is done once every consumer has seen ctx cancelled.
func StartWorkerPool(ctx context.Context, rdb redis.Cmdable, n int, recibos *ReciboWorker) *sync.WaitGroup {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, rdb, id, recibos)
		}(i)
	}
	log.Info().Int("workers", n).Msg("worker pool started")
	return &wg
}

func runWorker(ctx context.Context, rdb redis.Cmdable, id int, recibos *ReciboWorker) {
	for ctx.Err() == nil {
		result, err := rdb.BRPop(ctx, brpopTimeout, QueueRecibos).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Error().Err(err).Int("worker", id).Msg("brpop failed")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) == 2 {
			processJob(ctx, rdb, result[0], result[1], recibos)
		}
	}
	log.Info().Int("worker", id).Msg("worker shutting down")
}

func processJob(ctx context.Context, rdb redis.Cmdable, queue, raw string, recibos *ReciboWorker) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("discarding malformed job")
		return
	}

	switch job.Type {
	case JobTypeRecibo:
		if err := recibos.Process(ctx, job.Payload); err != nil {
			SendToDLQ(ctx, rdb, queue, job, err.Error(), job.Intentos+1)
		}
	default:
		log.Warn().Str("type", job.Type).Msg("unknown job type, discarding")
	}
}
