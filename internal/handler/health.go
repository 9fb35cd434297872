package handler

import (
	"context"
	"net/http"
	"time"

	"jerosmotos/internal/infra"
	"jerosmotos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Ping is the public keep-alive endpoint.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ping": "pong"})
}

// Health checks DB and Redis connectivity and reports the SMTP breaker and
// the receipt dead-letter backlog. Redis is optional: without it the receipt
// queue is disabled and the check reports "disabled" instead of failing.
func Health(db *gorm.DB, rdb redis.Cmdable, smtpCB *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		body := gin.H{}
		healthy := true

		dbStatus := "connected"
		if db == nil {
			dbStatus = "error"
		} else if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}
		healthy = healthy && dbStatus == "connected"
		body["db"] = dbStatus

		redisStatus := "disabled"
		if rdb != nil {
			redisStatus = "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
				healthy = false
			} else if stats, err := worker.DLQLength(ctx, rdb, worker.QueueRecibos); err == nil {
				body["recibos_dlq"] = stats
			}
		}
		body["redis"] = redisStatus

		if smtpCB != nil {
			body["smtp"] = smtpCB.State().String()
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		body["ok"] = healthy
		c.JSON(status, body)
	}
}
