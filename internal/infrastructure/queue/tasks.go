// Package queue defines the background task types shared by the scheduler
// and the worker.
package queue

import (
	"github.com/hibiken/asynq"

	"bookstore-backoffice/internal/config"
)

const (
	// TypeShortageRefresh recomputes the shortage-warning view and rewrites
	// its cache entry.
	TypeShortageRefresh = "statistic:shortage:refresh"

	// TypeSessionPrune removes expired login sessions.
	TypeSessionPrune = "auth:session:prune"
)

func NewShortageRefreshTask() *asynq.Task {
	return asynq.NewTask(TypeShortageRefresh, nil)
}

func NewSessionPruneTask() *asynq.Task {
	return asynq.NewTask(TypeSessionPrune, nil)
}

// RedisConnOpt builds the asynq connection options from the application
// config.
func RedisConnOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
