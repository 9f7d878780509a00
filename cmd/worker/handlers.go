package main

import (
	"context"

	"github.com/hibiken/asynq"

	"bookstore-backoffice/pkg/container"
	"bookstore-backoffice/pkg/logger"
)

// TaskHandler executes the scheduled background tasks against the domain
// services.
type TaskHandler struct {
	container *container.Container
}

func NewTaskHandler(c *container.Container) *TaskHandler {
	return &TaskHandler{container: c}
}

// HandleShortageRefresh recomputes the shortage-warning view so readers hit
// a warm cache.
func (h *TaskHandler) HandleShortageRefresh(ctx context.Context, t *asynq.Task) error {
	if err := h.container.StatisticService.RefreshShortage(ctx); err != nil {
		logger.Error("shortage refresh failed", err)
		return err
	}
	logger.Info("shortage view refreshed", nil)
	return nil
}

// HandleSessionPrune removes expired login sessions.
func (h *TaskHandler) HandleSessionPrune(ctx context.Context, t *asynq.Task) error {
	pruned, err := h.container.UserService.PruneSessions(ctx)
	if err != nil {
		logger.Error("session prune failed", err)
		return err
	}
	logger.Info("expired sessions pruned", map[string]interface{}{
		"count": pruned,
	})
	return nil
}
