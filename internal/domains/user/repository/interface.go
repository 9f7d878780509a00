package repository

import (
	"context"
	"time"

	"bookstore-backoffice/internal/domains/user/model"
)

type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	CreateSession(ctx context.Context, session *model.Session) error
	// DeleteExpiredSessions removes sessions that expired before the given
	// instant and returns how many were removed.
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}
