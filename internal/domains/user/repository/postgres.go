package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-backoffice/internal/domains/user/model"
	"bookstore-backoffice/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	const query = `
		SELECT user_id, username, password
		FROM t_user
		WHERE username = $1
	`

	user := &model.User{}
	err := r.pool.QueryRow(ctx, query, username).Scan(&user.UserID, &user.Username, &user.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		logger.Error("GetUserByUsername: database error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *postgresRepository) CreateSession(ctx context.Context, session *model.Session) error {
	const query = `
		INSERT INTO t_session (session_id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query,
		session.SessionID, session.UserID, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		logger.Error("CreateSession: database error", err)
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM t_session WHERE expires_at < $1`

	tag, err := r.pool.Exec(ctx, query, before)
	if err != nil {
		logger.Error("DeleteExpiredSessions: database error", err)
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
