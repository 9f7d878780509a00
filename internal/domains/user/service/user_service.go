package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookstore-backoffice/internal/domains/user/model"
	"bookstore-backoffice/internal/domains/user/repository"
	"bookstore-backoffice/pkg/jwt"
	"bookstore-backoffice/pkg/logger"
)

type UserService interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	// PruneSessions removes expired session records; the worker calls it on
	// a schedule.
	PruneSessions(ctx context.Context) (int64, error)
}

type userService struct {
	repo repository.UserRepository
	jwt  *jwt.Manager
}

func NewUserService(repo repository.UserRepository, manager *jwt.Manager) UserService {
	return &userService{repo: repo, jwt: manager}
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.UserID, user.Username)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &model.Session{
		SessionID: uuid.NewString(),
		UserID:    user.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.jwt.Expiry()),
	}
	// The session record is an audit trail; losing it does not invalidate
	// the issued token.
	if err := s.repo.CreateSession(ctx, session); err != nil {
		logger.Error("failed to record login session", err)
	}

	return &model.LoginResponse{
		Token:    token,
		UserID:   user.UserID,
		Username: user.Username,
	}, nil
}

func (s *userService) PruneSessions(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredSessions(ctx, time.Now())
}
