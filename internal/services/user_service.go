package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/madeee1/exercise-tracker/internal/metrics"
	"github.com/madeee1/exercise-tracker/internal/models"
	repo "github.com/madeee1/exercise-tracker/internal/repository"
	"github.com/madeee1/exercise-tracker/internal/worker"
)

type UserService struct {
	users repo.Users
	audit repo.AuditLogs
	wp    *worker.Pool
}

func NewUserService(users repo.Users, audit repo.AuditLogs, wp *worker.Pool) *UserService {
	return &UserService{users: users, audit: audit, wp: wp}
}

// GetOrCreate returns the user registered under username, creating it with
// an empty log on first sight. Looking up an existing name has no side
// effect. Duplicates are not pre-checked; a concurrent create racing on the
// same name loses with repo.ErrDuplicateUsername from the store's unique
// index.
func (s *UserService) GetOrCreate(ctx context.Context, username string) (models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return models.User{}, err
	}

	u, err = s.users.Create(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	metrics.UsersCreated.Inc()
	recordAudit(s.wp, s.audit, "user", u.ID, "user_created", map[string]any{"username": u.Username})
	return u, nil
}

// List returns every user projected to id and username, in store order.
func (s *UserService) List(ctx context.Context) ([]models.UserRef, error) {
	return s.users.List(ctx)
}

// recordAudit queues an audit row off the request path. Audit failures are
// logged and never surfaced to the caller.
func recordAudit(wp *worker.Pool, audit repo.AuditLogs, entityType, entityID, action string, details map[string]any) {
	wp.Submit(func() {
		l := models.AuditLog{
			EntityType: entityType,
			EntityID:   &entityID,
			Action:     action,
			Details:    details,
		}
		if err := audit.Create(context.Background(), l); err != nil {
			slog.Error("audit write", "action", action, "err", err)
		}
	})
}
