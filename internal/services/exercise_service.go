package services

import (
	"context"
	"time"

	"github.com/madeee1/exercise-tracker/internal/metrics"
	"github.com/madeee1/exercise-tracker/internal/models"
	repo "github.com/madeee1/exercise-tracker/internal/repository"
	"github.com/madeee1/exercise-tracker/internal/worker"
)

type ExerciseService struct {
	users repo.Users
	audit repo.AuditLogs
	wp    *worker.Pool
}

func NewExerciseService(users repo.Users, audit repo.AuditLogs, wp *worker.Pool) *ExerciseService {
	return &ExerciseService{users: users, audit: audit, wp: wp}
}

// Add appends one entry to the log of an existing user and returns the
// updated record. An empty date defaults to today, server time. The user
// must already exist: an unknown id fails with repo.ErrNotFound and creates
// nothing.
func (s *ExerciseService) Add(ctx context.Context, userID, description string, duration int, date string) (models.User, models.Exercise, error) {
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	}
	e := models.Exercise{Description: description, Duration: duration, Date: date}

	u, err := s.users.AppendExercise(ctx, userID, e)
	if err != nil {
		return models.User{}, models.Exercise{}, err
	}
	metrics.ExercisesRecorded.Inc()
	recordAudit(s.wp, s.audit, "user", u.ID, "exercise_added", map[string]any{
		"description": e.Description,
		"duration":    e.Duration,
		"date":        e.Date,
	})
	return u, e, nil
}
