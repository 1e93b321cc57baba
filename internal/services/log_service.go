package services

import (
	"context"
	"time"

	"github.com/madeee1/exercise-tracker/internal/models"
	repo "github.com/madeee1/exercise-tracker/internal/repository"
)

// LogEntry is one rendered log line; Date is human-readable.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResult is the shaped log of one user. Count is the full log length
// regardless of any filtering or truncation applied to Log.
type LogResult struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"id"`
	Log      []LogEntry `json:"log"`
}

type LogService struct {
	users repo.Users
}

func NewLogService(users repo.Users) *LogService {
	return &LogService{users: users}
}

// Query fetches a user's log and shapes it.
//
// The date filter engages only when both bounds are given; a lone from or to
// is ignored outright. That both-or-neither rule is long-standing observable
// behavior and callers rely on it. A bound that does not parse as yyyy-mm-dd
// fails every comparison, leaving the filtered log empty.
//
// limit truncates whatever the date filter left to its first n entries, in
// log (append) order. Count always reports the unfiltered length.
func (s *LogService) Query(ctx context.Context, userID, from, to string, limit *int) (LogResult, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return LogResult{}, err
	}

	entries := u.Log
	if from != "" && to != "" {
		fromT, fromErr := time.Parse(models.DateLayout, from)
		toT, toErr := time.Parse(models.DateLayout, to)

		kept := make([]models.Exercise, 0, len(entries))
		if fromErr == nil && toErr == nil {
			for _, e := range entries {
				d, err := time.Parse(models.DateLayout, e.Date)
				if err != nil {
					continue
				}
				if !d.Before(fromT) && !d.After(toT) {
					kept = append(kept, e)
				}
			}
		}
		entries = kept
	}

	if limit != nil && *limit >= 0 && *limit < len(entries) {
		entries = entries[:*limit]
	}

	out := make([]LogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        e.DateString(),
		})
	}

	return LogResult{
		Username: u.Username,
		Count:    len(u.Log),
		ID:       u.ID,
		Log:      out,
	}, nil
}
