package repository

import (
	"context"
	"errors"

	"github.com/madeee1/exercise-tracker/internal/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateUsername surfaces the store's unique index on username.
// Callers do not pre-check; the index is the only authority.
var ErrDuplicateUsername = errors.New("username already taken")

type Users interface {
	Create(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)

	// List returns only id and username, in store-native order.
	List(ctx context.Context) ([]models.UserRef, error)

	// AppendExercise atomically appends one entry to the user's log and
	// returns the updated record. ErrNotFound if the id is unknown.
	AppendExercise(ctx context.Context, id string, e models.Exercise) (models.User, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
