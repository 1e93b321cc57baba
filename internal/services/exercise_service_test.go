package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/madeee1/exercise-tracker/internal/models"
	repo "github.com/madeee1/exercise-tracker/internal/repository"
	"github.com/madeee1/exercise-tracker/internal/worker"
)

func newExerciseFixture(t *testing.T) (*fakeUsersRepo, *ExerciseService, models.User) {
	t.Helper()
	users := newFakeUsersRepo()
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)
	svc := NewExerciseService(users, &fakeAuditRepo{}, wp)

	u, err := users.Create(context.Background(), "runner")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return users, svc, u
}

func TestAddAppendsAtEnd(t *testing.T) {
	users, svc, u := newExerciseFixture(t)

	if _, _, err := svc.Add(context.Background(), u.ID, "warmup", 10, "2024-01-01"); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	updated, e, err := svc.Add(context.Background(), u.ID, "run", 30, "2023-06-15")
	if err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if e.Description != "run" || e.Duration != 30 || e.Date != "2023-06-15" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if len(updated.Log) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(updated.Log))
	}
	// append order, even though the second entry is dated earlier
	if updated.Log[1].Description != "run" {
		t.Fatalf("new entry not at the end: %+v", updated.Log)
	}

	stored, _ := users.GetByID(context.Background(), u.ID)
	if len(stored.Log) != 2 {
		t.Fatalf("store has %d entries, want 2", len(stored.Log))
	}
}

func TestAddDefaultsDateToToday(t *testing.T) {
	_, svc, u := newExerciseFixture(t)

	_, e, err := svc.Add(context.Background(), u.ID, "stretch", 5, "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if want := time.Now().Format(models.DateLayout); e.Date != want {
		t.Fatalf("date = %q, want today %q", e.Date, want)
	}
}

func TestAddUnknownUserCreatesNothing(t *testing.T) {
	users, svc, _ := newExerciseFixture(t)

	_, _, err := svc.Add(context.Background(), "nope", "run", 30, "2024-01-01")
	if !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	refs, _ := users.List(context.Background())
	if len(refs) != 1 {
		t.Fatalf("expected the single seeded user, got %d", len(refs))
	}
}
