package services

import (
	"context"
	"strconv"
	"sync"

	"github.com/madeee1/exercise-tracker/internal/models"
	repo "github.com/madeee1/exercise-tracker/internal/repository"
)

// fakeUsersRepo is an in-memory stand-in for the postgres repo. It keeps
// users in insertion order and enforces the username unique index.
type fakeUsersRepo struct {
	mu    sync.Mutex
	users []*models.User
	next  int
}

func newFakeUsersRepo() *fakeUsersRepo { return &fakeUsersRepo{} }

func (f *fakeUsersRepo) Create(ctx context.Context, username string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return models.User{}, repo.ErrDuplicateUsername
		}
	}
	f.next++
	u := &models.User{ID: "u-" + strconv.Itoa(f.next), Username: username, Log: []models.Exercise{}}
	f.users = append(f.users, u)
	cp := *u
	return cp, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			cp.Log = append([]models.Exercise(nil), u.Log...)
			return cp, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			cp.Log = append([]models.Exercise(nil), u.Log...)
			return cp, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]models.UserRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.UserRef
	for _, u := range f.users {
		out = append(out, models.UserRef{ID: u.ID, Username: u.Username})
	}
	return out, nil
}

func (f *fakeUsersRepo) AppendExercise(ctx context.Context, id string, e models.Exercise) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			u.Log = append(u.Log, e)
			cp := *u
			cp.Log = append([]models.Exercise(nil), u.Log...)
			return cp, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

type fakeAuditRepo struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, l models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeAuditRepo) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, l := range f.logs {
		out = append(out, l.Action)
	}
	return out
}
