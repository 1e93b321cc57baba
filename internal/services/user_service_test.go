package services

import (
	"context"
	"testing"

	"github.com/madeee1/exercise-tracker/internal/worker"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	users := newFakeUsersRepo()
	audit := &fakeAuditRepo{}
	wp := worker.NewPool(1)
	defer wp.Stop()
	svc := NewUserService(users, audit, wp)

	first, err := svc.GetOrCreate(context.Background(), "fcc_test")
	if err != nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected a generated id")
	}
	if len(first.Log) != 0 {
		t.Fatalf("new user log should be empty, got %d entries", len(first.Log))
	}

	second, err := svc.GetOrCreate(context.Background(), "fcc_test")
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same id, got %q then %q", first.ID, second.ID)
	}

	refs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	count := 0
	for _, ref := range refs {
		if ref.Username == "fcc_test" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one listing for the username, got %d", count)
	}
}

func TestListProjectsIDAndUsername(t *testing.T) {
	users := newFakeUsersRepo()
	wp := worker.NewPool(1)
	defer wp.Stop()
	svc := NewUserService(users, &fakeAuditRepo{}, wp)

	for _, name := range []string{"alice", "bob", "carol"} {
		if _, err := svc.GetOrCreate(context.Background(), name); err != nil {
			t.Fatalf("GetOrCreate(%s): %v", name, err)
		}
	}

	refs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(refs) != 3 {
		t.Fatalf("expected 3 users, got %d", len(refs))
	}
	for i, want := range []string{"alice", "bob", "carol"} {
		if refs[i].Username != want || refs[i].ID == "" {
			t.Fatalf("ref %d = %+v, want username %q with an id", i, refs[i], want)
		}
	}
}

func TestGetOrCreateRecordsAudit(t *testing.T) {
	users := newFakeUsersRepo()
	audit := &fakeAuditRepo{}
	wp := worker.NewPool(1)
	svc := NewUserService(users, audit, wp)

	if _, err := svc.GetOrCreate(context.Background(), "dave"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if _, err := svc.GetOrCreate(context.Background(), "dave"); err != nil {
		t.Fatalf("repeat GetOrCreate: %v", err)
	}
	wp.Stop() // drain the audit queue

	actions := audit.actions()
	if len(actions) != 1 || actions[0] != "user_created" {
		t.Fatalf("expected a single user_created audit row, got %v", actions)
	}
}
