package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/student-records/internal/apperror"
	"github.com/sakif/student-records/internal/model"
)

func newTestUserDB(t *testing.T) *UserDB {
	t.Helper()
	return newTestDB(t).Users()
}

func createTestUser(t *testing.T, u *UserDB, username, password string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Password: password}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestUserCreate(t *testing.T) {
	u := newTestUserDB(t)

	user := &model.User{Username: "alice", Password: "wonderland"}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == 0 {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	u := newTestUserDB(t)
	createTestUser(t, u, "bob", "first")

	err := u.Create(context.Background(), &model.User{Username: "bob", Password: "second"})
	if err == nil {
		t.Fatal("Create() should have returned an error for duplicate username")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}

	// The original row is untouched.
	found, err := u.GetByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if found.Password != "first" {
		t.Errorf("Password = %q, want %q", found.Password, "first")
	}
}

func TestUserCreate_UsernameIsCaseSensitive(t *testing.T) {
	u := newTestUserDB(t)
	createTestUser(t, u, "carol", "pw")

	if err := u.Create(context.Background(), &model.User{Username: "Carol", Password: "pw"}); err != nil {
		t.Errorf("Create() with different case error = %v, want nil", err)
	}
}

func TestUserGetByUsername(t *testing.T) {
	u := newTestUserDB(t)
	created := createTestUser(t, u, "dave", "s3cret")

	found, err := u.GetByUsername(context.Background(), "dave")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
	if found.Password != "s3cret" {
		t.Errorf("Password = %q, want stored verbatim %q", found.Password, "s3cret")
	}
}

func TestUserGetByUsername_NotFound(t *testing.T) {
	u := newTestUserDB(t)

	_, err := u.GetByUsername(context.Background(), "nobody")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByUsername() error = %v, want ErrNotFound", err)
	}
}

func TestUserGetByID(t *testing.T) {
	u := newTestUserDB(t)
	created := createTestUser(t, u, "erin", "pw")

	found, err := u.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Username != "erin" {
		t.Errorf("Username = %q, want %q", found.Username, "erin")
	}

	_, err = u.GetByID(context.Background(), created.ID+100)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() unknown id error = %v, want ErrNotFound", err)
	}
}

func TestUserList(t *testing.T) {
	u := newTestUserDB(t)
	createTestUser(t, u, "frank", "pw")
	createTestUser(t, u, "gina", "pw")

	users, err := u.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("List() returned %d users, want 2", len(users))
	}
	if users[0].Username != "frank" || users[1].Username != "gina" {
		t.Errorf("List() order = %q, %q", users[0].Username, users[1].Username)
	}
}
