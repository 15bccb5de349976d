package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitlog-app/internal/domain"
)

func newAuthTestService() (AuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	return NewAuthService(userRepo, "test-secret", time.Hour), userRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo := newAuthTestService()

	user, err := svc.Register(context.Background(), "Anna", "anna@example.com", "secret-password", domain.RoleUser)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PasswordHash != "" {
		t.Error("returned user must not carry the password hash")
	}
	stored := repo.users[user.ID]
	if stored.PasswordHash == "" || stored.PasswordHash == "secret-password" {
		t.Error("stored password must be hashed")
	}

	token, loggedIn, err := svc.Login(context.Background(), "anna@example.com", "secret-password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Error("login must return a token")
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged-in user = %v, want %v", loggedIn.ID, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthTestService()

	if _, err := svc.Register(context.Background(), "Anna", "anna@example.com", "secret-password", domain.RoleUser); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "Other", "anna@example.com", "another-password", domain.RoleUser)
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthTestService()

	if _, err := svc.Register(context.Background(), "Anna", "anna@example.com", "secret-password", domain.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := svc.Login(context.Background(), "anna@example.com", "wrong-password")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("err = %v, want ErrAuthenticationFailed", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthTestService()

	// Unknown email and wrong password must be indistinguishable.
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("err = %v, want ErrAuthenticationFailed", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newAuthTestService()

	user, err := svc.Register(context.Background(), "Anna", "anna@example.com", "secret-password", domain.RoleUser)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), user.ID, "Anna K")
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Anna K" {
		t.Errorf("name = %q, want %q", updated.Name, "Anna K")
	}
}
