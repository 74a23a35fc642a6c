package service

import (
	"context"
	"testing"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
)

func seedUser(t *testing.T, repo *stubUserRepo, username string, role domain.Role) *domain.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &domain.User{
		Username: username,
		IsActive: true,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func TestUserService_UpdateRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	user := seedUser(t, repo, "alice", domain.RoleUser)

	updated, err := svc.UpdateRole(context.Background(), user.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %s", updated.Role)
	}
}

func TestUserService_UpdateRole_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	user := seedUser(t, repo, "alice", domain.RoleUser)

	if _, err := svc.UpdateRole(context.Background(), user.ID, "superuser"); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_UpdateRole_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)

	if _, err := svc.UpdateRole(context.Background(), "missing", domain.RoleAdmin); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Deactivate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	user := seedUser(t, repo, "alice", domain.RoleUser)

	updated, err := svc.Deactivate(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if updated.IsActive {
		t.Fatalf("expected account to be inactive")
	}
}

func TestUserService_ListUsers_ClampsLimit(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	seedUser(t, repo, "alice", domain.RoleUser)
	seedUser(t, repo, "bob", domain.RoleUser)

	users, err := svc.ListUsers(context.Background(), -5, 0)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
