package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
	"github.com/cryptodata/crypto-data-api/internal/core/service"
)

func TestAdminUsers_RequiresAdminRole(t *testing.T) {
	s := newTestServer(t, service.RegistrationConfig{})
	s.seedUser(t, "alice", "correct horse battery", domain.RoleUser, true)

	rec := s.do(http.MethodGet, "/admin/users", "", s.tokenFor(t, "alice"), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", rec.Code)
	}
}

func TestAdminUsers_ListsAccounts(t *testing.T) {
	s := newTestServer(t, service.RegistrationConfig{})
	s.seedUser(t, "root", "administrator1", domain.RoleAdmin, true)
	s.seedUser(t, "alice", "correct horse battery", domain.RoleUser, true)

	rec := s.do(http.MethodGet, "/admin/users", "", s.tokenFor(t, "root"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var users []*domain.User
	decodeJSON(t, rec, &users)
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestAdminUpdateRole(t *testing.T) {
	s := newTestServer(t, service.RegistrationConfig{})
	s.seedUser(t, "root", "administrator1", domain.RoleAdmin, true)
	alice := s.seedUser(t, "alice", "correct horse battery", domain.RoleUser, true)

	rec := s.do(http.MethodPut, "/admin/users/"+alice.ID+"/role",
		`{"role":"admin"}`, s.tokenFor(t, "root"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated domain.User
	decodeJSON(t, rec, &updated)
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("role not updated: %+v", updated)
	}
}

func TestAdminUpdateRole_RejectsUnknownRole(t *testing.T) {
	s := newTestServer(t, service.RegistrationConfig{})
	s.seedUser(t, "root", "administrator1", domain.RoleAdmin, true)
	alice := s.seedUser(t, "alice", "correct horse battery", domain.RoleUser, true)

	rec := s.do(http.MethodPut, "/admin/users/"+alice.ID+"/role",
		`{"role":"superuser"}`, s.tokenFor(t, "root"), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminDeactivate_GuardRejectsAfterwards(t *testing.T) {
	s := newTestServer(t, service.RegistrationConfig{})
	s.seedUser(t, "root", "administrator1", domain.RoleAdmin, true)
	alice := s.seedUser(t, "alice", "correct horse battery", domain.RoleUser, true)

	token := s.tokenFor(t, "alice")
	if rec := s.do(http.MethodGet, "/auth/me", "", token, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 before deactivation, got %d", rec.Code)
	}

	rec := s.do(http.MethodPut, "/admin/users/"+alice.ID+"/deactivate", "", s.tokenFor(t, "root"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// The still-valid token is now rejected at the account-active stage.
	if rec := s.do(http.MethodGet, "/auth/me", "", token, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 after deactivation, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminGetUser_NotFound(t *testing.T) {
	s := newTestServer(t, service.RegistrationConfig{})
	s.seedUser(t, "root", "administrator1", domain.RoleAdmin, true)

	rec := s.do(http.MethodGet, "/admin/users/404404", "", s.tokenFor(t, "root"), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminLogs_FiltersByActor(t *testing.T) {
	s := newTestServer(t, service.RegistrationConfig{})
	s.seedUser(t, "root", "administrator1", domain.RoleAdmin, true)

	actor := "7"
	now := time.Now().UTC()
	records := []*domain.AuditRecord{
		{ActorID: &actor, Endpoint: "/auth/me", Method: http.MethodGet, StatusCode: 200, CreatedAt: now},
		{ActorID: nil, Endpoint: "/auth/token", Method: http.MethodPost, StatusCode: 401, CreatedAt: now},
	}
	for _, rec := range records {
		if err := s.audits.Insert(context.Background(), rec); err != nil {
			t.Fatalf("seed audit record: %v", err)
		}
	}

	rec := s.do(http.MethodGet, "/admin/logs?actor_id=7", "", s.tokenFor(t, "root"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Logs  []*domain.AuditRecord `json:"logs"`
		Total int64                 `json:"total"`
	}
	decodeJSON(t, rec, &body)
	if body.Total != 1 || len(body.Logs) != 1 || body.Logs[0].Endpoint != "/auth/me" {
		t.Fatalf("unexpected filtered logs %+v", body)
	}
}

func TestAdminStats(t *testing.T) {
	s := newTestServer(t, service.RegistrationConfig{})
	s.seedUser(t, "root", "administrator1", domain.RoleAdmin, true)
	s.seedUser(t, "alice", "correct horse battery", domain.RoleUser, false)

	rec := s.do(http.MethodGet, "/admin/stats", "", s.tokenFor(t, "root"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Users domain.UserCounts  `json:"users"`
		Logs  domain.AuditCounts `json:"logs"`
	}
	decodeJSON(t, rec, &body)
	if body.Users.Total != 2 || body.Users.Active != 1 || body.Users.Admins != 1 {
		t.Fatalf("unexpected user counts %+v", body.Users)
	}
}

func TestAdminMyRole_OpenToRegularUsers(t *testing.T) {
	s := newTestServer(t, service.RegistrationConfig{})
	s.seedUser(t, "alice", "correct horse battery", domain.RoleUser, true)

	rec := s.do(http.MethodGet, "/admin/my-role", "", s.tokenFor(t, "alice"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Username string `json:"username"`
		Role     string `json:"role"`
		IsAdmin  bool   `json:"is_admin"`
	}
	decodeJSON(t, rec, &body)
	if body.Username != "alice" || body.Role != "user" || body.IsAdmin {
		t.Fatalf("unexpected my-role response %+v", body)
	}
}
