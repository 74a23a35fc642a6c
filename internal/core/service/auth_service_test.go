package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
	"github.com/cryptodata/crypto-data-api/internal/core/ports"
	"github.com/cryptodata/crypto-data-api/internal/pkg/password"
)

// stubUserRepo is an in-memory ports.UserRepository. Create enforces
// username uniqueness under a mutex, mirroring the store's unique index.
type stubUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*domain.User // keyed by username
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrDuplicateUsername
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = string(rune('0' + r.nextID))
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, skip, limit int) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*domain.User
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	if skip >= len(users) {
		return nil, nil
	}
	users = users[skip:]
	if limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.Role = role
			u.UpdatedAt = time.Now().UTC()
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.IsActive = active
			u.UpdatedAt = time.Now().UTC()
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Counts(_ context.Context) (domain.UserCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := domain.UserCounts{}
	for _, u := range r.users {
		counts.Total++
		if u.IsActive {
			counts.Active++
		}
		if u.Role == domain.RoleAdmin {
			counts.Admins++
		}
	}
	return counts, nil
}

func openRegistration() RegistrationConfig {
	return RegistrationConfig{Enabled: true, Secret: "reg-secret", AdminSecret: "admin-secret"}
}

func newTestAuthService(t *testing.T, repo *stubUserRepo, reg RegistrationConfig) *AuthService {
	t.Helper()
	tokens, err := NewTokenService("secret", "HS256", time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return NewAuthService(repo, tokens, reg)
}

func register(t *testing.T, svc *AuthService, username, pass, adminSecret string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:           username,
		Email:              username + "@example.com",
		Password:           pass,
		RegistrationSecret: "reg-secret",
		AdminSecret:        adminSecret,
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", username, err)
	}
	return user
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo, openRegistration())

	user := register(t, svc, "alice", "correct-pw", "")
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("expected new account to be active")
	}
	if user.PasswordHash == "correct-pw" {
		t.Fatalf("expected password to be hashed")
	}
	if !password.Verify("correct-pw", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
}

func TestAuthService_Register_Disabled(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo, RegistrationConfig{Enabled: false, Secret: "reg-secret", AdminSecret: "admin-secret"})

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:           "alice",
		Password:           "pw123456",
		RegistrationSecret: "reg-secret",
		AdminSecret:        "admin-secret",
	})
	if err != domain.ErrRegistrationDisabled {
		t.Fatalf("expected ErrRegistrationDisabled even with correct secrets, got %v", err)
	}
}

func TestAuthService_Register_UnsetSecretMeansDisabled(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo, RegistrationConfig{Enabled: true, Secret: ""})

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:           "alice",
		Password:           "pw123456",
		RegistrationSecret: "",
	})
	if err != domain.ErrRegistrationDisabled {
		t.Fatalf("expected ErrRegistrationDisabled for unset secret, got %v", err)
	}
}

func TestAuthService_Register_BadSecret(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo, openRegistration())

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:           "alice",
		Password:           "pw123456",
		RegistrationSecret: "wrong",
		AdminSecret:        "admin-secret", // valid elevation cannot rescue a bad registration secret
	})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAuthService_Register_AdminElevation(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo, openRegistration())

	admin := register(t, svc, "root", "pw123456", "admin-secret")
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %s", admin.Role)
	}

	plain := register(t, svc, "bob", "pw123456", "wrong-elevation")
	if plain.Role != domain.RoleUser {
		t.Fatalf("expected wrong elevation secret to yield role user, got %s", plain.Role)
	}
}

func TestAuthService_Register_UnsetAdminSecretNeverElevates(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo, RegistrationConfig{Enabled: true, Secret: "reg-secret", AdminSecret: ""})

	user := register(t, svc, "mallory", "pw123456", "")
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user when no admin secret is configured, got %s", user.Role)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo, openRegistration())

	register(t, svc, "alice", "pw123456", "")
	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:           "alice",
		Password:           "pw123456",
		RegistrationSecret: "reg-secret",
	})
	if err != domain.ErrDuplicateUsername {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAuthService_Register_ConcurrentSameUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo, openRegistration())

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), ports.RegisterInput{
				Username:           "alice",
				Password:           "pw123456",
				RegistrationSecret: "reg-secret",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, duplicates int
	for err := range errs {
		switch err {
		case nil:
			succeeded++
		case domain.ErrDuplicateUsername:
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || duplicates != 1 {
		t.Fatalf("expected exactly one success and one duplicate, got %d/%d", succeeded, duplicates)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo, openRegistration())
	register(t, svc, "alice", "correctpw", "")

	token, err := svc.Login(context.Background(), "alice", "correctpw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
}

func TestAuthService_Login_NoExistenceOracle(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(t, repo, openRegistration())
	register(t, svc, "alice", "correctpw", "")

	_, errWrongPass := svc.Login(context.Background(), "alice", "wrongpw")
	_, errUnknown := svc.Login(context.Background(), "ghost", "whatever")

	if errWrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPass)
	}
	if errUnknown != domain.ErrInvalidCredentials {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errUnknown)
	}
}
