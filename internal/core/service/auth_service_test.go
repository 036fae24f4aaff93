package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/velora/commerce-system/internal/core/domain"
	"github.com/velora/commerce-system/internal/core/ports"
	"github.com/velora/commerce-system/internal/session"
)

// stubUserRepo is an in-memory ports.UserRepository for service tests.
type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User // by id
	nextID int

	createErr error
	findErr   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	cp := *user
	cp.ID = "u" + strconv.Itoa(r.nextID)
	r.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) seed(t *testing.T, email, password, role string, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u, err := r.Create(context.Background(), &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
	})
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestAuthService_Signup(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, zerolog.Nop())

	user, err := svc.Signup(context.Background(), ports.SignupInput{
		Email:     "  Buyer@Example.COM ",
		Password:  "hunter22",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "buyer@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Role != domain.RoleUser || !user.Active {
		t.Fatalf("expected active user role, got role=%q active=%v", user.Role, user.Active)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")) != nil {
		t.Fatal("stored hash does not match the password")
	}
}

func TestAuthService_SignupRejectsAdminRole(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), zerolog.Nop())

	_, err := svc.Signup(context.Background(), ports.SignupInput{
		Email:         "buyer@example.com",
		Password:      "hunter22",
		RequestedRole: "admin",
	})
	if !errors.Is(err, domain.ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed, got %v", err)
	}
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed(t, "buyer@example.com", "pw", domain.RoleUser, true)
	svc := NewAuthService(repo, zerolog.Nop())

	_, err := svc.Signup(context.Background(), ports.SignupInput{Email: "buyer@example.com", Password: "hunter22"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	buyer := repo.seed(t, "buyer@example.com", "hunter22", domain.RoleUser, true)
	repo.seed(t, "root@example.com", "adminpw1", domain.RoleAdmin, true)
	repo.seed(t, "gone@example.com", "hunter22", domain.RoleUser, false)
	svc := NewAuthService(repo, zerolog.Nop())
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		user, err := svc.Login(ctx, "Buyer@Example.com", "hunter22", session.NamespaceUser)
		if err != nil {
			t.Fatal(err)
		}
		if user.ID != buyer.ID {
			t.Fatalf("expected %s, got %s", buyer.ID, user.ID)
		}
	})

	// Unknown account, bad password and inactive account must be
	// indistinguishable to the caller.
	t.Run("uniform credential failures", func(t *testing.T) {
		cases := map[string][2]string{
			"unknown email": {"nobody@example.com", "hunter22"},
			"bad password":  {"buyer@example.com", "wrong"},
			"inactive":      {"gone@example.com", "hunter22"},
			"empty input":   {"", ""},
		}
		for name, c := range cases {
			if _, err := svc.Login(ctx, c[0], c[1], session.NamespaceUser); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("%s: expected ErrInvalidCredentials, got %v", name, err)
			}
		}
	})

	t.Run("namespace role pairing", func(t *testing.T) {
		if _, err := svc.Login(ctx, "root@example.com", "adminpw1", session.NamespaceUser); !errors.Is(err, domain.ErrWrongNamespace) {
			t.Fatalf("admin via user namespace: expected ErrWrongNamespace, got %v", err)
		}
		if _, err := svc.Login(ctx, "buyer@example.com", "hunter22", session.NamespaceAdmin); !errors.Is(err, domain.ErrWrongNamespace) {
			t.Fatalf("user via admin namespace: expected ErrWrongNamespace, got %v", err)
		}
		if _, err := svc.Login(ctx, "root@example.com", "adminpw1", session.NamespaceAdmin); err != nil {
			t.Fatalf("admin via admin namespace: %v", err)
		}
	})
}

func TestAuthService_Status(t *testing.T) {
	repo := newStubUserRepo()
	buyer := repo.seed(t, "buyer@example.com", "pw", domain.RoleUser, true)
	admin := repo.seed(t, "root@example.com", "pw", domain.RoleAdmin, true)
	inactive := repo.seed(t, "gone@example.com", "pw", domain.RoleUser, false)
	svc := NewAuthService(repo, zerolog.Nop())
	ctx := context.Background()

	cases := []struct {
		name        string
		principalID string
		ns          session.Namespace
		want        bool
	}{
		{"anonymous", "", session.NamespaceUser, false},
		{"user on user probe", buyer.ID, session.NamespaceUser, true},
		{"admin on admin probe", admin.ID, session.NamespaceAdmin, true},
		{"admin hidden from user probe", admin.ID, session.NamespaceUser, false},
		{"user hidden from admin probe", buyer.ID, session.NamespaceAdmin, false},
		{"vanished principal", "u999", session.NamespaceUser, false},
		{"inactive principal", inactive.ID, session.NamespaceUser, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := svc.Status(ctx, tc.principalID, tc.ns)
			if st.Authenticated != tc.want {
				t.Fatalf("expected authenticated=%v, got %v", tc.want, st.Authenticated)
			}
			if !tc.want && st.User != nil {
				t.Fatal("unauthenticated status must not carry a user")
			}
		})
	}
}

func TestAuthService_CurrentPrincipal(t *testing.T) {
	repo := newStubUserRepo()
	buyer := repo.seed(t, "buyer@example.com", "pw", domain.RoleUser, true)
	svc := NewAuthService(repo, zerolog.Nop())

	if _, err := svc.CurrentPrincipal(context.Background(), ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	got, err := svc.CurrentPrincipal(context.Background(), buyer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Email != "buyer@example.com" {
		t.Fatalf("unexpected principal %+v", got)
	}
}

func TestAuthService_ProvisionAdminIsIdempotent(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, zerolog.Nop())
	ctx := context.Background()

	first, err := svc.ProvisionAdmin(ctx, "Root@Example.com", "adminpw1")
	if err != nil {
		t.Fatal(err)
	}
	if first.Role != domain.RoleAdmin || !first.Active {
		t.Fatalf("expected an active admin, got %+v", first)
	}

	second, err := svc.ProvisionAdmin(ctx, "root@example.com", "different")
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Fatal("reprovisioning must return the existing account")
	}
	if n, _ := repo.Count(ctx); n != 1 {
		t.Fatalf("expected one account, got %d", n)
	}
}
