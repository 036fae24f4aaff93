package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/velora/commerce-system/internal/api/metrics"
	"github.com/velora/commerce-system/internal/core/domain"
	"github.com/velora/commerce-system/internal/core/ports"
	"github.com/velora/commerce-system/internal/session"
)

// AuthService implements signup, credential verification and the
// namespace-aware status probes.
type AuthService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, logger: logger}
}

// Signup creates a user-role principal. The role is forced regardless of
// request input; asking for anything else is rejected outright.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.RequestedRole != "" && in.RequestedRole != domain.RoleUser {
		return nil, domain.ErrRoleNotAllowed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         domain.RoleUser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.SignupsTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Msg("user signed up")
	return created, nil
}

// Login verifies credentials and the namespace/role pairing. All credential
// failures collapse into ErrInvalidCredentials so the response never
// reveals whether the account exists.
func (s *AuthService) Login(ctx context.Context, email, password string, ns session.Namespace) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues(string(ns), "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues(string(ns), "invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		metrics.LoginsTotal.WithLabelValues(string(ns), "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues(string(ns), "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if (ns == session.NamespaceAdmin) != user.IsAdmin() {
		metrics.LoginsTotal.WithLabelValues(string(ns), "wrong_namespace").Inc()
		s.logger.Warn().
			Str("user_id", user.ID).
			Str("role", user.Role).
			Str("namespace", string(ns)).
			Msg("login rejected: role does not belong in namespace")
		return nil, domain.ErrWrongNamespace
	}

	metrics.LoginsTotal.WithLabelValues(string(ns), "success").Inc()
	return user, nil
}

// CurrentPrincipal re-fetches the principal by id.
func (s *AuthService) CurrentPrincipal(ctx context.Context, principalID string) (*domain.User, error) {
	if principalID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.FindByID(ctx, principalID)
}

// Status resolves the session identity for the status probe. A vanished
// principal, and an admin seen through the user-namespace probe, both
// report as unauthenticated rather than erroring.
func (s *AuthService) Status(ctx context.Context, principalID string, ns session.Namespace) *ports.Status {
	anonymous := &ports.Status{Authenticated: false}
	if principalID == "" {
		return anonymous
	}

	user, err := s.repo.FindByID(ctx, principalID)
	if err != nil {
		return anonymous
	}
	if !user.Active {
		return anonymous
	}
	if (ns == session.NamespaceAdmin) != user.IsAdmin() {
		return anonymous
	}
	return &ports.Status{Authenticated: true, User: user}
}

// ProvisionAdmin creates an active admin principal unless the email is
// already registered. This is the out-of-band path; signup can never
// produce an admin.
func (s *AuthService) ProvisionAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	if existing, err := s.repo.FindByEmail(ctx, email); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("admin account provisioned")
	return created, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
