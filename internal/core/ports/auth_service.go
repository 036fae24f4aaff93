package ports

import (
	"context"

	"github.com/velora/commerce-system/internal/core/domain"
	"github.com/velora/commerce-system/internal/session"
)

// SignupInput carries the signup request fields. RequestedRole is kept so
// the service can reject any attempt to self-provision an admin account.
type SignupInput struct {
	Email         string
	Password      string
	FirstName     string
	LastName      string
	RequestedRole string
}

// Status is the result of the session status probe.
type Status struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user"`
}

// AuthService implements the authentication state machine over the session
// payload. Session transitions themselves (persist, destroy, cookies) are
// made by the HTTP layer via the session manager; this service owns
// principal lifecycle and credential verification.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	// Login verifies credentials and the namespace/role pairing. Missing
	// user, inactive account and bad password all yield
	// domain.ErrInvalidCredentials; a role that does not belong in ns
	// yields domain.ErrWrongNamespace.
	Login(ctx context.Context, email, password string, ns session.Namespace) (*domain.User, error)
	// CurrentPrincipal re-fetches the principal by id; stale snapshots are
	// never trusted for authorization-sensitive reads.
	CurrentPrincipal(ctx context.Context, principalID string) (*domain.User, error)
	// Status reports the authentication state of a session's identity for
	// the given namespace. Admin principals are invisible to the user
	// namespace probe, and only admins show as authenticated on the admin
	// probe.
	Status(ctx context.Context, principalID string, ns session.Namespace) *Status
	// ProvisionAdmin creates an active admin principal if the email is not
	// yet registered. Idempotent; this is the only admin creation path.
	ProvisionAdmin(ctx context.Context, email, password string) (*domain.User, error)
}
