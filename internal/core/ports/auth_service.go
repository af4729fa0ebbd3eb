package ports

import (
	"context"

	"github.com/sktech/account-gateway/internal/core/domain"
)

// AuthService verifies submitted credentials against the entity store.
type AuthService interface {
	// Authenticate returns the principal for a valid email/password pair.
	// Unknown email, wrong password and inactive account all fail with
	// domain.ErrInvalidCredentials; callers cannot tell which.
	Authenticate(ctx context.Context, email, password string) (*domain.Principal, error)
	// SessionToken mints a signed session token for the admin surface.
	SessionToken(principal *domain.Principal) (string, error)
}

// DispatchService routes an authenticated principal to its destination.
type DispatchService interface {
	// Dispatch evaluates staff/role/license precedence and returns the
	// resulting decision, or one of the deny sentinels (ErrNotAssigned,
	// ErrLicenseInvalid, ErrRoleUndefined). Each call is stateless.
	Dispatch(ctx context.Context, principal *domain.Principal) (domain.Decision, error)
}

// RedirectSigner produces signed handoff URLs for the external webapp.
type RedirectSigner interface {
	SignedURL(userID int64, baseURL string) string
}

// LoginThrottle limits repeated failed attempts per login identifier.
type LoginThrottle interface {
	// TooMany reports whether the identifier has exhausted its attempts.
	TooMany(ctx context.Context, email string) (bool, error)
	// Failure records a failed attempt.
	Failure(ctx context.Context, email string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, email string) error
}
