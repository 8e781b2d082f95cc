package ports

import (
	"context"
	"time"

	"github.com/raceops/race-weekend-api/internal/core/domain"
)

// LoginResult carries the issued token alongside the authenticated user.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// TokenIssuer mints and verifies signed access tokens. The signing key is
// injected at construction and shared by all calls for the process lifetime.
type TokenIssuer interface {
	Issue(userID, role string) (token string, expiresAt time.Time, err error)
	Verify(token string) (domain.Claims, error)
}
