package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Claims is the verified content of an access token. The role claim is
// trusted as issued: a role change takes effect on the next login, so
// staleness is bounded by the token TTL.
type Claims struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}
