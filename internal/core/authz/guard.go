// Package authz evaluates access capabilities against verified token claims.
// It runs strictly after token verification and denies by default: any
// capability it does not recognise, and any claim set without a role, is a
// denial.
package authz

import "github.com/raceops/race-weekend-api/internal/core/domain"

type capabilityKind int

const (
	kindAdmin capabilityKind = iota
	kindMemberOrAdmin
	kindOwner
)

// Capability is a declared access requirement for an operation.
type Capability struct {
	kind    capabilityKind
	ownerID string
}

// RequireAdmin grants only the admin role.
func RequireAdmin() Capability {
	return Capability{kind: kindAdmin}
}

// RequireMemberOrAdmin grants any authenticated role.
func RequireMemberOrAdmin() Capability {
	return Capability{kind: kindMemberOrAdmin}
}

// RequireOwner grants the user identified by ownerID; admins bypass the
// ownership check. An empty ownerID marks a team-wide resource owned by
// every member.
func RequireOwner(ownerID string) Capability {
	return Capability{kind: kindOwner, ownerID: ownerID}
}

// Decision is the ephemeral outcome of an authorization check. Reason is safe
// to surface to callers: it never carries more than the denial category.
type Decision struct {
	Allowed bool
	Reason  string
}

const (
	ReasonNoCredentials    = "no credentials"
	ReasonInsufficientRole = "insufficient role"
	ReasonNotOwner         = "not owner"
)

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Authorize evaluates the capability against the claims. Claims must come
// from a verified token; an empty role means verification never ran and the
// request is denied outright.
func Authorize(claims domain.Claims, cap Capability) Decision {
	if claims.Role == "" {
		return deny(ReasonNoCredentials)
	}

	switch cap.kind {
	case kindAdmin:
		if claims.Role == domain.RoleAdmin {
			return allow()
		}
		return deny(ReasonInsufficientRole)

	case kindMemberOrAdmin:
		if claims.Role == domain.RoleAdmin || claims.Role == domain.RoleMember {
			return allow()
		}
		return deny(ReasonInsufficientRole)

	case kindOwner:
		if claims.Role == domain.RoleAdmin {
			return allow()
		}
		if claims.Role != domain.RoleMember {
			return deny(ReasonInsufficientRole)
		}
		if cap.ownerID == "" || cap.ownerID == claims.UserID {
			return allow()
		}
		return deny(ReasonNotOwner)
	}

	return deny(ReasonInsufficientRole)
}
