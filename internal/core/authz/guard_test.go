package authz

import (
	"testing"

	"github.com/raceops/race-weekend-api/internal/core/domain"
)

func memberClaims(userID string) domain.Claims {
	return domain.Claims{UserID: userID, Role: domain.RoleMember}
}

func adminClaims(userID string) domain.Claims {
	return domain.Claims{UserID: userID, Role: domain.RoleAdmin}
}

func TestAuthorize_AdminCapability(t *testing.T) {
	if d := Authorize(memberClaims("u1"), RequireAdmin()); d.Allowed {
		t.Fatalf("member allowed admin capability")
	} else if d.Reason != ReasonInsufficientRole {
		t.Fatalf("unexpected reason: %q", d.Reason)
	}

	if d := Authorize(adminClaims("a1"), RequireAdmin()); !d.Allowed {
		t.Fatalf("admin denied admin capability: %q", d.Reason)
	}
}

func TestAuthorize_MemberOrAdmin(t *testing.T) {
	if d := Authorize(memberClaims("u1"), RequireMemberOrAdmin()); !d.Allowed {
		t.Fatalf("member denied: %q", d.Reason)
	}
	if d := Authorize(adminClaims("a1"), RequireMemberOrAdmin()); !d.Allowed {
		t.Fatalf("admin denied: %q", d.Reason)
	}
	if d := Authorize(domain.Claims{UserID: "g1", Role: "guest"}, RequireMemberOrAdmin()); d.Allowed {
		t.Fatalf("unknown role allowed")
	}
}

func TestAuthorize_Ownership(t *testing.T) {
	if d := Authorize(memberClaims("u1"), RequireOwner("u1")); !d.Allowed {
		t.Fatalf("owner denied own resource: %q", d.Reason)
	}

	if d := Authorize(memberClaims("u1"), RequireOwner("u2")); d.Allowed {
		t.Fatalf("member allowed someone else's resource")
	} else if d.Reason != ReasonNotOwner {
		t.Fatalf("unexpected reason: %q", d.Reason)
	}

	// Admins bypass ownership.
	if d := Authorize(adminClaims("a1"), RequireOwner("u2")); !d.Allowed {
		t.Fatalf("admin denied ownership bypass: %q", d.Reason)
	}

	// Team-wide resources (no owner) are open to every member.
	if d := Authorize(memberClaims("u1"), RequireOwner("")); !d.Allowed {
		t.Fatalf("member denied team-wide resource: %q", d.Reason)
	}
}

func TestAuthorize_DenyByDefault(t *testing.T) {
	if d := Authorize(domain.Claims{}, RequireMemberOrAdmin()); d.Allowed {
		t.Fatalf("empty claims allowed")
	} else if d.Reason != ReasonNoCredentials {
		t.Fatalf("unexpected reason: %q", d.Reason)
	}

	// Zero-value capability must not grant anything.
	if d := Authorize(adminClaims("a1"), Capability{kind: capabilityKind(99)}); d.Allowed {
		t.Fatalf("unknown capability allowed")
	}
}
