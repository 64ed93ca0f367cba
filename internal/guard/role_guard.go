package guard

import (
	"fmt"

	"bloomshop/internal/models"
)

// MaxAdmins is the system-wide cap on users holding the admin role.
const MaxAdmins = 10

// Denial reasons returned by the role guard.
const (
	ReasonMaxAdmins  = "maximum number of administrators (10) has been reached"
	ReasonLastAdmin  = "cannot remove the last administrator, at least one administrator must remain in the system"
	ReasonSelfDelete = "you cannot delete your own account"
)

// AdminCounter reports how many users currently hold a role.
type AdminCounter interface {
	CountByRole(role string) (int64, error)
}

// RoleGuard decides whether user mutations are permitted given the current
// admin population. It holds no state beyond the counter it queries.
type RoleGuard struct {
	counter AdminCounter
}

// NewRoleGuard creates a RoleGuard reading counts from counter.
func NewRoleGuard(counter AdminCounter) *RoleGuard {
	return &RoleGuard{counter: counter}
}

// CanCreateUser decides whether a user with requestedRole may be created.
// Only admin creations need a count query.
func (g *RoleGuard) CanCreateUser(requestedRole string) (Verdict, error) {
	if requestedRole != models.RoleAdmin {
		return Allow(), nil
	}
	count, err := g.counter.CountByRole(models.RoleAdmin)
	if err != nil {
		return Verdict{}, fmt.Errorf("counting admins: %w", err)
	}
	if count >= MaxAdmins {
		return Deny(ReasonMaxAdmins), nil
	}
	return Allow(), nil
}

// CanChangeRole decides whether a user's role may change from currentRole to
// requestedRole. A no-op change is always allowed and performs no count query.
func (g *RoleGuard) CanChangeRole(currentRole, requestedRole string) (Verdict, error) {
	if currentRole == requestedRole {
		return Allow(), nil
	}

	// Promotion into the admin pool.
	if currentRole != models.RoleAdmin && requestedRole == models.RoleAdmin {
		count, err := g.counter.CountByRole(models.RoleAdmin)
		if err != nil {
			return Verdict{}, fmt.Errorf("counting admins: %w", err)
		}
		if count >= MaxAdmins {
			return Deny(ReasonMaxAdmins), nil
		}
		return Allow(), nil
	}

	// Demotion out of the admin pool.
	if currentRole == models.RoleAdmin && requestedRole != models.RoleAdmin {
		count, err := g.counter.CountByRole(models.RoleAdmin)
		if err != nil {
			return Verdict{}, fmt.Errorf("counting admins: %w", err)
		}
		if count <= 1 {
			return Deny(ReasonLastAdmin), nil
		}
	}

	return Allow(), nil
}

// CanDeleteUser decides whether actingUserID may delete the user targetID who
// holds targetRole. Self-deletion is refused before any count is read.
func (g *RoleGuard) CanDeleteUser(targetRole, targetID, actingUserID string) (Verdict, error) {
	if targetID == actingUserID {
		return Deny(ReasonSelfDelete), nil
	}
	if targetRole != models.RoleAdmin {
		return Allow(), nil
	}
	count, err := g.counter.CountByRole(models.RoleAdmin)
	if err != nil {
		return Verdict{}, fmt.Errorf("counting admins: %w", err)
	}
	if count <= 1 {
		return Deny(ReasonLastAdmin), nil
	}
	return Allow(), nil
}
