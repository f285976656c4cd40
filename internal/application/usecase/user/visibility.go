package user

import "github.com/finflow/backend/internal/domain/entity"

// visibleTo reports whether the principal may read the target user record.
// Admins see everyone; a regular user sees itself and the viewers delegating
// to it; a viewer sees itself and its delegate target. Invisible users are
// reported as not found, never as forbidden.
func visibleTo(principal entity.Principal, target *entity.User) bool {
	if principal.IsAdmin() || target.ID == principal.UserID {
		return true
	}
	switch principal.Role {
	case entity.RoleViewer:
		return target.ID == principal.EffectiveOwner()
	default:
		return target.DelegateOf != nil && *target.DelegateOf == principal.UserID
	}
}

// writableBy reports whether the principal may modify the target user
// record. Only admins may touch accounts other than their own.
func writableBy(principal entity.Principal, target *entity.User) bool {
	return principal.IsAdmin() || target.ID == principal.UserID
}
