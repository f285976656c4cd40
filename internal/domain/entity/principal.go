// Package entity defines the core business entities for the domain layer.
package entity

// Principal is the authenticated identity attached to every request after
// the auth middleware resolves the bearer token against the user store.
type Principal struct {
	UserID     uint
	Role       Role
	DelegateOf *uint
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanWrite reports whether the principal may perform mutating operations on
// domain resources. Viewers are read-only.
func (p Principal) CanWrite() bool {
	return p.Role != RoleViewer
}

// EffectiveOwner returns the user id whose data the principal reads by
// default: the delegated account for viewers, the principal itself otherwise.
func (p Principal) EffectiveOwner() uint {
	if p.Role == RoleViewer && p.DelegateOf != nil {
		return *p.DelegateOf
	}
	return p.UserID
}

// ReadScope resolves the owner filter for a read, honoring an optional
// explicitly requested owner. The boolean reports whether the scope can match
// any rows at all: a non-admin asking for another user's data gets a scope
// that is provably empty, which callers surface as an empty page or a 404
// rather than a 403, so existence is never leaked.
func (p Principal) ReadScope(requested *uint) (AccessScope, bool) {
	if p.IsAdmin() {
		return AccessScope{OwnerID: requested}, true
	}
	owner := p.EffectiveOwner()
	if requested != nil && *requested != owner {
		return AccessScope{}, false
	}
	return AccessScope{OwnerID: &owner}, true
}

// WriteOwner resolves which user a newly created row belongs to. Admins may
// target any user; everyone else always writes as themselves, regardless of
// what the payload claims.
func (p Principal) WriteOwner(requested *uint) uint {
	if p.IsAdmin() && requested != nil {
		return *requested
	}
	return p.UserID
}

// AccessScope narrows repository queries to the rows a principal may see.
// A nil OwnerID means no restriction (admin with no explicit target).
type AccessScope struct {
	OwnerID *uint
}

// Unrestricted reports whether the scope applies no owner filter.
func (s AccessScope) Unrestricted() bool {
	return s.OwnerID == nil
}

// Allows reports whether a row owned by ownerID is visible under the scope.
func (s AccessScope) Allows(ownerID uint) bool {
	return s.OwnerID == nil || *s.OwnerID == ownerID
}

// ScopeFor builds an unconditional single-owner scope.
func ScopeFor(ownerID uint) AccessScope {
	return AccessScope{OwnerID: &ownerID}
}
