// Package auditlog contains audit trail use cases.
package auditlog

import (
	"strconv"

	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// visibleUserID returns the actor id a non-admin principal may read logs
// for: their own for regulars, the delegate target's for viewers. Admins get
// "" (unrestricted).
func visibleUserID(p entity.Principal) string {
	if p.IsAdmin() {
		return ""
	}
	return strconv.FormatUint(uint64(p.EffectiveOwner()), 10)
}

// canSee reports whether the principal may read the given entry.
func canSee(p entity.Principal, entry *entity.AuditLogEntry) bool {
	restricted := visibleUserID(p)
	return restricted == "" || entry.UserID == restricted
}

// logNotFound hides out-of-scope entries the same way the relational
// resources do.
func logNotFound() error {
	return domainerror.ErrAuditLogNotFound
}
