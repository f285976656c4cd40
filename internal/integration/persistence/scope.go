// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"gorm.io/gorm"

	"github.com/finflow/backend/internal/domain/entity"
)

// applyScope narrows a query to the rows visible under the given scope.
func applyScope(query *gorm.DB, scope entity.AccessScope) *gorm.DB {
	if scope.OwnerID != nil {
		return query.Where("user_id = ?", *scope.OwnerID)
	}
	return query
}

// applyScopeColumn is applyScope with an explicit qualified column, for
// queries that join other tables.
func applyScopeColumn(query *gorm.DB, scope entity.AccessScope, column string) *gorm.DB {
	if scope.OwnerID != nil {
		return query.Where(column+" = ?", *scope.OwnerID)
	}
	return query
}
