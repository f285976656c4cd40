// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role represents the authorization role of a user account.
type Role string

const (
	RoleRegular Role = "regular"
	RoleAdmin   Role = "admin"
	RoleViewer  Role = "viewer"
)

// ValidRole reports whether the given string names a known role.
func ValidRole(r string) bool {
	switch Role(r) {
	case RoleRegular, RoleAdmin, RoleViewer:
		return true
	}
	return false
}

// User represents a user account in the FinFlow system.
type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	DelegateOf   *uint // Set only for viewers: the account whose data they read
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with default values. New accounts start active.
func NewUser(name, email, passwordHash string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// UserDependents counts the records that block a user account from deletion.
type UserDependents struct {
	Transactions int64
	Categories   int64
	Goals        int64
	Delegates    int64 // Viewers whose delegate_of points at this user
}

// Any reports whether at least one blocking record exists.
func (d UserDependents) Any() bool {
	return d.Transactions > 0 || d.Categories > 0 || d.Goals > 0 || d.Delegates > 0
}

// UserStats aggregates a user's financial activity.
type UserStats struct {
	TransactionCount int64
	IncomeTotal      decimal.Decimal
	ExpenseTotal     decimal.Decimal
	Balance          decimal.Decimal
	CategoryCount    int64
	TagCount         int64
	GoalCount        int64
	GoalsCompleted   int64
}
