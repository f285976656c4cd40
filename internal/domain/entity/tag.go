// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTagColor is the default color for tags.
const DefaultTagColor = "#9CA3AF"

// Tag represents a free-form label attached to transactions, owned by a
// single user. Tag names are unique per owner, compared case-insensitively.
type Tag struct {
	ID        uint
	UserID    uint
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTag creates a new Tag entity.
func NewTag(userID uint, name, color string) *Tag {
	now := time.Now().UTC()

	return &Tag{
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TagWithCount represents a tag with its transaction count.
type TagWithCount struct {
	Tag              *Tag
	TransactionCount int64
}

// TagStats aggregates the transactions linked to a single tag. FirstUsed and
// LastUsed are nil while the tag is unused.
type TagStats struct {
	TransactionCount int64
	IncomeTotal      decimal.Decimal
	IncomeCount      int64
	ExpenseTotal     decimal.Decimal
	ExpenseCount     int64
	NetTotal         decimal.Decimal
	FirstUsed        *time.Time
	LastUsed         *time.Time
}
