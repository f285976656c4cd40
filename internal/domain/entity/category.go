// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category represents a transaction category owned by a single user.
// Category names are unique per owner, compared case-insensitively.
type Category struct {
	ID          uint
	UserID      uint
	Name        string
	Type        CategoryType
	Color       string
	Icon        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory creates a new Category entity.
// Note: Defaulting logic for color and icon should be applied in the
// Application layer (UseCase) before calling this constructor.
func NewCategory(userID uint, name string, categoryType CategoryType, color, icon, description string) *Category {
	now := time.Now().UTC()

	return &Category{
		UserID:      userID,
		Name:        name,
		Type:        categoryType,
		Color:       color,
		Icon:        icon,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CategoryWithCount represents a category with its transaction count.
type CategoryWithCount struct {
	Category         *Category
	TransactionCount int64
}
