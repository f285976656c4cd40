// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/finflow/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
// Name uniqueness per owner is case-insensitive and enforced in the
// repository, not by a database index.
type CategoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Type        string    `gorm:"type:varchar(10);not null;index"`
	Color       string    `gorm:"type:varchar(7)"`
	Icon        string    `gorm:"type:varchar(50)"`
	Description string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Type:        entity.CategoryType(m.Type),
		Color:       m.Color,
		Icon:        m.Icon,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:          category.ID,
		UserID:      category.UserID,
		Name:        category.Name,
		Type:        string(category.Type),
		Color:       category.Color,
		Icon:        category.Icon,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}
