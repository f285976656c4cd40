// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/finflow/backend/internal/domain/entity"
)

// TagModel represents the tags table in the database.
// Name uniqueness per owner is case-insensitive and enforced in the
// repository, not by a database index.
type TagModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Name      string    `gorm:"type:varchar(50);not null"`
	Color     string    `gorm:"type:varchar(7)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the TagModel.
func (TagModel) TableName() string {
	return "tags"
}

// ToEntity converts a TagModel to a domain Tag entity.
func (m *TagModel) ToEntity() *entity.Tag {
	return &entity.Tag{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// TagFromEntity creates a TagModel from a domain Tag entity.
func TagFromEntity(tag *entity.Tag) *TagModel {
	return &TagModel{
		ID:        tag.ID,
		UserID:    tag.UserID,
		Name:      tag.Name,
		Color:     tag.Color,
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
	}
}
