// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
	"github.com/finflow/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).Create(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	category.ID = categoryModel.ID
	return nil
}

// FindByID retrieves a category by its ID within the given scope.
func (r *categoryRepository) FindByID(ctx context.Context, id uint, scope entity.AccessScope) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	query := applyScope(r.db.WithContext(ctx), scope)
	result := query.Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindByFilter retrieves categories within the scope, filtered and paginated.
func (r *categoryRepository) FindByFilter(ctx context.Context, scope entity.AccessScope, filter adapter.CategoryFilter, pagination adapter.Pagination) (*adapter.CategoryListResult, error) {
	query := applyScope(r.db.WithContext(ctx).Model(&model.CategoryModel{}), scope)

	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var categoryModels []model.CategoryModel
	result := query.
		Order("name ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i, cm := range categoryModels {
		categories[i] = cm.ToEntity()
	}

	return &adapter.CategoryListResult{
		Categories: categories,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: adapter.TotalPages(total, pagination.Limit),
	}, nil
}

// FindAllWithCounts retrieves every category within the scope together with
// its transaction count.
func (r *categoryRepository) FindAllWithCounts(ctx context.Context, scope entity.AccessScope) ([]*entity.CategoryWithCount, error) {
	var categoryModels []model.CategoryModel
	query := applyScope(r.db.WithContext(ctx), scope)
	if err := query.Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	var countRows []struct {
		CategoryID uint
		Count      int64
	}
	countQuery := applyScope(r.db.WithContext(ctx).Model(&model.TransactionModel{}), scope)
	err := countQuery.
		Select("category_id, COUNT(id) AS count").
		Group("category_id").
		Scan(&countRows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(countRows))
	for _, row := range countRows {
		counts[row.CategoryID] = row.Count
	}

	result := make([]*entity.CategoryWithCount, len(categoryModels))
	for i, cm := range categoryModels {
		result[i] = &entity.CategoryWithCount{
			Category:         cm.ToEntity(),
			TransactionCount: counts[cm.ID],
		}
	}
	return result, nil
}

// ExistsByName checks if the owner already has a category with the given
// name, compared case-insensitively.
func (r *categoryRepository) ExistsByName(ctx context.Context, ownerID uint, name string, excludeID uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?) AND id <> ?", ownerID, name, excludeID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates an existing category in the database.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).Save(categoryModel)
	return result.Error
}

// Delete removes a category, clearing goal links in the same transaction.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.GoalModel{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}
		result := tx.Delete(&model.CategoryModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrCategoryNotFound
		}
		return nil
	})
}

// CountTransactions counts transactions referencing the category.
func (r *categoryRepository) CountTransactions(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("category_id = ?", categoryID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
