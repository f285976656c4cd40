// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
	"github.com/finflow/backend/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Create(goalModel)
	if result.Error != nil {
		return result.Error
	}
	goal.ID = goalModel.ID
	return nil
}

// FindByID retrieves a goal with its category by ID within the given scope.
func (r *goalRepository) FindByID(ctx context.Context, id uint, scope entity.AccessScope) (*entity.Goal, error) {
	var goalModel model.GoalModel
	query := applyScope(r.db.WithContext(ctx), scope)
	result := query.Preload("Category").Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByFilter retrieves goals within the scope, filtered and paginated.
func (r *goalRepository) FindByFilter(ctx context.Context, scope entity.AccessScope, filter adapter.GoalFilter, pagination adapter.Pagination) (*adapter.GoalListResult, error) {
	query := applyScope(r.db.WithContext(ctx).Model(&model.GoalModel{}), scope)

	if filter.Completed != nil {
		query = query.Where("is_completed = ?", *filter.Completed)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", string(*filter.Priority))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
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

	var goalModels []model.GoalModel
	result := query.
		Preload("Category").
		Order("created_at DESC, id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i, gm := range goalModels {
		goals[i] = gm.ToEntity()
	}

	return &adapter.GoalListResult{
		Goals:      goals,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: adapter.TotalPages(total, pagination.Limit),
	}, nil
}

// FindAll retrieves every goal within the scope, oldest first.
func (r *goalRepository) FindAll(ctx context.Context, scope entity.AccessScope) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	query := applyScope(r.db.WithContext(ctx), scope)
	if err := query.Order("created_at ASC, id ASC").Find(&goalModels).Error; err != nil {
		return nil, err
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i, gm := range goalModels {
		goals[i] = gm.ToEntity()
	}
	return goals, nil
}

// ExistsByName checks if the owner already has a goal with the given name,
// compared case-insensitively.
func (r *goalRepository) ExistsByName(ctx context.Context, ownerID uint, name string, excludeID uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?) AND id <> ?", ownerID, name, excludeID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates an existing goal in the database.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Save(goalModel)
	return result.Error
}

// Delete removes a goal from the database.
func (r *goalRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.GoalModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}

// GetOverview aggregates every goal within the scope.
func (r *goalRepository) GetOverview(ctx context.Context, scope entity.AccessScope) (*entity.GoalOverview, error) {
	query := applyScope(r.db.WithContext(ctx).Model(&model.GoalModel{}), scope)

	var row struct {
		Total        int64
		Completed    int64
		TargetTotal  decimal.Decimal
		CurrentTotal decimal.Decimal
	}
	err := query.
		Select("COUNT(id) AS total, " +
			"COUNT(CASE WHEN is_completed THEN 1 END) AS completed, " +
			"COALESCE(SUM(target_amount), 0) AS target_total, " +
			"COALESCE(SUM(current_amount), 0) AS current_total").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &entity.GoalOverview{
		TotalGoals:      row.Total,
		CompletedGoals:  row.Completed,
		TargetTotal:     row.TargetTotal,
		CurrentTotal:    row.CurrentTotal,
		OverallProgress: entity.ProgressPercent(row.CurrentTotal, row.TargetTotal),
	}, nil
}
