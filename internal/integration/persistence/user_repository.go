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

// userRepository implements the adapter.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.UserFromEntity(user)
	result := r.db.WithContext(ctx).Create(userModel)
	if result.Error != nil {
		return result.Error
	}
	user.ID = userModel.ID
	return nil
}

// FindByID retrieves a user by their ID.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var userModel model.UserModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, result.Error
	}
	return userModel.ToEntity(), nil
}

// FindByEmail retrieves a user by their email address.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.UserModel
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, result.Error
	}
	return userModel.ToEntity(), nil
}

// FindVisible retrieves the users the principal may see.
func (r *userRepository) FindVisible(ctx context.Context, principal entity.Principal, filter adapter.UserFilter, pagination adapter.Pagination) (*adapter.UserListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.UserModel{})

	switch principal.Role {
	case entity.RoleAdmin:
		// Admins see the whole directory.
	case entity.RoleViewer:
		query = query.Where("id IN ?", []uint{principal.UserID, principal.EffectiveOwner()})
	default:
		query = query.Where("id = ? OR delegate_of = ?", principal.UserID, principal.UserID)
	}

	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", searchPattern, searchPattern)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", string(*filter.Role))
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var userModels []model.UserModel
	result := query.
		Order("id ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&userModels)
	if result.Error != nil {
		return nil, result.Error
	}

	users := make([]*entity.User, len(userModels))
	for i, um := range userModels {
		users[i] = um.ToEntity()
	}

	return &adapter.UserListResult{
		Users:      users,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: adapter.TotalPages(total, pagination.Limit),
	}, nil
}

// Update updates an existing user in the database.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	userModel := model.UserFromEntity(user)
	result := r.db.WithContext(ctx).Save(userModel)
	return result.Error
}

// Delete hard-deletes a user together with their tags, tag links and
// refresh tokens, all in one transaction.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM transaction_tags WHERE tag_id IN (SELECT id FROM tags WHERE user_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.TagModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.RefreshTokenModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.UserModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrUserNotFound
		}
		return nil
	})
}

// ExistsByEmail checks if another user with the given email exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CountDependents counts the records that block the user from deletion.
func (r *userRepository) CountDependents(ctx context.Context, userID uint) (*entity.UserDependents, error) {
	db := r.db.WithContext(ctx)
	dependents := &entity.UserDependents{}

	if err := db.Model(&model.TransactionModel{}).Where("user_id = ?", userID).Count(&dependents.Transactions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.CategoryModel{}).Where("user_id = ?", userID).Count(&dependents.Categories).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.GoalModel{}).Where("user_id = ?", userID).Count(&dependents.Goals).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.UserModel{}).Where("delegate_of = ?", userID).Count(&dependents.Delegates).Error; err != nil {
		return nil, err
	}
	return dependents, nil
}

// GetStats aggregates the user's financial activity.
func (r *userRepository) GetStats(ctx context.Context, userID uint) (*entity.UserStats, error) {
	db := r.db.WithContext(ctx)
	stats := &entity.UserStats{}

	var totals struct {
		TransactionCount int64
		IncomeTotal      decimal.Decimal
		ExpenseTotal     decimal.Decimal
	}
	err := db.Model(&model.TransactionModel{}).
		Where("user_id = ?", userID).
		Select("COUNT(id) AS transaction_count, " +
			"COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income_total, " +
			"COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expense_total").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	stats.TransactionCount = totals.TransactionCount
	stats.IncomeTotal = totals.IncomeTotal
	stats.ExpenseTotal = totals.ExpenseTotal
	stats.Balance = totals.IncomeTotal.Sub(totals.ExpenseTotal)

	if err := db.Model(&model.CategoryModel{}).Where("user_id = ?", userID).Count(&stats.CategoryCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.TagModel{}).Where("user_id = ?", userID).Count(&stats.TagCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.GoalModel{}).Where("user_id = ?", userID).Count(&stats.GoalCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.GoalModel{}).Where("user_id = ? AND is_completed = ?", userID, true).Count(&stats.GoalsCompleted).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// AdminExists checks whether at least one admin account exists.
func (r *userRepository) AdminExists(ctx context.Context) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("role = ?", string(entity.RoleAdmin)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
