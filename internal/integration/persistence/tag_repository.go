// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
	"github.com/finflow/backend/internal/integration/persistence/model"
)

// tagRepository implements the adapter.TagRepository interface.
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance.
func NewTagRepository(db *gorm.DB) adapter.TagRepository {
	return &tagRepository{
		db: db,
	}
}

// Create creates a new tag in the database.
func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	tagModel := model.TagFromEntity(tag)
	result := r.db.WithContext(ctx).Create(tagModel)
	if result.Error != nil {
		return result.Error
	}
	tag.ID = tagModel.ID
	return nil
}

// FindByID retrieves a tag by its ID within the given scope.
func (r *tagRepository) FindByID(ctx context.Context, id uint, scope entity.AccessScope) (*entity.Tag, error) {
	var tagModel model.TagModel
	query := applyScope(r.db.WithContext(ctx), scope)
	result := query.Where("id = ?", id).First(&tagModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTagNotFound
		}
		return nil, result.Error
	}
	return tagModel.ToEntity(), nil
}

// FindByFilter retrieves tags within the scope, filtered and paginated.
func (r *tagRepository) FindByFilter(ctx context.Context, scope entity.AccessScope, filter adapter.TagFilter, pagination adapter.Pagination) (*adapter.TagListResult, error) {
	query := applyScope(r.db.WithContext(ctx).Model(&model.TagModel{}), scope)

	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var tagModels []model.TagModel
	result := query.
		Order("name ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&tagModels)
	if result.Error != nil {
		return nil, result.Error
	}

	tags := make([]*entity.Tag, len(tagModels))
	for i, tm := range tagModels {
		tags[i] = tm.ToEntity()
	}

	return &adapter.TagListResult{
		Tags:       tags,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: adapter.TotalPages(total, pagination.Limit),
	}, nil
}

// FindPopular retrieves the most used tags within the scope, ordered by
// transaction count descending.
func (r *tagRepository) FindPopular(ctx context.Context, scope entity.AccessScope, limit int) ([]*entity.TagWithCount, error) {
	var tagModels []model.TagModel
	query := applyScope(r.db.WithContext(ctx), scope)
	if err := query.Find(&tagModels).Error; err != nil {
		return nil, err
	}
	if len(tagModels) == 0 {
		return []*entity.TagWithCount{}, nil
	}

	ids := make([]uint, len(tagModels))
	for i, tm := range tagModels {
		ids[i] = tm.ID
	}

	var countRows []struct {
		TagID uint
		Count int64
	}
	err := r.db.WithContext(ctx).
		Table("transaction_tags").
		Select("tag_id, COUNT(transaction_id) AS count").
		Where("tag_id IN ?", ids).
		Group("tag_id").
		Scan(&countRows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(countRows))
	for _, row := range countRows {
		counts[row.TagID] = row.Count
	}

	popular := make([]*entity.TagWithCount, len(tagModels))
	for i, tm := range tagModels {
		popular[i] = &entity.TagWithCount{
			Tag:              tm.ToEntity(),
			TransactionCount: counts[tm.ID],
		}
	}
	sort.SliceStable(popular, func(i, j int) bool {
		if popular[i].TransactionCount != popular[j].TransactionCount {
			return popular[i].TransactionCount > popular[j].TransactionCount
		}
		return popular[i].Tag.Name < popular[j].Tag.Name
	})

	if limit > 0 && len(popular) > limit {
		popular = popular[:limit]
	}
	return popular, nil
}

// FindOwnedByIDs retrieves the subset of the given tag ids owned by the user.
func (r *tagRepository) FindOwnedByIDs(ctx context.Context, ownerID uint, ids []uint) ([]*entity.Tag, error) {
	if len(ids) == 0 {
		return []*entity.Tag{}, nil
	}

	var tagModels []model.TagModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", ownerID, ids).
		Order("id ASC").
		Find(&tagModels)
	if result.Error != nil {
		return nil, result.Error
	}

	tags := make([]*entity.Tag, len(tagModels))
	for i, tm := range tagModels {
		tags[i] = tm.ToEntity()
	}
	return tags, nil
}

// ExistsByName checks if the owner already has a tag with the given name,
// compared case-insensitively.
func (r *tagRepository) ExistsByName(ctx context.Context, ownerID uint, name string, excludeID uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TagModel{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?) AND id <> ?", ownerID, name, excludeID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates an existing tag in the database.
func (r *tagRepository) Update(ctx context.Context, tag *entity.Tag) error {
	tagModel := model.TagFromEntity(tag)
	result := r.db.WithContext(ctx).Save(tagModel)
	return result.Error
}

// Delete removes a tag together with its transaction links.
func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM transaction_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.TagModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTagNotFound
		}
		return nil
	})
}

// CountTransactions counts transactions linked to the tag.
func (r *tagRepository) CountTransactions(ctx context.Context, tagID uint) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Table("transaction_tags").
		Where("tag_id = ?", tagID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// GetStats aggregates the transactions linked to the tag.
func (r *tagRepository) GetStats(ctx context.Context, tagID uint) (*entity.TagStats, error) {
	var row struct {
		Count        int64
		IncomeTotal  decimal.Decimal
		IncomeCount  int64
		ExpenseTotal decimal.Decimal
		ExpenseCount int64
		FirstUsed    *time.Time
		LastUsed     *time.Time
	}
	err := r.db.WithContext(ctx).
		Table("transactions").
		Joins("JOIN transaction_tags ON transaction_tags.transaction_id = transactions.id").
		Where("transaction_tags.tag_id = ?", tagID).
		Select("COUNT(transactions.id) AS count, " +
			"COALESCE(SUM(CASE WHEN transactions.type = 'income' THEN transactions.amount ELSE 0 END), 0) AS income_total, " +
			"COUNT(CASE WHEN transactions.type = 'income' THEN 1 END) AS income_count, " +
			"COALESCE(SUM(CASE WHEN transactions.type = 'expense' THEN transactions.amount ELSE 0 END), 0) AS expense_total, " +
			"COUNT(CASE WHEN transactions.type = 'expense' THEN 1 END) AS expense_count, " +
			"MIN(transactions.date) AS first_used, " +
			"MAX(transactions.date) AS last_used").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &entity.TagStats{
		TransactionCount: row.Count,
		IncomeTotal:      row.IncomeTotal,
		IncomeCount:      row.IncomeCount,
		ExpenseTotal:     row.ExpenseTotal,
		ExpenseCount:     row.ExpenseCount,
		NetTotal:         row.IncomeTotal.Sub(row.ExpenseTotal),
		FirstUsed:        row.FirstUsed,
		LastUsed:         row.LastUsed,
	}, nil
}
