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

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// CreateWithTags creates a transaction and its tag links in a single
// database transaction.
func (r *transactionRepository) CreateWithTags(ctx context.Context, transaction *entity.Transaction, tagIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transactionModel := model.TransactionFromEntity(transaction)
		if err := tx.Create(transactionModel).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			err := tx.Exec(
				"INSERT INTO transaction_tags (transaction_id, tag_id) VALUES (?, ?)",
				transactionModel.ID, tagID,
			).Error
			if err != nil {
				return err
			}
		}
		transaction.ID = transactionModel.ID
		return nil
	})
}

// FindByID retrieves a transaction with its category and tags by ID within
// the given scope.
func (r *transactionRepository) FindByID(ctx context.Context, id uint, scope entity.AccessScope) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	query := applyScope(r.db.WithContext(ctx), scope)
	result := query.
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id ASC") }).
		Where("id = ?", id).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// applyTransactionFilter applies the shared list/aggregate filters. The
// scope and every column reference are qualified so the tag join stays
// unambiguous.
func applyTransactionFilter(query *gorm.DB, scope entity.AccessScope, filter adapter.TransactionFilter) *gorm.DB {
	query = applyScopeColumn(query, scope, "transactions.user_id")

	if filter.CategoryID != nil {
		query = query.Where("transactions.category_id = ?", *filter.CategoryID)
	}
	if filter.TagID != nil {
		query = query.
			Joins("JOIN transaction_tags ON transaction_tags.transaction_id = transactions.id").
			Where("transaction_tags.tag_id = ?", *filter.TagID)
	}
	if filter.Type != nil {
		query = query.Where("transactions.type = ?", string(*filter.Type))
	}
	if filter.StartDate != nil {
		query = query.Where("transactions.date >= ?", filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("transactions.date <= ?", filter.EndDate)
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(transactions.description) LIKE ?", searchPattern)
	}
	return query
}

// FindByFilter retrieves transactions within the scope, filtered and
// paginated, with categories and tags loaded.
func (r *transactionRepository) FindByFilter(ctx context.Context, scope entity.AccessScope, filter adapter.TransactionFilter, pagination adapter.Pagination) (*adapter.TransactionListResult, error) {
	query := applyTransactionFilter(r.db.WithContext(ctx).Model(&model.TransactionModel{}), scope, filter)

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var transactionModels []model.TransactionModel
	result := query.
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id ASC") }).
		Order("transactions.date DESC, transactions.id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}

	return &adapter.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   adapter.TotalPages(total, pagination.Limit),
	}, nil
}

// UpdateWithTags updates a transaction and, when replaceTags is set,
// replaces its tag links, all in a single database transaction.
func (r *transactionRepository) UpdateWithTags(ctx context.Context, transaction *entity.Transaction, tagIDs []uint, replaceTags bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transactionModel := model.TransactionFromEntity(transaction)
		if err := tx.Save(transactionModel).Error; err != nil {
			return err
		}
		if !replaceTags {
			return nil
		}
		if err := tx.Exec("DELETE FROM transaction_tags WHERE transaction_id = ?", transaction.ID).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			err := tx.Exec(
				"INSERT INTO transaction_tags (transaction_id, tag_id) VALUES (?, ?)",
				transaction.ID, tagID,
			).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a transaction together with its tag links.
func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM transaction_tags WHERE transaction_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.TransactionModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTransactionNotFound
		}
		return nil
	})
}

// GetSummary aggregates income and expense totals within the scope.
func (r *transactionRepository) GetSummary(ctx context.Context, scope entity.AccessScope, filter adapter.TransactionFilter) (*entity.TransactionSummary, error) {
	query := applyTransactionFilter(r.db.WithContext(ctx).Model(&model.TransactionModel{}), scope, filter)

	var row struct {
		IncomeTotal  decimal.Decimal
		IncomeCount  int64
		ExpenseTotal decimal.Decimal
		ExpenseCount int64
	}
	err := query.
		Select("COALESCE(SUM(CASE WHEN transactions.type = 'income' THEN transactions.amount ELSE 0 END), 0) AS income_total, " +
			"COUNT(CASE WHEN transactions.type = 'income' THEN 1 END) AS income_count, " +
			"COALESCE(SUM(CASE WHEN transactions.type = 'expense' THEN transactions.amount ELSE 0 END), 0) AS expense_total, " +
			"COUNT(CASE WHEN transactions.type = 'expense' THEN 1 END) AS expense_count").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &entity.TransactionSummary{
		IncomeTotal:  row.IncomeTotal,
		IncomeCount:  row.IncomeCount,
		ExpenseTotal: row.ExpenseTotal,
		ExpenseCount: row.ExpenseCount,
		Balance:      row.IncomeTotal.Sub(row.ExpenseTotal),
	}, nil
}

// GetCategoryBreakdown aggregates totals per category within the scope.
func (r *transactionRepository) GetCategoryBreakdown(ctx context.Context, scope entity.AccessScope, filter adapter.TransactionFilter) ([]*entity.CategoryBreakdown, error) {
	query := applyTransactionFilter(r.db.WithContext(ctx).Model(&model.TransactionModel{}), scope, filter)

	var rows []struct {
		CategoryID    uint
		CategoryName  string
		CategoryColor string
		Type          string
		Total         decimal.Decimal
		Count         int64
	}
	err := query.
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Select("transactions.category_id AS category_id, categories.name AS category_name, categories.color AS category_color, transactions.type AS type, " +
			"COALESCE(SUM(transactions.amount), 0) AS total, COUNT(transactions.id) AS count").
		Group("transactions.category_id, categories.name, categories.color, transactions.type").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	breakdown := make([]*entity.CategoryBreakdown, len(rows))
	for i, row := range rows {
		breakdown[i] = &entity.CategoryBreakdown{
			CategoryID:    row.CategoryID,
			CategoryName:  row.CategoryName,
			CategoryColor: row.CategoryColor,
			Type:          entity.TransactionType(row.Type),
			Total:         row.Total,
			Count:         row.Count,
		}
	}
	return breakdown, nil
}
