// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update. Nil
// fields are left untouched; a non-nil TagIDs replaces the tag set. The
// owner never changes.
type UpdateTransactionInput struct {
	Principal     entity.Principal
	TransactionID uint
	CategoryID    *uint
	Type          *string
	Amount        *decimal.Decimal
	Description   *string
	Date          *time.Time
	Notes         *string
	TagIDs        []uint
	ReplaceTags   bool
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	tagRepo         adapter.TagRepository
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	tagRepo adapter.TagRepository,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		tagRepo:         tagRepo,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	if !input.Principal.CanWrite() {
		return nil, domainerror.ErrReadOnlyRole
	}

	scope, _ := input.Principal.ReadScope(nil)
	existing, err := uc.transactionRepo.FindByID(ctx, input.TransactionID, scope)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, transactionNotFound()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidAmount,
				"amount must be greater than zero",
				domainerror.ErrInvalidAmount,
			)
		}
		existing.Amount = *input.Amount
	}

	if input.Type != nil {
		if !entity.ValidTransactionType(*input.Type) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionType,
				"type must be 'expense' or 'income'",
				domainerror.ErrInvalidTransactionType,
			)
		}
		existing.Type = entity.TransactionType(*input.Type)
	}

	if input.CategoryID != nil {
		if _, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID, entity.ScopeFor(existing.UserID)); err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return nil, domainerror.NewTransactionError(
					domainerror.ErrCodeTxnCategoryNotFound,
					"category not found for this user",
					domainerror.ErrTransactionCategoryNotFound,
				)
			}
			return nil, fmt.Errorf("failed to find category: %w", err)
		}
		existing.CategoryID = *input.CategoryID
	}

	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Date != nil {
		existing.Date = *input.Date
	}
	if input.Notes != nil {
		existing.Notes = *input.Notes
	}

	var tagIDs []uint
	if input.ReplaceTags {
		tagIDs, err = filterOwnedTagIDs(ctx, uc.tagRepo, existing.UserID, input.TagIDs)
		if err != nil {
			return nil, err
		}
	}

	existing.UpdatedAt = time.Now().UTC()
	if err := uc.transactionRepo.UpdateWithTags(ctx, existing, tagIDs, input.ReplaceTags); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	loaded, err := uc.transactionRepo.FindByID(ctx, existing.ID, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated transaction: %w", err)
	}
	return &UpdateTransactionOutput{Transaction: loaded}, nil
}
