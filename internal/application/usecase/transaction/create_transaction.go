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

// CreateTransactionInput represents the input for transaction creation.
// TargetUserID is honored for admins only. Tag ids outside the owner's tag
// set are silently dropped.
type CreateTransactionInput struct {
	Principal    entity.Principal
	TargetUserID *uint
	CategoryID   uint
	Type         string
	Amount       decimal.Decimal
	Description  string
	Date         time.Time
	Notes        string
	TagIDs       []uint
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	tagRepo         adapter.TagRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	tagRepo adapter.TagRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		tagRepo:         tagRepo,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if !input.Principal.CanWrite() {
		return nil, domainerror.ErrReadOnlyRole
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}
	if !entity.ValidTransactionType(input.Type) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if input.CategoryID == 0 || input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTxnFields,
			"amount, type, category_id and date are required",
			domainerror.ErrMissingTransactionFields,
		)
	}

	ownerID := input.Principal.WriteOwner(input.TargetUserID)

	// The category must belong to the resolved owner.
	if _, err := uc.categoryRepo.FindByID(ctx, input.CategoryID, entity.ScopeFor(ownerID)); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found for this user",
				domainerror.ErrTransactionCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	tagIDs, err := uc.ownedTagIDs(ctx, ownerID, input.TagIDs)
	if err != nil {
		return nil, err
	}

	created := entity.NewTransaction(
		ownerID,
		input.CategoryID,
		entity.TransactionType(input.Type),
		input.Amount,
		input.Description,
		input.Date,
		input.Notes,
	)
	if err := uc.transactionRepo.CreateWithTags(ctx, created, tagIDs); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	// Reload with category and tags attached.
	loaded, err := uc.transactionRepo.FindByID(ctx, created.ID, entity.ScopeFor(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to load created transaction: %w", err)
	}

	return &CreateTransactionOutput{Transaction: loaded}, nil
}

// ownedTagIDs filters the requested tag ids down to the owner's tag set.
func (uc *CreateTransactionUseCase) ownedTagIDs(ctx context.Context, ownerID uint, ids []uint) ([]uint, error) {
	return filterOwnedTagIDs(ctx, uc.tagRepo, ownerID, ids)
}

func filterOwnedTagIDs(ctx context.Context, tagRepo adapter.TagRepository, ownerID uint, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	tags, err := tagRepo.FindOwnedByIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}
	owned := make([]uint, len(tags))
	for i, tag := range tags {
		owned[i] = tag.ID
	}
	return owned, nil
}
