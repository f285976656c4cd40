package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// DeleteUserInput represents the input for deleting a user account.
type DeleteUserInput struct {
	Principal entity.Principal
	UserID    uint
}

// DeleteUserOutput represents the output of deleting a user account.
type DeleteUserOutput struct {
	Dependents *entity.UserDependents
}

// DeleteUserUseCase handles hard account deletion. The delete is refused
// while the account still owns transactions, categories or goals, or while
// viewers delegate to it; the blocker counts are reported back. A user's
// tags are necessarily unused at that point and go with the account.
type DeleteUserUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewDeleteUserUseCase creates a new DeleteUserUseCase instance.
func NewDeleteUserUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute performs the account deletion.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, input DeleteUserInput) (*DeleteUserOutput, error) {
	target, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !visibleTo(input.Principal, target) {
		return nil, notFound()
	}
	if !writableBy(input.Principal, target) {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeForbiddenWrite,
			"not allowed to delete this user",
			domainerror.ErrForbiddenUserWrite,
		)
	}

	dependents, err := uc.userRepo.CountDependents(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count dependents: %w", err)
	}
	if dependents.Any() {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeUserHasDependents,
			fmt.Sprintf(
				"user cannot be deleted: %d transactions, %d categories, %d goals, %d delegated viewers",
				dependents.Transactions, dependents.Categories, dependents.Goals, dependents.Delegates,
			),
			domainerror.ErrUserHasDependents,
		)
	}

	if err := uc.userRepo.Delete(ctx, target.ID); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	// Outstanding sessions die with the account.
	_ = uc.tokenService.InvalidateAllUserTokens(ctx, target.ID)

	return &DeleteUserOutput{Dependents: dependents}, nil
}
