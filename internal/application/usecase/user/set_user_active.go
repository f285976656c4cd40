package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// SetUserActiveInput represents the input for activating or deactivating an
// account.
type SetUserActiveInput struct {
	Principal entity.Principal
	UserID    uint
	Active    bool
}

// SetUserActiveOutput represents the output of flipping the active flag.
type SetUserActiveOutput struct {
	User *entity.User
}

// SetUserActiveUseCase flips the is_active flag. Admin only; an admin may
// not deactivate their own account.
type SetUserActiveUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewSetUserActiveUseCase creates a new SetUserActiveUseCase instance.
func NewSetUserActiveUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *SetUserActiveUseCase {
	return &SetUserActiveUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute flips the active flag.
func (uc *SetUserActiveUseCase) Execute(ctx context.Context, input SetUserActiveInput) (*SetUserActiveOutput, error) {
	if !input.Principal.IsAdmin() {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeForbiddenWrite,
			"activation requires admin role",
			domainerror.ErrForbiddenUserWrite,
		)
	}
	if !input.Active && input.UserID == input.Principal.UserID {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeForbiddenWrite,
			"cannot deactivate your own account",
			domainerror.ErrForbiddenUserWrite,
		)
	}

	target, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	target.IsActive = input.Active
	target.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if !input.Active {
		// A disabled account loses its sessions immediately.
		_ = uc.tokenService.InvalidateAllUserTokens(ctx, target.ID)
	}

	return &SetUserActiveOutput{User: target}, nil
}
