package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// GetUserInput represents the input for fetching a single user.
type GetUserInput struct {
	Principal entity.Principal
	UserID    uint
}

// GetUserOutput represents the output of fetching a single user.
type GetUserOutput struct {
	User *entity.User
}

// GetUserUseCase handles single-user lookup under the visibility rule.
type GetUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetUserUseCase creates a new GetUserUseCase instance.
func NewGetUserUseCase(userRepo adapter.UserRepository) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo}
}

// Execute performs the user lookup.
func (uc *GetUserUseCase) Execute(ctx context.Context, input GetUserInput) (*GetUserOutput, error) {
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
	return &GetUserOutput{User: target}, nil
}

func notFound() error {
	return domainerror.NewUserError(
		domainerror.ErrCodeUserNotFound,
		"user not found",
		domainerror.ErrUserNotFound,
	)
}
