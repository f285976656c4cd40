package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// GetUserStatsInput represents the input for fetching a user's statistics.
type GetUserStatsInput struct {
	Principal entity.Principal
	UserID    uint
}

// GetUserStatsOutput represents the output of fetching a user's statistics.
type GetUserStatsOutput struct {
	User  *entity.User
	Stats *entity.UserStats
}

// GetUserStatsUseCase aggregates a visible user's financial activity.
type GetUserStatsUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetUserStatsUseCase creates a new GetUserStatsUseCase instance.
func NewGetUserStatsUseCase(userRepo adapter.UserRepository) *GetUserStatsUseCase {
	return &GetUserStatsUseCase{userRepo: userRepo}
}

// Execute performs the statistics lookup.
func (uc *GetUserStatsUseCase) Execute(ctx context.Context, input GetUserStatsInput) (*GetUserStatsOutput, error) {
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

	stats, err := uc.userRepo.GetStats(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user stats: %w", err)
	}

	return &GetUserStatsOutput{User: target, Stats: stats}, nil
}
