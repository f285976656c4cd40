package user

import (
	"context"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// ListUsersInput represents the input for listing users.
type ListUsersInput struct {
	Principal  entity.Principal
	Filter     adapter.UserFilter
	Pagination adapter.Pagination
}

// ListUsersOutput represents the output of listing users.
type ListUsersOutput struct {
	Result *adapter.UserListResult
}

// ListUsersUseCase handles the user directory listing. The repository
// applies the per-role visibility rule.
type ListUsersUseCase struct {
	userRepo adapter.UserRepository
}

// NewListUsersUseCase creates a new ListUsersUseCase instance.
func NewListUsersUseCase(userRepo adapter.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// Execute performs the user listing.
func (uc *ListUsersUseCase) Execute(ctx context.Context, input ListUsersInput) (*ListUsersOutput, error) {
	result, err := uc.userRepo.FindVisible(ctx, input.Principal, input.Filter, input.Pagination.Normalized())
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &ListUsersOutput{Result: result}, nil
}
