// Package tag contains tag-related use cases.
package tag

import (
	"context"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// ListTagsInput represents the input for listing tags.
type ListTagsInput struct {
	Principal    entity.Principal
	TargetUserID *uint
	Filter       adapter.TagFilter
	Pagination   adapter.Pagination
}

// ListTagsOutput represents the output of listing tags.
type ListTagsOutput struct {
	Result *adapter.TagListResult
}

// ListTagsUseCase handles the filtered, paginated tag listing.
type ListTagsUseCase struct {
	tagRepo adapter.TagRepository
}

// NewListTagsUseCase creates a new ListTagsUseCase instance.
func NewListTagsUseCase(tagRepo adapter.TagRepository) *ListTagsUseCase {
	return &ListTagsUseCase{tagRepo: tagRepo}
}

// Execute performs the tag listing.
func (uc *ListTagsUseCase) Execute(ctx context.Context, input ListTagsInput) (*ListTagsOutput, error) {
	pagination := input.Pagination.Normalized()

	scope, ok := input.Principal.ReadScope(input.TargetUserID)
	if !ok {
		return &ListTagsOutput{Result: &adapter.TagListResult{
			Tags:       []*entity.Tag{},
			Page:       pagination.Page,
			Limit:      pagination.Limit,
			TotalPages: 1,
		}}, nil
	}

	result, err := uc.tagRepo.FindByFilter(ctx, scope, input.Filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return &ListTagsOutput{Result: result}, nil
}
