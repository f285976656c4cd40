// Package tag contains tag-related use cases.
package tag

import (
	"context"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
)

// GetPopularTagsInput represents the input for the ?popular=true listing.
type GetPopularTagsInput struct {
	Principal    entity.Principal
	TargetUserID *uint
	Limit        int
}

// GetPopularTagsOutput represents the output of the popular-tag listing.
type GetPopularTagsOutput struct {
	Tags []*entity.TagWithCount
}

// GetPopularTagsUseCase lists tags ordered by usage count descending.
type GetPopularTagsUseCase struct {
	tagRepo adapter.TagRepository
}

// NewGetPopularTagsUseCase creates a new GetPopularTagsUseCase instance.
func NewGetPopularTagsUseCase(tagRepo adapter.TagRepository) *GetPopularTagsUseCase {
	return &GetPopularTagsUseCase{tagRepo: tagRepo}
}

// Execute performs the popular-tag lookup.
func (uc *GetPopularTagsUseCase) Execute(ctx context.Context, input GetPopularTagsInput) (*GetPopularTagsOutput, error) {
	scope, ok := input.Principal.ReadScope(input.TargetUserID)
	if !ok {
		return &GetPopularTagsOutput{Tags: []*entity.TagWithCount{}}, nil
	}

	limit := input.Limit
	if limit <= 0 || limit > adapter.MaxLimit {
		limit = adapter.DefaultLimit
	}

	tags, err := uc.tagRepo.FindPopular(ctx, scope, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular tags: %w", err)
	}
	return &GetPopularTagsOutput{Tags: tags}, nil
}
