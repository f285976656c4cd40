// Package tag contains tag-related use cases.
package tag

import (
	"context"
	"errors"
	"fmt"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// GetTagInput represents the input for fetching one tag.
type GetTagInput struct {
	Principal entity.Principal
	TagID     uint
}

// GetTagOutput represents the output of fetching one tag.
type GetTagOutput struct {
	Tag *entity.Tag
}

// GetTagUseCase handles scoped single-tag lookup.
type GetTagUseCase struct {
	tagRepo adapter.TagRepository
}

// NewGetTagUseCase creates a new GetTagUseCase instance.
func NewGetTagUseCase(tagRepo adapter.TagRepository) *GetTagUseCase {
	return &GetTagUseCase{tagRepo: tagRepo}
}

// Execute performs the tag lookup.
func (uc *GetTagUseCase) Execute(ctx context.Context, input GetTagInput) (*GetTagOutput, error) {
	scope, ok := input.Principal.ReadScope(nil)
	if !ok {
		return nil, tagNotFound()
	}

	tag, err := uc.tagRepo.FindByID(ctx, input.TagID, scope)
	if err != nil {
		if errors.Is(err, domainerror.ErrTagNotFound) {
			return nil, tagNotFound()
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return &GetTagOutput{Tag: tag}, nil
}
