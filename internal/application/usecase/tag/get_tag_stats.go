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

// GetTagStatsInput represents the input for the tag usage aggregation.
type GetTagStatsInput struct {
	Principal entity.Principal
	TagID     uint
}

// GetTagStatsOutput represents the output of the tag usage aggregation.
type GetTagStatsOutput struct {
	Tag   *entity.Tag
	Stats *entity.TagStats
}

// GetTagStatsUseCase aggregates the transactions carrying one tag.
type GetTagStatsUseCase struct {
	tagRepo adapter.TagRepository
}

// NewGetTagStatsUseCase creates a new GetTagStatsUseCase instance.
func NewGetTagStatsUseCase(tagRepo adapter.TagRepository) *GetTagStatsUseCase {
	return &GetTagStatsUseCase{tagRepo: tagRepo}
}

// Execute performs the aggregation.
func (uc *GetTagStatsUseCase) Execute(ctx context.Context, input GetTagStatsInput) (*GetTagStatsOutput, error) {
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

	stats, err := uc.tagRepo.GetStats(ctx, tag.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tag usage: %w", err)
	}
	return &GetTagStatsOutput{Tag: tag, Stats: stats}, nil
}
