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

// DeleteTagInput represents the input for tag deletion.
type DeleteTagInput struct {
	Principal entity.Principal
	TagID     uint
}

// DeleteTagOutput represents the output of tag deletion.
type DeleteTagOutput struct {
	Deleted bool
}

// DeleteTagUseCase handles tag deletion. Deletion is refused while
// transactions still carry the tag.
type DeleteTagUseCase struct {
	tagRepo adapter.TagRepository
}

// NewDeleteTagUseCase creates a new DeleteTagUseCase instance.
func NewDeleteTagUseCase(tagRepo adapter.TagRepository) *DeleteTagUseCase {
	return &DeleteTagUseCase{tagRepo: tagRepo}
}

// Execute performs the tag deletion.
func (uc *DeleteTagUseCase) Execute(ctx context.Context, input DeleteTagInput) (*DeleteTagOutput, error) {
	if !input.Principal.CanWrite() {
		return nil, domainerror.ErrReadOnlyRole
	}

	scope, _ := input.Principal.ReadScope(nil)
	existing, err := uc.tagRepo.FindByID(ctx, input.TagID, scope)
	if err != nil {
		if errors.Is(err, domainerror.ErrTagNotFound) {
			return nil, tagNotFound()
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}

	count, err := uc.tagRepo.CountTransactions(ctx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tag usage: %w", err)
	}
	if count > 0 {
		return nil, domainerror.NewTagError(
			domainerror.ErrCodeTagInUse,
			fmt.Sprintf("tag is used by %d transactions", count),
			domainerror.ErrTagInUse,
		)
	}

	if err := uc.tagRepo.Delete(ctx, existing.ID); err != nil {
		return nil, fmt.Errorf("failed to delete tag: %w", err)
	}
	return &DeleteTagOutput{Deleted: true}, nil
}
