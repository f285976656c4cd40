// Package tag contains tag-related use cases.
package tag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// UpdateTagInput represents the input for tag update. Nil fields are left
// untouched.
type UpdateTagInput struct {
	Principal entity.Principal
	TagID     uint
	Name      *string
	Color     *string
}

// UpdateTagOutput represents the output of tag update.
type UpdateTagOutput struct {
	Tag *entity.Tag
}

// UpdateTagUseCase handles tag update logic.
type UpdateTagUseCase struct {
	tagRepo adapter.TagRepository
}

// NewUpdateTagUseCase creates a new UpdateTagUseCase instance.
func NewUpdateTagUseCase(tagRepo adapter.TagRepository) *UpdateTagUseCase {
	return &UpdateTagUseCase{tagRepo: tagRepo}
}

// Execute performs the tag update.
func (uc *UpdateTagUseCase) Execute(ctx context.Context, input UpdateTagInput) (*UpdateTagOutput, error) {
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

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewTagError(
				domainerror.ErrCodeMissingTagFields,
				"name cannot be empty",
				domainerror.ErrMissingTagFields,
			)
		}
		if !strings.EqualFold(name, existing.Name) {
			taken, err := uc.tagRepo.ExistsByName(ctx, existing.UserID, name, existing.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check tag name: %w", err)
			}
			if taken {
				return nil, domainerror.NewTagError(
					domainerror.ErrCodeTagNameTaken,
					"a tag with this name already exists",
					domainerror.ErrTagNameTaken,
				)
			}
		}
		existing.Name = name
	}

	if input.Color != nil {
		existing.Color = *input.Color
	}

	existing.UpdatedAt = time.Now().UTC()
	if err := uc.tagRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return &UpdateTagOutput{Tag: existing}, nil
}
