// Package tag contains tag-related use cases.
package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// CreateTagInput represents the input for tag creation. TargetUserID is
// honored for admins only.
type CreateTagInput struct {
	Principal    entity.Principal
	TargetUserID *uint
	Name         string
	Color        string
}

// CreateTagOutput represents the output of tag creation.
type CreateTagOutput struct {
	Tag *entity.Tag
}

// CreateTagUseCase handles tag creation logic.
type CreateTagUseCase struct {
	tagRepo adapter.TagRepository
}

// NewCreateTagUseCase creates a new CreateTagUseCase instance.
func NewCreateTagUseCase(tagRepo adapter.TagRepository) *CreateTagUseCase {
	return &CreateTagUseCase{tagRepo: tagRepo}
}

// Execute performs the tag creation.
func (uc *CreateTagUseCase) Execute(ctx context.Context, input CreateTagInput) (*CreateTagOutput, error) {
	if !input.Principal.CanWrite() {
		return nil, domainerror.ErrReadOnlyRole
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewTagError(
			domainerror.ErrCodeMissingTagFields,
			"name is required",
			domainerror.ErrMissingTagFields,
		)
	}

	ownerID := input.Principal.WriteOwner(input.TargetUserID)

	taken, err := uc.tagRepo.ExistsByName(ctx, ownerID, name, 0)
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

	color := input.Color
	if color == "" {
		color = entity.DefaultTagColor
	}

	created := entity.NewTag(ownerID, name, color)
	if err := uc.tagRepo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return &CreateTagOutput{Tag: created}, nil
}

// tagNotFound is the shared absent-or-out-of-scope error.
func tagNotFound() error {
	return domainerror.NewTagError(
		domainerror.ErrCodeTagNotFound,
		"tag not found",
		domainerror.ErrTagNotFound,
	)
}
