package user

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

// UpdateUserInput represents the input for updating a user. Nil fields are
// left untouched. Role, DelegateOf and IsActive are admin-only.
type UpdateUserInput struct {
	Principal  entity.Principal
	UserID     uint
	Name       *string
	Email      *string
	Password   *string
	Role       *string
	DelegateOf *uint
	IsActive   *bool
}

// UpdateUserOutput represents the output of updating a user.
type UpdateUserOutput struct {
	User *entity.User
}

// UpdateUserUseCase handles profile updates. Everyone, viewers included,
// may edit their own profile; only admins may edit other accounts or the
// admin-only fields.
type UpdateUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewUpdateUserUseCase creates a new UpdateUserUseCase instance.
func NewUpdateUserUseCase(userRepo adapter.UserRepository, passwordService adapter.PasswordService) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute performs the user update.
func (uc *UpdateUserUseCase) Execute(ctx context.Context, input UpdateUserInput) (*UpdateUserOutput, error) {
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
	if !writableBy(input.Principal, target) {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeForbiddenWrite,
			"not allowed to modify this user",
			domainerror.ErrForbiddenUserWrite,
		)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeMissingFields,
				"name cannot be empty",
				nil,
			)
		}
		target.Name = name
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		exists, err := uc.userRepo.ExistsByEmail(ctx, email, target.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check email existence: %w", err)
		}
		if exists {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeEmailExists,
				"email already exists",
				domainerror.ErrEmailAlreadyExists,
			)
		}
		target.Email = email
	}

	if input.Password != nil {
		if err := uc.passwordService.ValidatePasswordStrength(*input.Password); err != nil {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeWeakPassword,
				"password does not meet minimum requirements",
				domainerror.ErrWeakPassword,
			)
		}
		hash, err := uc.passwordService.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		target.PasswordHash = hash
	}

	if input.Role != nil || input.DelegateOf != nil || input.IsActive != nil {
		if !input.Principal.IsAdmin() {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeForbiddenWrite,
				"role, delegation and active flag require admin role",
				domainerror.ErrForbiddenUserWrite,
			)
		}
		if err := uc.applyAdminFields(ctx, target, input); err != nil {
			return nil, err
		}
	}

	target.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &UpdateUserOutput{User: target}, nil
}

func (uc *UpdateUserUseCase) applyAdminFields(ctx context.Context, target *entity.User, input UpdateUserInput) error {
	if input.Role != nil {
		if !entity.ValidRole(*input.Role) {
			return domainerror.NewUserError(
				domainerror.ErrCodeInvalidRole,
				"role must be regular, admin or viewer",
				domainerror.ErrInvalidRole,
			)
		}
		target.Role = entity.Role(*input.Role)
	}

	if input.DelegateOf != nil {
		delegate, err := uc.userRepo.FindByID(ctx, *input.DelegateOf)
		if err != nil {
			return domainerror.NewUserError(
				domainerror.ErrCodeDelegateNotFound,
				"delegate user not found",
				domainerror.ErrDelegateNotFound,
			)
		}
		if delegate.Role == entity.RoleViewer {
			return domainerror.NewUserError(
				domainerror.ErrCodeDelegateViewer,
				"cannot delegate to a viewer account",
				domainerror.ErrDelegateNotAllowed,
			)
		}
		target.DelegateOf = input.DelegateOf
	}

	if target.Role == entity.RoleViewer {
		if target.DelegateOf == nil {
			return domainerror.NewUserError(
				domainerror.ErrCodeDelegateRequired,
				"viewer accounts require a delegate user",
				domainerror.ErrDelegateRequired,
			)
		}
	} else {
		target.DelegateOf = nil
	}

	if input.IsActive != nil {
		target.IsActive = *input.IsActive
	}
	return nil
}
