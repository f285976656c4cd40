// Package user contains user-directory use cases.
package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

// CreateUserInput represents the input for user creation by an existing
// account. Public registration goes through the auth package instead.
type CreateUserInput struct {
	Principal  entity.Principal
	Name       string
	Email      string
	Password   string
	Role       string
	DelegateOf *uint
}

// CreateUserOutput represents the output of user creation.
type CreateUserOutput struct {
	User *entity.User
}

// CreateUserUseCase handles user creation. Admins may create any role;
// regular users may only create viewers delegated to themselves; viewers
// may not create accounts at all.
type CreateUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewCreateUserUseCase creates a new CreateUserUseCase instance.
func NewCreateUserUseCase(userRepo adapter.UserRepository, passwordService adapter.PasswordService) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute performs the user creation.
func (uc *CreateUserUseCase) Execute(ctx context.Context, input CreateUserInput) (*CreateUserOutput, error) {
	if !input.Principal.CanWrite() {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeReadOnlyRole,
			"viewer accounts are read-only",
			domainerror.ErrReadOnlyRole,
		)
	}

	role := entity.Role(input.Role)
	if input.Role == "" {
		role = entity.RoleRegular
	}
	if !entity.ValidRole(string(role)) {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeInvalidRole,
			"role must be regular, admin or viewer",
			domainerror.ErrInvalidRole,
		)
	}

	delegateOf := input.DelegateOf
	if !input.Principal.IsAdmin() {
		// Regular users may only add viewers that read their own data.
		if role != entity.RoleViewer {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeForbiddenWrite,
				"only viewer accounts can be created by non-admin users",
				domainerror.ErrForbiddenUserWrite,
			)
		}
		self := input.Principal.UserID
		delegateOf = &self
	}

	if role == entity.RoleViewer {
		if delegateOf == nil {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeDelegateRequired,
				"viewer accounts require a delegate user",
				domainerror.ErrDelegateRequired,
			)
		}
		delegate, err := uc.userRepo.FindByID(ctx, *delegateOf)
		if err != nil {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeDelegateNotFound,
				"delegate user not found",
				domainerror.ErrDelegateNotFound,
			)
		}
		if delegate.Role == entity.RoleViewer {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeDelegateViewer,
				"cannot delegate to a viewer account",
				domainerror.ErrDelegateNotAllowed,
			)
		}
	} else {
		// delegate_of is meaningful on viewers only.
		delegateOf = nil
	}

	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"name, email and password are required",
			nil,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email, 0)
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

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created := entity.NewUser(name, email, passwordHash, role)
	created.DelegateOf = delegateOf

	if err := uc.userRepo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &CreateUserOutput{User: created}, nil
}
