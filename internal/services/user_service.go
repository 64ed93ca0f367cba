package services

import (
	"errors"
	"fmt"

	"bloomshop/internal/apperrors"
	"bloomshop/internal/guard"
	"bloomshop/internal/models"
	"bloomshop/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// UpdateUserInput carries the fields an administrator may change on a user.
type UpdateUserInput struct {
	FirstName   string `json:"first_name" validate:"required,min=4,max=50"`
	LastName    string `json:"last_name" validate:"required,min=4,max=50"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,max=30"`
	Username    string `json:"username" validate:"required,min=3,max=100"`
	Role        string `json:"role" validate:"required,oneof=user admin"`
}

// UpdateProfileInput carries the fields a user may change on their own
// profile. All fields are optional; empty ones are left untouched.
type UpdateProfileInput struct {
	FirstName   string `json:"first_name" validate:"omitempty,min=4,max=50"`
	LastName    string `json:"last_name" validate:"omitempty,min=4,max=50"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=30"`
}

// UserService handles the admin-facing user management surface and profile
// updates. Role changes and deletions are checked against the admin-count
// bounds inside the same transaction as the write.
type UserService struct {
	userRepo repositories.UserRepository
	validate *validator.Validate
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		validate: validator.New(),
	}
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateUser applies an admin edit to a user. A role change is vetted by the
// role guard: promotions respect the admin cap, demotions never remove the
// last administrator.
func (s *UserService) UpdateUser(id string, input UpdateUserInput) (*models.User, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	var updated *models.User
	err := s.userRepo.Transaction(func(txRepo repositories.UserRepository) error {
		user, err := txRepo.GetByID(id)
		if err != nil {
			return err
		}

		// A changed username or email must stay unique.
		if input.Username != user.Username {
			existing, err := txRepo.GetByUsername(input.Username)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			if existing != nil {
				return &apperrors.ConflictError{Message: fmt.Sprintf("username '%s' already taken", input.Username)}
			}
		}
		if input.Email != user.Email {
			existing, err := txRepo.GetByEmail(input.Email)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			if existing != nil {
				return &apperrors.ConflictError{Message: fmt.Sprintf("email '%s' already registered", input.Email)}
			}
		}

		verdict, err := guard.NewRoleGuard(txRepo).CanChangeRole(user.Role, input.Role)
		if err != nil {
			return err
		}
		if !verdict.Allowed {
			return &apperrors.PolicyDeniedError{Reason: verdict.Reason}
		}

		user.FirstName = input.FirstName
		user.LastName = input.LastName
		user.Email = input.Email
		user.PhoneNumber = input.PhoneNumber
		user.Username = input.Username
		user.Role = input.Role

		if err := txRepo.Update(user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes a user. Self-deletion is refused, and an admin can only
// be deleted while at least one other admin remains.
func (s *UserService) DeleteUser(id, actingUserID string) error {
	return s.userRepo.Transaction(func(txRepo repositories.UserRepository) error {
		user, err := txRepo.GetByID(id)
		if err != nil {
			return err
		}

		verdict, err := guard.NewRoleGuard(txRepo).CanDeleteUser(user.Role, user.ID, actingUserID)
		if err != nil {
			return err
		}
		if !verdict.Allowed {
			return &apperrors.PolicyDeniedError{Reason: verdict.Reason}
		}

		return txRepo.Delete(id)
	})
}

// UpdateProfile lets a user change their own contact details. Roles are not
// touched here, so no guard check is needed.
func (s *UserService) UpdateProfile(userID string, input UpdateProfileInput) (*models.User, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = input.PhoneNumber
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
