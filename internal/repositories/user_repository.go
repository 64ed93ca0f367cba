package repositories

import "bloomshop/internal/models"

// UserRepository defines the interface for user data access.
//
// Transaction runs fn against a transaction-bound repository so that guard
// count queries and the subsequent write commit or roll back as one unit.
type UserRepository interface {
	GetAll() ([]models.User, error)
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id string) error
	CountByRole(role string) (int64, error)
	Transaction(fn func(UserRepository) error) error
}
