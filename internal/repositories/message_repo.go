package repositories

import "bloomshop/internal/models"

// MessageRepository defines the interface for contact message data access.
type MessageRepository interface {
	GetAll() ([]models.Message, error)
	GetByID(id string) (*models.Message, error)
	Create(message *models.Message) error
	Update(message *models.Message) error
	Delete(id string) error
	CountUnread() (int64, error)
}
