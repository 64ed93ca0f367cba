package repositories

import (
	"errors"

	"bloomshop/internal/apperrors"
	"bloomshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMessageRepository is a GORM implementation of MessageRepository.
type GORMMessageRepository struct {
	db *gorm.DB
}

// NewGORMMessageRepository creates a new instance of GORMMessageRepository.
func NewGORMMessageRepository(db *gorm.DB) *GORMMessageRepository {
	return &GORMMessageRepository{
		db: db,
	}
}

// GetAll retrieves all messages, newest first.
func (r *GORMMessageRepository) GetAll() ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.Order("created_at desc").Find(&messages).Error; err != nil {
		return nil, &apperrors.StoreError{Op: "list messages", Cause: err}
	}
	return messages, nil
}

// GetByID retrieves a single message by its ID.
func (r *GORMMessageRepository) GetByID(id string) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("message", id)
		}
		return nil, &apperrors.StoreError{Op: "get message", Cause: err}
	}
	return &message, nil
}

// Create stores a new contact message.
func (r *GORMMessageRepository) Create(message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if err := r.db.Create(message).Error; err != nil {
		return &apperrors.StoreError{Op: "create message", Cause: err}
	}
	return nil
}

// Update saves all fields of an existing message.
func (r *GORMMessageRepository) Update(message *models.Message) error {
	res := r.db.Save(message)
	if res.Error != nil {
		return &apperrors.StoreError{Op: "update message", Cause: res.Error}
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("message", message.ID)
	}
	return nil
}

// Delete deletes a message by its ID.
func (r *GORMMessageRepository) Delete(id string) error {
	res := r.db.Delete(&models.Message{}, "id = ?", id)
	if res.Error != nil {
		return &apperrors.StoreError{Op: "delete message", Cause: res.Error}
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("message", id)
	}
	return nil
}

// CountUnread counts messages not yet marked as read.
func (r *GORMMessageRepository) CountUnread() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Message{}).Where("is_read = ?", false).Count(&count).Error; err != nil {
		return 0, &apperrors.StoreError{Op: "count unread messages", Cause: err}
	}
	return count, nil
}
