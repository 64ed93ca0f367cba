package services

import (
	"bloomshop/internal/models"
	"bloomshop/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// MessagePublisher publishes contact-message events for downstream consumers
// (notification workers). Implemented by pkg/rabbitmq.
type MessagePublisher interface {
	PublishMessageCreated(payload map[string]interface{}) error
}

// MessageService handles contact form submissions and their admin surface.
type MessageService struct {
	repo      repositories.MessageRepository
	publisher MessagePublisher
	validate  *validator.Validate
}

// NewMessageService creates a new MessageService. publisher may be nil, in
// which case events are skipped.
func NewMessageService(repo repositories.MessageRepository, publisher MessagePublisher) *MessageService {
	return &MessageService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// CreateMessage validates and stores a contact form submission, then publishes
// a "message.created" event. Publishing is best-effort: the submission is
// already stored, so a broker failure only logs a warning.
func (s *MessageService) CreateMessage(message *models.Message) error {
	if err := validateStruct(s.validate, message); err != nil {
		return err
	}

	if err := s.repo.Create(message); err != nil {
		return err
	}

	if s.publisher == nil {
		log.Debug().Msg("message publisher not configured, skipping event")
		return nil
	}
	payload := map[string]interface{}{
		"event":      "message.created",
		"message_id": message.ID,
		"name":       message.Name,
		"email":      message.Email,
		"subject":    message.Subject,
	}
	if err := s.publisher.PublishMessageCreated(payload); err != nil {
		log.Warn().Err(err).Str("message_id", message.ID).Msg("failed to publish message created event")
	}
	return nil
}

// GetAllMessages retrieves all messages, newest first.
func (s *MessageService) GetAllMessages() ([]models.Message, error) {
	return s.repo.GetAll()
}

// UnreadCount returns the number of messages not yet marked as read.
func (s *MessageService) UnreadCount() (int64, error) {
	return s.repo.CountUnread()
}

// MarkAsRead flags a message as read and returns the updated message.
func (s *MessageService) MarkAsRead(id string) (*models.Message, error) {
	message, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	message.IsRead = true
	if err := s.repo.Update(message); err != nil {
		return nil, err
	}
	return message, nil
}

// DeleteMessage deletes a message by its ID.
func (s *MessageService) DeleteMessage(id string) error {
	return s.repo.Delete(id)
}
