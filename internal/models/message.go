package models

import "gorm.io/gorm"

// Message is a contact form submission.
type Message struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"type:varchar(100)" validate:"required,max=100"`
	Email      string `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Phone      string `json:"phone" gorm:"type:varchar(30)" validate:"omitempty,max=30"`
	Subject    string `json:"subject" gorm:"type:varchar(50)" validate:"required,min=3,max=50"`
	Body       string `json:"message" gorm:"column:message;type:text" validate:"required,min=10,max=500"`
	IsRead     bool   `json:"is_read" gorm:"default:false"`
	gorm.Model        // CreatedAt, UpdatedAt, DeletedAt
}
