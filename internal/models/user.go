package models

import "gorm.io/gorm"

// Role values a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a customer or administrator of the shop.
type User struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FirstName   string `json:"first_name" gorm:"type:varchar(50)" validate:"required,min=4,max=50"`
	LastName    string `json:"last_name" gorm:"type:varchar(50)" validate:"required,min=4,max=50"`
	Username    string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email       string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PhoneNumber string `json:"phone_number" gorm:"type:varchar(30)" validate:"required,max=30"`
	Password    string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash after registration
	Role        string `json:"role" gorm:"type:varchar(10);default:user" validate:"omitempty,oneof=user admin"`
	gorm.Model         // CreatedAt, UpdatedAt, DeletedAt
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
