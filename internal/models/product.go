package models

import "gorm.io/gorm"

// CategoryCapacity is the maximum number of products one category may hold.
const CategoryCapacity = 50

// Product represents a flower product in the store.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string  `json:"description" gorm:"type:text" validate:"required,min=20,max=500"`
	Price       float64 `json:"price" validate:"required,gte=1,lte=999.99"`
	Category    string  `json:"category" gorm:"index;type:varchar(100)" validate:"required,max=100"`
	ImageURL    string  `json:"image_url" gorm:"type:varchar(250)" validate:"required,min=10,max=250"`
	Stock       int     `json:"stock" validate:"gte=0,lte=100"`
	gorm.Model          // CreatedAt, UpdatedAt, DeletedAt
}
