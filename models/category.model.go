package models

import "gorm.io/gorm"

// Category groups courses; name is a natural key.
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
}
