package models

import "gorm.io/gorm"

// User is materialized from the external identity provider's claims.
// Role gates the admin surface.
type User struct {
	gorm.Model
	Email string `json:"email" gorm:"unique;not null"`
	Name  string `json:"name" gorm:"default:''"`
	Role  string `json:"role" gorm:"default:'USER'"` // USER, ADMIN
}
