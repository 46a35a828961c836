package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog records destructive admin actions, in particular cascade
// deletes, so removed purchases and progress remain accounted for.
type AuditLog struct {
	gorm.Model
	ActorID  uint           `json:"actor_id" gorm:"index;not null"`
	Action   string         `json:"action" gorm:"not null"` // e.g. COURSE_DELETE
	Entity   string         `json:"entity" gorm:"not null"`
	EntityID uint           `json:"entity_id" gorm:"index;not null"`
	Payload  datatypes.JSON `json:"payload"`
}
