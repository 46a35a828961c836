package controllers

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lms/models"
)

// Controller is the admin back-office surface. Role gating happens in the
// router middleware; handlers only need the caller id for the audit trail.
type Controller struct {
	Db *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{Db: db}
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

// audit records a destructive action inside the same transaction that
// performs it, so the log and the deletion commit or roll back together.
func audit(tx *gorm.DB, actorID uint, action, entity string, entityID uint, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return tx.Create(&models.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Payload:  datatypes.JSON(raw),
	}).Error
}
