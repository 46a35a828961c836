package models

import "gorm.io/gorm"

// Purchase records a user's enrollment in a course. The composite unique
// index is what rejects a re-purchase; concurrent attempts race on the
// insert and the loser observes a duplicated-key error.
type Purchase struct {
	gorm.Model
	UserID        uint    `json:"user_id" gorm:"uniqueIndex:idx_purchase_user_course;not null"`
	CourseID      uint    `json:"course_id" gorm:"uniqueIndex:idx_purchase_user_course;not null"`
	ReceiptNumber string  `json:"receipt_number" gorm:"unique"`
	User          *User   `json:"user,omitempty"`
	Course        *Course `json:"course,omitempty"`
}
