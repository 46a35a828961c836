package models

import "gorm.io/gorm"

// UserProgress holds exactly one completion flag per (user, lesson) pair.
// Toggling mutates the existing row; rows are never deleted outside of a
// course cascade.
type UserProgress struct {
	gorm.Model
	UserID      uint    `json:"user_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	LessonID    uint    `json:"lesson_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	IsCompleted bool    `json:"is_completed" gorm:"default:false"`
	Lesson      *Lesson `json:"lesson,omitempty"`
}
