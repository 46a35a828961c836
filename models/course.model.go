package models

import "gorm.io/gorm"

// Course is the purchasable content unit. A course starts unpublished
// (draft) and is only visible in the public catalog once published.
type Course struct {
	gorm.Model
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Price       float64   `json:"price" gorm:"default:0;check:price >= 0"`
	IsPublished bool      `json:"is_published" gorm:"default:false"`
	CategoryID  uint      `json:"category_id" gorm:"index;not null"`
	Category    *Category `json:"category,omitempty"`
	Chapters    []Chapter `json:"chapters,omitempty"`
}

// Chapter is an ordered grouping of lessons within a course. Position
// ordering is an application convention, not a database constraint.
type Chapter struct {
	gorm.Model
	Title       string   `json:"title" gorm:"not null"`
	Position    int      `json:"position" gorm:"default:0"`
	IsPublished bool     `json:"is_published" gorm:"default:false"`
	CourseID    uint     `json:"course_id" gorm:"index;not null"`
	Lessons     []Lesson `json:"lessons,omitempty"`
}

// Lesson is an atomic video-backed content unit within a chapter.
type Lesson struct {
	gorm.Model
	Title         string `json:"title" gorm:"not null"`
	VideoURL      string `json:"video_url"`
	Position      int    `json:"position" gorm:"default:0"`
	IsFreePreview bool   `json:"is_free_preview" gorm:"default:false"`
	IsPublished   bool   `json:"is_published" gorm:"default:false"`
	ChapterID     uint   `json:"chapter_id" gorm:"index;not null"`
}
