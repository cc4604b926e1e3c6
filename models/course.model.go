package models

import "gorm.io/gorm"

// Course represents a published course owned by a single instructor.
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	InstructorID uint   `json:"instructor_id" gorm:"index;not null"`

	Instructor User     `json:"-" gorm:"foreignKey:InstructorID"`
	Lessons    []Lesson `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
}
