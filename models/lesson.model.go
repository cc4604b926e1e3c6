package models

import "gorm.io/gorm"

// UniqueLessonOrder is the unique index guarding one order value per course.
const UniqueLessonOrder = "idx_lessons_course_order"

// Lesson is one ordered unit of a course. No two lessons of the same
// course may share an order value; the composite unique index is the
// source of truth for that invariant.
type Lesson struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_lessons_course_order"`
	Title           string `json:"title"`
	VideoURL        string `json:"video_url"`
	DurationMinutes int    `json:"duration_minutes"`                                                // minutes, > 0
	Order           int    `json:"order" gorm:"column:order_index;uniqueIndex:idx_lessons_course_order"` // position within the course, > 0
}
