package models

import "gorm.io/gorm"

// UniqueLessonProgress is the unique index guarding one progress row per
// (student, lesson) pair.
const UniqueLessonProgress = "idx_progress_student_lesson"

// LessonProgress marks a lesson completed by a student. No operation ever
// writes Completed=false: a missing row means not completed, an existing
// row always carries true. The column stays for compatibility with the
// previous data model.
type LessonProgress struct {
	gorm.Model
	StudentID uint `json:"student_id" gorm:"not null;uniqueIndex:idx_progress_student_lesson"`
	LessonID  uint `json:"lesson_id" gorm:"not null;uniqueIndex:idx_progress_student_lesson"`
	Completed bool `json:"completed" gorm:"default:false"`
}
