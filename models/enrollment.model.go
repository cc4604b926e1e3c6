package models

import (
	"time"

	"gorm.io/gorm"
)

// UniqueEnrollment is the unique index guarding one enrollment per
// (student, course) pair.
const UniqueEnrollment = "idx_enrollments_student_course"

// Enrollment records that a student joined a course. Rows are never
// updated after creation; they only disappear through course deletion.
type Enrollment struct {
	gorm.Model
	StudentID uint `json:"student_id" gorm:"not null;uniqueIndex:idx_enrollments_student_course"`
	CourseID  uint `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_student_course"`

	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

// EnrolledAt is the enrollment timestamp.
func (e *Enrollment) EnrolledAt() time.Time { return e.CreatedAt }
