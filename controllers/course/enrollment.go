package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the authenticated student in a course. At most
// one enrollment per (student, course) exists; the pre-check answers the
// common retry case and the unique index decides races.
func EnrollInCourse(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment models.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND course_id = ?", user.ID, courseID).
		First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You're already enrolled in this course!", nil)
	}

	enrollment := models.Enrollment{
		StudentID: user.ID,
		CourseID:  courseID,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		if database.UniqueViolationOn(err, models.UniqueEnrollment) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You're already enrolled in this course!", nil)
		}
		log.Printf("Error saving enrollment to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
	tx.Commit()

	go func(email, name, courseTitle string) {
		if err := utils.SendEnrollmentEmail(email, name, courseTitle); err != nil {
			log.Printf("Error sending enrollment email to %s: %v", email, err)
		}
	}(user.Email, user.Name, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// GetMyEnrollments lists the student's enrolled courses, most recent
// enrollment first
func GetMyEnrollments(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("student_id = ?", user.ID).
		Preload("Course").Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	courses := make([]models.Course, 0, len(enrollments))
	for _, enrollment := range enrollments {
		courses = append(courses, enrollment.Course)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// isEnrolled reports whether the student holds an enrollment for the course
func isEnrolled(studentID, courseID uint) bool {
	var enrollment models.Enrollment
	err := database.Database.Db.Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&enrollment).Error
	return err == nil
}
