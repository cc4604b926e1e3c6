package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// MarkLessonCompleted records a completion for the authenticated student.
// The checks run in a fixed order so the caller always gets the most
// actionable error: unknown lesson first, then missing enrollment, then
// duplicate completion. The unique index is the final guard against a
// concurrent duplicate.
func MarkLessonCompleted(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)

	var lesson models.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ?", lessonID, courseID).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if !isEnrolled(user.ID, courseID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	// Check if lesson is already marked as completed
	var existing models.LessonProgress
	if err := database.Database.Db.Where("student_id = ? AND lesson_id = ?", user.ID, lesson.ID).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson already completed!", nil)
	}

	progress := models.LessonProgress{
		StudentID: user.ID,
		LessonID:  lesson.ID,
		Completed: true,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&progress).Error; err != nil {
		tx.Rollback()
		if database.UniqueViolationOn(err, models.UniqueLessonProgress) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson already completed!", nil)
		}
		log.Printf("Error saving lesson progress to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson as completed!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson marked as completed!", progress)
}

// GetCourseProgress reports a student's completion counts for a course.
// Ineligible callers (wrong role, not enrolled) get an advisory 200 with a
// message instead of an error status; the progress listing below answers
// 403 for the same condition.
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if user.Role != models.RoleStudent {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Only students can view their progress.", nil)
	}

	if !isEnrolled(user.ID, courseID) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "You're not enrolled in this course. Enroll first to see progress!", nil)
	}

	var total int64
	database.Database.Db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&total)

	var completed int64
	database.Database.Db.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.student_id = ? AND lessons.course_id = ? AND lesson_progresses.completed = ?", user.ID, courseID, true).
		Count(&completed)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"course_id":         course.ID,
		"total_lessons":     total,
		"completed_lessons": completed,
		"progress_percent":  utils.ProgressPercent(completed, total),
	})
}

// GetCompletedLessons lists the ids of the student's completed lessons in
// a course. Unlike GetCourseProgress this endpoint treats a missing
// enrollment as forbidden.
func GetCompletedLessons(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !isEnrolled(user.ID, courseID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var completedIDs []uint
	if err := database.Database.Db.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.student_id = ? AND lessons.course_id = ? AND lesson_progresses.completed = ?", user.ID, courseID, true).
		Pluck("lesson_progresses.lesson_id", &completedIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"completed_lessons": completedIDs,
	})
}

// GetLessonCompletion reports whether the student completed one lesson.
// A missing progress row is a plain false, not an error.
func GetLessonCompletion(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	lessonID := c.Locals("lessonID").(uint)

	var lesson models.Lesson
	if err := database.Database.Db.First(&lesson, lessonID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var progress models.LessonProgress
	completed := database.Database.Db.Where("student_id = ? AND lesson_id = ? AND completed = ?", user.ID, lessonID, true).
		First(&progress).Error == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completion fetched successfully!", fiber.Map{
		"completed": completed,
	})
}
