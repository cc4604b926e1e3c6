package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetLessonsByCourse lists a course's lessons sorted ascending by order
func GetLessonsByCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lessons []models.Lesson
	if err := database.Database.Db.Where("course_id = ?", courseID).
		Order("order_index asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"lessons": lessons,
	})
}

// GetLessonDetails returns one lesson scoped by its course
func GetLessonDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)

	var lesson models.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ?", lessonID, courseID).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", lesson)
}

// CreateLesson adds a lesson to a course owned by the caller. The order
// value must be free within the course; the pre-check gives the friendly
// error and the unique index settles races.
func CreateLesson(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	courseID := c.Locals("courseID").(uint)
	reqData := c.Locals("validatedLesson").(*courseValidator.CreateLessonRequest)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !middleware.CanCreateLessonIn(user, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not the owner of this course!", nil)
	}

	// Friendly pre-check; the constraint below is the real guard
	var existing models.Lesson
	if err := database.Database.Db.Where("course_id = ? AND order_index = ?", courseID, reqData.Order).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This order is already used in this course!", nil)
	}

	lesson := models.Lesson{
		CourseID:        courseID,
		Title:           reqData.Title,
		VideoURL:        reqData.VideoURL,
		DurationMinutes: reqData.DurationMinutes,
		Order:           reqData.Order,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&lesson).Error; err != nil {
		tx.Rollback()
		if database.UniqueViolationOn(err, models.UniqueLessonOrder) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This order is already used in this course!", nil)
		}
		log.Printf("Error saving lesson to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// UpdateLesson mutates a lesson; only the instructor owning the parent
// course may call it. The order-uniqueness probe excludes the lesson's own
// row and is skipped entirely when the order does not change.
func UpdateLesson(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)
	reqData := c.Locals("validatedLessonUpdate").(*courseValidator.UpdateLessonRequest)

	var lesson models.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ?", lessonID, courseID).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !middleware.CanMutate(user, middleware.LessonTarget(&lesson, &course)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not the owner of this lesson!", nil)
	}

	if reqData.Order != nil && *reqData.Order != lesson.Order {
		var existing models.Lesson
		if err := database.Database.Db.Where("course_id = ? AND order_index = ? AND id <> ?", courseID, *reqData.Order, lesson.ID).
			First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This order is already used in this course!", nil)
		}
		lesson.Order = *reqData.Order
	}

	if reqData.Title != nil {
		lesson.Title = *reqData.Title
	}
	if reqData.VideoURL != nil {
		lesson.VideoURL = *reqData.VideoURL
	}
	if reqData.DurationMinutes != nil {
		lesson.DurationMinutes = *reqData.DurationMinutes
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		if database.UniqueViolationOn(err, models.UniqueLessonOrder) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This order is already used in this course!", nil)
		}
		log.Printf("Error updating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson removes a lesson and its progress rows in one transaction
func DeleteLesson(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)

	var lesson models.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ?", lessonID, courseID).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !middleware.CanMutate(user, middleware.LessonTarget(&lesson, &course)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not the owner of this lesson!", nil)
	}

	tx := database.Database.Db.Begin()
	if err := tx.Unscoped().Where("lesson_id = ?", lesson.ID).Delete(&models.LessonProgress{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}
	if err := tx.Unscoped().Delete(&models.Lesson{}, lesson.ID).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
