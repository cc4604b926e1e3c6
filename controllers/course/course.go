package controllers

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// CourseWithCount decorates a course with its lesson count for listings
type CourseWithCount struct {
	models.Course
	LessonsCount int64 `json:"lessons_count"`
}

func withLessonCounts(courses []models.Course) []CourseWithCount {
	result := make([]CourseWithCount, len(courses))
	for i, course := range courses {
		result[i] = CourseWithCount{Course: course}
		database.Database.Db.Model(&models.Lesson{}).
			Where("course_id = ?", course.ID).
			Count(&result[i].LessonsCount)
	}
	return result
}

// GetAllCourses lists courses publicly, newest first
func GetAllCourses(c *fiber.Ctx) error {
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	var total int64
	database.Database.Db.Model(&models.Course{}).Count(&total)

	var courses []models.Course
	if err := database.Database.Db.Offset(offset).Limit(limit).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": withLessonCounts(courses),
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetMyCourses lists the authenticated instructor's own courses
func GetMyCourses(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var courses []models.Course
	if err := database.Database.Db.Where("instructor_id = ?", user.ID).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": withLessonCounts(courses),
	})
}

// GetCourseDetails returns one course with its lessons in order
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Lessons are re-read in order on every call rather than cached
	var lessons []models.Lesson
	if err := database.Database.Db.Where("course_id = ?", courseID).
		Order("order_index asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}
	course.Lessons = lessons

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", course)
}

// CreateCourse creates a course owned by the authenticated instructor
func CreateCourse(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	reqData := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		InstructorID: user.ID,
	}

	// Thumbnail is optional multipart
	if file, err := c.FormFile("thumbnail"); err == nil && file != nil {
		path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving thumbnail: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
		}
		course.ThumbnailURL = utils.GetFileURL(path)
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error saving course to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse mutates a course; only the owning instructor may call it
func UpdateCourse(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	courseID := c.Locals("courseID").(uint)
	reqData := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !middleware.CanMutate(user, middleware.CourseTarget(&course)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not the owner of this course!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}

	if file, err := c.FormFile("thumbnail"); err == nil && file != nil {
		path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving thumbnail: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
		}
		course.ThumbnailURL = utils.GetFileURL(path)
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse removes a course and everything hanging off it: lessons,
// enrollments, and the progress rows of those lessons. The deletes run in
// one transaction so a half-removed course is never observable.
func DeleteCourse(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !middleware.CanMutate(user, middleware.CourseTarget(&course)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not the owner of this course!", nil)
	}

	tx := database.Database.Db.Begin()

	lessonIDs := tx.Model(&models.Lesson{}).Select("id").Where("course_id = ?", courseID)
	if err := tx.Unscoped().Where("lesson_id IN (?)", lessonIDs).Delete(&models.LessonProgress{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if err := tx.Unscoped().Where("course_id = ?", courseID).Delete(&models.Lesson{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if err := tx.Unscoped().Where("course_id = ?", courseID).Delete(&models.Enrollment{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if err := tx.Unscoped().Delete(&models.Course{}, courseID).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
