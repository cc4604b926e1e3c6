package courseValidator

import (
	"lms/middleware"
	"lms/utils"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateLessonRequest is the expected lesson-creation body
type CreateLessonRequest struct {
	Title           string `json:"title" validate:"required,min=3"`
	VideoURL        string `json:"video_url" validate:"required,url"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	Order           int    `json:"order" validate:"required,gt=0"`
}

// UpdateLessonRequest carries optional lesson fields; nil means unchanged
type UpdateLessonRequest struct {
	Title           *string `json:"title" validate:"omitempty,min=3"`
	VideoURL        *string `json:"video_url" validate:"omitempty,url"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,gt=0"`
	Order           *int    `json:"order" validate:"omitempty,gt=0"`
}

// LessonID validates the :lessonId path parameter
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("lessonId"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		c.Locals("lessonID", uint(id))
		return c.Next()
	}
}

// CreateLesson validator middleware
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateLessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validator middleware
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateLessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}
