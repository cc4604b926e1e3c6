package courseValidator

import (
	"lms/middleware"
	"lms/utils"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateCourseRequest is the expected course-creation body. The thumbnail
// arrives as an optional multipart file, not a body field.
type CreateCourseRequest struct {
	Title       string `json:"title" form:"title" validate:"required,min=3"`
	Description string `json:"description" form:"description" validate:"required,min=5"`
}

// UpdateCourseRequest carries optional course fields; nil means unchanged
type UpdateCourseRequest struct {
	Title       *string `json:"title" form:"title" validate:"omitempty,min=3"`
	Description *string `json:"description" form:"description" validate:"omitempty,min=5"`
}

// CourseID validates the :courseId path parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("courseId"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseList validates optional pagination query parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `query:"page"`
			Limit *int `query:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		page := 1
		limit := 10
		if reqData.Page != nil {
			if *reqData.Page < 1 {
				return middleware.ValidationErrorResponse(c, map[string]string{"page": "Page must be greater than 0!"})
			}
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			if *reqData.Limit < 1 {
				return middleware.ValidationErrorResponse(c, map[string]string{"limit": "Limit must be greater than 0!"})
			}
			limit = *reqData.Limit
		}

		c.Locals("page", page)
		c.Locals("limit", limit)
		return c.Next()
	}
}
