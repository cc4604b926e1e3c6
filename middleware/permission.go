package middleware

import (
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that loads the authenticated user and
// rejects the request unless the user carries the required role. The
// loaded user is stored in c.Locals("user") for the handler.
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		if err := database.Database.Db.First(&user, userID).Error; err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		if user.Role != requiredRole {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		c.Locals("user", &user)
		return c.Next()
	}
}

// MutationTarget is the object a write request wants to touch. Exactly one
// of the fields is set; the caller always knows which kind it resolved, so
// the check never has to sniff the target's shape.
type MutationTarget struct {
	course *models.Course
	lesson *models.Lesson
	parent *models.Course // owning course of lesson
}

// CourseTarget wraps a course for an ownership check.
func CourseTarget(course *models.Course) MutationTarget {
	return MutationTarget{course: course}
}

// LessonTarget wraps a lesson for an ownership check. Ownership of a
// lesson is resolved through its parent course.
func LessonTarget(lesson *models.Lesson, parent *models.Course) MutationTarget {
	return MutationTarget{lesson: lesson, parent: parent}
}

// CanMutate is the single write-access gate for catalog objects: only an
// instructor who owns the target course may mutate it. Reads are open and
// never go through here.
func CanMutate(user *models.User, target MutationTarget) bool {
	if user == nil || user.Role != models.RoleInstructor {
		return false
	}

	if target.course != nil {
		return target.course.InstructorID == user.ID
	}
	if target.lesson != nil && target.parent != nil {
		return target.parent.InstructorID == user.ID
	}

	return false
}

// CanCreateLessonIn gates lesson creation under a course. There is no
// lesson object yet, so the check runs against the course from the
// request path.
func CanCreateLessonIn(user *models.User, course *models.Course) bool {
	return user != nil && user.Role == models.RoleInstructor && course.InstructorID == user.ID
}
