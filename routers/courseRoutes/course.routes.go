package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog, enrollment and progress routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Catalog reads are public
	courseGroup.Get("/", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/mine", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), controllers.GetMyCourses)
	courseGroup.Get("/:courseId", validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Get("/:courseId/lessons", validators.CourseID(), controllers.GetLessonsByCourse)
	courseGroup.Get("/:courseId/lessons/:lessonId", validators.CourseID(), validators.LessonID(), controllers.GetLessonDetails)

	// Catalog writes are instructor-only; ownership is checked in the handlers
	courseGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Patch("/:courseId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:courseId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.CourseID(), controllers.DeleteCourse)
	courseGroup.Post("/:courseId/lessons", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.CourseID(), validators.CreateLesson(), controllers.CreateLesson)
	courseGroup.Patch("/:courseId/lessons/:lessonId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.CourseID(), validators.LessonID(), validators.UpdateLesson(), controllers.UpdateLesson)
	courseGroup.Delete("/:courseId/lessons/:lessonId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.CourseID(), validators.LessonID(), controllers.DeleteLesson)

	// Enrollment
	courseGroup.Post("/:courseId/enrollment", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.CourseID(), controllers.EnrollInCourse)
	app.Get("/myenrollments", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), controllers.GetMyEnrollments)

	// Lesson completion and progress
	courseGroup.Post("/:courseId/lessons/:lessonId/completed", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.CourseID(), validators.LessonID(), controllers.MarkLessonCompleted)
	courseGroup.Get("/:courseId/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseProgress)
	courseGroup.Get("/:courseId/progress/list", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.CourseID(), controllers.GetCompletedLessons)
	app.Get("/lessons/:lessonId/completion", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.LessonID(), controllers.GetLessonCompletion)
}
