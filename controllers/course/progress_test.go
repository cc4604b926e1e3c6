package controllers_test

import (
	"fmt"
	"lms/models"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedPath(courseID, lessonID uint) string {
	return fmt.Sprintf("/courses/%d/lessons/%d/completed", courseID, lessonID)
}

func TestMarkCompletedRequiresEnrollment(t *testing.T) {
	app := setupTestApp(t)
	instructor := createTestUser(t, "owner", models.RoleInstructor)
	student := createTestUser(t, "student", models.RoleStudent)
	course := createTestCourse(t, instructor, "Go Basics")
	lesson := createTestLesson(t, course, "first", 1)

	// The lesson exists and is valid; the missing enrollment alone rejects
	status, envelope := doRequest(t, app, http.MethodPost,
		completedPath(course.ID, lesson.ID), tokenFor(t, student), nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, envelope["message"], "not enrolled")
	assertRowCount(t, &models.LessonProgress{}, "student_id = ?", student.ID, 0)
}

func TestMarkCompletedUnknownLessonBeatsEnrollmentCheck(t *testing.T) {
	app := setupTestApp(t)
	instructor := createTestUser(t, "owner", models.RoleInstructor)
	student := createTestUser(t, "student", models.RoleStudent)
	course := createTestCourse(t, instructor, "Go Basics")
	other := createTestCourse(t, instructor, "Other Course")
	foreign := createTestLesson(t, other, "foreign", 1)

	// Lesson exists but under another course: scoped resolution 404s
	status, _ := doRequest(t, app, http.MethodPost,
		completedPath(course.ID, foreign.ID), tokenFor(t, student), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, app, http.MethodPost,
		completedPath(course.ID, 999), tokenFor(t, student), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMarkCompletedIdempotencyError(t *testing.T) {
	app := setupTestApp(t)
	instructor := createTestUser(t, "owner", models.RoleInstructor)
	student := createTestUser(t, "student", models.RoleStudent)
	course := createTestCourse(t, instructor, "Go Basics")
	lesson := createTestLesson(t, course, "first", 1)
	enrollTestStudent(t, student, course)
	token := tokenFor(t, student)

	status, _ := doRequest(t, app, http.MethodPost, completedPath(course.ID, lesson.ID), token, nil)
	require.Equal(t, http.StatusCreated, status)

	status, envelope := doRequest(t, app, http.MethodPost, completedPath(course.ID, lesson.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, envelope["message"], "already completed")
	assertRowCount(t, &models.LessonProgress{}, "student_id = ?", student.ID, 1)
}

func TestCourseProgressPercentages(t *testing.T) {
	app := setupTestApp(t)
	instructor := createTestUser(t, "owner", models.RoleInstructor)
	student := createTestUser(t, "student", models.RoleStudent)
	course := createTestCourse(t, instructor, "Go Basics")
	lessons := []*models.Lesson{
		createTestLesson(t, course, "first", 1),
		createTestLesson(t, course, "second", 2),
		createTestLesson(t, course, "third", 3),
	}
	enrollTestStudent(t, student, course)
	token := tokenFor(t, student)
	progressPath := fmt.Sprintf("/courses/%d/progress", course.ID)

	status, envelope := doRequest(t, app, http.MethodGet, progressPath, token, nil)
	require.Equal(t, http.StatusOK, status)
	data := dataOf(t, envelope)
	assert.Equal(t, float64(3), data["total_lessons"])
	assert.Equal(t, float64(0), data["completed_lessons"])
	assert.Equal(t, float64(0), data["progress_percent"])

	// 1 of 3 completed: 33.33
	status, _ = doRequest(t, app, http.MethodPost, completedPath(course.ID, lessons[0].ID), token, nil)
	require.Equal(t, http.StatusCreated, status)
	_, envelope = doRequest(t, app, http.MethodGet, progressPath, token, nil)
	assert.Equal(t, 33.33, dataOf(t, envelope)["progress_percent"])

	// 2 of 3 completed: 66.67
	status, _ = doRequest(t, app, http.MethodPost, completedPath(course.ID, lessons[1].ID), token, nil)
	require.Equal(t, http.StatusCreated, status)
	_, envelope = doRequest(t, app, http.MethodGet, progressPath, token, nil)
	data = dataOf(t, envelope)
	assert.Equal(t, 66.67, data["progress_percent"])
	assert.Equal(t, float64(2), data["completed_lessons"])
}

func TestCourseProgressEmptyCourse(t *testing.T) {
	app := setupTestApp(t)
	instructor := createTestUser(t, "owner", models.RoleInstructor)
	student := createTestUser(t, "student", models.RoleStudent)
	course := createTestCourse(t, instructor, "Empty Course")
	enrollTestStudent(t, student, course)

	status, envelope := doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/courses/%d/progress", course.ID), tokenFor(t, student), nil)
	require.Equal(t, http.StatusOK, status)

	data := dataOf(t, envelope)
	assert.Equal(t, float64(0), data["total_lessons"])
	assert.Equal(t, float64(0), data["progress_percent"])
}

func TestCourseProgressAdvisoryForIneligibleCallers(t *testing.T) {
	app := setupTestApp(t)
	instructor := createTestUser(t, "owner", models.RoleInstructor)
	outsider := createTestUser(t, "outsider", models.RoleStudent)
	course := createTestCourse(t, instructor, "Go Basics")
	progressPath := fmt.Sprintf("/courses/%d/progress", course.ID)

	// Wrong role: 200 with a message, no counts
	status, envelope := doRequest(t, app, http.MethodGet, progressPath, tokenFor(t, instructor), nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, envelope["message"], "Only students")
	assert.Nil(t, envelope["data"])

	// Not enrolled: same advisory shape
	status, envelope = doRequest(t, app, http.MethodGet, progressPath, tokenFor(t, outsider), nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, envelope["message"], "not enrolled")
	assert.Nil(t, envelope["data"])
}

func TestCompletedLessonListRequiresEnrollment(t *testing.T) {
	app := setupTestApp(t)
	instructor := createTestUser(t, "owner", models.RoleInstructor)
	student := createTestUser(t, "student", models.RoleStudent)
	outsider := createTestUser(t, "outsider", models.RoleStudent)
	course := createTestCourse(t, instructor, "Go Basics")
	lessons := []*models.Lesson{
		createTestLesson(t, course, "first", 1),
		createTestLesson(t, course, "second", 2),
	}
	enrollTestStudent(t, student, course)
	token := tokenFor(t, student)
	listPath := fmt.Sprintf("/courses/%d/progress/list", course.ID)

	// Unlike the progress summary, the listing is a hard 403
	status, _ := doRequest(t, app, http.MethodGet, listPath, tokenFor(t, outsider), nil)
	assert.Equal(t, http.StatusForbidden, status)

	for _, lesson := range lessons {
		status, _ = doRequest(t, app, http.MethodPost, completedPath(course.ID, lesson.ID), token, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	status, envelope := doRequest(t, app, http.MethodGet, listPath, token, nil)
	require.Equal(t, http.StatusOK, status)

	ids := dataOf(t, envelope)["completed_lessons"].([]interface{})
	require.Len(t, ids, 2)
	assert.ElementsMatch(t, []interface{}{float64(lessons[0].ID), float64(lessons[1].ID)}, ids)
}

func TestLessonCompletionAbsenceIsFalse(t *testing.T) {
	app := setupTestApp(t)
	instructor := createTestUser(t, "owner", models.RoleInstructor)
	student := createTestUser(t, "student", models.RoleStudent)
	course := createTestCourse(t, instructor, "Go Basics")
	lesson := createTestLesson(t, course, "first", 1)
	enrollTestStudent(t, student, course)
	token := tokenFor(t, student)

	path := fmt.Sprintf("/lessons/%d/completion", lesson.ID)

	status, envelope := doRequest(t, app, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, dataOf(t, envelope)["completed"])

	status, _ = doRequest(t, app, http.MethodPost, completedPath(course.ID, lesson.ID), token, nil)
	require.Equal(t, http.StatusCreated, status)

	status, envelope = doRequest(t, app, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, dataOf(t, envelope)["completed"])
}
