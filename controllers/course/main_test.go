package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseRoutes "lms/routers/courseRoutes"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

var testDBCounter int64

// setupTestApp wires the course routes against a fresh in-memory sqlite
// database. The unique indexes are real, so the constraint-translation
// paths behave like production.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
		UploadDir: t.TempDir(),
	}

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	return app
}

func createTestUser(t *testing.T, name, role string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: string(hashed),
		Role:     role,
	}
	require.NoError(t, database.Database.Db.Create(user).Error)
	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := middleware.GenerateAccessToken(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

// doRequest performs a JSON request against the app and decodes the
// response envelope.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))

	return resp.StatusCode, envelope
}

func dataOf(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()

	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "expected data object in response, got %v", envelope)
	return data
}

func createTestCourse(t *testing.T, instructor *models.User, title string) *models.Course {
	t.Helper()

	course := &models.Course{
		Title:        title,
		Description:  "A course used in tests",
		InstructorID: instructor.ID,
	}
	require.NoError(t, database.Database.Db.Create(course).Error)
	return course
}

func createTestLesson(t *testing.T, course *models.Course, title string, order int) *models.Lesson {
	t.Helper()

	lesson := &models.Lesson{
		CourseID:        course.ID,
		Title:           title,
		VideoURL:        "https://videos.example.com/" + title,
		DurationMinutes: 10,
		Order:           order,
	}
	require.NoError(t, database.Database.Db.Create(lesson).Error)
	return lesson
}

// adjustCreatedAt shifts a course's creation time by offsetSeconds so
// ordering tests do not depend on timestamp resolution.
func adjustCreatedAt(course *models.Course, offsetSeconds int) error {
	return database.Database.Db.Model(course).
		Update("created_at", time.Now().Add(time.Duration(offsetSeconds)*time.Second)).Error
}

func assertRowCount(t *testing.T, model interface{}, query string, arg interface{}, want int64) {
	t.Helper()

	var count int64
	require.NoError(t, database.Database.Db.Model(model).Where(query, arg).Count(&count).Error)
	require.Equal(t, want, count)
}

func enrollTestStudent(t *testing.T, student *models.User, course *models.Course) {
	t.Helper()

	require.NoError(t, database.Database.Db.Create(&models.Enrollment{
		StudentID: student.ID,
		CourseID:  course.ID,
	}).Error)
}
