package database

import (
	"errors"
	"lms/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:errorsdb?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	RunMigrations(db)
	return db
}

func TestUniqueViolationTranslation(t *testing.T) {
	db := openTestDb(t)

	lesson := models.Lesson{CourseID: 1, Title: "first", Order: 1}
	require.NoError(t, db.Create(&lesson).Error)

	dup := models.Lesson{CourseID: 1, Title: "dup", Order: 1}
	err := db.Create(&dup).Error
	require.Error(t, err)

	assert.True(t, IsUniqueViolation(err))
	assert.True(t, UniqueViolationOn(err, models.UniqueLessonOrder))

	// A different order in the same course passes
	ok := models.Lesson{CourseID: 1, Title: "second", Order: 2}
	assert.NoError(t, db.Create(&ok).Error)
}

func TestUniqueViolationIgnoresOtherErrors(t *testing.T) {
	plain := errors.New("connection refused")

	assert.False(t, IsUniqueViolation(plain))
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, UniqueViolationOn(plain, models.UniqueLessonOrder))
	assert.False(t, UniqueViolationOn(nil, models.UniqueLessonOrder))
}
