package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"lms/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func TestSeedCreatesDemoData(t *testing.T) {
	db := openTestDB(t)

	res, err := Seed(db)
	require.NoError(t, err)
	require.Equal(t, 3, res.Categories)
	require.Equal(t, 3, res.Courses)
	require.Equal(t, 3, res.Chapters)
	require.Equal(t, 7, res.Lessons)
	require.Equal(t, 1, res.Users)

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@example.com").First(&admin).Error)
	require.Equal(t, "ADMIN", admin.Role)

	var published int64
	require.NoError(t, db.Model(&models.Course{}).Where("is_published = ?", true).Count(&published).Error)
	require.EqualValues(t, 3, published, "seeded courses are published")
}

func TestSeedIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	_, err := Seed(db)
	require.NoError(t, err)

	res, err := Seed(db)
	require.NoError(t, err)
	require.Equal(t, 0, res.Categories)
	require.Equal(t, 0, res.Courses)
	require.Equal(t, 0, res.Chapters)
	require.Equal(t, 0, res.Lessons)
	require.Equal(t, 0, res.Users)

	var lessonCount int64
	require.NoError(t, db.Model(&models.Lesson{}).Count(&lessonCount).Error)
	require.EqualValues(t, 7, lessonCount)
}
