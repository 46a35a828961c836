package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"lms/models"
	"lms/testutil"
)

func TestSetProgressCreatesCompleted(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	fixtures := testutil.SeedCatalog(t, db)
	token := testutil.Token(t, cfg, "u1@example.com", "U1")

	// No record and no explicit value: created as completed.
	status, env := testutil.DoJSON(t, app, http.MethodPut, "/progress", token, map[string]interface{}{
		"lessonId": fixtures.LessonPreview.ID,
	})
	require.Equal(t, http.StatusOK, status)

	var progress models.UserProgress
	testutil.Decode(t, env, &progress)
	require.True(t, progress.IsCompleted)

	var count int64
	require.NoError(t, db.Model(&models.UserProgress{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSetProgressToggles(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	fixtures := testutil.SeedCatalog(t, db)
	token := testutil.Token(t, cfg, "u1@example.com", "U1")

	body := map[string]interface{}{"lessonId": fixtures.LessonPreview.ID}

	status, env := testutil.DoJSON(t, app, http.MethodPut, "/progress", token, body)
	require.Equal(t, http.StatusOK, status)
	var progress models.UserProgress
	testutil.Decode(t, env, &progress)
	require.True(t, progress.IsCompleted)

	// Existing record, omitted value: flips.
	status, env = testutil.DoJSON(t, app, http.MethodPut, "/progress", token, body)
	require.Equal(t, http.StatusOK, status)
	testutil.Decode(t, env, &progress)
	require.False(t, progress.IsCompleted)

	status, env = testutil.DoJSON(t, app, http.MethodPut, "/progress", token, body)
	require.Equal(t, http.StatusOK, status)
	testutil.Decode(t, env, &progress)
	require.True(t, progress.IsCompleted)

	// Still one row per (user, lesson).
	var count int64
	require.NoError(t, db.Model(&models.UserProgress{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSetProgressExplicitValue(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	fixtures := testutil.SeedCatalog(t, db)
	token := testutil.Token(t, cfg, "u1@example.com", "U1")

	// Explicit value wins over the toggle, creating and updating.
	status, env := testutil.DoJSON(t, app, http.MethodPut, "/progress", token, map[string]interface{}{
		"lessonId":    fixtures.LessonPreview.ID,
		"isCompleted": false,
	})
	require.Equal(t, http.StatusOK, status)

	var progress models.UserProgress
	testutil.Decode(t, env, &progress)
	require.False(t, progress.IsCompleted)

	status, env = testutil.DoJSON(t, app, http.MethodPut, "/progress", token, map[string]interface{}{
		"lessonId":    fixtures.LessonPreview.ID,
		"isCompleted": false,
	})
	require.Equal(t, http.StatusOK, status)
	testutil.Decode(t, env, &progress)
	require.False(t, progress.IsCompleted)
}

func TestSetProgressValidation(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	testutil.SeedCatalog(t, db)
	token := testutil.Token(t, cfg, "u1@example.com", "U1")

	status, _ := testutil.DoJSON(t, app, http.MethodPut, "/progress", token, map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = testutil.DoJSON(t, app, http.MethodPut, "/progress", token, map[string]interface{}{"lessonId": 99999})
	require.Equal(t, http.StatusNotFound, status)
}

func TestGetProgressCourseFilter(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	fixtures := testutil.SeedCatalog(t, db)
	token := testutil.Token(t, cfg, "u1@example.com", "U1")

	// A lesson in a different course.
	otherCourse := models.Course{Title: "Other", IsPublished: true, CategoryID: fixtures.Category.ID}
	require.NoError(t, db.Create(&otherCourse).Error)
	otherChapter := models.Chapter{Title: "Other Ch", Position: 1, IsPublished: true, CourseID: otherCourse.ID}
	require.NoError(t, db.Create(&otherChapter).Error)
	otherLesson := models.Lesson{Title: "Other L", Position: 1, IsPublished: true, ChapterID: otherChapter.ID}
	require.NoError(t, db.Create(&otherLesson).Error)

	for _, lessonID := range []uint{fixtures.LessonPreview.ID, otherLesson.ID} {
		status, _ := testutil.DoJSON(t, app, http.MethodPut, "/progress", token, map[string]interface{}{
			"lessonId": lessonID,
		})
		require.Equal(t, http.StatusOK, status)
	}

	var data struct {
		Progress []models.UserProgress `json:"progress"`
	}

	// Unfiltered: both rows.
	status, env := testutil.DoJSON(t, app, http.MethodGet, "/progress", token, nil)
	require.Equal(t, http.StatusOK, status)
	testutil.Decode(t, env, &data)
	require.Len(t, data.Progress, 2)

	// Course filter: only the fixture course's lesson.
	status, env = testutil.DoJSON(t, app, http.MethodGet, fmt.Sprintf("/progress?courseId=%d", fixtures.Published.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	testutil.Decode(t, env, &data)
	require.Len(t, data.Progress, 1)
	require.Equal(t, fixtures.LessonPreview.ID, data.Progress[0].LessonID)
	require.NotNil(t, data.Progress[0].Lesson)
}
