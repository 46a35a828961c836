package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	controllers "lms/controllers/catalog"
	"lms/testutil"
)

func TestListCoursesVisibility(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	fixtures := testutil.SeedCatalog(t, db)

	status, env := testutil.DoJSON(t, app, http.MethodGet, "/courses", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Status)

	var data struct {
		Courses []controllers.CourseView `json:"courses"`
	}
	testutil.Decode(t, env, &data)

	// The draft course is hidden entirely.
	require.Len(t, data.Courses, 1)

	course := data.Courses[0]
	require.Equal(t, fixtures.Published.ID, course.ID)
	require.NotNil(t, course.Category)
	require.Equal(t, "Frontend", course.Category.Name)

	// Unpublished chapter is gone, and with it its published lesson; the
	// unpublished lesson inside the published chapter is gone too.
	require.Len(t, course.Chapters, 1)
	require.Len(t, course.Chapters[0].Lessons, 2)
	require.Equal(t, 2, course.TotalLessons)
}

func TestGetCourse(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	fixtures := testutil.SeedCatalog(t, db)

	status, env := testutil.DoJSON(t, app, http.MethodGet, fmt.Sprintf("/courses/%d", fixtures.Published.ID), "", nil)
	require.Equal(t, http.StatusOK, status)

	var course controllers.CourseView
	testutil.Decode(t, env, &course)
	require.Equal(t, fixtures.Published.ID, course.ID)
	require.Equal(t, 2, course.TotalLessons)
	require.Len(t, course.Chapters, 1)
}

func TestGetCourseUnpublishedIsNotFound(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	fixtures := testutil.SeedCatalog(t, db)

	status, _ := testutil.DoJSON(t, app, http.MethodGet, fmt.Sprintf("/courses/%d", fixtures.Draft.ID), "", nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestGetCourseAbsent(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	testutil.SeedCatalog(t, db)

	status, _ := testutil.DoJSON(t, app, http.MethodGet, "/courses/99999", "", nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/courses/abc", "", nil)
	require.Equal(t, http.StatusBadRequest, status)
}
