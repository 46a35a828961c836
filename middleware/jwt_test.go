package middleware_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"lms/models"
	"lms/testutil"
)

func TestJWTResolvesUserByEmail(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	token := testutil.Token(t, cfg, "u1@example.com", "U1")

	// First request creates the row, the second must find it again.
	status, _ := testutil.DoJSON(t, app, http.MethodGet, "/purchases", token, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = testutil.DoJSON(t, app, http.MethodGet, "/purchases", token, nil)
	require.Equal(t, http.StatusOK, status)

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	require.Equal(t, "u1@example.com", users[0].Email)
	require.Equal(t, "U1", users[0].Name)
}

func TestJWTKeepsCallersApart(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)

	for _, email := range []string{"u1@example.com", "u2@example.com"} {
		token := testutil.Token(t, cfg, email, "U")
		status, _ := testutil.DoJSON(t, app, http.MethodGet, "/purchases", token, nil)
		require.Equal(t, http.StatusOK, status)
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
}
