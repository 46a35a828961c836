package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	controllers "lms/controllers/purchase"
	"lms/models"
	"lms/testutil"
)

func TestCreatePurchase(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	fixtures := testutil.SeedCatalog(t, db)
	token := testutil.Token(t, cfg, "u1@example.com", "U1")

	status, env := testutil.DoJSON(t, app, http.MethodPost, "/purchases", token, map[string]interface{}{
		"courseId": fixtures.Published.ID,
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Status)

	var purchase models.Purchase
	testutil.Decode(t, env, &purchase)
	require.Equal(t, fixtures.Published.ID, purchase.CourseID)
	require.NotEmpty(t, purchase.ReceiptNumber)
	require.NotNil(t, purchase.Course)
	require.NotNil(t, purchase.Course.Category)
}

func TestCreatePurchaseDuplicate(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	fixtures := testutil.SeedCatalog(t, db)
	token := testutil.Token(t, cfg, "u1@example.com", "U1")

	body := map[string]interface{}{"courseId": fixtures.Published.ID}

	status, _ := testutil.DoJSON(t, app, http.MethodPost, "/purchases", token, body)
	require.Equal(t, http.StatusCreated, status)

	status, env := testutil.DoJSON(t, app, http.MethodPost, "/purchases", token, body)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Course already purchased", env.Message)

	// Exactly one purchase row survives.
	var count int64
	require.NoError(t, db.Model(&models.Purchase{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCreatePurchaseValidation(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	testutil.SeedCatalog(t, db)
	token := testutil.Token(t, cfg, "u1@example.com", "U1")

	status, _ := testutil.DoJSON(t, app, http.MethodPost, "/purchases", token, map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/purchases", token, map[string]interface{}{"courseId": 99999})
	require.Equal(t, http.StatusNotFound, status)

	status, _ = testutil.DoJSON(t, app, http.MethodPost, "/purchases", "", map[string]interface{}{"courseId": 1})
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestListPurchasesProgress(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	fixtures := testutil.SeedCatalog(t, db)
	token := testutil.Token(t, cfg, "u1@example.com", "U1")

	status, _ := testutil.DoJSON(t, app, http.MethodPost, "/purchases", token, map[string]interface{}{
		"courseId": fixtures.Published.ID,
	})
	require.Equal(t, http.StatusCreated, status)

	// Complete one of the two visible lessons.
	var user models.User
	require.NoError(t, db.Where("email = ?", "u1@example.com").First(&user).Error)
	require.NoError(t, db.Create(&models.UserProgress{
		UserID:      user.ID,
		LessonID:    fixtures.LessonPreview.ID,
		IsCompleted: true,
	}).Error)

	status, env := testutil.DoJSON(t, app, http.MethodGet, "/purchases", token, nil)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Purchases []controllers.PurchaseView `json:"purchases"`
	}
	testutil.Decode(t, env, &data)
	require.Len(t, data.Purchases, 1)

	view := data.Purchases[0]
	require.Equal(t, 2, view.TotalLessons)
	require.Equal(t, 1, view.CompletedLessons)
	require.Equal(t, 50, view.Progress)
}

func TestListPurchasesZeroLessons(t *testing.T) {
	db := testutil.DB(t)
	cfg := testutil.Cfg()
	app := testutil.App(t, db, cfg)
	fixtures := testutil.SeedCatalog(t, db)
	token := testutil.Token(t, cfg, "u1@example.com", "U1")

	// A course with no visible lessons at all.
	empty := models.Course{Title: "Empty", IsPublished: true, CategoryID: fixtures.Category.ID}
	require.NoError(t, db.Create(&empty).Error)

	status, _ := testutil.DoJSON(t, app, http.MethodPost, "/purchases", token, map[string]interface{}{
		"courseId": empty.ID,
	})
	require.Equal(t, http.StatusCreated, status)

	status, env := testutil.DoJSON(t, app, http.MethodGet, "/purchases", token, nil)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Purchases []controllers.PurchaseView `json:"purchases"`
	}
	testutil.Decode(t, env, &data)
	require.Len(t, data.Purchases, 1)
	require.Equal(t, 0, data.Purchases[0].TotalLessons)
	require.Equal(t, 0, data.Purchases[0].Progress)
}
