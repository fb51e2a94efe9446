package locations_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Arawerawer/RouteLink/src/core/models"
	"github.com/Arawerawer/RouteLink/src/core/router"
)

const testSecret = "unit-test-secret"

type successResp struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type errorResp struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("SUPABASE_JWT_SECRET", testSecret)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Location{}, &models.Schedule{}))

	app := fiber.New()
	router.InitialiseAndSetupRoutes(app, db)
	return app, db
}

func bearerToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, method, target, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeSuccess(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()

	var env successResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func decodeError(t *testing.T, resp *http.Response) errorResp {
	t.Helper()
	defer resp.Body.Close()

	var env errorResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	app, db := setupApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/locations", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, decodeError(t, resp).StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/locations", "", fiber.Map{
		"name":    "Taipei 101",
		"address": "No. 7, Section 5, Xinyi Road",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Nothing was written before the auth check fired
	var count int64
	require.NoError(t, db.Model(&models.Location{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	app, db := setupApp(t)
	token := bearerToken(t, uuid.New())

	cases := []struct {
		name string
		body fiber.Map
	}{
		{"missing name", fiber.Map{"address": "somewhere"}},
		{"missing address", fiber.Map{"name": "somewhere"}},
		{"empty name", fiber.Map{"name": "", "address": "somewhere"}},
		{"empty body", fiber.Map{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodPost, "/api/locations", token, tc.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			resp.Body.Close()
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Location{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateReturnsOwnedRow(t *testing.T) {
	app, _ := setupApp(t)
	userID := uuid.New()

	resp := doRequest(t, app, http.MethodPost, "/api/locations", bearerToken(t, userID), fiber.Map{
		"name":    "Jiufen Old Street",
		"address": "Jishan Street, Ruifang District",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Location
	decodeSuccess(t, resp, &created)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, "Jiufen Old Street", created.Name)
	assert.Equal(t, "Jishan Street, Ruifang District", created.Address)
}

func TestListReturnsOwnRowsNewestFirst(t *testing.T) {
	app, db := setupApp(t)
	userID := uuid.New()
	otherID := uuid.New()

	older := models.Location{ID: uuid.New(), UserID: userID, Name: "older", Address: "a", CreatedAt: time.Now().Add(-2 * time.Hour)}
	newer := models.Location{ID: uuid.New(), UserID: userID, Name: "newer", Address: "b", CreatedAt: time.Now().Add(-1 * time.Hour)}
	foreign := models.Location{ID: uuid.New(), UserID: otherID, Name: "foreign", Address: "c", CreatedAt: time.Now()}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&foreign).Error)

	resp := doRequest(t, app, http.MethodGet, "/api/locations", bearerToken(t, userID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rows []models.Location
	decodeSuccess(t, resp, &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "newer", rows[0].Name)
	assert.Equal(t, "older", rows[1].Name)
}

func TestUpdateIsScopedToOwner(t *testing.T) {
	app, db := setupApp(t)
	ownerID := uuid.New()
	intruderID := uuid.New()

	location := models.Location{ID: uuid.New(), UserID: ownerID, Name: "original", Address: "original road"}
	require.NoError(t, db.Create(&location).Error)

	body := fiber.Map{"name": "hijacked", "address": "hijacked road"}

	// Someone else's row reads as missing
	resp := doRequest(t, app, http.MethodPut, "/api/locations/"+location.ID.String(), bearerToken(t, intruderID), body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	var unchanged models.Location
	require.NoError(t, db.First(&unchanged, "id = ?", location.ID).Error)
	assert.Equal(t, "original", unchanged.Name)

	// A completely unknown id reads the same way
	resp = doRequest(t, app, http.MethodPut, "/api/locations/"+uuid.NewString(), bearerToken(t, ownerID), body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// The owner succeeds
	resp = doRequest(t, app, http.MethodPut, "/api/locations/"+location.ID.String(), bearerToken(t, ownerID), fiber.Map{
		"name":    "renamed",
		"address": "renamed road",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Location
	decodeSuccess(t, resp, &updated)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, "renamed road", updated.Address)
}

func TestDeleteIsScopedToOwner(t *testing.T) {
	app, db := setupApp(t)
	ownerID := uuid.New()
	intruderID := uuid.New()

	location := models.Location{ID: uuid.New(), UserID: ownerID, Name: "keep", Address: "keep street"}
	require.NoError(t, db.Create(&location).Error)

	resp := doRequest(t, app, http.MethodDelete, "/api/locations/"+location.ID.String(), bearerToken(t, intruderID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete, "/api/locations/"+uuid.NewString(), bearerToken(t, ownerID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	var count int64
	require.NoError(t, db.Model(&models.Location{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	resp = doRequest(t, app, http.MethodDelete, "/api/locations/"+location.ID.String(), bearerToken(t, ownerID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var deleted models.Location
	decodeSuccess(t, resp, &deleted)
	assert.Equal(t, location.ID, deleted.ID)

	require.NoError(t, db.Model(&models.Location{}).Count(&count).Error)
	assert.Zero(t, count)
}
