package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"netlink-server/internal/database"
	"netlink-server/internal/handlers"
	"netlink-server/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	app := fiber.New()
	app.Get("/healthz", handlers.Healthz)
	app.Post("/api/reports", handlers.PostReport)
	app.Get("/api/reports", handlers.GetReports)
	app.Get("/api/reports/count", handlers.GetReportCount)
	app.Get("/api/reports/count-by-network", handlers.GetCountByNetwork)
	app.Get("/api/map/locations", handlers.GetMapLocations)
	app.Post("/report", handlers.PostReportLegacy)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path string, out interface{}) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func fullReport() map[string]interface{} {
	return map[string]interface{}{
		"networkType":     "MTN",
		"phone":           "678901234",
		"issue":           "call-drops",
		"description":     "Calls drop after a few seconds",
		"locationAllowed": true,
		"issueScale":      "City",
		"latitude":        4.0511,
		"longitude":       9.7679,
		"addressLandmark": "Akwa, Douala",
		"deviceModel":     "Pixel 6",
		"osType":          "Android",
		"issueSeverity":   "Critical",
	}
}

func TestPostReportSuccess(t *testing.T) {
	app := testApp(t)

	resp := postJSON(t, app, "/api/reports", fullReport())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.SubmitResponse
	decode(t, resp, &out)
	assert.Equal(t, "success", out.Status)
	assert.Equal(t, "Report submitted successfully", out.Message)
	assert.NotZero(t, out.ReportID)
}

func TestPostReportValidationFailure(t *testing.T) {
	app := testApp(t)

	body := fullReport()
	body["phone"] = "691234567" // ORANGE prefix declared as MTN

	resp := postJSON(t, app, "/api/reports", body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var out models.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "error", out.Status)
	assert.Equal(t, "Validation Failed: The phone number does not match a valid MTN format.", out.Message)

	// Nothing was persisted.
	var count models.CountResponse
	getJSON(t, app, "/api/reports/count", &count)
	assert.Zero(t, count.Total)
}

func TestPostReportInvalidJSON(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/reports", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLegacyEndpointAcceptsBothNamings(t *testing.T) {
	app := testApp(t)

	resp := postJSON(t, app, "/report", map[string]interface{}{
		"networkType":     "ORANGE",
		"phone":           "655123456",
		"issue":           "slow-speed",
		"locationAllowed": true,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.SubmitResponse
	decode(t, resp, &out)
	assert.Equal(t, "Success! Your report has been sent.", out.Message)

	// Older clients: phoneNumber/locationConsent spelling.
	resp = postJSON(t, app, "/report", map[string]interface{}{
		"networkType":     "CAMTEL",
		"phoneNumber":     "624201234",
		"issue":           "no-connection",
		"locationConsent": false,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count models.CountResponse
	getJSON(t, app, "/api/reports/count", &count)
	assert.EqualValues(t, 2, count.Total)
}

func TestLegacyEndpointValidates(t *testing.T) {
	app := testApp(t)

	resp := postJSON(t, app, "/report", map[string]interface{}{
		"networkType": "CAMTEL",
		"phoneNumber": "999999999",
		"issue":       "no-connection",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var out models.ErrorResponse
	decode(t, resp, &out)
	assert.Contains(t, out.Message, "valid CAMTEL format")
}

func TestCountsEmpty(t *testing.T) {
	app := testApp(t)

	var count models.CountResponse
	resp := getJSON(t, app, "/api/reports/count", &count)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, count.Total)

	var byNetwork models.NetworkCountResponse
	getJSON(t, app, "/api/reports/count-by-network", &byNetwork)
	assert.Zero(t, byNetwork.MTN)
	assert.Zero(t, byNetwork.Orange)
	assert.Zero(t, byNetwork.Camtel)

	locations := make([]models.LocationRecord, 0)
	getJSON(t, app, "/api/map/locations", &locations)
	assert.Empty(t, locations)
}

func TestCountsAndLocationsAfterSubmissions(t *testing.T) {
	app := testApp(t)

	resp := postJSON(t, app, "/api/reports", fullReport())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	orange := fullReport()
	orange["networkType"] = "ORANGE"
	orange["phone"] = "655123456"
	orange["locationAllowed"] = false
	resp = postJSON(t, app, "/api/reports", orange)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var byNetwork models.NetworkCountResponse
	getJSON(t, app, "/api/reports/count-by-network", &byNetwork)
	assert.EqualValues(t, 1, byNetwork.MTN)
	assert.EqualValues(t, 1, byNetwork.Orange)
	assert.EqualValues(t, 0, byNetwork.Camtel)

	// Only the consented, geo-tagged report shows on the map.
	locations := make([]models.LocationRecord, 0)
	getJSON(t, app, "/api/map/locations?limit=10", &locations)
	require.Len(t, locations, 1)
	assert.Equal(t, "MTN", locations[0].NetworkType)
	assert.Equal(t, 10, locations[0].IssueMagnitude)
	assert.Equal(t, 500, locations[0].RadiusMeters)
	assert.Equal(t, "Critical", locations[0].IssueSeverity)
}

func TestHealthz(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}
