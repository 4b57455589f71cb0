package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sportsbase/roster/api"
	"github.com/sportsbase/roster/internal/database"
	"github.com/sportsbase/roster/internal/records"
)

// setupRouter wires a server over a fresh in-memory store.
func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc, err := records.NewService(zap.NewNop(), db, nil)
	require.NoError(t, err)

	srv := api.NewServer(zap.NewNop(), svc, api.Options{})
	return srv.Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := setupRouter(t)
	w := doJSON(t, router, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	router := setupRouter(t)
	w := doJSON(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateTrainingCenter(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/training_centers/", `{"name":"Team A"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]uint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp["id"])

	// Duplicate name conflicts with a problem body naming the value.
	w = doJSON(t, router, http.MethodPost, "/training_centers/", `{"name":"Team A"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Contains(t, problem["detail"], "Team A")
}

func TestCreateTrainingCenterMissingName(t *testing.T) {
	router := setupRouter(t)
	w := doJSON(t, router, http.MethodPost, "/training_centers/", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateAthleteFlow(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/training_centers/", `{"name":"Team A"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, http.MethodPost, "/categories/", `{"name":"Adult"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/athletes/",
		`{"name":"J. Doe","tax_id":"123","training_center_id":1,"category_id":1}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	var created map[string]uint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, uint(1), created["id"])

	// Duplicate tax id conflicts even with a different name.
	w = doJSON(t, router, http.MethodPost, "/athletes/",
		`{"name":"Someone Else","tax_id":"123","training_center_id":1,"category_id":1}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Contains(t, problem["detail"], "123")

	// The worked example: one item with resolved names, total 1.
	w = doJSON(t, router, http.MethodGet, "/athletes/?limit=10&offset=0", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []struct {
			Name               string  `json:"name"`
			TrainingCenterName *string `json:"training_center_name"`
			CategoryName       *string `json:"category_name"`
		} `json:"items"`
		Total  int64 `json:"total"`
		Limit  int   `json:"limit"`
		Offset int   `json:"offset"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 0, page.Offset)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "J. Doe", page.Items[0].Name)
	require.NotNil(t, page.Items[0].TrainingCenterName)
	assert.Equal(t, "Team A", *page.Items[0].TrainingCenterName)
	require.NotNil(t, page.Items[0].CategoryName)
	assert.Equal(t, "Adult", *page.Items[0].CategoryName)
}

func TestCreateAthleteMissingFields(t *testing.T) {
	router := setupRouter(t)
	w := doJSON(t, router, http.MethodPost, "/athletes/", `{"name":"J. Doe"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.NotEmpty(t, problem["errors"])
}

func TestListAthletesMalformedPagination(t *testing.T) {
	router := setupRouter(t)

	for _, query := range []string{
		"limit=0",
		"limit=101",
		"offset=-1",
		"limit=abc",
	} {
		w := doJSON(t, router, http.MethodGet, "/athletes/?"+query, "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "query %q", query)
	}
}

func TestListAthletesDefaultsApplied(t *testing.T) {
	router := setupRouter(t)
	w := doJSON(t, router, http.MethodGet, "/athletes/", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var page map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, float64(50), page["limit"])
	assert.Equal(t, float64(0), page["offset"])
	assert.Equal(t, float64(0), page["total"])
	assert.NotNil(t, page["items"])
}

func TestGetAthleteNotFound(t *testing.T) {
	router := setupRouter(t)
	w := doJSON(t, router, http.MethodGet, "/athletes/9999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")
}

func TestListReferenceData(t *testing.T) {
	router := setupRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/training_centers/", `{"name":"Team A"}`).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/training_centers/", `{"name":"Team B"}`).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/categories/", `{"name":"Adult"}`).Code)

	w := doJSON(t, router, http.MethodGet, "/training_centers/?limit=1&offset=0", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Team A", page.Items[0].Name)

	w = doJSON(t, router, http.MethodGet, "/categories/", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNameFilterThroughHTTP(t *testing.T) {
	router := setupRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/training_centers/", `{"name":"Team A"}`).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/categories/", `{"name":"Adult"}`).Code)
	for _, athlete := range []string{
		`{"name":"Ana Silva","tax_id":"111","training_center_id":1,"category_id":1}`,
		`{"name":"ANABEL","tax_id":"1112","training_center_id":1,"category_id":1}`,
		`{"name":"J. Doe","tax_id":"222","training_center_id":1,"category_id":1}`,
	} {
		require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/athletes/", athlete).Code)
	}

	w := doJSON(t, router, http.MethodGet, "/athletes/?name=ana", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var page map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, float64(2), page["total"])

	// Tax id filter is exact match only.
	w = doJSON(t, router, http.MethodGet, "/athletes/?tax_id=111", "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, float64(1), page["total"])
}
