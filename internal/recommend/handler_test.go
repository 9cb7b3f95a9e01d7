package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/pkg/models"
)

type fixedCatalog struct {
	courses []models.Course
}

func (f *fixedCatalog) Search(ctx context.Context, terms []string, difficulty string) ([]models.Course, error) {
	return f.courses, nil
}

func (f *fixedCatalog) RecommendByTags(ctx context.Context, interests []string, difficulty string, limit int) ([]models.Course, error) {
	return f.courses, nil
}

func newTestRouter(catalog Catalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(NewService(catalog, nil, 4, 20))
	h.RegisterRoutes(router.Group("/api"))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRecommendAllHappyPath(t *testing.T) {
	router := newTestRouter(&fixedCatalog{courses: []models.Course{
		{ID: 1, Title: "Go Basics"},
		{ID: 2, Title: "Go Patterns"},
	}})

	w := postJSON(t, router, "/api/recommend-all", `{"interest":["go"],"skill_level":"beginner"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["total_returned"])
	info, ok := body["search_info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "beginner", info["skill_level"])
	assert.Len(t, info["searched_fields"], 3)
}

func TestRecommendAllRequiresInterest(t *testing.T) {
	router := newTestRouter(&fixedCatalog{})

	for _, body := range []string{
		`{}`,
		`{"interest":[]}`,
		`{"interest":["  ", ""]}`,
	} {
		w := postJSON(t, router, "/api/recommend-all", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)

		resp := decodeBody(t, w)
		assert.Equal(t, "Invalid input data", resp["error"])
		details, ok := resp["details"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, details, "interest")
	}
}

func TestRecommendAllRejectsUnknownLevel(t *testing.T) {
	router := newTestRouter(&fixedCatalog{})

	w := postJSON(t, router, "/api/recommend-all", `{"interest":["go"],"skill_level":"wizard"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody(t, w)
	details, ok := resp["details"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "skill_level")
}

func TestRecommendAllLevelOptional(t *testing.T) {
	router := newTestRouter(&fixedCatalog{})

	w := postJSON(t, router, "/api/recommend-all", `{"interest":["go"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["total_returned"])
	// an empty catalog still renders an array, not null
	assert.IsType(t, []any{}, body["courses"])
}

func TestRecommendRequiresSkillLevel(t *testing.T) {
	router := newTestRouter(&fixedCatalog{})

	w := postJSON(t, router, "/api/recommend", `{"interests":["go"]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody(t, w)
	details, ok := resp["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "skill_level is required", details["skill_level"])
}

func TestRecommendCollectsAllFieldErrors(t *testing.T) {
	router := newTestRouter(&fixedCatalog{})

	w := postJSON(t, router, "/api/recommend", `{"interests":[],"skill_level":"wizard"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody(t, w)
	details, ok := resp["details"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "interests")
	assert.Contains(t, details, "skill_level")
}

func TestRecommendAcceptsExpertSynonym(t *testing.T) {
	router := newTestRouter(&fixedCatalog{courses: []models.Course{{ID: 1, Title: "Go Internals"}}})

	w := postJSON(t, router, "/api/recommend", `{"interests":["go"],"skill_level":"expert"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	filters, ok := body["filters_applied"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "advanced", filters["skill_level"])
	assert.Equal(t, float64(1), body["total_found"])
}

func TestSearchSplitsQueryIntoTerms(t *testing.T) {
	catalog := &recordingCatalog{}
	router := newTestRouter(catalog)

	w := postJSON(t, router, "/api/search", `{"query":"  python   web  "}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"python", "web"}, catalog.lastTerms)
}

func TestSearchRequiresQuery(t *testing.T) {
	router := newTestRouter(&fixedCatalog{})

	w := postJSON(t, router, "/api/search", `{"query":"   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody(t, w)
	details, ok := resp["details"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "query")
}

func TestMalformedBodyRejected(t *testing.T) {
	router := newTestRouter(&fixedCatalog{})

	for _, path := range []string{"/api/recommend-all", "/api/recommend", "/api/search"} {
		w := postJSON(t, router, path, `{not json`)
		require.Equal(t, http.StatusBadRequest, w.Code, path)

		resp := decodeBody(t, w)
		assert.Equal(t, "Invalid input data", resp["error"])
	}
}

type recordingCatalog struct {
	lastTerms []string
}

func (r *recordingCatalog) Search(ctx context.Context, terms []string, difficulty string) ([]models.Course, error) {
	r.lastTerms = terms
	return nil, nil
}

func (r *recordingCatalog) RecommendByTags(ctx context.Context, interests []string, difficulty string, limit int) ([]models.Course, error) {
	return nil, nil
}
