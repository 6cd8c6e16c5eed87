package lead_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/salestrack-api/internal/handler/lead"
	"github.com/jwalitptl/salestrack-api/internal/store"
	"github.com/jwalitptl/salestrack-api/pkg/logger"
)

type nullPersister struct{}

func (nullPersister) Load(key string, v any) error { return nil }
func (nullPersister) Save(key string, v any)       {}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	root := store.NewRoot(nullPersister{}, log, store.RootConfig{DefaultOwner: "Sammy"})

	engine := gin.New()
	api := engine.Group("/api/v1")
	lead.NewHandler(root.Leads).RegisterRoutes(api)
	return engine
}

func makeRequest(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return w, decoded
}

func TestCreateAndGetLead(t *testing.T) {
	engine := newTestEngine()

	w, resp := makeRequest(t, engine, "POST", "/api/v1/leads", map[string]any{
		"name":    "Alice Johnson",
		"company": "Acme",
		"email":   "alice@acme.test",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", resp["status"])

	data := resp["data"].(map[string]any)
	id := data["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Cold", data["status"])

	w, resp = makeRequest(t, engine, "GET", "/api/v1/leads/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice Johnson", resp["data"].(map[string]any)["name"])
}

func TestCreateLeadRejectsMissingFields(t *testing.T) {
	engine := newTestEngine()

	w, resp := makeRequest(t, engine, "POST", "/api/v1/leads", map[string]any{
		"name": "No Email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", resp["status"])
}

func TestCreateLeadDuplicateEmailConflicts(t *testing.T) {
	engine := newTestEngine()

	w, _ := makeRequest(t, engine, "POST", "/api/v1/leads", map[string]any{
		"name": "Alice", "company": "Acme", "email": "alice@acme.test",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := makeRequest(t, engine, "POST", "/api/v1/leads", map[string]any{
		"name": "Clone", "company": "Acme", "email": "ALICE@acme.test",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error", resp["status"])
}

func TestListLeadsAppliesViewState(t *testing.T) {
	engine := newTestEngine()

	for _, l := range []map[string]any{
		{"name": "Alice", "company": "Acme", "email": "a@acme.test", "status": "Hot"},
		{"name": "Bob", "company": "Globex", "email": "b@globex.test", "status": "Cold"},
		{"name": "Carol", "company": "Initech", "email": "c@initech.test", "status": "Cold"},
	} {
		w, _ := makeRequest(t, engine, "POST", "/api/v1/leads", l)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, resp := makeRequest(t, engine, "GET", "/api/v1/leads?status=Cold&sort_by=name&sort_order=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]any)
	// total reports the whole collection, not the view.
	assert.Equal(t, float64(3), data["total"])
	leads := data["leads"].([]any)
	require.Len(t, leads, 2)
	assert.Equal(t, "Bob", leads[0].(map[string]any)["name"])
	assert.Equal(t, "Carol", leads[1].(map[string]any)["name"])
}

func TestUpdateAndDeleteLead(t *testing.T) {
	engine := newTestEngine()

	w, resp := makeRequest(t, engine, "POST", "/api/v1/leads", map[string]any{
		"name": "Alice", "company": "Acme", "email": "alice@acme.test",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := resp["data"].(map[string]any)["id"].(string)

	w, resp = makeRequest(t, engine, "PUT", "/api/v1/leads/"+id, map[string]any{
		"status": "Warm",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Warm", resp["data"].(map[string]any)["status"])

	w, _ = makeRequest(t, engine, "PUT", "/api/v1/leads/no-such-id", map[string]any{"status": "Hot"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = makeRequest(t, engine, "DELETE", "/api/v1/leads/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = makeRequest(t, engine, "DELETE", "/api/v1/leads/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBulkDelete(t *testing.T) {
	engine := newTestEngine()

	var ids []string
	for _, email := range []string{"a@x.test", "b@x.test", "c@x.test"} {
		w, resp := makeRequest(t, engine, "POST", "/api/v1/leads", map[string]any{
			"name": "Lead " + email, "company": "X", "email": email,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		ids = append(ids, resp["data"].(map[string]any)["id"].(string))
	}

	w, resp := makeRequest(t, engine, "POST", "/api/v1/leads/bulk-delete", map[string]any{
		"ids": []string{ids[0], ids[1], "no-such-id"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp["data"].(map[string]any)["deleted"])
}

func TestCheckEmailEndpoint(t *testing.T) {
	engine := newTestEngine()

	w, _ := makeRequest(t, engine, "POST", "/api/v1/leads", map[string]any{
		"name": "Alice", "company": "Acme", "email": "alice@acme.test",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := makeRequest(t, engine, "GET", "/api/v1/leads/check-email?email=alice@acme.test", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["data"].(map[string]any)["exists"])

	w, resp = makeRequest(t, engine, "GET", "/api/v1/leads/check-email?email=other@acme.test", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["data"].(map[string]any)["exists"])

	w, _ = makeRequest(t, engine, "GET", "/api/v1/leads/check-email", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFilterEndpoints(t *testing.T) {
	engine := newTestEngine()

	w, resp := makeRequest(t, engine, "POST", "/api/v1/leads/filters", map[string]any{
		"field":     "name",
		"operator":  "contains",
		"value":     "ali",
		"data_type": "text",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	filterID := resp["data"].(map[string]any)["id"].(string)
	require.NotEmpty(t, filterID)

	w, resp = makeRequest(t, engine, "GET", "/api/v1/leads/filters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"].([]any), 1)

	w, _ = makeRequest(t, engine, "PUT", "/api/v1/leads/filters/"+filterID, map[string]any{
		"value": "bob",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = makeRequest(t, engine, "DELETE", "/api/v1/leads/filters/"+filterID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = makeRequest(t, engine, "DELETE", "/api/v1/leads/filters/"+filterID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFilterConfigEndpoint(t *testing.T) {
	engine := newTestEngine()

	w, resp := makeRequest(t, engine, "GET", "/api/v1/leads/filter-config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	configs := resp["data"].([]any)
	assert.NotEmpty(t, configs)

	first := configs[0].(map[string]any)
	assert.Contains(t, first, "field")
	assert.Contains(t, first, "operators")
}
