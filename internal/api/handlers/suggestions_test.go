package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-utils/internal/cache"
	"talent-utils/internal/config"
	"talent-utils/internal/hrclient"
	"talent-utils/internal/lookup"
	"talent-utils/pkg/models"
)

func lookupFixture(t *testing.T) *lookup.Store {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/skills":
			json.NewEncoder(w).Encode([]models.LookupEntity{
				{ID: 1, Name: "Go"},
				{ID: 2, Name: "PostgreSQL"},
			})
		case "/certificate-types":
			json.NewEncoder(w).Encode([]models.LookupEntity{
				{ID: 5, Name: "Project Management Professional (PMP)"},
			})
		case "/job-role-levels":
			json.NewEncoder(w).Encode([]models.JobRoleLevel{
				{ID: 7, Position: "Backend Developer", Level: "Senior"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.HRBackend.BaseURL = server.URL
	cfg.HRBackend.Timeout = 5 * time.Second
	cfg.HRBackend.MaxRetries = 1
	cfg.HRBackend.RetryDelay = time.Millisecond
	cfg.Lookup.RefreshInterval = time.Hour

	store := lookup.NewStore(cfg, hrclient.NewClient(cfg))
	require.NoError(t, store.Refresh(context.Background()))
	return store
}

func suggestionRequest(handler echo.HandlerFunc, method, kind, talentID string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("kind", "talentId")
	c.SetParamValues(kind, talentID)
	_ = handler(c)
	return rec
}

func TestConsumeSuggestionsReconcilesAndClears(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)
	lookups := lookupFixture(t)

	payload, _ := json.Marshal([]string{"Go", "Rust"})
	key := cache.BuildKey("", models.KindSkills, "t1")
	require.NoError(t, store.Put(context.Background(), key, cache.StagedSuggestions{
		Kind:    models.KindSkills,
		Payload: payload,
	}))

	handler := ConsumeSuggestionsHandler(store, lookups)

	rec := suggestionRequest(handler, http.MethodPost, "skills", "t1")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.ConsumeSuggestionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.KindSkills, resp.Kind)
	assert.Equal(t, 1, resp.Unmatched)

	prefills, ok := resp.Prefills.([]interface{})
	require.True(t, ok)
	assert.Len(t, prefills, 2)

	// The entry is gone; a second consume finds nothing
	rec = suggestionRequest(handler, http.MethodPost, "skills", "t1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConsumeCertificatesEndToEnd(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)
	lookups := lookupFixture(t)

	payload, _ := json.Marshal([]models.CertificateSuggestion{
		{Name: "PMP", IssuedDate: "2022"},
	})
	key := cache.BuildKey("", models.KindCertificates, "t1")
	require.NoError(t, store.Put(context.Background(), key, cache.StagedSuggestions{
		Kind:    models.KindCertificates,
		Payload: payload,
	}))

	rec := suggestionRequest(ConsumeSuggestionsHandler(store, lookups), http.MethodPost, "certificates", "t1")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Prefills []models.CertificatePrefill `json:"prefills"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Prefills, 1)
	assert.Equal(t, int64(5), resp.Prefills[0].CertificateTypeID)
	assert.Equal(t, "2022-01-01", resp.Prefills[0].IssuedDate)
	assert.True(t, resp.Prefills[0].Matched)
}

func TestPeekSuggestionsDoesNotConsume(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)

	payload, _ := json.Marshal([]string{"Go"})
	key := cache.BuildKey("", models.KindSkills, "t1")
	require.NoError(t, store.Put(context.Background(), key, cache.StagedSuggestions{
		Kind:    models.KindSkills,
		Payload: payload,
	}))

	handler := PeekSuggestionsHandler(store)

	for i := 0; i < 2; i++ {
		rec := suggestionRequest(handler, http.MethodGet, "skills", "t1")
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp models.SuggestionPeekResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
	}
}

func TestDismissSuggestions(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)

	payload, _ := json.Marshal([]string{"Go"})
	key := cache.BuildKey("", models.KindSkills, "t1")
	require.NoError(t, store.Put(context.Background(), key, cache.StagedSuggestions{
		Kind:    models.KindSkills,
		Payload: payload,
	}))

	rec := suggestionRequest(DismissSuggestionsHandler(store), http.MethodDelete, "skills", "t1")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = suggestionRequest(PeekSuggestionsHandler(store), http.MethodGet, "skills", "t1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidSuggestionKindRejected(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)

	rec := suggestionRequest(PeekSuggestionsHandler(store), http.MethodGet, "hobbies", "t1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_suggestion_kind", resp.Error)
}
