package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-utils/internal/config"
	"talent-utils/internal/hrclient"
	"talent-utils/pkg/models"
)

func availabilityBackend(t *testing.T, existing []models.AvailabilityInterval) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(existing)
		case r.Method == http.MethodPost:
			var interval models.AvailabilityInterval
			require.NoError(t, json.NewDecoder(r.Body).Decode(&interval))
			interval.ID = 7
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(interval)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
}

func availabilityClient(t *testing.T, baseURL string) *hrclient.Client {
	t.Helper()
	cfg := &config.Config{}
	cfg.HRBackend.BaseURL = baseURL
	cfg.HRBackend.Timeout = 5 * time.Second
	cfg.HRBackend.MaxRetries = 1
	cfg.HRBackend.RetryDelay = time.Millisecond
	return hrclient.NewClient(cfg)
}

func postJSON(handler echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = handler(c)
	return rec
}

func TestCheckAvailabilityConflict(t *testing.T) {
	existingEnd := time.Now().Add(90 * 24 * time.Hour)
	existing := []models.AvailabilityInterval{
		{ID: 1, StartTime: time.Now().Add(24 * time.Hour), EndTime: &existingEnd},
		{ID: 2, StartTime: existingEnd.Add(24 * time.Hour)},
	}

	server := availabilityBackend(t, existing)
	defer server.Close()

	handler := CheckAvailabilityHandler(availabilityClient(t, server.URL))

	body, _ := json.Marshal(models.AvailabilityCheckRequest{
		TalentID:  "t1",
		StartTime: time.Now().Add(48 * time.Hour),
	})

	rec := postJSON(handler, string(body))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp models.AvailabilityCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Conflict)
	require.NotNil(t, resp.ConflictsWith)
	// First conflicting interval in list order is cited
	assert.Equal(t, int64(1), resp.ConflictsWith.ID)
}

func TestCheckAvailabilityNoConflict(t *testing.T) {
	end := time.Now().Add(48 * time.Hour)
	existing := []models.AvailabilityInterval{
		{ID: 1, StartTime: time.Now().Add(24 * time.Hour), EndTime: &end},
	}

	server := availabilityBackend(t, existing)
	defer server.Close()

	handler := CheckAvailabilityHandler(availabilityClient(t, server.URL))

	body, _ := json.Marshal(models.AvailabilityCheckRequest{
		TalentID:  "t1",
		StartTime: end.Add(time.Hour),
	})

	rec := postJSON(handler, string(body))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.AvailabilityCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Conflict)
}

func TestCheckAvailabilityRejectsPastStart(t *testing.T) {
	server := availabilityBackend(t, nil)
	defer server.Close()

	handler := CheckAvailabilityHandler(availabilityClient(t, server.URL))

	body, _ := json.Marshal(models.AvailabilityCheckRequest{
		TalentID:  "t1",
		StartTime: time.Now().Add(-time.Hour),
	})

	rec := postJSON(handler, string(body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_TEMPORAL_INPUT", resp.Error)
}

func TestCreateAvailabilityForwardsOnCleanCheck(t *testing.T) {
	server := availabilityBackend(t, nil)
	defer server.Close()

	handler := CreateAvailabilityHandler(availabilityClient(t, server.URL))

	body, _ := json.Marshal(models.AvailabilityCheckRequest{
		TalentID:  "t1",
		StartTime: time.Now().Add(time.Hour),
	})

	rec := postJSON(handler, string(body))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp models.AvailabilityCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Created)
	assert.Equal(t, int64(7), resp.Created.ID)
}

func TestCreateAvailabilityStopsOnConflict(t *testing.T) {
	existing := []models.AvailabilityInterval{
		{ID: 3, StartTime: time.Now().Add(time.Minute)},
	}

	server := availabilityBackend(t, existing)
	defer server.Close()

	handler := CreateAvailabilityHandler(availabilityClient(t, server.URL))

	body, _ := json.Marshal(models.AvailabilityCheckRequest{
		TalentID:  "t1",
		StartTime: time.Now().Add(2 * time.Hour),
	})

	rec := postJSON(handler, string(body))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp models.AvailabilityCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Conflict)
	assert.Nil(t, resp.Created)
}
