package hrclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-utils/internal/config"
	"talent-utils/pkg/models"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := &config.Config{}
	cfg.HRBackend.BaseURL = baseURL
	cfg.HRBackend.APIToken = "test-token"
	cfg.HRBackend.Timeout = 5 * time.Second
	cfg.HRBackend.MaxRetries = 3
	cfg.HRBackend.RetryDelay = time.Millisecond
	return NewClient(cfg)
}

func TestGetSkills(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/skills", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.LookupEntity{{ID: 1, Name: "Go"}})
	}))
	defer server.Close()

	skills, err := testClient(t, server.URL).GetSkills(context.Background())
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Name)
}

func TestGetRetriesTransientFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]models.JobRoleLevel{{ID: 2, Position: "Backend Developer", Level: "Senior"}})
	}))
	defer server.Close()

	levels, err := testClient(t, server.URL).GetJobRoleLevels(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetExhaustsRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).GetCertificateTypes(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestCreateAvailabilityDoesNotRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	start := time.Now()
	_, err := testClient(t, server.URL).CreateAvailability(context.Background(), models.AvailabilityInterval{
		TalentID:  "t1",
		StartTime: start.Add(time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCreateAvailabilityDecodesCreated(t *testing.T) {
	end := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/talents/t1/availability", r.URL.Path)

		var interval models.AvailabilityInterval
		require.NoError(t, json.NewDecoder(r.Body).Decode(&interval))
		interval.ID = 99

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(interval)
	}))
	defer server.Close()

	created, err := testClient(t, server.URL).CreateAvailability(context.Background(), models.AvailabilityInterval{
		TalentID:  "t1",
		StartTime: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		EndTime:   &end,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), created.ID)
}

func TestGetAvailability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/talents/t1/availability", r.URL.Path)
		json.NewEncoder(w).Encode([]models.AvailabilityInterval{
			{ID: 1, StartTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		})
	}))
	defer server.Close()

	intervals, err := testClient(t, server.URL).GetAvailability(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Nil(t, intervals[0].EndTime)
}
