package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-utils/internal/config"
	"talent-utils/internal/hrclient"
	"talent-utils/pkg/models"
)

func backendFixture(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/skills":
			json.NewEncoder(w).Encode([]models.LookupEntity{{ID: 1, Name: "Go"}})
		case "/certificate-types":
			json.NewEncoder(w).Encode([]models.LookupEntity{{ID: 2, Name: "PMP"}})
		case "/job-role-levels":
			json.NewEncoder(w).Encode([]models.JobRoleLevel{{ID: 3, Position: "Backend Developer", Level: "Senior"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func storeConfig(baseURL string, refreshInterval time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.HRBackend.BaseURL = baseURL
	cfg.HRBackend.Timeout = 5 * time.Second
	cfg.HRBackend.MaxRetries = 1
	cfg.HRBackend.RetryDelay = time.Millisecond
	cfg.Lookup.RefreshInterval = refreshInterval
	return cfg
}

func TestRefreshPopulatesSnapshot(t *testing.T) {
	server := backendFixture(t)
	cfg := storeConfig(server.URL, time.Hour)

	store := NewStore(cfg, hrclient.NewClient(cfg))
	require.NoError(t, store.Refresh(context.Background()))

	assert.Len(t, store.Skills(), 1)
	assert.Len(t, store.CertificateTypes(), 1)
	assert.Len(t, store.JobRoleLevels(), 1)
	assert.False(t, store.LastRefresh().IsZero())
}

func TestRefreshKeepsPreviousSnapshotOnFailure(t *testing.T) {
	server := backendFixture(t)
	cfg := storeConfig(server.URL, time.Hour)

	store := NewStore(cfg, hrclient.NewClient(cfg))
	require.NoError(t, store.Refresh(context.Background()))

	// Point at a dead backend; the failed refresh must not clear the lists
	deadCfg := storeConfig("http://127.0.0.1:1", time.Hour)
	store.client = hrclient.NewClient(deadCfg)

	assert.Error(t, store.Refresh(context.Background()))
	assert.Len(t, store.Skills(), 1)
}

func TestStartWithZeroRefreshInterval(t *testing.T) {
	server := backendFixture(t)
	cfg := storeConfig(server.URL, 0)

	store := NewStore(cfg, hrclient.NewClient(cfg))
	require.NoError(t, store.Start(context.Background()))
	store.Stop()

	assert.Len(t, store.Skills(), 1)
}
