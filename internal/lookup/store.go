package lookup

import (
	"context"
	"sync"
	"time"

	"talent-utils/internal/config"
	"talent-utils/internal/hrclient"
	"talent-utils/internal/logging"
	"talent-utils/pkg/models"
)

// Store holds an in-memory snapshot of the HR backend's canonical lookup
// lists. Reads never block on the network; the snapshot refreshes in the
// background on a fixed interval.
type Store struct {
	client          *hrclient.Client
	refreshInterval time.Duration
	logger          logging.Logger

	mu          sync.RWMutex
	skills      []models.LookupEntity
	certTypes   []models.LookupEntity
	roleLevels  []models.JobRoleLevel
	lastRefresh time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewStore creates a new lookup store backed by the HR backend client
func NewStore(cfg *config.Config, client *hrclient.Client) *Store {
	return &Store{
		client:          client,
		refreshInterval: cfg.Lookup.RefreshInterval,
		logger:          logging.GetGlobalLogger(),
		stopCh:          make(chan struct{}),
		doneCh:          make(chan struct{}),
	}
}

// Start performs an initial refresh and launches the background refresh
// loop. The initial refresh failing is not fatal; suggestions degrade to
// unmatched until the backend becomes reachable.
func (s *Store) Start(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("Initial lookup refresh failed - matching will degrade until the HR backend is reachable", map[string]interface{}{
			"error": err.Error(),
		})
	}

	go s.refreshLoop()
	return nil
}

// Stop terminates the background refresh loop
func (s *Store) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

func (s *Store) refreshLoop() {
	defer close(s.doneCh)

	interval := s.refreshInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn("Scheduled lookup refresh failed - keeping previous snapshot", map[string]interface{}{
					"error": err.Error(),
				})
			}
			cancel()
		}
	}
}

// Refresh pulls all three lookup lists and swaps the snapshot atomically.
// A partial failure keeps the entire previous snapshot; the lists stay
// mutually consistent.
func (s *Store) Refresh(ctx context.Context) error {
	skills, err := s.client.GetSkills(ctx)
	if err != nil {
		return err
	}
	certTypes, err := s.client.GetCertificateTypes(ctx)
	if err != nil {
		return err
	}
	roleLevels, err := s.client.GetJobRoleLevels(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.skills = skills
	s.certTypes = certTypes
	s.roleLevels = roleLevels
	s.lastRefresh = time.Now()
	s.mu.Unlock()

	s.logger.Info("Lookup snapshot refreshed", map[string]interface{}{
		"skills":            len(skills),
		"certificate_types": len(certTypes),
		"job_role_levels":   len(roleLevels),
	})

	return nil
}

// Skills returns the current skill snapshot
func (s *Store) Skills() []models.LookupEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skills
}

// CertificateTypes returns the current certificate-type snapshot
func (s *Store) CertificateTypes() []models.LookupEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.certTypes
}

// JobRoleLevels returns the current job-role-level snapshot
func (s *Store) JobRoleLevels() []models.JobRoleLevel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roleLevels
}

// LastRefresh reports when the snapshot was last replaced. Zero means no
// successful refresh yet.
func (s *Store) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}
