package service

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/rs/zerolog/log"

	"logtable-backend/config"
	"logtable-backend/internal/dto"
	"logtable-backend/internal/metrics"
)

const (
	StatusUp      = "up"
	StatusDown    = "down"
	StatusUnknown = "unknown"
)

// Pinger checks that the log search endpoint answers.
type Pinger interface {
	Ping(ctx context.Context) error
	Endpoint() string
}

type HealthService interface {
	Probe(ctx context.Context) error
	// WaitForUpstream retries Probe with exponential backoff until it
	// succeeds or the configured budget is spent.
	WaitForUpstream(ctx context.Context) error
	Status() dto.HealthResponse
}

type healthService struct {
	pinger     Pinger
	maxElapsed time.Duration

	mu        sync.RWMutex
	status    string
	checkedAt time.Time
	lastErr   error
}

func NewHealthService(cfg *config.Config, pinger Pinger) HealthService {
	return &healthService{
		pinger:     pinger,
		maxElapsed: cfg.LogSearch.ProbeMaxElapsed,
		status:     StatusUnknown,
	}
}

func (s *healthService) Probe(ctx context.Context) error {
	err := s.pinger.Ping(ctx)

	s.mu.Lock()
	s.checkedAt = time.Now().UTC()
	s.lastErr = err
	if err != nil {
		s.status = StatusDown
	} else {
		s.status = StatusUp
	}
	s.mu.Unlock()

	metrics.SetUpstreamUp(err == nil)
	if err != nil {
		log.Warn().Err(err).Str("endpoint", s.pinger.Endpoint()).Msg("Log search endpoint probe failed")
	}
	return err
}

func (s *healthService) WaitForUpstream(ctx context.Context) error {
	probeBackoff := backoff.NewExponentialBackOff()
	probeBackoff.InitialInterval = 2 * time.Second
	probeBackoff.MaxInterval = 15 * time.Second
	probeBackoff.MaxElapsedTime = s.maxElapsed

	log.Info().Str("endpoint", s.pinger.Endpoint()).Msg("Probing log search endpoint with retries...")
	err := backoff.Retry(func() error {
		return s.Probe(ctx)
	}, backoff.WithContext(probeBackoff, ctx))
	if err != nil {
		return err
	}
	log.Info().Str("endpoint", s.pinger.Endpoint()).Msg("Log search endpoint is reachable")
	return nil
}

func (s *healthService) Status() dto.HealthResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := dto.HealthResponse{
		Status:   s.status,
		Upstream: s.pinger.Endpoint(),
	}
	if !s.checkedAt.IsZero() {
		resp.CheckedAt = s.checkedAt.Format(time.RFC3339)
	}
	if s.lastErr != nil {
		resp.Error = s.lastErr.Error()
	}
	return resp
}
