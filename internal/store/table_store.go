package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"logtable-backend/internal/bridge"
	"logtable-backend/internal/metrics"
)

// TableStore tracks widget table instances so that each keeps its own
// stale-response guard across requests.
type TableStore interface {
	// Table returns the table for id, creating it if needed. An empty id
	// yields a fresh, untracked table.
	Table(ctx context.Context, id string) *bridge.Table
	EvictIdle(ctx context.Context, idle time.Duration) int
	Len() int
}

type inMemoryTableStore struct {
	bridge *bridge.Bridge
	tables map[string]*bridge.Table
	mu     sync.RWMutex
}

func NewInMemoryTableStore(b *bridge.Bridge) TableStore {
	return &inMemoryTableStore{
		bridge: b,
		tables: make(map[string]*bridge.Table),
	}
}

func (s *inMemoryTableStore) Table(ctx context.Context, id string) *bridge.Table {
	if id == "" {
		return bridge.NewTable(uuid.NewString(), s.bridge)
	}

	s.mu.RLock()
	t, ok := s.tables[id]
	s.mu.RUnlock()
	if ok {
		return t
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tables[id]; ok {
		return t
	}
	t = bridge.NewTable(id, s.bridge)
	s.tables[id] = t
	metrics.SetTableSessions(len(s.tables))
	log.Debug().Str("table_id", id).Msg("Tracking new table instance")
	return t
}

func (s *inMemoryTableStore) EvictIdle(ctx context.Context, idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, t := range s.tables {
		if t.LastUsed().Before(cutoff) {
			delete(s.tables, id)
			evicted++
		}
	}
	metrics.SetTableSessions(len(s.tables))
	if evicted > 0 {
		log.Debug().Int("evicted", evicted).Int("remaining", len(s.tables)).Msg("Evicted idle table instances")
	}
	return evicted
}

func (s *inMemoryTableStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}
