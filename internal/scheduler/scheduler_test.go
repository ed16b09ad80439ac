package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"logtable-backend/config"
	"logtable-backend/internal/bridge"
	"logtable-backend/internal/dto"
	"logtable-backend/internal/model"
	"logtable-backend/internal/scheduler"
	"logtable-backend/internal/store"
)

type countingHealth struct {
	probes chan struct{}
}

func (h *countingHealth) Probe(ctx context.Context) error {
	select {
	case h.probes <- struct{}{}:
	default:
	}
	return nil
}
func (h *countingHealth) WaitForUpstream(ctx context.Context) error { return nil }
func (h *countingHealth) Status() dto.HealthResponse                { return dto.HealthResponse{} }

type nopSource struct{}

func (nopSource) Fetch(ctx context.Context, rawQuery string) (*model.PageResponse, error) {
	return &model.PageResponse{}, nil
}

func newTables(t *testing.T) store.TableStore {
	t.Helper()
	b, err := bridge.Initialize(bridge.Config{SortField: bridge.DefaultSortField}, nopSource{})
	require.NoError(t, err)
	return store.NewInMemoryTableStore(b)
}

func TestNewScheduler_RunsProbe(t *testing.T) {
	cfg := &config.Config{}
	cfg.Health.Schedule = "@every 1s"
	cfg.LogSearch.Timeout = time.Second
	cfg.Table.SessionIdleTTL = time.Hour

	health := &countingHealth{probes: make(chan struct{}, 1)}
	lc := fxtest.NewLifecycle(t)
	c, err := scheduler.NewScheduler(lc, cfg, health, newTables(t))
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Len(t, c.Entries(), 1)

	lc.RequireStart()
	defer lc.RequireStop()

	select {
	case <-health.probes:
	case <-time.After(3 * time.Second):
		t.Fatal("probe job did not run")
	}
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	cfg := &config.Config{}
	cfg.Health.Schedule = "every now and then"

	_, err := scheduler.NewScheduler(fxtest.NewLifecycle(t), cfg, &countingHealth{}, newTables(t))
	assert.Error(t, err)
}
