package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"logtable-backend/internal/metrics"
	"logtable-backend/internal/model"
)

// FetchPage issues the query against the page source without blocking the
// caller. Exactly one of onSuccess or onError runs, on the fetch goroutine.
// A nil onError leaves failures visible only in the log.
func (b *Bridge) FetchPage(ctx context.Context, query Query, onSuccess func(*model.PageResponse), onError func(error)) {
	b.fetch(ctx, query, func() bool { return false }, onSuccess, onError)
}

func (b *Bridge) fetch(ctx context.Context, query Query, stale func() bool, onSuccess func(*model.PageResponse), onError func(error)) {
	requestID := uuid.NewString()
	rawQuery := query.Encode()

	go func() {
		start := time.Now()
		resp, err := b.source.Fetch(ctx, rawQuery)
		elapsed := time.Since(start)

		if err == nil && stale() {
			err = ErrStaleResponse
		}
		if err != nil {
			outcome := metrics.OutcomeError
			if errors.Is(err, ErrStaleResponse) {
				outcome = metrics.OutcomeStale
				log.Debug().Str("request_id", requestID).Msg("Dropping stale page response")
			} else {
				log.Error().Err(err).Str("request_id", requestID).Str("query", rawQuery).Msg("Page fetch failed")
			}
			metrics.ObserveFetch(outcome, elapsed)
			if onError != nil {
				onError(err)
			}
			return
		}

		metrics.ObserveFetch(metrics.OutcomeSuccess, elapsed)
		log.Debug().
			Str("request_id", requestID).
			Int64("total_results", resp.TotalResultCount).
			Int("returned_rows", len(resp.Records)).
			Dur("elapsed", elapsed).
			Msg("Page fetch succeeded")
		onSuccess(resp)
	}()
}

// Table is one widget instance. Only the most recently issued fetch on a
// table may complete successfully; older completions are reported to their
// onError as ErrStaleResponse.
type Table struct {
	ID       string
	bridge   *Bridge
	seq      atomic.Uint64
	lastUsed atomic.Int64
}

func NewTable(id string, b *Bridge) *Table {
	t := &Table{ID: id, bridge: b}
	t.touch()
	return t
}

func (t *Table) FetchPage(ctx context.Context, query Query, onSuccess func(*model.PageResponse), onError func(error)) {
	t.touch()
	seq := t.seq.Add(1)
	stale := func() bool { return t.seq.Load() != seq }
	wrappedErr := onError
	if onError != nil {
		wrappedErr = func(err error) {
			if errors.Is(err, ErrStaleResponse) {
				onError(fmt.Errorf("table %s: %w", t.ID, err))
				return
			}
			onError(err)
		}
	}
	t.bridge.fetch(ctx, query, stale, onSuccess, wrappedErr)
}

// LastUsed reports when a fetch was last issued on the table.
func (t *Table) LastUsed() time.Time {
	return time.Unix(0, t.lastUsed.Load())
}

func (t *Table) touch() {
	t.lastUsed.Store(time.Now().UnixNano())
}
