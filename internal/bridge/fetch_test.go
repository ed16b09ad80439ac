package bridge_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logtable-backend/internal/bridge"
	"logtable-backend/internal/model"
)

// gatedSource blocks each Fetch until the gate registered for its query is closed.
type gatedSource struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	queries []string
	err     error
}

func newGatedSource() *gatedSource {
	return &gatedSource{gates: make(map[string]chan struct{})}
}

func (s *gatedSource) gate(rawQuery string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.gates[rawQuery]
	if !ok {
		g = make(chan struct{})
		s.gates[rawQuery] = g
	}
	return g
}

func (s *gatedSource) Fetch(ctx context.Context, rawQuery string) (*model.PageResponse, error) {
	s.mu.Lock()
	s.queries = append(s.queries, rawQuery)
	s.mu.Unlock()

	select {
	case <-s.gate(rawQuery):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return &model.PageResponse{
		TotalResultCount: 1,
		Records:          []model.LogRecord{{SeverityType: "NOTICE", Message: rawQuery}},
	}, nil
}

type outcome struct {
	resp *model.PageResponse
	err  error
}

func collect() (chan outcome, func(*model.PageResponse), func(error)) {
	ch := make(chan outcome, 2)
	return ch,
		func(r *model.PageResponse) { ch <- outcome{resp: r} },
		func(err error) { ch <- outcome{err: err} }
}

func waitOutcome(t *testing.T, ch chan outcome) outcome {
	t.Helper()
	select {
	case o := <-ch:
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch callback")
		return outcome{}
	}
}

func newBridge(t *testing.T, source *gatedSource) *bridge.Bridge {
	t.Helper()
	b, err := bridge.Initialize(bridge.Config{SortField: bridge.DefaultSortField}, source)
	require.NoError(t, err)
	return b
}

func TestInitialize_Validates(t *testing.T) {
	_, err := bridge.Initialize(bridge.Config{SortField: " "}, newGatedSource())
	assert.Error(t, err)

	_, err = bridge.Initialize(bridge.Config{SortField: "sSortDir_0"}, nil)
	assert.Error(t, err)
}

func TestFetchPage_DoesNotBlockAndCallsSuccessOnce(t *testing.T) {
	source := newGatedSource()
	b := newBridge(t, source)
	q := b.BuildQuery(model.PageRequest{PageIndex: 0, PageSize: 10}, nil)

	ch, onSuccess, onError := collect()
	b.FetchPage(context.Background(), q, onSuccess, onError)

	// FetchPage has returned while the source is still blocked.
	select {
	case <-ch:
		t.Fatal("callback fired before the source answered")
	default:
	}

	close(source.gate(q.Encode()))
	o := waitOutcome(t, ch)
	require.NoError(t, o.err)
	assert.Equal(t, "page=0&size=10&sort=DESC", o.resp.Records[0].Message)

	select {
	case extra := <-ch:
		t.Fatalf("unexpected second callback: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFetchPage_ErrorCallback(t *testing.T) {
	source := newGatedSource()
	source.err = errors.New("connection refused")
	b := newBridge(t, source)
	q := b.BuildQuery(model.PageRequest{PageSize: 10}, nil)
	close(source.gate(q.Encode()))

	ch, onSuccess, onError := collect()
	b.FetchPage(context.Background(), q, onSuccess, onError)

	o := waitOutcome(t, ch)
	assert.Nil(t, o.resp)
	assert.EqualError(t, o.err, "connection refused")
}

func TestFetchPage_NilErrorCallbackIsSilent(t *testing.T) {
	source := newGatedSource()
	source.err = errors.New("boom")
	b := newBridge(t, source)
	q := b.BuildQuery(model.PageRequest{PageSize: 10}, nil)
	close(source.gate(q.Encode()))

	called := make(chan struct{}, 1)
	b.FetchPage(context.Background(), q, func(*model.PageResponse) { called <- struct{}{} }, nil)

	select {
	case <-called:
		t.Fatal("success callback must not fire on failure")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTable_DropsStaleResponse(t *testing.T) {
	source := newGatedSource()
	b := newBridge(t, source)
	table := bridge.NewTable("tbl-1", b)

	first := b.BuildQuery(model.PageRequest{PageIndex: 0, PageSize: 10}, nil)
	second := b.BuildQuery(model.PageRequest{PageIndex: 1, PageSize: 10}, nil)

	firstCh, firstOK, firstErr := collect()
	secondCh, secondOK, secondErr := collect()
	table.FetchPage(context.Background(), first, firstOK, firstErr)
	table.FetchPage(context.Background(), second, secondOK, secondErr)

	// The older request completes last in wall-clock terms but was superseded either way.
	close(source.gate(second.Encode()))
	o := waitOutcome(t, secondCh)
	require.NoError(t, o.err)
	assert.Equal(t, second.Encode(), o.resp.Records[0].Message)

	close(source.gate(first.Encode()))
	o = waitOutcome(t, firstCh)
	assert.Nil(t, o.resp)
	assert.ErrorIs(t, o.err, bridge.ErrStaleResponse)
}

func TestTable_LastUsed(t *testing.T) {
	b := newBridge(t, newGatedSource())
	before := time.Now().Add(-time.Millisecond)
	table := bridge.NewTable("tbl-2", b)

	assert.True(t, table.LastUsed().After(before))
	assert.Equal(t, "tbl-2", table.ID)
}
