package loader

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/district-quiz/internal/quiz"
)

type loadCall struct {
	source  string
	records int
	err     error
}

type observerStub struct {
	calls []loadCall
}

func (o *observerStub) ObserveLoad(source string, _ time.Duration, records int, err error) {
	o.calls = append(o.calls, loadCall{source: source, records: records, err: err})
}

func TestCatalogStartsNotReady(t *testing.T) {
	catalog := NewCatalog(&countingSource{}, 0, nil, zerolog.Nop())
	snap := catalog.Snapshot()
	assert.False(t, snap.Ready())
	assert.ErrorIs(t, snap.Err, ErrNotLoaded)
}

func TestCatalogLoad(t *testing.T) {
	src := &countingSource{records: []quiz.Record{
		{Street: "Elm", Districts: []int{3, 1}},
		{Street: "Pine", Districts: []int{1, 3}},
		{Street: "Oak", Districts: []int{2}},
	}}
	obs := &observerStub{}
	catalog := NewCatalog(src, time.Second, obs, zerolog.Nop())

	snap, err := catalog.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Ready())
	assert.Equal(t, []int{1, 3}, snap.Records[0].Districts)
	assert.Equal(t, 2, snap.UniqueSets())
	assert.False(t, snap.LoadedAt.IsZero())
	assert.Equal(t, snap, catalog.Snapshot())
	assert.Equal(t, []loadCall{{source: "stub", records: 3}}, obs.calls)
}

func TestCatalogInitialFailure(t *testing.T) {
	src := &countingSource{err: errors.New("connection refused")}
	catalog := NewCatalog(src, time.Second, nil, zerolog.Nop())

	snap, err := catalog.Load(context.Background())
	require.Error(t, err)
	assert.False(t, snap.Ready())
	assert.ErrorContains(t, catalog.Snapshot().Err, "connection refused")
}

func TestCatalogEmptySetIsFailure(t *testing.T) {
	catalog := NewCatalog(&countingSource{records: []quiz.Record{}}, time.Second, nil, zerolog.Nop())

	_, err := catalog.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestCatalogFailedRefreshKeepsPrevious(t *testing.T) {
	src := &countingSource{records: []quiz.Record{{Street: "Elm", Districts: []int{1}}}}
	catalog := NewCatalog(src, time.Second, nil, zerolog.Nop())
	_, err := catalog.Load(context.Background())
	require.NoError(t, err)

	src.err = errors.New("boom")
	snap, err := catalog.Load(context.Background())
	assert.Error(t, err)
	assert.True(t, snap.Ready())
	assert.Len(t, catalog.Snapshot().Records, 1)
}

type notifierStub struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (n *notifierStub) CatalogUpdated(_ context.Context, snap Snapshot) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.snaps = append(n.snaps, snap)
	return nil
}

func (n *notifierStub) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.snaps)
}

func TestRefreshWorkerNotifies(t *testing.T) {
	src := &countingSource{records: []quiz.Record{{Street: "Elm", Districts: []int{1}}}}
	catalog := NewCatalog(src, time.Second, nil, zerolog.Nop())
	notifier := &notifierStub{}
	worker := NewRefreshWorker(catalog, notifier, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	assert.Eventually(t, func() bool { return notifier.count() > 0 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.True(t, catalog.Snapshot().Ready())
}

func TestRefreshWorkerDisabled(t *testing.T) {
	worker := NewRefreshWorker(nil, nil, 0, zerolog.Nop())
	assert.NoError(t, worker.Run(context.Background()))
}

func TestHTTPHandlerSummary(t *testing.T) {
	src := &countingSource{records: []quiz.Record{{Street: "Elm", Districts: []int{1}}}}
	catalog := NewCatalog(src, time.Second, nil, zerolog.Nop())
	h := NewHTTPHandler(catalog, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.HandleGet(rec, httptest.NewRequest(http.MethodGet, "/v1/records", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	_, err := catalog.Load(context.Background())
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	h.HandleGet(rec, httptest.NewRequest(http.MethodGet, "/v1/records", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var summary Summary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.True(t, summary.Ready)
	assert.Equal(t, "stub", summary.Source)
	assert.Equal(t, 1, summary.RecordCount)
	assert.Equal(t, 1, summary.UniqueSets)
	assert.NotNil(t, summary.LoadedAt)
	assert.Empty(t, summary.Error)

	rec = httptest.NewRecorder()
	h.HandleGet(rec, httptest.NewRequest(http.MethodPost, "/v1/records", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
