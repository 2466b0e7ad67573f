package viewstate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"example.com/fitnessclient/internal/domain"
)

type stubLister struct {
	mu     sync.Mutex
	calls  int
	result []domain.Activity
	err    error
}

func (s *stubLister) List(context.Context) ([]domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.result, s.err
}

// gatedLister blocks each call until the test releases it.
type gatedLister struct {
	started chan int
	release []chan result
	mu      sync.Mutex
	n       int
}

type result struct {
	activities []domain.Activity
	err        error
}

func newGatedLister(calls int) *gatedLister {
	g := &gatedLister{started: make(chan int, calls)}
	for i := 0; i < calls; i++ {
		g.release = append(g.release, make(chan result, 1))
	}
	return g
}

func (g *gatedLister) List(ctx context.Context) ([]domain.Activity, error) {
	g.mu.Lock()
	idx := g.n
	g.n++
	g.mu.Unlock()

	g.started <- idx
	select {
	case r := <-g.release[idx]:
		return r.activities, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestListControllerReady(t *testing.T) {
	lister := &stubLister{result: []domain.Activity{{ID: "a1"}, {ID: "a2"}}}
	ctrl := NewListController(lister, WithLogger(zaptest.NewLogger(t)))
	require.Equal(t, PhaseIdle, ctrl.State().Phase)

	var phases []Phase
	ctrl.Subscribe(func(st ListState) { phases = append(phases, st.Phase) })

	st := ctrl.Load(context.Background())
	require.Equal(t, PhaseReady, st.Phase)
	require.Len(t, st.Data, 2)
	require.False(t, ctrl.Empty())
	require.Equal(t, []Phase{PhaseLoading, PhaseReady}, phases)
}

func TestListControllerEmptyIsReadyNotError(t *testing.T) {
	ctrl := NewListController(&stubLister{result: []domain.Activity{}})

	st := ctrl.Load(context.Background())
	require.Equal(t, PhaseReady, st.Phase)
	require.NoError(t, st.Err)
	require.Empty(t, st.Data)
	require.True(t, ctrl.Empty())
}

func TestListControllerFailureDoesNotRetry(t *testing.T) {
	lister := &stubLister{err: errors.New("connection refused")}
	ctrl := NewListController(lister)

	st := ctrl.Load(context.Background())
	require.Equal(t, PhaseFailed, st.Phase)
	require.Equal(t, ListFailedMessage, st.Message)
	require.False(t, st.NotFound())
	require.Equal(t, 1, lister.calls)

	lister.mu.Lock()
	lister.err = nil
	lister.result = []domain.Activity{{ID: "a1"}}
	lister.mu.Unlock()

	ctrl.Refresh(context.Background())
	require.Equal(t, PhaseReady, ctrl.State().Phase)
	require.Equal(t, 2, lister.calls)
}

func TestListControllerDiscardsSupersededLoad(t *testing.T) {
	lister := newGatedLister(2)
	ctrl := NewListController(lister)

	firstDone := make(chan ListState, 1)
	go func() { firstDone <- ctrl.Load(context.Background()) }()
	require.Equal(t, 0, <-lister.started)

	secondDone := make(chan ListState, 1)
	go func() { secondDone <- ctrl.Load(context.Background()) }()
	require.Equal(t, 1, <-lister.started)

	lister.release[1] <- result{activities: []domain.Activity{{ID: "fresh"}}}
	st := <-secondDone
	require.Equal(t, PhaseReady, st.Phase)

	// The first load was cancelled when the second began; its outcome must not land.
	lister.release[0] <- result{activities: []domain.Activity{{ID: "stale"}}}
	<-firstDone

	final := ctrl.State()
	require.Equal(t, PhaseReady, final.Phase)
	require.Equal(t, "fresh", final.Data[0].ID)
}

func TestListControllerCloseDropsInFlightResult(t *testing.T) {
	lister := newGatedLister(1)
	ctrl := NewListController(lister)

	notified := 0
	ctrl.Subscribe(func(ListState) { notified++ })

	done := make(chan ListState, 1)
	go func() { done <- ctrl.Load(context.Background()) }()
	<-lister.started

	ctrl.Close()
	select {
	case st := <-done:
		require.Equal(t, PhaseLoading, st.Phase)
	case <-time.After(5 * time.Second):
		t.Fatal("load did not observe cancellation")
	}
	require.Equal(t, PhaseLoading, ctrl.State().Phase)
	require.Equal(t, 1, notified)

	st := ctrl.Load(context.Background())
	require.Equal(t, PhaseLoading, st.Phase)
}
