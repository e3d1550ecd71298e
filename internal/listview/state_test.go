package listview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sachintlgt/brd-admin-sub000/internal/dtos"
)

// manualTimer is a debounce timer tests fire by hand.
type manualTimer struct {
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	wasRunning := !t.stopped
	t.stopped = true
	return wasRunning
}

func (t *manualTimer) fire() {
	if !t.stopped {
		t.stopped = true
		t.fn()
	}
}

// timerBox hands out manual timers and remembers them in creation order.
type timerBox struct {
	timers []*manualTimer
}

func (b *timerBox) factory(_ time.Duration, fn func()) Timer {
	t := &manualTimer{fn: fn}
	b.timers = append(b.timers, t)
	return t
}

func (b *timerBox) last() *manualTimer {
	return b.timers[len(b.timers)-1]
}

// fakeListAPI serves canned pages and records every query it saw.
type fakeListAPI struct {
	mu      sync.Mutex
	queries []dtos.ListQuery
	pages   []*dtos.PropertyPage
	listErr error

	deleteErr   error
	toggleErr   error
	deletedIDs  []string
	toggledIDs  []string
	featuredIDs []string

	// gates park the nth ListProperties call until its channel closes.
	gates   map[int]chan struct{}
	started chan int
}

func pageOf(ids ...string) *dtos.PropertyPage {
	props := make([]dtos.Property, len(ids))
	for i, id := range ids {
		props[i] = dtos.Property{ID: id, Name: "Property " + id, IsActive: true}
	}
	return &dtos.PropertyPage{
		Properties: props,
		Pagination: dtos.Pagination{Page: 1, Limit: 10, Total: len(ids), TotalPages: 1},
	}
}

func (a *fakeListAPI) ListProperties(_ context.Context, q dtos.ListQuery) (*dtos.PropertyPage, error) {
	a.mu.Lock()
	a.queries = append(a.queries, q)
	n := len(a.queries)
	var page *dtos.PropertyPage
	if len(a.pages) > 0 {
		page = a.pages[0]
		if len(a.pages) > 1 {
			a.pages = a.pages[1:]
		}
	} else {
		page = pageOf("p1", "p2")
	}
	err := a.listErr
	gate := a.gates[n]
	a.mu.Unlock()

	if gate != nil {
		a.started <- n
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (a *fakeListAPI) DeleteProperty(_ context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deletedIDs = append(a.deletedIDs, id)
	return a.deleteErr
}

func (a *fakeListAPI) ToggleActive(_ context.Context, id string, isActive bool) (*dtos.Property, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.toggledIDs = append(a.toggledIDs, id)
	if a.toggleErr != nil {
		return nil, a.toggleErr
	}
	return &dtos.Property{ID: id, IsActive: isActive}, nil
}

func (a *fakeListAPI) ToggleFeatured(_ context.Context, id string, isFeatured bool) (*dtos.Property, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.featuredIDs = append(a.featuredIDs, id)
	if a.toggleErr != nil {
		return nil, a.toggleErr
	}
	return &dtos.Property{ID: id, IsFeatured: isFeatured}, nil
}

func (a *fakeListAPI) queryCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.queries)
}

func (a *fakeListAPI) lastQuery() dtos.ListQuery {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.queries[len(a.queries)-1]
}

func TestInitFetchesOnceWithoutDebounce(t *testing.T) {
	api := &fakeListAPI{}
	box := &timerBox{}
	s := NewState(api, Options{NewTimer: box.factory})

	s.Init(Filters{Search: "lake"}, 2, 25)

	assert.Equal(t, 1, api.queryCount())
	assert.Empty(t, box.timers)
	q := api.lastQuery()
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 25, q.Limit)
	assert.Equal(t, "lake", q.Search)
	require.NotNil(t, s.Page())
}

func TestSetFiltersDebouncesAndCoalesces(t *testing.T) {
	api := &fakeListAPI{}
	box := &timerBox{}
	s := NewState(api, Options{NewTimer: box.factory})

	s.SetFilters(Filters{Search: "l"})
	s.SetFilters(Filters{Search: "la"})
	s.SetFilters(Filters{Search: "lake"})

	// Nothing goes out while the quiet window is open.
	assert.Zero(t, api.queryCount())
	require.Len(t, box.timers, 3)
	assert.True(t, box.timers[0].stopped)
	assert.True(t, box.timers[1].stopped)

	box.last().fire()

	assert.Equal(t, 1, api.queryCount())
	assert.Equal(t, "lake", api.lastQuery().Search)
}

func TestFilterChangeResetsToPageOne(t *testing.T) {
	api := &fakeListAPI{}
	box := &timerBox{}
	s := NewState(api, Options{NewTimer: box.factory})

	s.SetPage(5)
	require.Equal(t, 5, api.lastQuery().Page)

	s.SetFilters(Filters{Search: "lake"})
	box.last().fire()

	assert.Equal(t, 1, api.lastQuery().Page)
}

func TestSetPageFetchesImmediately(t *testing.T) {
	api := &fakeListAPI{}
	box := &timerBox{}
	s := NewState(api, Options{NewTimer: box.factory})

	s.SetPage(3)

	assert.Equal(t, 1, api.queryCount())
	assert.Equal(t, 3, api.lastQuery().Page)
}

func TestSetLimitResetsToPageOne(t *testing.T) {
	api := &fakeListAPI{}
	s := NewState(api, Options{NewTimer: (&timerBox{}).factory})

	s.SetPage(4)
	s.SetLimit(50)

	q := api.lastQuery()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 50, q.Limit)
}

func TestRepeatQueryServedFromCache(t *testing.T) {
	api := &fakeListAPI{}
	var delivered int
	s := NewState(api, Options{
		NewTimer: (&timerBox{}).factory,
		OnPage:   func(*dtos.PropertyPage) { delivered++ },
	})

	s.SetPage(2)
	s.SetPage(2)

	assert.Equal(t, 1, api.queryCount())
	assert.Equal(t, 2, delivered)
}

func TestInvalidateForcesNetworkFetch(t *testing.T) {
	api := &fakeListAPI{}
	s := NewState(api, Options{NewTimer: (&timerBox{}).factory})

	s.SetPage(2)
	s.Invalidate()
	s.SetPage(2)

	assert.Equal(t, 2, api.queryCount())
}

func TestStaleResponseDiscarded(t *testing.T) {
	gate1 := make(chan struct{})
	gate2 := make(chan struct{})
	api := &fakeListAPI{
		pages:   []*dtos.PropertyPage{pageOf("old"), pageOf("new")},
		gates:   map[int]chan struct{}{1: gate1, 2: gate2},
		started: make(chan int, 2),
	}
	var mu sync.Mutex
	var applied []*dtos.PropertyPage
	s := NewState(api, Options{
		NewTimer: (&timerBox{}).factory,
		OnPage: func(p *dtos.PropertyPage) {
			mu.Lock()
			applied = append(applied, p)
			mu.Unlock()
		},
	})

	first := make(chan struct{})
	go func() {
		s.SetPage(1)
		close(first)
	}()
	require.Equal(t, 1, <-api.started)

	second := make(chan struct{})
	go func() {
		s.SetPage(2)
		close(second)
	}()
	require.Equal(t, 2, <-api.started)

	// The newer request resolves first, then the stale one arrives.
	close(gate2)
	<-second
	close(gate1)
	<-first

	page := s.Page()
	require.NotNil(t, page)
	require.Len(t, page.Properties, 1)
	assert.Equal(t, "new", page.Properties[0].ID)

	// The stale page is never applied.
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, applied, 1)
	assert.Equal(t, "new", applied[0].Properties[0].ID)
}

func TestDeleteIsOptimisticAndRefetches(t *testing.T) {
	api := &fakeListAPI{pages: []*dtos.PropertyPage{pageOf("p1", "p2")}}
	s := NewState(api, Options{NewTimer: (&timerBox{}).factory})
	s.SetPage(1)
	require.Len(t, s.Page().Properties, 2)

	queriesBefore := api.queryCount()
	require.NoError(t, s.Delete(context.Background(), "p1"))

	assert.Equal(t, []string{"p1"}, api.deletedIDs)
	// The cache was dropped, so the confirming refetch hit the network.
	assert.Equal(t, queriesBefore+1, api.queryCount())
}

func TestDeleteRollsBackOnFailure(t *testing.T) {
	api := &fakeListAPI{
		pages:     []*dtos.PropertyPage{pageOf("p1", "p2")},
		deleteErr: errors.New("409 conflict"),
	}
	var gotErr error
	s := NewState(api, Options{
		NewTimer: (&timerBox{}).factory,
		OnError:  func(err error) { gotErr = err },
	})
	s.SetPage(1)

	err := s.Delete(context.Background(), "p1")
	require.Error(t, err)
	assert.Equal(t, err, gotErr)
}

func TestToggleActiveOptimisticThenConfirmed(t *testing.T) {
	api := &fakeListAPI{pages: []*dtos.PropertyPage{pageOf("p1", "p2")}}
	s := NewState(api, Options{NewTimer: (&timerBox{}).factory})
	s.SetPage(1)

	require.NoError(t, s.ToggleActive(context.Background(), "p1", false))
	assert.Equal(t, []string{"p1"}, api.toggledIDs)
}

func TestToggleRollsBackSnapshotOnFailure(t *testing.T) {
	api := &fakeListAPI{
		pages:     []*dtos.PropertyPage{pageOf("p1", "p2")},
		toggleErr: errors.New("403 forbidden"),
	}
	var errCount int
	s := NewState(api, Options{
		NewTimer: (&timerBox{}).factory,
		OnError:  func(error) { errCount++ },
	})
	s.SetPage(1)
	queriesBefore := api.queryCount()

	err := s.ToggleActive(context.Background(), "p1", false)
	require.Error(t, err)

	// The flipped row is restored to its pre-call value.
	page := s.Page()
	require.NotNil(t, page)
	assert.True(t, page.Properties[0].IsActive)
	assert.Equal(t, 1, errCount)
	// No confirming refetch after a rollback.
	assert.Equal(t, queriesBefore, api.queryCount())
}

func TestToggleFeaturedHitsFeaturedEndpoint(t *testing.T) {
	api := &fakeListAPI{pages: []*dtos.PropertyPage{pageOf("p1")}}
	s := NewState(api, Options{NewTimer: (&timerBox{}).factory})
	s.SetPage(1)

	require.NoError(t, s.ToggleFeatured(context.Background(), "p1", true))
	assert.Equal(t, []string{"p1"}, api.featuredIDs)
	assert.Empty(t, api.toggledIDs)
}

func TestPageStrip(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       []string
	}{
		{"no pages", 1, 0, nil},
		{"single page", 1, 1, []string{"1"}},
		{"small set shows everything", 2, 3, []string{"1", "2", "3"}},
		{"start of long set", 1, 10, []string{"1", "2", "…", "10"}},
		{"middle of long set", 5, 10, []string{"1", "…", "4", "5", "6", "…", "10"}},
		{"end of long set", 10, 10, []string{"1", "…", "9", "10"}},
		{"window adjacent to first", 3, 10, []string{"1", "2", "3", "4", "…", "10"}},
		{"window adjacent to last", 8, 10, []string{"1", "…", "7", "8", "9", "10"}},
		{"page clamped above total", 99, 5, []string{"1", "…", "4", "5"}},
		{"page clamped below one", -1, 5, []string{"1", "2", "…", "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageStrip(tt.page, tt.totalPages))
		})
	}
}
