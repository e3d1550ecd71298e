package listview

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/karlseguin/ccache/v3"

	"github.com/Sachintlgt/brd-admin-sub000/internal/dtos"
	"github.com/Sachintlgt/brd-admin-sub000/internal/utils"
)

// DebounceDelay is the quiet window applied to filter changes before a
// fetch goes out, so typing does not issue one request per keystroke.
const DebounceDelay = 600 * time.Millisecond

const (
	cacheTTL     = 5 * time.Minute
	cacheMaxSize = 64
	defaultLimit = 10
)

// ListAPI is the slice of the API client the list view needs.
type ListAPI interface {
	ListProperties(ctx context.Context, q dtos.ListQuery) (*dtos.PropertyPage, error)
	DeleteProperty(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string, isActive bool) (*dtos.Property, error)
	ToggleFeatured(ctx context.Context, id string, isFeatured bool) (*dtos.Property, error)
}

// Filters is the user-editable criteria set. Changing any of it resets the
// page to 1.
type Filters struct {
	Search     string
	Name       string
	Location   string
	IsActive   *bool
	IsFeatured *bool
	SortBy     string
	SortOrder  string
	MinPrice   *float64
	MaxPrice   *float64
	StaffID    string
}

// Timer is the schedulable delay behind debouncing, injectable for tests.
type Timer interface {
	Stop() bool
}

// TimerFactory creates a timer that fires fn once after d.
type TimerFactory func(d time.Duration, fn func()) Timer

func realTimer(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Options wires the state's collaborators.
type Options struct {
	OnPage   func(*dtos.PropertyPage) // applied result sink
	OnError  func(error)
	NewTimer TimerFactory // defaults to time.AfterFunc
}

// State holds the list view's filter criteria, page/limit pair, the page
// cache, and the in-flight request bookkeeping that makes responses
// last-request-wins.
type State struct {
	mu sync.Mutex

	api  ListAPI
	opts Options

	filters Filters
	page    int
	limit   int

	debounce Timer

	seq     uint64 // newest issued fetch
	applied uint64 // newest applied response

	cache   *ccache.Cache[*dtos.PropertyPage]
	current *dtos.PropertyPage
}

func NewState(api ListAPI, opts Options) *State {
	if opts.NewTimer == nil {
		opts.NewTimer = realTimer
	}
	if opts.OnPage == nil {
		opts.OnPage = func(*dtos.PropertyPage) {}
	}
	if opts.OnError == nil {
		opts.OnError = func(error) {}
	}
	return &State{
		api:   api,
		opts:  opts,
		page:  1,
		limit: defaultLimit,
		cache: ccache.New(ccache.Configure[*dtos.PropertyPage]().MaxSize(cacheMaxSize)),
	}
}

// Init applies criteria, page and limit in one step and fetches once,
// bypassing the debounce window. Meant for view entry, not for typing.
func (s *State) Init(f Filters, page, limit int) {
	s.mu.Lock()
	s.filters = f
	if page < 1 {
		page = 1
	}
	s.page = page
	if limit >= 1 {
		s.limit = limit
	}
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	s.mu.Unlock()
	s.Refetch()
}

// SetFilters replaces the criteria, returns to page 1, and schedules the
// debounced fetch. Only the last filter state inside the quiet window is
// ever sent.
func (s *State) SetFilters(f Filters) {
	s.mu.Lock()
	s.filters = f
	s.page = 1
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = s.opts.NewTimer(DebounceDelay, s.Refetch)
	s.mu.Unlock()
}

// SetPage jumps to a page immediately (no debounce).
func (s *State) SetPage(page int) {
	s.mu.Lock()
	if page < 1 {
		page = 1
	}
	s.page = page
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	s.mu.Unlock()
	s.Refetch()
}

// SetLimit changes the page size and returns to page 1 immediately.
func (s *State) SetLimit(limit int) {
	s.mu.Lock()
	if limit < 1 {
		limit = defaultLimit
	}
	s.limit = limit
	s.page = 1
	s.mu.Unlock()
	s.Refetch()
}

// Page returns the last applied result.
func (s *State) Page() *dtos.PropertyPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Query is the effective query for the current criteria.
func (s *State) Query() dtos.ListQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryLocked()
}

func (s *State) queryLocked() dtos.ListQuery {
	return dtos.ListQuery{
		Page:       s.page,
		Limit:      s.limit,
		Search:     s.filters.Search,
		Name:       s.filters.Name,
		Location:   s.filters.Location,
		IsActive:   s.filters.IsActive,
		IsFeatured: s.filters.IsFeatured,
		SortBy:     s.filters.SortBy,
		SortOrder:  s.filters.SortOrder,
		MinPrice:   s.filters.MinPrice,
		MaxPrice:   s.filters.MaxPrice,
		StaffID:    s.filters.StaffID,
	}
}

// Refetch issues a fetch for the current query. A response is applied only
// if no newer response has been applied since it was issued
// (last-request-wins).
func (s *State) Refetch() {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	q := s.queryLocked()
	key := cacheKey(q)

	if item := s.cache.Get(key); item != nil && !item.Expired() {
		page := item.Value()
		s.applyLocked(seq, page)
		s.mu.Unlock()
		s.opts.OnPage(page)
		return
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	page, err := s.api.ListProperties(ctx, q)
	if err != nil {
		utils.Logger.WithError(err).Warn("Property list fetch failed")
		s.opts.OnError(err)
		return
	}

	s.mu.Lock()
	if seq < s.applied {
		// A newer request already resolved; this result is stale.
		s.mu.Unlock()
		return
	}
	s.cache.Set(key, page, cacheTTL)
	s.applyLocked(seq, page)
	s.mu.Unlock()

	s.opts.OnPage(page)
}

func (s *State) applyLocked(seq uint64, page *dtos.PropertyPage) {
	s.applied = seq
	s.current = page
}

// Invalidate drops every cached page; the next fetch goes to the backend.
func (s *State) Invalidate() {
	s.cache.Clear()
}

func cacheKey(q dtos.ListQuery) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	if q.Location != "" {
		v.Set("location", q.Location)
	}
	if q.IsActive != nil {
		v.Set("isActive", strconv.FormatBool(*q.IsActive))
	}
	if q.IsFeatured != nil {
		v.Set("isFeatured", strconv.FormatBool(*q.IsFeatured))
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	if q.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	if q.StaffID != "" {
		v.Set("staffId", q.StaffID)
	}
	return v.Encode()
}
