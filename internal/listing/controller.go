// Package listing drives the recruiter candidate directory: the filter set,
// the loaded pages and the infinite scroll trigger.
package listing

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"hireable-backend/internal/clock"
	"hireable-backend/internal/domain"
	"hireable-backend/pkg/logger"
)

const (
	PageSize = domain.CandidatesPerPage

	// DefaultDebounce applies to URL sync and search-input propagation.
	DefaultDebounce = 500 * time.Millisecond
)

// Query is the listing collaborator.
type Query interface {
	List(ctx context.Context, f Filter, offset, limit int) (Page, error)
}

// URLSyncer receives the filter whenever the debounced URL sync fires.
type URLSyncer interface {
	SyncURL(values url.Values)
}

type URLSyncerFunc func(url.Values)

func (f URLSyncerFunc) SyncURL(v url.Values) { f(v) }

// Mode selects who fetches the first page after a filter change.
type Mode int

const (
	// ModeServerRendered leaves the first page to the caller, which hands it
	// over through ResetOnFilterChange.
	ModeServerRendered Mode = iota
	// ModeClientFetch makes SetFilter fetch the first page itself.
	ModeClientFetch
)

// EmptyState tells an empty directory apart from an empty search.
type EmptyState int

const (
	EmptyNone EmptyState = iota
	EmptyNoMatches
	EmptyNoCandidates
)

// Snapshot is a read-only view of the controller.
type Snapshot struct {
	Items      []domain.CandidateListing
	Total      int
	HasMore    bool
	Loading    bool
	Generation uint64
	Filter     Filter
}

type Option func(*Controller)

func WithClock(c clock.Clock) Option      { return func(ctl *Controller) { ctl.clock = c } }
func WithURLSyncer(s URLSyncer) Option    { return func(ctl *Controller) { ctl.syncer = s } }
func WithMode(m Mode) Option              { return func(ctl *Controller) { ctl.mode = m } }
func WithLogger(l *slog.Logger) Option    { return func(ctl *Controller) { ctl.log = l } }
func WithDebounce(d time.Duration) Option { return func(ctl *Controller) { ctl.debounce = d } }
func WithInitialFilter(f Filter) Option   { return func(ctl *Controller) { ctl.filter = f } }
func WithPageSize(n int) Option           { return func(ctl *Controller) { ctl.pageSize = n } }

// Controller owns the filter set and the accumulated pages. Every filter
// change or page replacement starts a new generation; responses that
// arrive for an older generation are dropped.
type Controller struct {
	mu         sync.Mutex
	query      Query
	syncer     URLSyncer
	clock      clock.Clock
	mode       Mode
	log        *slog.Logger
	debounce   time.Duration
	pageSize   int
	filter     Filter
	acc        Accumulator
	loading    bool
	generation uint64
	listeners  []func()

	urlSync     *clock.Debouncer
	searchInput *clock.Debouncer
}

func NewController(q Query, opts ...Option) *Controller {
	c := &Controller{
		query:    q,
		clock:    clock.Real(),
		log:      logger.Log,
		debounce: DefaultDebounce,
		pageSize: PageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.urlSync = clock.NewDebouncer(c.clock, c.debounce)
	c.searchInput = clock.NewDebouncer(c.clock, c.debounce)
	return c
}

// OnChange registers fn to run whenever the list is reset or its first
// page is replaced.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// SetFilter updates one dimension and resets the accumulated list. The URL
// sync is debounced. In ModeClientFetch the first page of the new
// generation is fetched before returning.
func (c *Controller) SetFilter(ctx context.Context, field Field, value string) error {
	c.mu.Lock()
	next, err := c.filter.With(field, value)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.filter = next
	gen := c.resetLocked()
	fetch := c.mode == ModeClientFetch && c.query != nil
	if fetch {
		c.loading = true
	}
	c.mu.Unlock()

	c.scheduleURLSync()
	c.notify()

	if !fetch {
		return nil
	}
	return c.fetchFirst(ctx, gen, next)
}

// SetSearch is the keystroke path: bursts of input collapse into one
// SetFilter after the debounce delay.
func (c *Controller) SetSearch(ctx context.Context, value string) {
	c.searchInput.Trigger(func() {
		if err := c.SetFilter(ctx, FieldSearch, value); err != nil {
			c.log.Warn("search filter update failed", "error", err)
		}
	})
}

// Refresh refetches the first page for the current filter.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	gen := c.resetLocked()
	c.loading = true
	f := c.filter
	c.mu.Unlock()
	c.notify()
	return c.fetchFirst(ctx, gen, f)
}

func (c *Controller) fetchFirst(ctx context.Context, gen uint64, f Filter) error {
	page, err := c.query.List(ctx, f, 0, c.pageSize)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return nil
	}
	c.loading = false
	if err != nil {
		c.acc.stop()
		c.mu.Unlock()
		c.log.Error("candidate listing fetch failed", "offset", 0, "error", err)
		return err
	}
	c.acc.Replace(page)
	c.mu.Unlock()
	c.notify()
	return nil
}

// LoadMore appends the next page. It returns false without calling the
// collaborator while a load is in flight or when the list is exhausted.
// Transport failures end pagination but keep what is loaded.
func (c *Controller) LoadMore(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.loading || !c.acc.HasMore() || c.query == nil {
		c.mu.Unlock()
		return false, nil
	}
	c.loading = true
	gen := c.generation
	offset := c.acc.Offset()
	f := c.filter
	c.mu.Unlock()

	page, err := c.query.List(ctx, f, offset, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// The filter moved on while this page was in flight.
		return false, nil
	}
	c.loading = false
	if err != nil {
		c.log.Error("candidate listing fetch failed", "offset", offset, "error", err)
		c.acc.stop()
		return false, err
	}
	c.acc.Append(page)
	return true, nil
}

// ResetOnFilterChange replaces the list with an externally supplied first
// page, e.g. a fresh server render after navigation.
func (c *Controller) ResetOnFilterChange(page Page) {
	c.mu.Lock()
	c.resetLocked()
	c.acc.Replace(page)
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) resetLocked() uint64 {
	c.generation++
	c.loading = false
	c.acc.Reset()
	return c.generation
}

func (c *Controller) scheduleURLSync() {
	if c.syncer == nil {
		return
	}
	c.urlSync.Trigger(func() {
		c.mu.Lock()
		v := c.filter.Values()
		c.mu.Unlock()
		c.syncer.SyncURL(v)
	})
}

func (c *Controller) notify() {
	c.mu.Lock()
	listeners := append([]func(){}, c.listeners...)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func (c *Controller) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.acc.HasMore()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Items:      c.acc.Items(),
		Total:      c.acc.Total(),
		HasMore:    c.acc.HasMore(),
		Loading:    c.loading,
		Generation: c.generation,
		Filter:     c.filter,
	}
}

// EmptyState is EmptyNone whenever something is loaded or loading.
func (c *Controller) EmptyState() EmptyState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.acc.Len() > 0 || c.loading {
		return EmptyNone
	}
	if c.filter.Active() {
		return EmptyNoMatches
	}
	return EmptyNoCandidates
}

// Close cancels pending debounced work.
func (c *Controller) Close() {
	c.urlSync.Cancel()
	c.searchInput.Cancel()
}
