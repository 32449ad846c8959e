package listing

import (
	"context"
	"errors"
	"sync"
)

// Sentinel is the element id observed at the bottom of the candidate grid.
const Sentinel = "candidates-sentinel"

var (
	ErrLoginRequired          = errors.New("listing: sign in to load more candidates")
	ErrObservationUnavailable = errors.New("listing: viewport observation unavailable")
)

// Observer reports when a target becomes visible. Observe must not invoke
// onVisible synchronously.
type Observer interface {
	Observe(target string, onVisible func()) (Subscription, error)
}

type Subscription interface {
	Disconnect()
}

// Prompt is what the bottom of the list should show.
type Prompt int

const (
	PromptNone Prompt = iota
	PromptLoading
	PromptLoadMore
	PromptLogin
	PromptEnd
)

type ScrollOption func(*ScrollDriver)

// ReadOnly disables incremental loading for public browsing.
func ReadOnly() ScrollOption { return func(d *ScrollDriver) { d.readOnly = true } }

// ScrollDriver turns sentinel visibility into LoadMore calls. It holds at
// most one subscription, bound to the generation it was created for.
type ScrollDriver struct {
	mu          sync.Mutex
	ctrl        *Controller
	observer    Observer
	readOnly    bool
	unavailable bool
	ctx         context.Context
	sub         Subscription
	subGen      uint64
	closed      bool
}

func NewScrollDriver(ctx context.Context, ctrl *Controller, obs Observer, opts ...ScrollOption) *ScrollDriver {
	d := &ScrollDriver{ctrl: ctrl, observer: obs, ctx: ctx}
	for _, opt := range opts {
		opt(d)
	}
	ctrl.OnChange(d.Sync)
	d.Sync()
	return d
}

// Sync tears down the current observation and, when more pages can be
// loaded, observes the sentinel again for the current generation.
func (d *ScrollDriver) Sync() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disconnectLocked()
	if d.closed || d.readOnly || d.observer == nil || d.unavailable {
		return
	}
	snap := d.ctrl.Snapshot()
	if !snap.HasMore {
		return
	}
	gen := snap.Generation
	sub, err := d.observer.Observe(Sentinel, func() { d.onVisible(gen) })
	if err != nil {
		// Fall back to the manual control only.
		d.unavailable = true
		return
	}
	d.sub = sub
	d.subGen = gen
}

func (d *ScrollDriver) onVisible(gen uint64) {
	if d.ctrl.Generation() != gen || d.ctrl.Loading() {
		return
	}
	d.mu.Lock()
	stale := d.closed || d.sub == nil || d.subGen != gen
	d.mu.Unlock()
	if stale {
		return
	}
	// A failed fetch ends pagination, so afterLoad drops the observation.
	if _, err := d.ctrl.LoadMore(d.ctx); err != nil {
		d.ctrl.log.Debug("sentinel load failed", "generation", gen, "error", err)
	}
	d.afterLoad()
}

// LoadMoreManually is the fallback "load more" control.
func (d *ScrollDriver) LoadMoreManually(ctx context.Context) (bool, error) {
	if d.readOnly {
		return false, ErrLoginRequired
	}
	loaded, err := d.ctrl.LoadMore(ctx)
	d.afterLoad()
	return loaded, err
}

func (d *ScrollDriver) afterLoad() {
	if !d.ctrl.HasMore() {
		d.mu.Lock()
		d.disconnectLocked()
		d.mu.Unlock()
	}
}

// Prompt describes the footer of the list.
func (d *ScrollDriver) Prompt() Prompt {
	snap := d.ctrl.Snapshot()
	switch {
	case snap.Loading:
		return PromptLoading
	case d.readOnly && (snap.HasMore || len(snap.Items) < snap.Total):
		return PromptLogin
	case snap.HasMore:
		return PromptLoadMore
	case len(snap.Items) > 0:
		return PromptEnd
	}
	return PromptNone
}

// Observing reports whether a subscription is live.
func (d *ScrollDriver) Observing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sub != nil
}

// Close disconnects and stops reacting to controller resets.
func (d *ScrollDriver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.disconnectLocked()
}

func (d *ScrollDriver) disconnectLocked() {
	if d.sub != nil {
		d.sub.Disconnect()
		d.sub = nil
	}
}
