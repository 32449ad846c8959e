package listing

import "sync"

// FakeObserver records subscriptions so tests and headless callers can fire
// visibility by hand.
type FakeObserver struct {
	mu          sync.Mutex
	subs        []*FakeSubscription
	Unavailable bool
}

type FakeSubscription struct {
	Target       string
	onVisible    func()
	disconnected bool
	mu           sync.Mutex
}

func (s *FakeSubscription) Disconnect() {
	s.mu.Lock()
	s.disconnected = true
	s.mu.Unlock()
}

func (s *FakeSubscription) Disconnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disconnected
}

// Fire invokes the callback even when disconnected, the way a late
// browser callback would.
func (s *FakeSubscription) Fire() { s.onVisible() }

func (o *FakeObserver) Observe(target string, onVisible func()) (Subscription, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Unavailable {
		return nil, ErrObservationUnavailable
	}
	s := &FakeSubscription{Target: target, onVisible: onVisible}
	o.subs = append(o.subs, s)
	return s, nil
}

// Subscriptions returns every subscription ever created, oldest first.
func (o *FakeObserver) Subscriptions() []*FakeSubscription {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*FakeSubscription(nil), o.subs...)
}

// Active returns the live subscriptions.
func (o *FakeObserver) Active() []*FakeSubscription {
	var out []*FakeSubscription
	for _, s := range o.Subscriptions() {
		if !s.Disconnected() {
			out = append(out, s)
		}
	}
	return out
}

// FireVisible fires every live subscription.
func (o *FakeObserver) FireVisible() {
	for _, s := range o.Active() {
		s.Fire()
	}
}
