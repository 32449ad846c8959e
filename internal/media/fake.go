package media

import (
	"context"
	"sync"
)

// FakeDevice hands out FakeStreams. Set Err to make Acquire fail.
type FakeDevice struct {
	mu         sync.Mutex
	Err        error
	FinalChunk []byte
	streams    []*FakeStream
}

func (d *FakeDevice) Acquire(ctx context.Context, kind Kind) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return nil, d.Err
	}
	s := &FakeStream{Kind: kind, final: d.FinalChunk}
	d.streams = append(d.streams, s)
	return s, nil
}

func (d *FakeDevice) SetErr(err error) {
	d.mu.Lock()
	d.Err = err
	d.mu.Unlock()
}

// Last returns the most recently acquired stream.
func (d *FakeDevice) Last() *FakeStream {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.streams) == 0 {
		return nil
	}
	return d.streams[len(d.streams)-1]
}

func (d *FakeDevice) Acquired() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.streams)
}

// Open counts streams that were acquired but never released.
func (d *FakeDevice) Open() int {
	d.mu.Lock()
	streams := append([]*FakeStream(nil), d.streams...)
	d.mu.Unlock()
	n := 0
	for _, s := range streams {
		if !s.Released() {
			n++
		}
	}
	return n
}

type FakeStream struct {
	Kind Kind

	mu       sync.Mutex
	final    []byte
	onData   func([]byte)
	stopped  bool
	released bool
}

func (s *FakeStream) Start(onData func([]byte)) error {
	s.mu.Lock()
	s.onData = onData
	s.mu.Unlock()
	return nil
}

// Emit delivers a chunk as the device would.
func (s *FakeStream) Emit(b []byte) {
	s.mu.Lock()
	fn := s.onData
	live := !s.stopped
	s.mu.Unlock()
	if fn != nil && live {
		fn(b)
	}
}

func (s *FakeStream) Stop() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	fn, final := s.onData, s.final
	s.mu.Unlock()
	if fn != nil && len(final) > 0 {
		fn(final)
	}
	return nil
}

func (s *FakeStream) Release() {
	s.mu.Lock()
	s.released = true
	s.mu.Unlock()
}

func (s *FakeStream) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

func (s *FakeStream) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}
