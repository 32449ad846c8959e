package media

import (
	"sync"
	"time"
)

// Playback is the preview of a finished clip. It only knows the clip's
// duration; the device is long released when it exists.
type Playback struct {
	mu       sync.Mutex
	duration time.Duration
	current  time.Duration
	playing  bool
	closed   bool
}

func newPlayback(c Clip) *Playback {
	return &Playback{duration: c.Duration}
}

func (p *Playback) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if p.current >= p.duration {
		p.current = 0
	}
	p.playing = true
}

func (p *Playback) Pause() {
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
}

// Seek moves the position, clamped to the clip.
func (p *Playback) Seek(t time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = clamp(t, p.duration)
}

// Advance moves a playing preview forward by d and pauses at the end.
func (p *Playback) Advance(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing || p.closed {
		return
	}
	p.current = clamp(p.current+d, p.duration)
	if p.current == p.duration {
		p.playing = false
	}
}

func (p *Playback) CurrentTime() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *Playback) Duration() time.Duration { return p.duration }

func (p *Playback) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Close releases the preview. A closed preview never plays again.
func (p *Playback) Close() {
	p.mu.Lock()
	p.closed = true
	p.playing = false
	p.mu.Unlock()
}

func (p *Playback) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func clamp(t, max time.Duration) time.Duration {
	if t < 0 {
		return 0
	}
	if t > max {
		return max
	}
	return t
}
