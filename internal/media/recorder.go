package media

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"hireable-backend/internal/clock"
	"hireable-backend/pkg/content"
	"hireable-backend/pkg/logger"
)

type State int

const (
	Idle State = iota
	Recording
	Recorded
)

func (s State) String() string {
	switch s {
	case Recording:
		return "recording"
	case Recorded:
		return "recorded"
	}
	return "idle"
}

// Clip is a finalized recording.
type Clip struct {
	Data     []byte
	MimeType string
	Duration time.Duration
}

// Session is one open recording: the device handle, its ticker and the
// chunks delivered so far.
type Session struct {
	stream Stream
	ticker clock.Ticker
	done   chan struct{}

	mu     sync.Mutex
	chunks [][]byte
}

func (s *Session) append(b []byte) {
	if len(b) == 0 {
		return
	}
	chunk := make([]byte, len(b))
	copy(chunk, b)
	s.mu.Lock()
	s.chunks = append(s.chunks, chunk)
	s.mu.Unlock()
}

func (s *Session) data() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Join(s.chunks, nil)
}

// close stops the ticker and the stream and releases the device. The
// stream's final flush lands in the chunks before Release.
func (s *Session) close() error {
	close(s.done)
	s.ticker.Stop()
	err := s.stream.Stop()
	s.stream.Release()
	return err
}

type RecorderOption func(*Recorder)

func WithClock(c clock.Clock) RecorderOption { return func(r *Recorder) { r.clock = c } }

func WithResolver(res content.Resolver) RecorderOption {
	return func(r *Recorder) { r.resolver = res }
}

func WithLogger(l *slog.Logger) RecorderOption { return func(r *Recorder) { r.log = l } }

// OnRecorded is called with every finalized clip, after the recorder's
// lock is released.
func OnRecorded(fn func(Clip)) RecorderOption { return func(r *Recorder) { r.onRecorded = fn } }

// Recorder captures one modality. It is Idle, Recording or Recorded.
type Recorder struct {
	kind       Kind
	device     Device
	clock      clock.Clock
	resolver   content.Resolver
	log        *slog.Logger
	onRecorded func(Clip)

	mu       sync.Mutex
	state    State
	starting bool
	session  *Session
	elapsed  int
	clip     *Clip
	preview  *Playback
	err      error
	message  string
	closed   bool
}

func NewRecorder(kind Kind, device Device, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		kind:     kind,
		device:   device,
		clock:    clock.Real(),
		resolver: content.Fallback{},
		log:      logger.Log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recorder) Kind() Kind { return r.kind }

// Start acquires the device and begins recording. A device failure leaves
// the recorder Idle with a user-visible message.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	switch {
	case r.closed:
		r.mu.Unlock()
		return ErrClosed
	case r.state == Recording || r.starting:
		r.mu.Unlock()
		return ErrRecording
	case r.state == Recorded:
		r.mu.Unlock()
		return ErrClipPresent
	}
	r.starting = true
	r.err, r.message = nil, ""
	r.mu.Unlock()

	stream, err := r.device.Acquire(ctx, r.kind)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.starting = false
	if err != nil {
		return r.failLocked(err)
	}
	if r.closed {
		stream.Release()
		return ErrClosed
	}

	sess := &Session{stream: stream, done: make(chan struct{})}
	if err := stream.Start(sess.append); err != nil {
		stream.Release()
		return r.failLocked(err)
	}
	sess.ticker = r.clock.NewTicker(time.Second)
	r.session = sess
	r.elapsed = 0
	r.state = Recording
	go r.pump(sess)

	r.log.Debug("recording started", "kind", r.kind.String())
	return nil
}

func (r *Recorder) failLocked(err error) error {
	mapped := ErrDeviceUnavailable
	key := content.KeyRecorderDeviceUnavailable
	if errors.Is(err, ErrPermissionDenied) {
		mapped = ErrPermissionDenied
		key = content.KeyRecorderPermissionDenied
		if r.kind == KindAudio {
			key = content.KeyRecorderMicDenied
		}
	}
	r.err = mapped
	r.message = r.resolver.Resolve(key, nil)
	r.log.Warn("media device acquisition failed", "kind", r.kind.String(), "error", err)
	return mapped
}

func (r *Recorder) pump(sess *Session) {
	for {
		select {
		case <-sess.done:
			return
		case <-sess.ticker.C():
			r.tick(sess)
		}
	}
}

// OnTick advances the elapsed counter by one second. Reaching the
// ceiling finalizes the recording exactly as Stop does.
func (r *Recorder) OnTick() {
	r.mu.Lock()
	sess := r.session
	r.mu.Unlock()
	if sess != nil {
		r.tick(sess)
	}
}

func (r *Recorder) tick(sess *Session) {
	r.mu.Lock()
	if r.state != Recording || r.session != sess {
		r.mu.Unlock()
		return
	}
	r.elapsed++
	if r.elapsed < maxSeconds {
		r.mu.Unlock()
		return
	}
	clip, err := r.finalizeLocked()
	r.mu.Unlock()
	if err != nil {
		r.log.Warn("recording stop reported an error", "kind", r.kind.String(), "error", err)
	}
	r.log.Info("recording reached maximum duration", "kind", r.kind.String())
	r.notify(clip)
}

// Stop finalizes the recording into a clip and releases the device.
func (r *Recorder) Stop() (Clip, error) {
	r.mu.Lock()
	if r.state != Recording {
		r.mu.Unlock()
		return Clip{}, ErrNotRecording
	}
	clip, err := r.finalizeLocked()
	r.mu.Unlock()
	if err != nil {
		r.log.Warn("recording stop reported an error", "kind", r.kind.String(), "error", err)
	}
	r.notify(clip)
	return clip, nil
}

func (r *Recorder) finalizeLocked() (Clip, error) {
	sess := r.session
	r.session = nil
	err := sess.close()
	clip := Clip{
		Data:     sess.data(),
		MimeType: r.kind.MimeType(),
		Duration: time.Duration(r.elapsed) * time.Second,
	}
	r.clip = &clip
	r.state = Recorded
	return clip, err
}

func (r *Recorder) notify(c Clip) {
	if r.onRecorded != nil {
		r.onRecorded(c)
	}
}

// Remove discards the clip and its preview and returns to Idle. A running
// recording is abandoned.
func (r *Recorder) Remove() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.abortLocked()
	r.clip = nil
	r.elapsed = 0
	r.state = Idle
}

// Close releases every resource the recorder holds. It is safe to call at
// any point and more than once.
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.abortLocked()
}

func (r *Recorder) abortLocked() {
	if r.session != nil {
		if err := r.session.close(); err != nil {
			r.log.Warn("recording stop reported an error", "kind", r.kind.String(), "error", err)
		}
		r.session = nil
	}
	if r.preview != nil {
		r.preview.Close()
		r.preview = nil
	}
}

// Preview returns the playback for the current clip, creating it on first
// use.
func (r *Recorder) Preview() (*Playback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clip == nil {
		return nil, ErrNoClip
	}
	if r.preview == nil {
		r.preview = newPlayback(*r.clip)
	}
	return r.preview, nil
}

// Clip returns the finalized clip, if any.
func (r *Recorder) Clip() (Clip, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clip == nil {
		return Clip{}, false
	}
	return *r.clip, true
}

func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Recorder) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Duration(r.elapsed) * time.Second
}

// Remaining is the time left before the ceiling.
func (r *Recorder) Remaining() time.Duration {
	return MaxDuration - r.Elapsed()
}

// Err is the last device error, cleared by Dismiss or the next Start.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) Message() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.message
}

func (r *Recorder) Dismiss() {
	r.mu.Lock()
	r.err, r.message = nil, ""
	r.mu.Unlock()
}
