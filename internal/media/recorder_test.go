package media_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"hireable-backend/internal/clock"
	"hireable-backend/internal/media"
	"hireable-backend/pkg/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newRecorder(kind media.Kind, dev media.Device, c clock.Clock, opts ...media.RecorderOption) *media.Recorder {
	opts = append([]media.RecorderOption{media.WithClock(c), media.WithLogger(quiet)}, opts...)
	return media.NewRecorder(kind, dev, opts...)
}

func TestRecordingCeiling(t *testing.T) {
	ctx := context.Background()

	t.Run("Ticks past sixty seconds stop the recording at sixty", func(t *testing.T) {
		dev := &media.FakeDevice{}
		r := newRecorder(media.KindVideo, dev, clock.NewManual(time.Unix(0, 0)))
		require.NoError(t, r.Start(ctx))

		for i := 0; i < 65; i++ {
			r.OnTick()
		}

		assert.Equal(t, media.Recorded, r.State())
		assert.Equal(t, media.MaxDuration, r.Elapsed())
		clip, ok := r.Clip()
		require.True(t, ok)
		assert.Equal(t, 60*time.Second, clip.Duration)
		assert.True(t, dev.Last().Released())
		assert.Zero(t, dev.Open())
	})

	t.Run("Sixty-five simulated seconds on the clock auto-stop the recording", func(t *testing.T) {
		dev := &media.FakeDevice{}
		mc := clock.NewManual(time.Unix(0, 0))
		r := newRecorder(media.KindVideo, dev, mc)
		require.NoError(t, r.Start(ctx))

		mc.Advance(65 * time.Second)

		assert.Eventually(t, func() bool { return r.State() == media.Recorded }, time.Second, 5*time.Millisecond)
		assert.Equal(t, 60*time.Second, r.Elapsed())
		assert.True(t, dev.Last().Released())
	})

	t.Run("Auto-stop matches a manual stop at sixty seconds", func(t *testing.T) {
		auto := &media.FakeDevice{FinalChunk: []byte("end")}
		a := newRecorder(media.KindAudio, auto, clock.NewManual(time.Unix(0, 0)))
		require.NoError(t, a.Start(ctx))
		auto.Last().Emit([]byte("abc"))
		for i := 0; i < 60; i++ {
			a.OnTick()
		}

		manual := &media.FakeDevice{FinalChunk: []byte("end")}
		m := newRecorder(media.KindAudio, manual, clock.NewManual(time.Unix(0, 0)))
		require.NoError(t, m.Start(ctx))
		manual.Last().Emit([]byte("abc"))
		for i := 0; i < 59; i++ {
			m.OnTick()
		}
		require.Equal(t, media.Recording, m.State())
		manualClip, err := m.Stop()
		require.NoError(t, err)

		autoClip, _ := a.Clip()
		assert.Equal(t, manualClip.Data, autoClip.Data)
		assert.Equal(t, manualClip.MimeType, autoClip.MimeType)
		assert.Equal(t, "abcend", string(autoClip.Data))
		assert.Equal(t, "audio/webm", autoClip.MimeType)
		assert.Equal(t, a.State(), m.State())
		assert.Zero(t, auto.Open())
		assert.Zero(t, manual.Open())
	})
}

func TestStop(t *testing.T) {
	ctx := context.Background()

	t.Run("Joins chunks including the final flush", func(t *testing.T) {
		dev := &media.FakeDevice{FinalChunk: []byte("!")}
		var got []media.Clip
		r := newRecorder(media.KindVideo, dev, clock.NewManual(time.Unix(0, 0)),
			media.OnRecorded(func(c media.Clip) { got = append(got, c) }))
		require.NoError(t, r.Start(ctx))

		s := dev.Last()
		s.Emit([]byte("hello "))
		s.Emit([]byte("world"))
		r.OnTick()
		r.OnTick()

		clip, err := r.Stop()
		require.NoError(t, err)
		assert.Equal(t, "hello world!", string(clip.Data))
		assert.Equal(t, 2*time.Second, clip.Duration)
		assert.True(t, s.Stopped())
		assert.True(t, s.Released())
		require.Len(t, got, 1)
		assert.Equal(t, clip, got[0])

		_, err = r.Stop()
		assert.ErrorIs(t, err, media.ErrNotRecording)
	})

	t.Run("A recorded clip must be removed before recording again", func(t *testing.T) {
		dev := &media.FakeDevice{}
		r := newRecorder(media.KindAudio, dev, clock.NewManual(time.Unix(0, 0)))
		require.NoError(t, r.Start(ctx))
		_, err := r.Stop()
		require.NoError(t, err)

		assert.ErrorIs(t, r.Start(ctx), media.ErrClipPresent)
		r.Remove()
		assert.NoError(t, r.Start(ctx))
		assert.Equal(t, 2, dev.Acquired())
	})
}

func TestDeviceErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Permission denied leaves the recorder idle with a message", func(t *testing.T) {
		dev := &media.FakeDevice{Err: media.ErrPermissionDenied}
		r := newRecorder(media.KindVideo, dev, clock.NewManual(time.Unix(0, 0)), media.WithResolver(content.MustLoad().For(content.English)))

		err := r.Start(ctx)
		assert.ErrorIs(t, err, media.ErrPermissionDenied)
		assert.Equal(t, media.Idle, r.State())
		assert.Equal(t, "Unable to access camera/microphone. Please check permissions.", r.Message())

		r.Dismiss()
		assert.Nil(t, r.Err())
		assert.Empty(t, r.Message())

		dev.SetErr(nil)
		assert.NoError(t, r.Start(ctx))
		assert.Equal(t, media.Recording, r.State())
	})

	t.Run("Audio permission errors name the microphone", func(t *testing.T) {
		dev := &media.FakeDevice{Err: media.ErrPermissionDenied}
		r := newRecorder(media.KindAudio, dev, clock.NewManual(time.Unix(0, 0)))

		assert.ErrorIs(t, r.Start(ctx), media.ErrPermissionDenied)
		assert.Equal(t, string(content.KeyRecorderMicDenied), r.Message())
	})

	t.Run("Any other failure is a missing device", func(t *testing.T) {
		dev := &media.FakeDevice{Err: errors.New("NotFoundError")}
		r := newRecorder(media.KindVideo, dev, clock.NewManual(time.Unix(0, 0)))

		assert.ErrorIs(t, r.Start(ctx), media.ErrDeviceUnavailable)
		assert.ErrorIs(t, r.Err(), media.ErrDeviceUnavailable)
		assert.Equal(t, media.Idle, r.State())
	})
}

func TestTeardown(t *testing.T) {
	ctx := context.Background()

	t.Run("Remove discards the clip and closes the preview", func(t *testing.T) {
		dev := &media.FakeDevice{}
		r := newRecorder(media.KindVideo, dev, clock.NewManual(time.Unix(0, 0)))
		require.NoError(t, r.Start(ctx))
		r.OnTick()
		_, err := r.Stop()
		require.NoError(t, err)

		p, err := r.Preview()
		require.NoError(t, err)
		r.Remove()

		assert.True(t, p.Closed())
		assert.Equal(t, media.Idle, r.State())
		assert.Zero(t, r.Elapsed())
		_, ok := r.Clip()
		assert.False(t, ok)
		_, err = r.Preview()
		assert.ErrorIs(t, err, media.ErrNoClip)
	})

	t.Run("Close mid-recording releases the device once", func(t *testing.T) {
		dev := &media.FakeDevice{}
		mc := clock.NewManual(time.Unix(0, 0))
		r := newRecorder(media.KindVideo, dev, mc)
		require.NoError(t, r.Start(ctx))

		r.Close()
		r.Close()

		assert.Zero(t, dev.Open())
		assert.ErrorIs(t, r.Start(ctx), media.ErrClosed)
		mc.Advance(90 * time.Second)
		assert.Never(t, func() bool { return r.State() == media.Recorded }, 50*time.Millisecond, 5*time.Millisecond)
	})

	t.Run("Close releases an outstanding preview", func(t *testing.T) {
		dev := &media.FakeDevice{}
		r := newRecorder(media.KindAudio, dev, clock.NewManual(time.Unix(0, 0)))
		require.NoError(t, r.Start(ctx))
		_, err := r.Stop()
		require.NoError(t, err)
		p, err := r.Preview()
		require.NoError(t, err)

		r.Close()
		assert.True(t, p.Closed())
	})
}

func TestPlayback(t *testing.T) {
	dev := &media.FakeDevice{}
	r := newRecorder(media.KindVideo, dev, clock.NewManual(time.Unix(0, 0)))
	require.NoError(t, r.Start(context.Background()))
	for i := 0; i < 10; i++ {
		r.OnTick()
	}
	_, err := r.Stop()
	require.NoError(t, err)

	p, err := r.Preview()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, p.Duration())

	p.Advance(time.Second)
	assert.Zero(t, p.CurrentTime(), "paused preview does not move")

	p.Play()
	p.Advance(4 * time.Second)
	assert.Equal(t, 4*time.Second, p.CurrentTime())
	p.Pause()
	p.Advance(time.Second)
	assert.Equal(t, 4*time.Second, p.CurrentTime())

	p.Play()
	p.Advance(30 * time.Second)
	assert.Equal(t, 10*time.Second, p.CurrentTime())
	assert.False(t, p.Playing())

	p.Seek(-time.Second)
	assert.Zero(t, p.CurrentTime())
}
