// Package media records the optional video or audio introduction attached
// to a candidate profile.
package media

import (
	"context"
	"errors"
	"time"
)

// MaxDuration is the hard ceiling for one recording.
const MaxDuration = 60 * time.Second

const maxSeconds = int(MaxDuration / time.Second)

type Kind int

const (
	// KindVideo captures camera and microphone.
	KindVideo Kind = iota
	// KindAudio captures the microphone only.
	KindAudio
)

func (k Kind) String() string {
	if k == KindAudio {
		return "audio"
	}
	return "video"
}

func (k Kind) MimeType() string {
	if k == KindAudio {
		return "audio/webm"
	}
	return "video/webm"
}

// Filename is the name the clip is uploaded under.
func (k Kind) Filename() string {
	if k == KindAudio {
		return "audio-introduction.webm"
	}
	return "introduction.webm"
}

var (
	ErrPermissionDenied  = errors.New("media: permission denied")
	ErrDeviceUnavailable = errors.New("media: device unavailable")
	ErrRecording         = errors.New("media: already recording")
	ErrNotRecording      = errors.New("media: not recording")
	ErrClipPresent       = errors.New("media: remove the current clip first")
	ErrNoClip            = errors.New("media: no clip recorded")
	ErrClosed            = errors.New("media: recorder closed")
)

// Device hands out capture streams.
type Device interface {
	Acquire(ctx context.Context, kind Kind) (Stream, error)
}

// Stream is an acquired device handle. Stop flushes any buffered data
// through onData before returning. Release stops every track and must be
// called exactly once per acquired stream.
type Stream interface {
	Start(onData func([]byte)) error
	Stop() error
	Release()
}
