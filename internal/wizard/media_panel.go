package wizard

import (
	"context"
	"errors"
	"sync"

	"hireable-backend/internal/media"
)

// MediaPanel owns the two introduction recorders and keeps them mutually
// exclusive. Finished clips are written into the wizard's draft. A modality
// is reserved from the moment Start is called, so the other one stays
// locked while the device is being acquired.
type MediaPanel struct {
	wizard *Wizard
	video  *media.Recorder
	audio  *media.Recorder

	mu       sync.Mutex
	starting map[media.Kind]bool
}

// NewMediaPanel builds both recorders on dev. Recorder options apply to
// both.
func NewMediaPanel(w *Wizard, dev media.Device, opts ...media.RecorderOption) *MediaPanel {
	p := &MediaPanel{wizard: w, starting: make(map[media.Kind]bool)}
	p.video = media.NewRecorder(media.KindVideo, dev, p.options(media.KindVideo, opts)...)
	p.audio = media.NewRecorder(media.KindAudio, dev, p.options(media.KindAudio, opts)...)
	return p
}

func (p *MediaPanel) options(kind media.Kind, opts []media.RecorderOption) []media.RecorderOption {
	out := make([]media.RecorderOption, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, media.OnRecorded(func(c media.Clip) { p.store(kind, c) }))
}

func (p *MediaPanel) Recorder(kind media.Kind) *media.Recorder {
	if kind == media.KindAudio {
		return p.audio
	}
	return p.video
}

func (p *MediaPanel) other(kind media.Kind) media.Kind {
	if kind == media.KindAudio {
		return media.KindVideo
	}
	return media.KindAudio
}

// CanRecord reports whether the control for kind should be enabled: the
// other modality is not starting, recording or holding a clip, and no
// submission is in flight.
func (p *MediaPanel) CanRecord(kind media.Kind) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canRecordLocked(kind)
}

func (p *MediaPanel) canRecordLocked(kind media.Kind) bool {
	other := p.other(kind)
	if p.starting[other] || p.Recorder(other).State() != media.Idle {
		return false
	}
	if p.wizard.Submitting() {
		return false
	}
	d := p.wizard.Draft()
	if kind == media.KindVideo {
		return d.Audio == nil
	}
	return d.Video == nil
}

// Start begins recording kind unless the other modality is in use. The
// other modality's clip is never touched.
func (p *MediaPanel) Start(ctx context.Context, kind media.Kind) error {
	if p.wizard.Submitting() {
		return ErrSubmitInFlight
	}
	p.mu.Lock()
	if !p.canRecordLocked(kind) {
		p.mu.Unlock()
		return ErrModalityLocked
	}
	if p.starting[kind] {
		p.mu.Unlock()
		return media.ErrRecording
	}
	p.starting[kind] = true
	p.mu.Unlock()

	err := p.Recorder(kind).Start(ctx)

	p.mu.Lock()
	delete(p.starting, kind)
	p.mu.Unlock()
	return err
}

// Stop finishes the recording of kind; the clip lands in the draft.
func (p *MediaPanel) Stop(kind media.Kind) error {
	_, err := p.Recorder(kind).Stop()
	return err
}

// Remove discards the clip of kind and re-enables the other modality.
func (p *MediaPanel) Remove(kind media.Kind) error {
	p.Recorder(kind).Remove()
	return p.wizard.Edit(func(d *Draft) {
		if kind == media.KindAudio {
			d.Audio = nil
		} else {
			d.Video = nil
		}
	})
}

// AttachVideo stores a pre-recorded video clip, subject to the same
// exclusivity as a live recording.
func (p *MediaPanel) AttachVideo(a Attachment) error {
	return p.attach(media.KindVideo, a)
}

func (p *MediaPanel) AttachAudio(a Attachment) error {
	return p.attach(media.KindAudio, a)
}

func (p *MediaPanel) attach(kind media.Kind, a Attachment) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.canRecordLocked(kind) {
		return ErrModalityLocked
	}
	if a.ContentType == "" {
		a.ContentType = kind.MimeType()
	}
	return p.wizard.Edit(func(d *Draft) {
		if kind == media.KindAudio {
			d.Audio = &a
		} else {
			d.Video = &a
		}
	})
}

func (p *MediaPanel) store(kind media.Kind, c media.Clip) {
	a := &Attachment{
		Filename:    kind.Filename(),
		ContentType: c.MimeType,
		Data:        c.Data,
		Duration:    c.Duration,
	}
	err := p.wizard.Edit(func(d *Draft) {
		if kind == media.KindAudio {
			d.Audio = a
		} else {
			d.Video = a
		}
	})
	if err == nil || errors.Is(err, ErrCompleted) {
		return
	}
	// A clip missing from the draft must not keep the other modality locked.
	p.Recorder(kind).Remove()
	p.wizard.log.Warn("recorded clip discarded", "kind", kind.String(), "error", err)
}

// Close tears down both recorders.
func (p *MediaPanel) Close() {
	p.video.Close()
	p.audio.Close()
}
