package wizard

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"hireable-backend/internal/domain"
	"hireable-backend/pkg/content"
	"hireable-backend/pkg/logger"
	"hireable-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var (
	ErrSubmitInFlight = errors.New("wizard: submission already in progress")
	ErrNotLastStep    = errors.New("wizard: submit is only available on the last step")
	ErrCompleted      = errors.New("wizard: onboarding already completed")
	ErrModalityLocked = errors.New("wizard: the other introduction is already recorded")
)

// Submitter is the submission collaborator.
type Submitter interface {
	Submit(ctx context.Context, p *Payload) (*domain.Candidate, error)
}

// UserMessage is implemented by submission errors that carry a message
// meant for the user.
type UserMessage interface {
	UserMessage() string
}

type Option func(*Wizard)

func WithValidator(v *validator.Validate) Option { return func(w *Wizard) { w.validate = v } }
func WithLogger(l *slog.Logger) Option           { return func(w *Wizard) { w.log = l } }

// Wizard is the onboarding state machine. Steps only move forward through
// Next, which validates, and back through Back, which never does.
type Wizard struct {
	submitter Submitter
	resolver  content.Resolver
	validate  *validator.Validate
	log       *slog.Logger

	mu         sync.Mutex
	draft      Draft
	step       Step
	submitting bool
	message    string
	result     *domain.Candidate
}

func New(id domain.Identity, s Submitter, r content.Resolver, opts ...Option) *Wizard {
	if r == nil {
		r = content.Fallback{}
	}
	w := &Wizard{
		submitter: s,
		resolver:  r,
		log:       logger.Log,
		draft:     NewDraft(id),
		step:      StepIdentity,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.validate == nil {
		w.validate = validation.New()
	}
	return w
}

// Edit applies fn to the draft. Edits are rejected while a submission is
// in flight and after completion.
func (w *Wizard) Edit(fn func(d *Draft)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(); err != nil {
		return err
	}
	fn(&w.draft)
	return nil
}

func (w *Wizard) editableLocked() error {
	if w.step == Complete {
		return ErrCompleted
	}
	if w.submitting {
		return ErrSubmitInFlight
	}
	return nil
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.clone()
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Next validates the current step and advances by one. On the last step
// it only validates; Submit finishes the flow.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(); err != nil {
		return err
	}
	if verr := Validate(w.validate, w.step, &w.draft, w.resolver); verr != nil {
		w.message = verr.Message
		return verr
	}
	w.message = ""
	if w.step < StepMedia {
		w.step++
	}
	return nil
}

// Back moves one step back without validating.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitting || w.step == Complete {
		return
	}
	w.message = ""
	if w.step > StepIdentity {
		w.step--
	}
}

// Submit re-validates the media step and posts the payload once. On
// failure the wizard stays on the last step with the draft intact.
func (w *Wizard) Submit(ctx context.Context) (*domain.Candidate, error) {
	w.mu.Lock()
	if err := w.editableLocked(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if w.step != StepMedia {
		w.mu.Unlock()
		return nil, ErrNotLastStep
	}
	if verr := Validate(w.validate, StepMedia, &w.draft, w.resolver); verr != nil {
		w.message = verr.Message
		w.mu.Unlock()
		return nil, verr
	}
	payload := NewPayload(&w.draft)
	w.submitting = true
	w.message = ""
	w.mu.Unlock()

	created, err := w.submitter.Submit(ctx, payload)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		w.message = w.failureMessage(err)
		w.log.Warn("candidate submission failed", "error", err)
		return nil, err
	}
	w.step = Complete
	w.result = created
	w.draft = Draft{}
	return created, nil
}

func (w *Wizard) failureMessage(err error) string {
	var um UserMessage
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return w.resolver.Resolve(content.KeySubmitFailed, nil)
}

// Progress returns the current step out of the total.
func (w *Wizard) Progress() (current, total int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == Complete {
		return TotalSteps, TotalSteps
	}
	return int(w.step), TotalSteps
}

// ProgressLabel renders the progress line, e.g. "Step 2 of 3".
func (w *Wizard) ProgressLabel() string {
	cur, total := w.Progress()
	return w.resolver.Resolve(content.KeyProgress, map[string]string{
		"current": strconv.Itoa(cur),
		"total":   strconv.Itoa(total),
	})
}

func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Message is the last validation or submission message, empty when none.
func (w *Wizard) Message() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

// Result is the created candidate once the wizard is complete.
func (w *Wizard) Result() *domain.Candidate {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}
