package submission

import (
	"context"
	"errors"
	"sync"

	"github.com/janisto/echo-onboarding/internal/onboarding"
)

var (
	// ErrInFlight is returned by Submit while a previous submission runs.
	ErrInFlight = errors.New("submission already in progress")
	// ErrClosed is returned once the controller has been closed.
	ErrClosed = errors.New("submission controller closed")
)

// State is the phase of the form's submission.
type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "success"
	case Failed:
		return "error"
	}
	return "unknown"
}

// Status is a snapshot of the controller. Message is the banner text for
// Succeeded and Failed. Record is the submitted record after a success.
type Status struct {
	State   State
	Message string
	Record  *onboarding.Record
}

// Sender performs one submission. *Client implements it.
type Sender interface {
	Submit(ctx context.Context, rec *onboarding.Record) Outcome
}

// Controller drives a single form through idle, submitting, success and
// error. At most one request is in flight at a time.
type Controller struct {
	sender    Sender
	validator *onboarding.Validator
	observers []func(Status)
	onReset   func()

	mu     sync.Mutex
	status Status
	closed bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithObserver registers fn to receive every state transition. Observers are
// called without the controller lock held, in registration order.
func WithObserver(fn func(Status)) ControllerOption {
	return func(c *Controller) { c.observers = append(c.observers, fn) }
}

// WithResetHook registers fn to clear the form after a successful submit.
func WithResetHook(fn func()) ControllerOption {
	return func(c *Controller) { c.onReset = fn }
}

// WithValidator sets the validator used by SubmitInput.
func WithValidator(v *onboarding.Validator) ControllerOption {
	return func(c *Controller) { c.validator = v }
}

// NewController returns an idle Controller sending through s.
func NewController(s Sender, opts ...ControllerOption) *Controller {
	c := &Controller{sender: s, validator: onboarding.NewValidator()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status returns the current snapshot.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// SubmitInput validates in and submits the resulting record. A rejected
// input is returned as *validate.ValidationError and nothing is sent.
func (c *Controller) SubmitInput(ctx context.Context, in onboarding.Input) (Outcome, error) {
	rec, err := c.validator.Validate(in)
	if err != nil {
		return Outcome{}, err
	}
	return c.Submit(ctx, rec)
}

// Submit sends rec and blocks until the outcome is known. The controller is
// Submitting before the request starts. Cancelling ctx does not abort a
// request already in flight.
func (c *Controller) Submit(ctx context.Context, rec *onboarding.Record) (Outcome, error) {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return Outcome{}, ErrClosed
	case c.status.State == Submitting:
		c.mu.Unlock()
		return Outcome{}, ErrInFlight
	}
	c.status = Status{State: Submitting}
	c.mu.Unlock()
	c.notify(Status{State: Submitting})

	out := c.sender.Submit(context.WithoutCancel(ctx), rec)

	next := Status{State: Failed, Message: out.Message}
	if out.Kind == Success {
		next = Status{State: Succeeded, Message: out.Message, Record: out.Record}
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return out, ErrClosed
	}
	c.status = next
	c.mu.Unlock()

	if next.State == Succeeded && c.onReset != nil {
		c.onReset()
	}
	c.notify(next)
	return out, nil
}

// Reset returns a settled controller to Idle, clearing the banner.
func (c *Controller) Reset() {
	c.mu.Lock()
	if c.closed || c.status.State == Submitting || c.status.State == Idle {
		c.mu.Unlock()
		return
	}
	c.status = Status{State: Idle}
	c.mu.Unlock()
	c.notify(Status{State: Idle})
}

// Close tears the controller down. A response arriving afterwards is
// discarded without notifying observers.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *Controller) notify(s Status) {
	for _, fn := range c.observers {
		fn(s)
	}
}
