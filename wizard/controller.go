package wizard

import (
	"context"
	"sync"
)

// Controller owns step navigation for a single wizard instance: the current
// step, the high-water mark of reached steps, and the one asynchronous
// submission that unlocks the results tier. All methods are safe for
// concurrent use; the submit function runs outside the controller lock.
type Controller struct {
	cfg       Config
	submit    SubmitFunc
	checks    CheckFunc
	observers []Observer

	mu     sync.Mutex
	state  State
	result any
	gen    uint64
}

// Option mutates controller configuration.
type Option func(*Controller)

// WithObserver registers an observer to receive lifecycle events.
func WithObserver(obs Observer) Option {
	return func(c *Controller) {
		if obs == nil {
			return
		}
		c.observers = append(c.observers, obs)
	}
}

// WithChecks registers the validation checks consulted before submission.
// Without it every submission attempt is considered valid.
func WithChecks(fn CheckFunc) Option {
	return func(c *Controller) {
		if fn == nil {
			return
		}
		c.checks = fn
	}
}

// New constructs a Controller positioned at step 1.
func New(cfg Config, submit SubmitFunc, opts ...Option) (*Controller, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if submit == nil {
		return nil, ConfigError{Reason: "submit function must not be nil"}
	}
	c := &Controller{
		cfg:    cfg,
		submit: submit,
		state:  State{Current: 1, MaxReached: 1},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Config returns the wizard configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Snapshot returns the current wizard state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result returns the most recent successful submission result, or nil.
func (c *Controller) Result() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Accessible reports whether the host should expose a control that jumps to
// step s: either s is at or below the high-water mark, or s is a results-tier
// step and a successful run exists.
func (c *Controller) Accessible(s Step) bool {
	if !c.cfg.Valid(s) {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if s <= c.state.MaxReached {
		return true
	}
	return c.cfg.resultsTier(s) && c.state.HasResult
}

// GoToStep sets the current step and raises the high-water mark when the
// target lies beyond it. Gating is the caller's responsibility via
// Accessible; the transition itself is unconditional for valid steps.
func (c *Controller) GoToStep(s Step) error {
	if !c.cfg.Valid(s) {
		return InvalidStepError{Step: s, Count: c.cfg.Count()}
	}
	c.mu.Lock()
	c.state.Current = s
	if s > c.state.MaxReached {
		c.state.MaxReached = s
	}
	state := c.state
	c.mu.Unlock()
	c.notifyStep(state)
	return nil
}

// Next advances one step. At the submit step it runs the submission
// lifecycle instead of a plain increment; at the last step it is a no-op.
func (c *Controller) Next(ctx context.Context) error {
	c.mu.Lock()
	current := c.state.Current
	c.mu.Unlock()

	if current == c.cfg.SubmitStep {
		return c.Submit(ctx)
	}
	if int(current) >= c.cfg.Count() {
		return nil
	}
	return c.GoToStep(current + 1)
}

// Prev moves one step back. It never lowers the high-water mark and is a
// no-op at step 1.
func (c *Controller) Prev() {
	c.mu.Lock()
	current := c.state.Current
	c.mu.Unlock()
	if current <= 1 {
		return
	}
	_ = c.GoToStep(current - 1)
}

// Submit runs the asynchronous analysis lifecycle: evaluate validation
// checks, invoke the injected submit function exactly once, and on success
// record the result and advance to the results step. A second call while a
// submission is in flight is an idempotent no-op. On failure the wizard
// state is left untouched apart from clearing the in-flight flag.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Submitting {
		c.mu.Unlock()
		return nil
	}
	if c.checks != nil {
		if failed := FailedChecks(c.checks()); len(failed) > 0 {
			c.mu.Unlock()
			return ChecksFailedError{Failed: failed}
		}
	}
	c.state.Submitting = true
	gen := c.gen
	started := c.state
	c.mu.Unlock()

	c.notifySubmissionStarted(started)

	result, err := c.submit(ctx)

	c.mu.Lock()
	if gen != c.gen {
		// The controller was reset while the call was in flight; the
		// outcome belongs to a discarded generation.
		c.mu.Unlock()
		return ErrSuperseded
	}
	c.state.Submitting = false
	if err == nil {
		c.result = result
		c.state.HasResult = true
		if c.state.MaxReached < c.cfg.ResultsStep {
			c.state.MaxReached = c.cfg.ResultsStep
		}
		// Only force-advance when the user is still waiting on the submit
		// step; navigation performed mid-flight wins otherwise.
		if c.state.Current == c.cfg.SubmitStep {
			c.state.Current = c.cfg.ResultsStep
		}
	}
	settled := c.state
	c.mu.Unlock()

	c.notifySubmissionSettled(settled, err)
	if err != nil {
		return SubmissionError{Err: err}
	}
	c.notifyStep(settled)
	return nil
}

// Reset returns the wizard to its initial state, discarding the stored
// result and invalidating any in-flight submission. The host triggers it
// whenever the dataset identity changes.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.gen++
	c.state = State{Current: 1, MaxReached: 1}
	c.result = nil
	state := c.state
	c.mu.Unlock()
	c.notifyStep(state)
}

func (c *Controller) notifyStep(state State) {
	for _, obs := range c.observers {
		obs.StepChanged(state)
	}
}

func (c *Controller) notifySubmissionStarted(state State) {
	for _, obs := range c.observers {
		obs.SubmissionStarted(state)
	}
}

func (c *Controller) notifySubmissionSettled(state State, err error) {
	for _, obs := range c.observers {
		obs.SubmissionSettled(state, err)
	}
}
