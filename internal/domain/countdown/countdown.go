// Package countdown implements the mission-view expiry timer: a single
// repeating 1-second tick that forces logout after a fixed budget
// unless stopped or restarted first.
package countdown

import (
	"sync"
	"time"
)

const defaultInterval = time.Second

// Controller owns at most one active countdown. Starting a new one
// supersedes the prior run and the expiry callback fires at most once
// per run. A callback that already left the lock when Stop or a new
// Start arrived still completes, so callers that need strict
// supersession bind a run token into OnExpire and discard mismatches.
type Controller struct {
	mu       sync.Mutex
	interval time.Duration
	onExpire func()

	remaining int
	running   bool
	stopCh    chan struct{}
}

// Option applies a configuration option to the Controller.
type Option func(*Controller)

// WithInterval overrides the tick interval. Tests use a millisecond
// interval to advance virtual seconds quickly.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// New creates a stopped controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		interval: defaultInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnExpire sets the callback invoked when the countdown reaches zero.
// The callback runs outside the controller's lock, so it may call Stop
// or Start freely, including from within the callback itself.
func (c *Controller) OnExpire(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpire = fn
}

// Start cancels any running countdown and begins a new one at the given
// budget in seconds.
func (c *Controller) Start(seconds int) {
	c.mu.Lock()
	c.stopLocked()
	if seconds < 0 {
		seconds = 0
	}
	c.remaining = seconds
	stop := make(chan struct{})
	c.stopCh = stop
	c.running = true
	interval := c.interval
	c.mu.Unlock()

	go c.run(interval, stop)
}

// Stop cancels the active countdown. Idempotent and safe to call when
// nothing is running.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// stopLocked signals the run loop to exit and clears the budget.
// Must be called with c.mu held.
func (c *Controller) stopLocked() {
	if c.running {
		close(c.stopCh)
		c.running = false
	}
	c.remaining = 0
}

// Remaining reports the seconds left, clamped to zero.
func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining < 0 {
		return 0
	}
	return c.remaining
}

// Running reports whether a countdown is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Controller) run(interval time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if c.tick(stop) {
				return
			}
		}
	}
}

// tick decrements the budget and fires the expiry callback when it
// reaches zero. The stop channel identifies the run this tick belongs
// to; a tick racing a Stop or a newer Start is discarded.
func (c *Controller) tick(stop chan struct{}) bool {
	c.mu.Lock()
	if !c.running || c.stopCh != stop {
		c.mu.Unlock()
		return true
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining > 0 {
		c.mu.Unlock()
		return false
	}
	fn := c.onExpire
	c.running = false
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
	return true
}
