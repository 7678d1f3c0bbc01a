package status

import (
	"sync"
	"time"
)

// DefaultSuccessTTL is how long a success message stays visible.
const DefaultSuccessTTL = 3 * time.Second

// Timer is the subset of *time.Timer the channel needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d and returns a handle to cancel it.
type AfterFunc func(d time.Duration, f func()) Timer

// SystemAfterFunc schedules on the runtime clock.
func SystemAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Channel holds the ephemeral success/error feedback of one view.
// Success messages auto-clear; errors persist until cleared. A single timer
// handle is owned per channel and replaced on every new success message.
type Channel struct {
	mu       sync.Mutex
	success  string
	err      string
	timer    Timer
	gen      uint64
	ttl      time.Duration
	after    AfterFunc
	onChange func()
}

// Option configures a Channel.
type Option func(*Channel)

// WithTTL overrides the success auto-clear delay.
func WithTTL(d time.Duration) Option {
	return func(c *Channel) { c.ttl = d }
}

// WithAfterFunc swaps the scheduler, mainly for tests.
func WithAfterFunc(f AfterFunc) Option {
	return func(c *Channel) {
		if f != nil {
			c.after = f
		}
	}
}

// WithOnChange registers a hook invoked after the channel changes, including
// timer-driven clears.
func WithOnChange(f func()) Option {
	return func(c *Channel) { c.onChange = f }
}

// New creates a channel.
func New(opts ...Option) *Channel {
	c := &Channel{ttl: DefaultSuccessTTL, after: SystemAfterFunc}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetSuccess publishes a success message, superseding any previous one.
func (c *Channel) SetSuccess(msg string) {
	c.mu.Lock()
	c.stopLocked()
	c.success = msg
	c.gen++
	gen := c.gen
	if msg != "" && c.ttl > 0 {
		c.timer = c.after(c.ttl, func() { c.expire(gen) })
	}
	c.mu.Unlock()
	c.notify()
}

// SetError publishes an error message. Errors do not auto-clear.
func (c *Channel) SetError(msg string) {
	c.mu.Lock()
	c.err = msg
	c.mu.Unlock()
	c.notify()
}

// Clear drops both messages and cancels the pending timer.
func (c *Channel) Clear() {
	c.mu.Lock()
	c.stopLocked()
	c.gen++
	c.success = ""
	c.err = ""
	c.mu.Unlock()
	c.notify()
}

// ClearError drops only the error message.
func (c *Channel) ClearError() {
	c.mu.Lock()
	c.err = ""
	c.mu.Unlock()
	c.notify()
}

// Stop cancels the pending timer without touching the messages.
func (c *Channel) Stop() {
	c.mu.Lock()
	c.stopLocked()
	c.gen++
	c.mu.Unlock()
}

func (c *Channel) Success() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.success
}

func (c *Channel) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Channel) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.success = ""
	c.timer = nil
	c.mu.Unlock()
	c.notify()
}

func (c *Channel) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Channel) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
