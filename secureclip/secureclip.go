package secureclip

import (
	"sync"
	"time"

	"github.com/atotto/clipboard"
)

// DefaultTimeout is how long a copied password stays on the clipboard.
const DefaultTimeout = 30 * time.Second

// Clipper copies passwords to the clipboard and clears the clipboard once
// `timeout` has passed since the most recent Clip call.
type Clipper struct {
	timeout time.Duration
	write   func(string) error

	mu  sync.Mutex
	gen uint64
}

// New creates a Clipper backed by the system clipboard. A non-positive
// timeout selects DefaultTimeout.
func New(timeout time.Duration) *Clipper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Clipper{
		timeout: timeout,
		write:   clipboard.WriteAll,
	}
}

// Timeout returns the delay before the clipboard is cleared.
func (c *Clipper) Timeout() time.Duration {
	return c.timeout
}

// Clip copies the password given by `password` to the clipboard. The
// clipboard will be cleared `timeout` after the last `Clip` call.
func (c *Clipper) Clip(password string) error {
	if err := c.write(password); err != nil {
		return err
	}
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	time.AfterFunc(c.timeout, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen == gen {
			c.write("")
		}
	})
	return nil
}

// Clear clears the clipboard.
func (c *Clipper) Clear() error {
	c.mu.Lock()
	c.gen++
	c.mu.Unlock()
	return c.write("")
}

// Unsupported reports whether no clipboard utility is available on this
// system.
func Unsupported() bool {
	return clipboard.Unsupported
}
