// Package sequence issues generation tokens for request flows where only the
// latest request may publish its result.
package sequence

import (
	"context"
	"sync"
)

// Token identifies one request of a flow. The zero Token is never current.
type Token uint64

// Counter tracks the current generation of a single flow. Starting a new
// generation cancels the context handed out for the previous one.
type Counter struct {
	mu      sync.Mutex
	current Token
	cancel  context.CancelFunc
}

// Begin opens a new generation derived from parent.
func (c *Counter) Begin(parent context.Context) (context.Context, Token) {
	ctx, cancel := context.WithCancel(parent)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.current++
	c.cancel = cancel
	return ctx, c.current
}

// IsCurrent reports whether t is still the latest generation.
func (c *Counter) IsCurrent(t Token) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return t != 0 && t == c.current
}

// Finish releases the context of t when it is still current. A superseded
// token was already cancelled by the Begin that replaced it.
func (c *Counter) Finish(t Token) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t == c.current && c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Invalidate makes every outstanding token stale.
func (c *Counter) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.current++
}

func (c *Counter) Current() Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
