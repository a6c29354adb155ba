package client

// Functional options applied by New, in order.

import (
	"fmt"
	"time"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPTimeout bounds the total time of a single HTTP call. Prefer
// per-call context deadlines; this is a coarse safety net. Must be > 0.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.rc.SetTimeout(d)
		return nil
	}
}

// WithUserID scopes Create and List to an owner tag. The tag is carried,
// not enforced, by the service.
func WithUserID(userID string) Option {
	return func(c *Client) error {
		c.userID = userID
		return nil
	}
}

// WithDebugLogging logs every request and response through zerolog when
// enabled. Do not enable in production; bodies are logged verbatim.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.rc.SetDebug(true)
			c.rc.SetLogger(restyLogger{})
		}
		return nil
	}
}
