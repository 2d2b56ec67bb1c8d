// Package termprobe inspects the terminal environment at startup. The
// probes only read environment variables, so the results describe what the
// terminal advertises rather than what it actually renders; the summary is
// shown once at launch so surprises are diagnosable.
package termprobe

import "os"

// Context provides environment access for the probes. Tests supply a
// fixture lookup instead of the process environment.
type Context struct {
	lookupEnv func(string) (string, bool)
}

// NewContext constructs a Context backed by the process environment.
func NewContext() *Context {
	return &Context{lookupEnv: os.LookupEnv}
}

// NewContextWithEnv constructs a Context backed by a fixed map, for tests.
func NewContextWithEnv(env map[string]string) *Context {
	return &Context{
		lookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	}
}

// Env returns the value of an environment variable, or "".
func (c *Context) Env(key string) string {
	v, _ := c.lookupEnv(key)
	return v
}

// HasEnv reports whether an environment variable is set at all, even to
// an empty value. NO_COLOR is significant when merely present.
func (c *Context) HasEnv(key string) bool {
	_, ok := c.lookupEnv(key)
	return ok
}
