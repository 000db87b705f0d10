// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package locker

import "sync/atomic"

// defaultLocked is the process-wide default lock state applied to new
// buffers that do not override it with WithLocked. It is read once at
// construction time; flipping it never changes existing buffers.
var defaultLocked atomic.Bool

// SetDefaultLocked sets the process-wide default lock state for newly
// constructed buffers. Intended to be called once at startup; tests
// that change it should restore the previous value.
func SetDefaultLocked(locked bool) {
	defaultLocked.Store(locked)
}

// DefaultLocked reports the current process-wide default lock state.
func DefaultLocked() bool {
	return defaultLocked.Load()
}

type options struct {
	lockState  *bool
	wipeSource bool
	hexSource  bool
}

// Option configures buffer construction.
type Option func(*options)

// WithLocked overrides the process-wide default lock state for this
// buffer only.
func WithLocked(locked bool) Option {
	return func(o *options) {
		o.lockState = &locked
	}
}

// WithWipeSource zeroes the caller's source storage after its content
// has been copied into the guarded region. Only meaningful for
// constructors that take owned mutable storage; NewFromString rejects
// it with ErrImmutableSource.
func WithWipeSource() Option {
	return func(o *options) {
		o.wipeSource = true
	}
}

// WithHexSource tells ReadFromPath that the file content is lowercase
// or uppercase hex and should be decoded before storing.
func WithHexSource() Option {
	return func(o *options) {
		o.hexSource = true
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// initialLockState resolves the lock state a new buffer starts in:
// the explicit override if given, the process-wide default otherwise.
func (o options) initialLockState() bool {
	if o.lockState != nil {
		return *o.lockState
	}
	return defaultLocked.Load()
}
