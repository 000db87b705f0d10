// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package locker

import (
	"crypto/subtle"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Equal reports whether two buffers hold identical content. The
// comparison is constant-time in the content and works regardless of
// either buffer's lock state: locked pages are briefly re-exposed for
// reading under the buffer's mutex and re-protected before returning,
// without changing observable lock state.
//
// Lengths are compared first; unequal lengths short-circuit to false
// (length is not secret). Panics if either buffer has been closed.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == other {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.ensureOpen()
		return true
	}

	// Lock in address order so concurrent a.Equal(b) and b.Equal(a)
	// cannot deadlock.
	first, second := b, other
	if uintptr(unsafe.Pointer(other)) < uintptr(unsafe.Pointer(b)) {
		first, second = other, b
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()
	b.ensureOpen()
	other.ensureOpen()

	if b.length != other.length {
		return false
	}

	restoreB := b.exposeForRead()
	defer restoreB()
	restoreOther := other.exposeForRead()
	defer restoreOther()

	return subtle.ConstantTimeCompare(b.data[:b.length], other.data[:other.length]) == 1
}

// EqualBytes reports whether the buffer content equals a raw byte
// sequence, with the same constant-time and lock-state semantics as
// Equal.
func (b *Buffer) EqualBytes(raw []byte) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureOpen()

	if b.length != len(raw) {
		return false
	}

	restore := b.exposeForRead()
	defer restore()

	return subtle.ConstantTimeCompare(b.data[:b.length], raw) == 1
}

// Compare never succeeds: byte-wise ordering of secret material is
// not meaningful and invites timing leaks, so it always returns
// ErrUnsupportedOperation. It exists so code ported from hosts with
// ordered comparison operators fails at the call site instead of
// silently reaching for bytes.Compare.
func (b *Buffer) Compare(other *Buffer) (int, error) {
	return 0, ErrUnsupportedOperation
}

// exposeForRead makes locked pages readable and returns the function
// that restores protection. A no-op for unlocked buffers. Must be
// called with mu held; the locked flag itself does not change.
func (b *Buffer) exposeForRead() func() {
	if !b.locked {
		return func() {}
	}
	_ = unix.Mprotect(b.data, unix.PROT_READ)
	return func() { b.applyProtection() }
}
