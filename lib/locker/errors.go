// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package locker

import "errors"

var (
	// ErrLocked is returned when the content of a locked buffer is
	// read, written, or otherwise used by an operation that needs the
	// bytes. Unlock the buffer first.
	ErrLocked = errors.New("locker: buffer is locked")

	// ErrReadOnly is returned by in-place mutation (Wipe, Increment)
	// on a buffer constructed from a borrowed immutable source.
	// Read-only buffers never silently copy.
	ErrReadOnly = errors.New("locker: buffer is read-only")

	// ErrImmutableSource is returned when WithWipeSource is requested
	// for source storage the buffer does not own and cannot zero
	// (a Go string).
	ErrImmutableSource = errors.New("locker: source storage is immutable and cannot be wiped")

	// ErrUnsupportedOperation is returned by ordering comparisons.
	// Byte-wise ordering of secret material is not meaningful, so it
	// fails loudly instead of leaking timing through a comparison.
	ErrUnsupportedOperation = errors.New("locker: ordering comparison of secret buffers is not supported")
)
