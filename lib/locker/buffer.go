// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package locker

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sys/unix"
)

// Buffer holds secret material in memory that is locked against
// swapping, excluded from core dumps, and zeroed on close. The backing
// memory is allocated via mmap outside the Go heap.
//
// A Buffer must not be copied after creation. Use Close to release the
// memory when the secret is no longer needed. After Close, any access
// to the buffer panics.
type Buffer struct {
	mu       sync.Mutex
	data     []byte
	length   int
	locked   bool
	readOnly bool
	closed   bool
}

// New allocates a new guarded buffer of the given size, zero-filled.
// The buffer is backed by an anonymous mmap region that is:
//   - Locked into physical RAM (mlock), preventing swap
//   - Excluded from core dumps (MADV_DONTDUMP)
//   - Outside the Go heap, invisible to the garbage collector
//
// A size of zero is permitted (an empty secret is still a valid
// secret, e.g. the decryption of an empty message). The initial lock
// state follows the process-wide default unless overridden with
// WithLocked. The caller must call Close when the secret is no longer
// needed.
func New(size int, opts ...Option) (*Buffer, error) {
	o := applyOptions(opts)

	buffer, err := newBuffer(size)
	if err != nil {
		return nil, err
	}
	buffer.finishLock(o.initialLockState())
	return buffer, nil
}

// NewFromBytes creates a guarded buffer holding a copy of source.
// With WithWipeSource, the caller's slice is zeroed after the copy so
// the original storage no longer holds the secret.
func NewFromBytes(source []byte, opts ...Option) (*Buffer, error) {
	o := applyOptions(opts)

	buffer, err := newBuffer(len(source))
	if err != nil {
		return nil, err
	}
	copy(buffer.data, source)
	if o.wipeSource {
		Zero(source)
	}
	buffer.finishLock(o.initialLockState())
	return buffer, nil
}

// NewFromString creates a guarded buffer holding a copy of a string.
// Strings are borrowed immutable storage: the resulting buffer is
// read-only, and WithWipeSource fails with ErrImmutableSource because
// the source cannot be zeroed.
func NewFromString(source string, opts ...Option) (*Buffer, error) {
	o := applyOptions(opts)
	if o.wipeSource {
		return nil, ErrImmutableSource
	}

	buffer, err := newBuffer(len(source))
	if err != nil {
		return nil, err
	}
	copy(buffer.data, source)
	buffer.readOnly = true
	buffer.finishLock(o.initialLockState())
	return buffer, nil
}

// NewRandom allocates a guarded buffer filled with cryptographically
// secure random bytes.
func NewRandom(size int, opts ...Option) (*Buffer, error) {
	o := applyOptions(opts)

	buffer, err := newBuffer(size)
	if err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(rand.Reader, buffer.data[:buffer.length]); err != nil {
		buffer.Close()
		return nil, fmt.Errorf("locker: reading random bytes: %w", err)
	}
	buffer.finishLock(o.initialLockState())
	return buffer, nil
}

// newBuffer allocates the guarded region with read-write protection.
// Callers fill it and then apply the final state via finishLock.
func newBuffer(size int) (*Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("locker: buffer size must be non-negative, got %d", size)
	}

	// mmap requires a positive length; a zero-size buffer still gets
	// one guarded byte of backing storage, with Len reporting 0.
	allocation := size
	if allocation == 0 {
		allocation = 1
	}

	// Allocate anonymous memory outside the Go heap.
	data, err := unix.Mmap(-1, 0, allocation, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("locker: mmap failed: %w", err)
	}

	// Lock the memory to prevent it from being swapped to disk.
	if err := unix.Mlock(data); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("locker: mlock failed: %w", err)
	}

	// Exclude from core dumps.
	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(data)
		unix.Munmap(data)
		return nil, fmt.Errorf("locker: madvise(MADV_DONTDUMP) failed: %w", err)
	}

	return &Buffer{data: data, length: size}, nil
}

// finishLock applies the initial lock state after construction and
// sets page protection to match.
func (b *Buffer) finishLock(locked bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.locked = locked
	b.applyProtection()
}

// applyProtection sets page protection to match the current state.
// Must be called with mu held. The locked flag is authoritative;
// mprotect adds hardware enforcement on top and failure here does not
// change the software contract.
func (b *Buffer) applyProtection() {
	var prot int
	switch {
	case b.locked:
		prot = unix.PROT_NONE
	case b.readOnly:
		prot = unix.PROT_READ
	default:
		prot = unix.PROT_READ | unix.PROT_WRITE
	}
	_ = unix.Mprotect(b.data, prot)
}

// ensureOpen panics if the buffer has been closed. Must be called
// with mu held.
func (b *Buffer) ensureOpen() {
	if b.closed {
		panic("locker: use of closed Buffer")
	}
}

// Lock makes the buffer content inaccessible: the backing pages are
// protected PROT_NONE and content operations fail with ErrLocked
// until Unlock. Idempotent, never fails.
func (b *Buffer) Lock() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureOpen()
	if b.locked {
		return
	}
	b.locked = true
	b.applyProtection()
}

// Unlock makes the buffer content readable again (and writable, for
// mutable buffers). Idempotent, never fails.
func (b *Buffer) Unlock() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureOpen()
	if !b.locked {
		return
	}
	b.locked = false
	b.applyProtection()
}

// IsLocked reports whether the buffer is currently locked.
func (b *Buffer) IsLocked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureOpen()
	return b.locked
}

// IsReadOnly reports whether the buffer rejects in-place mutation.
func (b *Buffer) IsReadOnly() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureOpen()
	return b.readOnly
}

// Len returns the size of the buffer. Length is not secret and is
// available regardless of lock state.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.length
}

// Bytes reveals the secret data. The returned slice points directly
// into the mmap region -- do not hold references to it across Lock or
// Close. Returns ErrLocked while the buffer is locked. Panics if the
// buffer has been closed.
func (b *Buffer) Bytes() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureOpen()
	if b.locked {
		return nil, ErrLocked
	}
	return b.data[:b.length], nil
}

// String reveals the secret data as a string. The returned string is
// backed by a heap-allocated copy (Go strings are immutable and must
// live on the heap), so this should only be used at API boundaries
// that require string arguments. Prefer Bytes when possible.
//
// Returns ErrLocked while the buffer is locked.
func (b *Buffer) String() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureOpen()
	if b.locked {
		return "", ErrLocked
	}
	return string(b.data[:b.length]), nil
}

// Hex returns the content encoded as lowercase hexadecimal, two
// characters per byte, no separators. Returns ErrLocked while locked.
func (b *Buffer) Hex() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureOpen()
	if b.locked {
		return "", ErrLocked
	}
	return hex.EncodeToString(b.data[:b.length]), nil
}

// Wipe overwrites the content with zero bytes in place. The buffer
// stays allocated and usable. Fails with ErrLocked on locked buffers
// and ErrReadOnly on read-only ones.
func (b *Buffer) Wipe() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureOpen()
	if b.locked {
		return ErrLocked
	}
	if b.readOnly {
		return ErrReadOnly
	}
	Zero(b.data)
	return nil
}

// Increment treats the content as a little-endian unsigned integer
// and adds one in place, wrapping on overflow. This is the counter
// step for nonces held in a buffer. Fails with ErrLocked on locked
// buffers and ErrReadOnly on read-only ones.
func (b *Buffer) Increment() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureOpen()
	if b.locked {
		return ErrLocked
	}
	if b.readOnly {
		return ErrReadOnly
	}
	carry := uint16(1)
	for index := 0; index < b.length; index++ {
		carry += uint16(b.data[index])
		b.data[index] = byte(carry)
		carry >>= 8
	}
	return nil
}

// Close zeros the buffer contents, unlocks and unmaps the memory,
// regardless of lock state. After Close, any access to the buffer
// panics. Close is idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	// Restore write access so a locked or read-only buffer can still
	// be zeroed. Destruction wipes unconditionally.
	_ = unix.Mprotect(b.data, unix.PROT_READ|unix.PROT_WRITE)
	Zero(b.data)

	// Unlock and unmap. The memory is released when the process exits
	// regardless, so the first error is reported but not fatal.
	var firstError error
	if err := unix.Munlock(b.data); err != nil && firstError == nil {
		firstError = fmt.Errorf("locker: munlock failed: %w", err)
	}
	if err := unix.Munmap(b.data); err != nil && firstError == nil {
		firstError = fmt.Errorf("locker: munmap failed: %w", err)
	}

	b.data = nil
	return firstError
}

// Zero overwrites b with zero bytes. Use it to scrub transient copies
// of secret material that lived outside guarded memory.
func Zero(b []byte) {
	for index := range b {
		b[index] = 0
	}
}
