// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package generichash

import (
	"encoding"
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"

	"github.com/bytelocker/bytelocker/lib/locker"
)

const (
	// MinSize and MaxSize bound the selectable digest length.
	MinSize = 16
	MaxSize = 64

	// DefaultSize is the digest length used when callers have no
	// reason to pick another one.
	DefaultSize = 32

	// MaxKeySize is the longest accepted key. 32 bytes is the
	// recommended length.
	MaxKeySize = 64

	// BlockSize is the BLAKE2b block size. A key is absorbed as one
	// full block, zero padded to this length.
	BlockSize = 128
)

// Hash is a streaming BLAKE2b hasher. Construct with New, feed it via
// Write, and read the digest with Sum or HexSum. Sum does not consume
// the state; writing after Sum continues the stream.
type Hash struct {
	inner hash.Hash
	size  int
	keyed bool
}

// New returns a hasher producing size-byte digests. A nil key selects
// plain hashing; otherwise the key is read from the guarded buffer
// (which must be unlocked, 1 to MaxKeySize bytes) and absorbed
// immediately. The buffer is borrowed, not closed, and is not needed
// after New returns.
//
// The key is mixed in as a dedicated initial block, zero padded to
// BlockSize, so keyed and plain digests of the same input never
// collide by construction.
func New(size int, key *locker.Buffer) (*Hash, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("digest size %d out of range [%d, %d]", size, MinSize, MaxSize)
	}
	inner, err := blake2b.New(size, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing blake2b: %w", err)
	}
	h := &Hash{inner: inner, size: size}
	if key != nil {
		if key.Len() == 0 || key.Len() > MaxKeySize {
			return nil, fmt.Errorf("key is %d bytes, want 1 to %d", key.Len(), MaxKeySize)
		}
		keyData, err := key.Bytes()
		if err != nil {
			return nil, fmt.Errorf("reading hash key: %w", err)
		}
		var block [BlockSize]byte
		copy(block[:], keyData)
		h.inner.Write(block[:])
		locker.Zero(block[:])
		h.keyed = true
	}
	return h, nil
}

// Sum computes a one-shot digest of data. Equivalent to New followed
// by a single Write and Sum.
func Sum(data []byte, size int, key *locker.Buffer) ([]byte, error) {
	h, err := New(size, key)
	if err != nil {
		return nil, err
	}
	if _, err := h.Write(data); err != nil {
		return nil, err
	}
	return h.Sum(), nil
}

// Write absorbs more input. Never returns an error.
func (h *Hash) Write(p []byte) (int, error) {
	return h.inner.Write(p)
}

// Size returns the digest length in bytes.
func (h *Hash) Size() int {
	return h.size
}

// Keyed reports whether the hasher was constructed with a key.
func (h *Hash) Keyed() bool {
	return h.keyed
}

// Sum returns the digest of everything written so far. The streaming
// state is untouched; further writes extend the same stream.
func (h *Hash) Sum() []byte {
	return h.inner.Sum(nil)
}

// HexSum returns Sum hex encoded, the canonical log and wire format
// for digests.
func (h *Hash) HexSum() string {
	return hex.EncodeToString(h.Sum())
}

// Clone returns an independent copy of the in-progress state. Writes
// to the clone never affect the original and vice versa. Cloning is
// the sanctioned way to hand a hasher's state to another goroutine.
func (h *Hash) Clone() (*Hash, error) {
	state, err := h.inner.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("snapshotting hash state: %w", err)
	}
	inner, err := blake2b.New(h.size, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing blake2b: %w", err)
	}
	if err := inner.(encoding.BinaryUnmarshaler).UnmarshalBinary(state); err != nil {
		return nil, fmt.Errorf("restoring hash state: %w", err)
	}
	locker.Zero(state)
	return &Hash{inner: inner, size: h.size, keyed: h.keyed}, nil
}
