// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"sync"

	"github.com/bytelocker/bytelocker/lib/cpucap"
	"github.com/bytelocker/bytelocker/lib/locker"
)

// AES-256-GCM sizes.
const (
	AESGCMKeySize   = 32
	AESGCMNonceSize = 12
	AESGCMOverhead  = 16
)

// AESGCMFamily is the hardware-accelerated AES-256-GCM family. All
// operations refuse to run on machines without the AES and carry-less
// multiply instructions; there is no software fallback, because a
// silent fallback would override the caller's explicit cipher choice
// with a slower, more leak-prone implementation.
type AESGCMFamily struct {
	Family
}

// AES256GCM returns the hardware-accelerated family. Check Available
// (or accept ErrCipherUnavailable from any operation) before use.
func AES256GCM() *AESGCMFamily {
	return &AESGCMFamily{Family{
		name:      "aes256gcm",
		keySize:   AESGCMKeySize,
		nonceSize: AESGCMNonceSize,
		overhead:  AESGCMOverhead,
		gate:      aesGate,
		seal:      aesSeal,
		open:      aesOpen,
	}}
}

// Available reports whether this machine can run the family. Pure
// capability probe, no side effects, never fails.
func (a *AESGCMFamily) Available() bool {
	return cpucap.AES256GCM()
}

func aesGate() error {
	if !cpucap.AES256GCM() {
		return ErrCipherUnavailable
	}
	return nil
}

// newGCM expands an AES-256 key into a GCM instance.
func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating AES-256 cipher: %w", err)
	}
	sealer, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM mode: %w", err)
	}
	return sealer, nil
}

func aesSeal(key, nonce, plaintext, additionalData []byte) ([]byte, error) {
	sealer, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return sealer.Seal(nil, nonce, plaintext, additionalData), nil
}

func aesOpen(key, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	opener, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := opener.Open(nil, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, fmt.Errorf("aes256gcm: %w", ErrAuthenticationFailed)
	}
	return plaintext, nil
}

// PrecomputedKey is the expanded AES-256-GCM key state. Key expansion
// runs once at Precompute and is reused across many Encrypt/Decrypt
// calls. The state keeps its own guarded copy of the key: Lock and
// Unlock control access like a buffer, and Close wipes the key copy.
// The expanded round keys inside the stdlib cipher live on the Go
// heap and cannot be zeroed from here; the guarded copy is the
// durable one.
//
// Like a locker.Buffer, a PrecomputedKey is not safe for concurrent
// mutation, and use after Close panics.
type PrecomputedKey struct {
	mu     sync.Mutex
	name   string
	key    *locker.Buffer
	sealer cipher.AEAD
}

// Precompute expands a key once for reuse. The key buffer is borrowed
// (read, copied into the state's own guarded memory) and NOT closed;
// it must be unlocked and exactly KeySize bytes.
func (a *AESGCMFamily) Precompute(key *locker.Buffer) (*PrecomputedKey, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	if key.Len() != a.keySize {
		return nil, fmt.Errorf("%s: key is %d bytes, want %d: %w",
			a.name, key.Len(), a.keySize, ErrInvalidKeySize)
	}
	keyData, err := key.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%s: reading key: %w", a.name, err)
	}
	sealer, err := newGCM(keyData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}
	keyCopy, err := locker.NewFromBytes(keyData, locker.WithLocked(false))
	if err != nil {
		return nil, fmt.Errorf("%s: guarding key copy: %w", a.name, err)
	}
	return &PrecomputedKey{
		name:   a.name,
		key:    keyCopy,
		sealer: sealer,
	}, nil
}

// Lock makes the precomputed state unusable until Unlock. Idempotent.
func (p *PrecomputedKey) Lock() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.key.Lock()
}

// Unlock restores use of the precomputed state. Idempotent.
func (p *PrecomputedKey) Unlock() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.key.Unlock()
}

// IsLocked reports whether the state is locked.
func (p *PrecomputedKey) IsLocked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.key.IsLocked()
}

// Encrypt is Family.Encrypt with the expansion cost already paid.
// Fails with locker.ErrLocked while the state is locked.
func (p *PrecomputedKey) Encrypt(plaintext, additionalData []byte, nonce *locker.Buffer) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	nonceData, err := p.readNonce(nonce)
	if err != nil {
		return nil, err
	}
	return p.sealer.Seal(nil, nonceData, plaintext, additionalData), nil
}

// Decrypt is Family.Decrypt with the expansion cost already paid:
// tag verified over (additionalData, ciphertext) before any plaintext
// is released, recovered plaintext in a guarded buffer, no partial
// output on failure.
func (p *PrecomputedKey) Decrypt(ciphertext, additionalData []byte, nonce *locker.Buffer) (*locker.Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(ciphertext) < AESGCMOverhead {
		return nil, fmt.Errorf("%s: ciphertext is %d bytes, minimum is %d: %w",
			p.name, len(ciphertext), AESGCMOverhead, ErrCiphertextTooShort)
	}
	nonceData, err := p.readNonce(nonce)
	if err != nil {
		return nil, err
	}
	plaintext, err := p.sealer.Open(nil, nonceData, ciphertext, additionalData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, ErrAuthenticationFailed)
	}
	return guardPlaintext(p.name, plaintext)
}

// readNonce validates the nonce and checks the state's lock via the
// guarded key copy. Must be called with mu held.
func (p *PrecomputedKey) readNonce(nonce *locker.Buffer) ([]byte, error) {
	// Reading the key copy enforces both the closed check (panic) and
	// the lock state (locker.ErrLocked).
	if _, err := p.key.Bytes(); err != nil {
		return nil, fmt.Errorf("%s: precomputed key: %w", p.name, err)
	}
	if nonce.Len() != AESGCMNonceSize {
		return nil, fmt.Errorf("%s: nonce is %d bytes, want %d: %w",
			p.name, nonce.Len(), AESGCMNonceSize, ErrInvalidNonceSize)
	}
	nonceData, err := nonce.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%s: reading nonce: %w", p.name, err)
	}
	return nonceData, nil
}

// Close wipes the guarded key copy and drops the expanded state.
// Idempotent. Subsequent use panics.
func (p *PrecomputedKey) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sealer = nil
	return p.key.Close()
}
