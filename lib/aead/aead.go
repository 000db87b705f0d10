// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package aead

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bytelocker/bytelocker/lib/locker"
)

// Cipher is the contract shared by all families. Constructors return
// concrete family types; accept this interface where the cipher
// choice should be the caller's.
type Cipher interface {
	// Name identifies the family in errors and diagnostics.
	Name() string

	// KeySize, NonceSize and Overhead report the family's byte sizes.
	// Ciphertext length is always plaintext length plus Overhead.
	KeySize() int
	NonceSize() int
	Overhead() int

	// GenerateKey returns a fresh random key in a guarded buffer.
	GenerateKey() (*locker.Buffer, error)

	// GenerateNonce returns a fully random nonce in a guarded buffer.
	GenerateNonce() (*locker.Buffer, error)

	// NonceFromCounter returns a nonce holding the counter value
	// encoded little-endian, zero-padded to the nonce size. Step it
	// with locker.Buffer.Increment. The caller owns the never-reuse
	// invariant; no nonce history is tracked.
	NonceFromCounter(initial uint64) (*locker.Buffer, error)

	// Encrypt seals plaintext under (key, nonce), authenticating
	// additionalData alongside it. Key and nonce must be unlocked.
	Encrypt(plaintext, additionalData []byte, nonce, key *locker.Buffer) ([]byte, error)

	// Decrypt verifies the authentication tag over (additionalData,
	// ciphertext) and only then recovers the plaintext into a guarded
	// buffer whose lock state follows the process default. On
	// ErrAuthenticationFailed no partial plaintext is ever returned.
	Decrypt(ciphertext, additionalData []byte, nonce, key *locker.Buffer) (*locker.Buffer, error)
}

// Family implements Cipher for one concrete construction. The seal
// and open functions receive validated, readable key and nonce bytes
// and delegate to the external cipher.
type Family struct {
	name      string
	keySize   int
	nonceSize int
	overhead  int

	// gate is consulted before every operation; nil means always
	// ready. The hardware family refuses to run without CPU support.
	gate func() error

	seal func(key, nonce, plaintext, additionalData []byte) ([]byte, error)
	open func(key, nonce, ciphertext, additionalData []byte) ([]byte, error)
}

func (f *Family) Name() string   { return f.name }
func (f *Family) KeySize() int   { return f.keySize }
func (f *Family) NonceSize() int { return f.nonceSize }
func (f *Family) Overhead() int  { return f.overhead }

func (f *Family) ready() error {
	if f.gate != nil {
		return f.gate()
	}
	return nil
}

// GenerateKey returns a fresh key of the family's key size, filled
// from crypto/rand, in a guarded buffer whose lock state follows the
// process default.
func (f *Family) GenerateKey() (*locker.Buffer, error) {
	if err := f.ready(); err != nil {
		return nil, err
	}
	key, err := locker.NewRandom(f.keySize)
	if err != nil {
		return nil, fmt.Errorf("%s: generating key: %w", f.name, err)
	}
	return key, nil
}

// GenerateNonce returns a fully random nonce of the family's nonce
// size.
func (f *Family) GenerateNonce() (*locker.Buffer, error) {
	if err := f.ready(); err != nil {
		return nil, err
	}
	nonce, err := locker.NewRandom(f.nonceSize)
	if err != nil {
		return nil, fmt.Errorf("%s: generating nonce: %w", f.name, err)
	}
	return nonce, nil
}

// NonceFromCounter returns a nonce holding initial encoded as a
// little-endian 64-bit value, zero-padded to the family's nonce size.
func (f *Family) NonceFromCounter(initial uint64) (*locker.Buffer, error) {
	if err := f.ready(); err != nil {
		return nil, err
	}
	raw := make([]byte, f.nonceSize)
	binary.LittleEndian.PutUint64(raw[:8], initial)
	nonce, err := locker.NewFromBytes(raw, locker.WithWipeSource())
	if err != nil {
		return nil, fmt.Errorf("%s: constructing counter nonce: %w", f.name, err)
	}
	return nonce, nil
}

// Encrypt seals plaintext under (key, nonce) with additionalData
// authenticated alongside. The returned ciphertext is plaintext
// length plus Overhead bytes and is not secret.
func (f *Family) Encrypt(plaintext, additionalData []byte, nonce, key *locker.Buffer) ([]byte, error) {
	if err := f.ready(); err != nil {
		return nil, err
	}
	keyData, nonceData, err := f.readKeyNonce(key, nonce)
	if err != nil {
		return nil, err
	}
	ciphertext, err := f.seal(keyData, nonceData, plaintext, additionalData)
	if err != nil {
		return nil, fmt.Errorf("%s: encrypting: %w", f.name, err)
	}
	return ciphertext, nil
}

// Decrypt verifies the tag over (additionalData, ciphertext) before
// releasing any plaintext. The recovered plaintext lands in a guarded
// buffer whose lock state follows the process default.
func (f *Family) Decrypt(ciphertext, additionalData []byte, nonce, key *locker.Buffer) (*locker.Buffer, error) {
	if err := f.ready(); err != nil {
		return nil, err
	}
	if len(ciphertext) < f.overhead {
		return nil, fmt.Errorf("%s: ciphertext is %d bytes, minimum is %d: %w",
			f.name, len(ciphertext), f.overhead, ErrCiphertextTooShort)
	}
	keyData, nonceData, err := f.readKeyNonce(key, nonce)
	if err != nil {
		return nil, err
	}
	plaintext, err := f.open(keyData, nonceData, ciphertext, additionalData)
	if err != nil {
		return nil, err
	}
	return guardPlaintext(f.name, plaintext)
}

// readKeyNonce validates lengths and reveals the key and nonce bytes.
// Locked buffers surface locker.ErrLocked.
func (f *Family) readKeyNonce(key, nonce *locker.Buffer) (keyData, nonceData []byte, err error) {
	if key.Len() != f.keySize {
		return nil, nil, fmt.Errorf("%s: key is %d bytes, want %d: %w",
			f.name, key.Len(), f.keySize, ErrInvalidKeySize)
	}
	if nonce.Len() != f.nonceSize {
		return nil, nil, fmt.Errorf("%s: nonce is %d bytes, want %d: %w",
			f.name, nonce.Len(), f.nonceSize, ErrInvalidNonceSize)
	}
	keyData, err = key.Bytes()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: reading key: %w", f.name, err)
	}
	nonceData, err = nonce.Bytes()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: reading nonce: %w", f.name, err)
	}
	return keyData, nonceData, nil
}

// guardPlaintext moves recovered plaintext from its transient heap
// slice into guarded memory, zeroing the heap copy.
func guardPlaintext(name string, plaintext []byte) (*locker.Buffer, error) {
	buffer, err := locker.NewFromBytes(plaintext, locker.WithWipeSource())
	if err != nil {
		locker.Zero(plaintext)
		return nil, fmt.Errorf("%s: protecting recovered plaintext: %w", name, err)
	}
	return buffer, nil
}

// keyIDContext is the BLAKE3 derivation context for key fingerprints.
// Changing it changes every fingerprint.
const keyIDContext = "bytelocker aead key id v1"

// KeyID returns a short hex fingerprint of a key, derived with
// keyed BLAKE3 so the fingerprint reveals nothing about the key
// material. Safe to log and to use as a storage label. The key must
// be unlocked.
func KeyID(key *locker.Buffer) (string, error) {
	keyData, err := key.Bytes()
	if err != nil {
		return "", fmt.Errorf("aead: reading key for fingerprint: %w", err)
	}
	var id [8]byte
	blake3.DeriveKey(keyIDContext, keyData, id[:])
	return hex.EncodeToString(id[:]), nil
}
