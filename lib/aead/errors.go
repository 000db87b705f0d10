// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package aead

import "errors"

var (
	// ErrInvalidKeySize is returned when a key buffer's length does
	// not match the family's key size.
	ErrInvalidKeySize = errors.New("aead: invalid key size")

	// ErrInvalidNonceSize is returned when a nonce buffer's length
	// does not match the family's nonce size.
	ErrInvalidNonceSize = errors.New("aead: invalid nonce size")

	// ErrCiphertextTooShort is returned when a ciphertext is shorter
	// than the authentication tag and cannot possibly be valid.
	ErrCiphertextTooShort = errors.New("aead: ciphertext shorter than authentication tag")

	// ErrAuthenticationFailed is returned when tag verification fails
	// on decrypt. The message is forged or corrupted; no plaintext is
	// recoverable and none is returned.
	ErrAuthenticationFailed = errors.New("aead: message authentication failed")

	// ErrCipherUnavailable is returned by the hardware-accelerated
	// family on machines without the required CPU instructions. There
	// is no software fallback; pick a ChaCha20 family instead.
	ErrCipherUnavailable = errors.New("aead: cipher not available on this CPU")
)
