// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

// Package aead exposes authenticated encryption with additional data
// over guarded buffers. It binds three cipher families behind one
// contract so call sites can swap cipher choice without restructuring:
//
//   - [ChaCha20Poly1305] -- the default stream-cipher family with the
//     fixed 64-bit nonce (draft-agl construction)
//   - [ChaCha20Poly1305IETF] -- the extended-nonce (96-bit) variant,
//     RFC 8439
//   - [AES256GCM] -- the hardware-accelerated family, usable only
//     when lib/cpucap reports instruction-set support; its operations
//     fail with [ErrCipherUnavailable] instead of silently falling
//     back to a software cipher
//
// Keys and nonces live in locker.Buffer guarded memory and must be
// readable (unlocked) at call time. Encrypt returns plain ciphertext
// bytes -- ciphertext is not secret -- while Decrypt verifies the
// Poly1305 or GHASH tag over (additional data, ciphertext) before any
// plaintext is released, and lands the recovered plaintext in a fresh
// guarded buffer whose lock state follows the process-wide default.
// An authentication mismatch yields [ErrAuthenticationFailed] and no
// partial output, ever.
//
// The cipher math itself is delegated: golang.org/x/crypto supplies
// ChaCha20 and Poly1305, crypto/aes and crypto/cipher supply the
// hardware AES-GCM path. This package only enforces lengths, access
// control, and the verify-before-decrypt ordering.
//
// Nonce management is the caller's: families generate random nonces
// or counter-initialized ones ([Family.NonceFromCounter], documented
// little-endian), and locker.Buffer.Increment steps a counter nonce,
// but no nonce history is tracked. Never reuse a nonce under the same
// key.
package aead
