// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

// Package keyfile stores key material on disk under a passphrase.
// Files are age ciphertext with a scrypt recipient, written 0600.
// Import decrypts straight into a guarded locker.Buffer; a wrong
// passphrase surfaces as an error, never as partial plaintext.
//
// ReadPassphrase collects the passphrase itself: a no-echo terminal
// prompt when stdin is a terminal, a plain line read otherwise (so
// pipelines and tests can feed it).
package keyfile
