// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

// Package generichash provides streaming BLAKE2b hashing with an
// optional secret key. Digest length is selectable between 16 and 64
// bytes (default 32). The key, when present, is read from a guarded
// buffer at construction time and an independent guarded copy is
// retained so that Clone can rebuild keyed state later.
//
// A Hash is not safe for concurrent use. Clone is the sanctioned way
// to hand in-progress state to another goroutine: writes to the clone
// never affect the original.
package generichash
