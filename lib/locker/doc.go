// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

// Package locker provides a guarded in-memory container for secret
// material such as encryption keys, nonces, and recovered plaintext.
//
// [Buffer] allocates memory outside the Go heap via mmap(MAP_ANONYMOUS),
// locks it into physical RAM via mlock (preventing swap), and marks it
// excluded from core dumps via madvise(MADV_DONTDUMP). On Close, the
// memory is zeroed, unlocked, and unmapped. Because the memory lives
// outside the Go heap, the garbage collector cannot copy or relocate
// it, guaranteeing secret material does not persist after release.
//
// On top of that allocation discipline, a Buffer carries an explicit
// access state. While locked, the backing pages are protected with
// mprotect(PROT_NONE) and every content operation fails with
// [ErrLocked]; [Buffer.Unlock] restores readability. Buffers built
// from borrowed immutable sources (strings) are read-only for their
// whole lifetime and reject in-place mutation.
//
// Constructors:
//
//   - [New] -- allocates a zero-filled buffer of a given size
//   - [NewFromBytes] -- copies into protected memory, optionally
//     zeroing the source
//   - [NewFromString] -- copies from a borrowed immutable source;
//     the result is read-only
//   - [NewRandom] -- fills from crypto/rand
//   - [ReadFromPath] -- loads a secret from a file or stdin
//
// The initial lock state of every new buffer follows the process-wide
// default ([SetDefaultLocked]) unless overridden with [WithLocked].
// The default is captured at construction time; changing it never
// affects buffers that already exist.
//
// Content access is always explicit: [Buffer.Bytes] reveals the
// backing slice, [Buffer.Hex] formats it, and both fail while locked.
// [Buffer.Equal] is the one content operation permitted on locked
// buffers; it compares in constant time without changing observable
// lock state. Ordering comparisons are deliberately unsupported --
// byte-wise ordering of secret material is meaningless and invites
// timing leaks -- so [Buffer.Compare] always fails with
// [ErrUnsupportedOperation].
//
// A Buffer is not safe for concurrent mutation. Confine each instance
// to one goroutine, or hand off ownership entirely.
//
// Depends on golang.org/x/sys/unix. No other module-internal
// dependencies.
package locker
