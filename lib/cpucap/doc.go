// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

// Package cpucap probes the running CPU for the instruction-set
// support that gates hardware-accelerated cipher families.
//
// [AES256GCM] reports whether the AES and carry-less multiplication
// instructions are available (AESNI+CLMUL on amd64, AES+PMULL on
// arm64). The probe runs once per process, has no side effects, and
// never fails. Callers choosing the AES-256-GCM family consult it --
// directly or through the family's own operations, which refuse to
// run without hardware support rather than silently falling back to a
// software cipher.
//
// Depends on github.com/klauspost/cpuid/v2. No module-internal
// dependencies.
package cpucap
