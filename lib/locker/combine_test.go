// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package locker

import (
	"errors"
	"testing"
)

func TestConcat(t *testing.T) {
	left, err := NewFromBytes([]byte("key-"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer left.Close()
	right, err := NewFromBytes([]byte("material"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer right.Close()

	combined, err := left.Concat(right)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	defer combined.Close()

	if got, err := combined.String(); err != nil || got != "key-material" {
		t.Errorf("Concat = %q, %v, want %q", got, err, "key-material")
	}

	// Operands are untouched.
	if got, _ := left.String(); got != "key-" {
		t.Errorf("left operand modified: %q", got)
	}
}

func TestConcat_WithSelf(t *testing.T) {
	buffer, err := NewFromBytes([]byte("ab"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer buffer.Close()

	doubled, err := buffer.Concat(buffer)
	if err != nil {
		t.Fatalf("Concat with self failed: %v", err)
	}
	defer doubled.Close()

	if got, _ := doubled.String(); got != "abab" {
		t.Errorf("Concat(self) = %q, want %q", got, "abab")
	}
}

func TestConcat_LockedOperand(t *testing.T) {
	left, err := NewFromBytes([]byte("open"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer left.Close()
	right, err := NewFromBytes([]byte("shut"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer right.Close()

	right.Lock()
	if _, err := left.Concat(right); !errors.Is(err, ErrLocked) {
		t.Errorf("Concat with locked right operand = %v, want ErrLocked", err)
	}

	left.Lock()
	right.Unlock()
	if _, err := left.Concat(right); !errors.Is(err, ErrLocked) {
		t.Errorf("Concat with locked left operand = %v, want ErrLocked", err)
	}
}

func TestConcat_ResultFollowsDefaultNotOperands(t *testing.T) {
	left, err := NewFromBytes([]byte("aa"), WithLocked(false))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer left.Close()
	right, err := NewFromBytes([]byte("bb"), WithLocked(false))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer right.Close()

	SetDefaultLocked(true)
	defer SetDefaultLocked(false)

	combined, err := left.Concat(right)
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}
	defer combined.Close()

	// Operands are unlocked; the result still follows the process
	// default.
	if !combined.IsLocked() {
		t.Error("Concat result should be locked under default-locked policy")
	}
}

func TestRepeat(t *testing.T) {
	buffer, err := NewFromBytes([]byte("ab"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer buffer.Close()

	repeated, err := buffer.Repeat(3)
	if err != nil {
		t.Fatalf("Repeat failed: %v", err)
	}
	defer repeated.Close()

	if got, _ := repeated.String(); got != "ababab" {
		t.Errorf("Repeat(3) = %q, want %q", got, "ababab")
	}
}

func TestRepeat_One(t *testing.T) {
	buffer, err := NewFromBytes([]byte("once"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer buffer.Close()

	repeated, err := buffer.Repeat(1)
	if err != nil {
		t.Fatalf("Repeat failed: %v", err)
	}
	defer repeated.Close()

	if !repeated.Equal(buffer) {
		t.Error("Repeat(1) differs from the original")
	}
}

func TestRepeat_InvalidCount(t *testing.T) {
	buffer, err := NewFromBytes([]byte("x"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer buffer.Close()

	if _, err := buffer.Repeat(0); err == nil {
		t.Error("expected error for Repeat(0)")
	}
	if _, err := buffer.Repeat(-2); err == nil {
		t.Error("expected error for negative repeat count")
	}
}

func TestRepeat_LockedOperand(t *testing.T) {
	buffer, err := NewFromBytes([]byte("shut"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer buffer.Close()

	buffer.Lock()
	if _, err := buffer.Repeat(2); !errors.Is(err, ErrLocked) {
		t.Errorf("Repeat on locked buffer = %v, want ErrLocked", err)
	}
}
