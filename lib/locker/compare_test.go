// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package locker

import (
	"errors"
	"testing"
)

func TestEqual_IdenticalContent(t *testing.T) {
	a, err := NewFromBytes([]byte("same bytes"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer a.Close()
	b, err := NewFromBytes([]byte("same bytes"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer b.Close()

	if !a.Equal(b) {
		t.Error("buffers with identical content compare unequal")
	}
	if !b.Equal(a) {
		t.Error("Equal is not symmetric")
	}
	if !a.Equal(a) {
		t.Error("Equal is not reflexive")
	}
}

func TestEqual_DifferentContent(t *testing.T) {
	tests := []struct {
		name  string
		left  []byte
		right []byte
	}{
		{name: "different bytes", left: []byte("aaaa"), right: []byte("aaab")},
		{name: "different length", left: []byte("aaaa"), right: []byte("aaaaa")},
		{name: "prefix", left: []byte("secret"), right: []byte("secret!")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, err := NewFromBytes(test.left)
			if err != nil {
				t.Fatalf("NewFromBytes failed: %v", err)
			}
			defer a.Close()
			b, err := NewFromBytes(test.right)
			if err != nil {
				t.Fatalf("NewFromBytes failed: %v", err)
			}
			defer b.Close()

			if a.Equal(b) {
				t.Errorf("Equal(%q, %q) = true, want false", test.left, test.right)
			}
		})
	}
}

func TestEqual_IndependentOfLockState(t *testing.T) {
	a, err := NewFromBytes([]byte("locked compare"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer a.Close()
	b, err := NewFromBytes([]byte("locked compare"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer b.Close()

	a.Lock()
	b.Lock()

	if !a.Equal(b) {
		t.Error("locked buffers with identical content compare unequal")
	}

	// Comparison must not change observable lock state.
	if !a.IsLocked() || !b.IsLocked() {
		t.Error("Equal changed lock state")
	}

	// Content stays inaccessible after the comparison.
	if _, err := a.Bytes(); !errors.Is(err, ErrLocked) {
		t.Errorf("Bytes() after locked Equal = %v, want ErrLocked", err)
	}
}

func TestEqualBytes(t *testing.T) {
	buffer, err := NewFromBytes([]byte("raw comparison"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer buffer.Close()

	if !buffer.EqualBytes([]byte("raw comparison")) {
		t.Error("EqualBytes = false for identical content")
	}
	if buffer.EqualBytes([]byte("raw comparisoN")) {
		t.Error("EqualBytes = true for different content")
	}
	if buffer.EqualBytes([]byte("raw")) {
		t.Error("EqualBytes = true for different length")
	}

	buffer.Lock()
	if !buffer.EqualBytes([]byte("raw comparison")) {
		t.Error("EqualBytes = false while locked")
	}
	if !buffer.IsLocked() {
		t.Error("EqualBytes changed lock state")
	}
}

func TestCompare_AlwaysFails(t *testing.T) {
	a, err := NewFromBytes([]byte("aaa"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer a.Close()
	b, err := NewFromBytes([]byte("bbb"))
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer b.Close()

	if _, err := a.Compare(b); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("Compare() = %v, want ErrUnsupportedOperation", err)
	}

	// Lock state makes no difference: ordering is never defined.
	a.Lock()
	if _, err := a.Compare(b); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("Compare() on locked buffer = %v, want ErrUnsupportedOperation", err)
	}
}
