// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package aead

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/bytelocker/bytelocker/lib/locker"
)

func mustLocker(t *testing.T, hexValue string) *locker.Buffer {
	t.Helper()
	raw, err := hex.DecodeString(hexValue)
	if err != nil {
		t.Fatalf("bad test hex %q: %v", hexValue, err)
	}
	buffer, err := locker.NewFromBytes(raw, locker.WithLocked(false))
	if err != nil {
		t.Fatalf("NewFromBytes() error: %v", err)
	}
	t.Cleanup(func() { buffer.Close() })
	return buffer
}

// Known-answer vector for the 64-bit nonce construction, from
// draft-agl-tls-chacha20poly1305. Guards the composition over the
// x/crypto primitives: one wrong counter, nonce mapping, or MAC
// layout byte and this fails.
func TestChaCha20Poly1305_KnownAnswer(t *testing.T) {
	key := mustLocker(t, "4290bcb154173531f314af57f3be3b5006da371ece272afa1b5dbdd1100a1007")
	nonce := mustLocker(t, "cd7cf67be39c794a")
	plaintext, _ := hex.DecodeString("86d09974840bded2a5ca")
	additionalData, _ := hex.DecodeString("87e229d4500845a079c0")
	expected, _ := hex.DecodeString("e3e446f7ede9a19b62a4677dabf4e3d24b876bb284753896e1d6")

	family := ChaCha20Poly1305()
	ciphertext, err := family.Encrypt(plaintext, additionalData, nonce, key)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if !bytes.Equal(ciphertext, expected) {
		t.Fatalf("Encrypt() = %x, want %x", ciphertext, expected)
	}

	recovered, err := family.Decrypt(expected, additionalData, nonce, key)
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}
	defer recovered.Close()
	if !recovered.EqualBytes(plaintext) {
		t.Error("Decrypt() of known vector does not match plaintext")
	}
}

// The worked scenario from the package contract: a 32-byte key of
// 0x01 bytes, an all-zero 8-byte nonce, plaintext "Hi Bob!" with
// additional data "greeting" round-trips, and the ciphertext is
// exactly 7+16 bytes.
func TestChaCha20Poly1305_GreetingScenario(t *testing.T) {
	key := mustLocker(t, "0101010101010101010101010101010101010101010101010101010101010101")
	nonce := mustLocker(t, "0000000000000000")

	family := ChaCha20Poly1305()
	ciphertext, err := family.Encrypt([]byte("Hi Bob!"), []byte("greeting"), nonce, key)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if len(ciphertext) != 23 {
		t.Fatalf("ciphertext is %d bytes, want 23", len(ciphertext))
	}

	recovered, err := family.Decrypt(ciphertext, []byte("greeting"), nonce, key)
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}
	defer recovered.Close()
	if !recovered.EqualBytes([]byte("Hi Bob!")) {
		t.Error("recovered plaintext is not \"Hi Bob!\"")
	}
}

// The two ChaCha20 families are distinct constructions: a ciphertext
// sealed by one must not open under the other, even with matching key
// material.
func TestChaCha20Poly1305_FamiliesDoNotInterop(t *testing.T) {
	key := mustLocker(t, "0101010101010101010101010101010101010101010101010101010101010101")

	legacy := ChaCha20Poly1305()
	ietf := ChaCha20Poly1305IETF()

	legacyNonce, err := legacy.NonceFromCounter(7)
	if err != nil {
		t.Fatalf("NonceFromCounter() error: %v", err)
	}
	defer legacyNonce.Close()
	ietfNonce, err := ietf.NonceFromCounter(7)
	if err != nil {
		t.Fatalf("NonceFromCounter() error: %v", err)
	}
	defer ietfNonce.Close()

	ciphertext, err := legacy.Encrypt([]byte("family bound"), nil, legacyNonce, key)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	if _, err := ietf.Decrypt(ciphertext, nil, ietfNonce, key); err == nil {
		t.Error("IETF family opened a legacy-family ciphertext")
	}
}

func TestChaCha20Poly1305_DeterministicUnderFixedInputs(t *testing.T) {
	key := mustLocker(t, "0101010101010101010101010101010101010101010101010101010101010101")
	nonce := mustLocker(t, "0000000000000000")

	family := ChaCha20Poly1305()
	first, err := family.Encrypt([]byte("same in, same out"), nil, nonce, key)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	second, err := family.Encrypt([]byte("same in, same out"), nil, nonce, key)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("encryption is not deterministic for fixed key and nonce")
	}
}
