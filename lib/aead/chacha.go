// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package aead

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/poly1305"

	"github.com/bytelocker/bytelocker/lib/locker"
)

// ChaCha20Poly1305 sizes. The 8-byte nonce is the defining feature of
// the original (draft-agl) construction; the IETF variant extends it
// to 12 bytes.
const (
	ChaChaKeySize       = chacha20.KeySize
	ChaChaNonceSize     = 8
	ChaChaIETFNonceSize = chacha20poly1305.NonceSize
	ChaChaOverhead      = poly1305.TagSize
)

// ChaCha20Poly1305 returns the default family: ChaCha20-Poly1305 with
// the fixed 64-bit nonce (draft-agl construction). Always available.
func ChaCha20Poly1305() *Family {
	return &Family{
		name:      "chacha20poly1305",
		keySize:   ChaChaKeySize,
		nonceSize: ChaChaNonceSize,
		overhead:  ChaChaOverhead,
		seal:      legacySeal,
		open:      legacyOpen,
	}
}

// ChaCha20Poly1305IETF returns the extended-nonce (96-bit) variant,
// RFC 8439. Always available.
func ChaCha20Poly1305IETF() *Family {
	return &Family{
		name:      "chacha20poly1305_ietf",
		keySize:   chacha20poly1305.KeySize,
		nonceSize: ChaChaIETFNonceSize,
		overhead:  chacha20poly1305.Overhead,
		seal:      ietfSeal,
		open:      ietfOpen,
	}
}

// legacyStream builds the ChaCha20 stream for the 64-bit nonce
// construction and derives the one-time Poly1305 key from block zero.
// The legacy 64-bit block counter's high word occupies the first four
// bytes of the IETF nonce layout; it stays zero for any message under
// 256 GiB, so mapping the 8-byte nonce into the tail of a 12-byte
// IETF nonce is exact.
func legacyStream(key, nonce []byte, polyKey *[32]byte) (*chacha20.Cipher, error) {
	ietfNonce := make([]byte, chacha20.NonceSize)
	copy(ietfNonce[4:], nonce)
	stream, err := chacha20.NewUnauthenticatedCipher(key, ietfNonce)
	if err != nil {
		return nil, fmt.Errorf("creating chacha20 stream: %w", err)
	}
	stream.XORKeyStream(polyKey[:], polyKey[:])
	stream.SetCounter(1) // skip the rest of block zero
	return stream, nil
}

// legacyTag computes the draft-agl tag: Poly1305 over additional data,
// its length, the ciphertext, and its length, both lengths as 64-bit
// little-endian values with no padding between sections.
func legacyTag(polyKey *[32]byte, additionalData, ciphertext []byte) [poly1305.TagSize]byte {
	mac := poly1305.New(polyKey)
	var length [8]byte
	mac.Write(additionalData)
	binary.LittleEndian.PutUint64(length[:], uint64(len(additionalData)))
	mac.Write(length[:])
	mac.Write(ciphertext)
	binary.LittleEndian.PutUint64(length[:], uint64(len(ciphertext)))
	mac.Write(length[:])

	var tag [poly1305.TagSize]byte
	mac.Sum(tag[:0])
	return tag
}

func legacySeal(key, nonce, plaintext, additionalData []byte) ([]byte, error) {
	var polyKey [32]byte
	stream, err := legacyStream(key, nonce, &polyKey)
	if err != nil {
		return nil, err
	}
	defer locker.Zero(polyKey[:])

	output := make([]byte, len(plaintext)+poly1305.TagSize)
	stream.XORKeyStream(output[:len(plaintext)], plaintext)
	tag := legacyTag(&polyKey, additionalData, output[:len(plaintext)])
	copy(output[len(plaintext):], tag[:])
	return output, nil
}

func legacyOpen(key, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	var polyKey [32]byte
	stream, err := legacyStream(key, nonce, &polyKey)
	if err != nil {
		return nil, err
	}
	defer locker.Zero(polyKey[:])

	bodyLength := len(ciphertext) - poly1305.TagSize
	body := ciphertext[:bodyLength]

	// Verify before any decryption output exists. The comparison is
	// constant-time in the tag.
	tag := legacyTag(&polyKey, additionalData, body)
	if subtle.ConstantTimeCompare(tag[:], ciphertext[bodyLength:]) != 1 {
		return nil, fmt.Errorf("chacha20poly1305: %w", ErrAuthenticationFailed)
	}

	plaintext := make([]byte, bodyLength)
	stream.XORKeyStream(plaintext, body)
	return plaintext, nil
}

func ietfSeal(key, nonce, plaintext, additionalData []byte) ([]byte, error) {
	sealer, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("creating chacha20poly1305 cipher: %w", err)
	}
	return sealer.Seal(nil, nonce, plaintext, additionalData), nil
}

func ietfOpen(key, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	opener, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("creating chacha20poly1305 cipher: %w", err)
	}
	plaintext, err := opener.Open(nil, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, fmt.Errorf("chacha20poly1305_ietf: %w", ErrAuthenticationFailed)
	}
	return plaintext, nil
}
