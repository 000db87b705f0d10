// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package keyfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"filippo.io/age"

	"github.com/bytelocker/bytelocker/lib/locker"
)

// Export writes the key material to path, encrypted to a scrypt
// recipient derived from the passphrase. The file is created 0600;
// an existing file at path is replaced. Both buffers are borrowed
// (must be unlocked) and are NOT closed.
func Export(path string, key, passphrase *locker.Buffer) error {
	if passphrase.Len() == 0 {
		return fmt.Errorf("passphrase is empty")
	}

	// age.NewScryptRecipient takes a string at the API boundary. The
	// heap copy is brief and call-scoped, the same trade the x25519
	// identity parse makes.
	passphraseString, err := passphrase.String()
	if err != nil {
		return fmt.Errorf("reading passphrase: %w", err)
	}
	recipient, err := age.NewScryptRecipient(passphraseString)
	if err != nil {
		return fmt.Errorf("deriving scrypt recipient: %w", err)
	}

	keyData, err := key.Bytes()
	if err != nil {
		return fmt.Errorf("reading key material: %w", err)
	}

	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, recipient)
	if err != nil {
		return fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(keyData); err != nil {
		return fmt.Errorf("encrypting key material: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing age encryption: %w", err)
	}

	if err := os.WriteFile(path, ciphertext.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}
	return nil
}

// Import reads the age ciphertext at path and decrypts it with the
// passphrase. The key material is returned in a guarded buffer whose
// lock state follows the process default. The passphrase buffer is
// borrowed and NOT closed.
//
// A wrong passphrase fails the age header check before any payload is
// produced, so the error path never leaks partial plaintext.
func Import(path string, passphrase *locker.Buffer) (*locker.Buffer, error) {
	passphraseString, err := passphrase.String()
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	identity, err := age.NewScryptIdentity(passphraseString)
	if err != nil {
		return nil, fmt.Errorf("deriving scrypt identity: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening key file: %w", err)
	}
	defer file.Close()

	reader, err := age.Decrypt(file, identity)
	if err != nil {
		return nil, fmt.Errorf("decrypting %s: %w", path, err)
	}
	keyData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted key material: %w", err)
	}

	buffer, err := locker.NewFromBytes(keyData, locker.WithWipeSource())
	if err != nil {
		locker.Zero(keyData)
		return nil, fmt.Errorf("guarding key material: %w", err)
	}
	return buffer, nil
}
