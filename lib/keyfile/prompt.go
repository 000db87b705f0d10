// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package keyfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/bytelocker/bytelocker/lib/locker"
)

// ReadPassphrase prompts on stderr and reads a passphrase from stdin
// into a guarded buffer. When stdin is a terminal the input is read
// without echo; otherwise one line is read and trailing newlines are
// stripped, so scripts can pipe the passphrase in.
func ReadPassphrase(prompt string) (*locker.Buffer, error) {
	return readPassphrase(prompt, os.Stdin)
}

func readPassphrase(prompt string, stdin *os.File) (*locker.Buffer, error) {
	fd := int(stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("reading passphrase: %w", err)
		}
		return guardPassphrase(raw)
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	return guardPassphrase([]byte(line))
}

func guardPassphrase(raw []byte) (*locker.Buffer, error) {
	buffer, err := locker.NewFromBytes(raw, locker.WithWipeSource())
	if err != nil {
		locker.Zero(raw)
		return nil, fmt.Errorf("guarding passphrase: %w", err)
	}
	return buffer, nil
}
