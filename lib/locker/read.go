// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package locker

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
)

// ReadFromPath reads secret material from a file path, or from stdin
// if path is "-". Leading/trailing whitespace is trimmed before
// storing; with WithHexSource the trimmed content is hex-decoded.
// Every intermediate heap copy is zeroed before returning. The
// returned buffer honors the usual construction options and must be
// closed by the caller. Returns an error if the source is empty after
// trimming.
func ReadFromPath(path string, opts ...Option) (*Buffer, error) {
	o := applyOptions(opts)

	var data []byte
	if path == "-" {
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("locker: reading stdin: %w", err)
			}
			return nil, fmt.Errorf("locker: stdin is empty")
		}
		data = scanner.Bytes()
	} else {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		Zero(data)
		return nil, fmt.Errorf("locker: secret is empty")
	}

	if o.hexSource {
		decoded := make([]byte, hex.DecodedLen(len(trimmed)))
		n, err := hex.Decode(decoded, trimmed)
		Zero(data)
		if err != nil {
			Zero(decoded)
			return nil, fmt.Errorf("locker: decoding hex secret: %w", err)
		}
		// NewFromBytes zeros the decoded copy.
		return NewFromBytes(decoded[:n], append(opts, WithWipeSource())...)
	}

	// NewFromBytes copies into guarded memory and zeros trimmed; the
	// remaining whitespace prefix/suffix is zeroed separately.
	buffer, err := NewFromBytes(trimmed, append(opts, WithWipeSource())...)
	Zero(data)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}
