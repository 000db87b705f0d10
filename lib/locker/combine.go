// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package locker

import "fmt"

// Concat returns a new buffer holding the content of b followed by
// the content of other. Both operands must be readable; a locked
// operand fails with ErrLocked. The result's lock state follows the
// process-wide default, not the operands'.
func (b *Buffer) Concat(other *Buffer) (*Buffer, error) {
	result, err := newBuffer(b.Len() + other.Len())
	if err != nil {
		return nil, err
	}
	if err := b.copyOut(result.data[:b.Len()]); err != nil {
		result.Close()
		return nil, fmt.Errorf("locker: concat left operand: %w", err)
	}
	if err := other.copyOut(result.data[b.Len():]); err != nil {
		result.Close()
		return nil, fmt.Errorf("locker: concat right operand: %w", err)
	}
	result.finishLock(defaultLocked.Load())
	return result, nil
}

// Repeat returns a new buffer holding the content of b repeated count
// times. The operand must be readable; count must be positive. The
// result's lock state follows the process-wide default.
func (b *Buffer) Repeat(count int) (*Buffer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("locker: repeat count must be positive, got %d", count)
	}
	length := b.Len()
	result, err := newBuffer(length * count)
	if err != nil {
		return nil, err
	}
	if err := b.copyOut(result.data[:length]); err != nil {
		result.Close()
		return nil, fmt.Errorf("locker: repeat operand: %w", err)
	}
	for index := 1; index < count; index++ {
		copy(result.data[index*length:], result.data[:length])
	}
	result.finishLock(defaultLocked.Load())
	return result, nil
}

// copyOut copies the buffer content into dst, which must be exactly
// the buffer's length. Fails with ErrLocked on locked buffers.
func (b *Buffer) copyOut(dst []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureOpen()
	if b.locked {
		return ErrLocked
	}
	copy(dst, b.data[:b.length])
	return nil
}
