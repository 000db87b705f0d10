// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package cpucap

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// aesGCMSupport is probed once per process. Detection reads CPUID
// leaves (or the OS feature registers on arm64) and never fails.
var aesGCMSupport = sync.OnceValue(func() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpuid.CPU.Supports(cpuid.AESNI, cpuid.CLMUL)
	case "arm64":
		return cpuid.CPU.Supports(cpuid.AESARM, cpuid.PMULL)
	default:
		return false
	}
})

// AES256GCM reports whether the hardware-accelerated AES-256-GCM
// family is usable on this machine. Pure probe: no side effects,
// never fails, stable for the life of the process.
func AES256GCM() bool {
	return aesGCMSupport()
}

// Report returns a one-line human-readable summary of the probe
// result, suitable for diagnostics. It contains no secret material.
func Report() string {
	status := "unavailable"
	if AES256GCM() {
		status = "available"
	}
	return fmt.Sprintf("cpu=%s/%s brand=%q aes256gcm=%s", runtime.GOOS, runtime.GOARCH, cpuid.CPU.BrandName, status)
}
