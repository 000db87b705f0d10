// Copyright 2026 The ByteLocker Authors
// SPDX-License-Identifier: Apache-2.0

package cpucap

import (
	"strings"
	"testing"
)

func TestAES256GCM_Stable(t *testing.T) {
	// The probe result must be stable across calls: it reports a
	// static hardware fact.
	first := AES256GCM()
	for index := 0; index < 10; index++ {
		if AES256GCM() != first {
			t.Fatal("AES256GCM() changed between calls")
		}
	}
}

func TestReport(t *testing.T) {
	report := Report()
	if !strings.Contains(report, "aes256gcm=") {
		t.Errorf("Report() = %q, missing aes256gcm field", report)
	}
	want := "aes256gcm=unavailable"
	if AES256GCM() {
		want = "aes256gcm=available"
	}
	if !strings.Contains(report, want) {
		t.Errorf("Report() = %q, want it to contain %q", report, want)
	}
}
