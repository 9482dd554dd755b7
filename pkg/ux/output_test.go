// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// Helper to capture stdout
func captureStdout(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// Helper to capture stderr
func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// =============================================================================
// Icon.Render Tests
// =============================================================================

func TestIcon_Render_Styled(t *testing.T) {
	for _, icon := range []Icon{IconSuccess, IconWarning, IconError, IconPending} {
		if icon.Render() == "" {
			t.Errorf("expected non-empty result for %q", icon)
		}
	}
}

func TestIcon_Render_Default(t *testing.T) {
	// Icons without specific styling pass through unchanged
	icons := []Icon{IconArrow, IconBullet}
	for _, icon := range icons {
		result := icon.Render()
		if result != string(icon) {
			t.Errorf("expected %q for %q, got %q", string(icon), icon, result)
		}
	}
}

// =============================================================================
// Print Helper Tests
// =============================================================================

func TestTitle_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		Title("Evaluation Report")
	})

	// In machine mode, Title should output nothing
	if output != "" {
		t.Errorf("expected no output in machine mode, got %q", output)
	}
}

func TestTitle_FullMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityFull)

	output := captureStdout(func() {
		Title("Evaluation Report")
	})

	if !strings.Contains(output, "Evaluation Report") {
		t.Errorf("expected title text in output, got %q", output)
	}
}

func TestSuccess_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		Success("catalog accepted")
	})

	if !strings.HasPrefix(output, "OK: ") {
		t.Errorf("expected OK: prefix in machine mode, got %q", output)
	}
	if !strings.Contains(output, "catalog accepted") {
		t.Errorf("expected message in output, got %q", output)
	}
}

func TestSuccess_FullMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityFull)

	output := captureStdout(func() {
		Success("catalog accepted")
	})

	if !strings.Contains(output, "catalog accepted") {
		t.Errorf("expected message in output, got %q", output)
	}
}

func TestWarning_MachineMode_WritesToStderr(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStderr(func() {
		Warning("worker count clamped")
	})

	if !strings.HasPrefix(output, "WARN: ") {
		t.Errorf("expected WARN: prefix on stderr, got %q", output)
	}
}

func TestError_MachineMode_WritesToStderr(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStderr(func() {
		Error("schema rejected")
	})

	if !strings.HasPrefix(output, "ERROR: ") {
		t.Errorf("expected ERROR: prefix on stderr, got %q", output)
	}
}

func TestInfo_MachineMode_PlainText(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		Info("3 items, 1 rule")
	})

	if output != "3 items, 1 rule\n" {
		t.Errorf("expected plain text in machine mode, got %q", output)
	}
}

func TestMuted_MachineMode_Silent(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		Muted("secondary detail")
	})

	if output != "" {
		t.Errorf("expected no output in machine mode, got %q", output)
	}
}

// =============================================================================
// Box Tests
// =============================================================================

func TestBox_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		Box("Result", "3 compatible pairs")
	})

	if !strings.Contains(output, "Result: 3 compatible pairs") {
		t.Errorf("expected flat title: content in machine mode, got %q", output)
	}
}

func TestBox_FullMode_ContainsContent(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityFull)

	output := captureStdout(func() {
		Box("Result", "3 compatible pairs")
	})

	if !strings.Contains(output, "3 compatible pairs") {
		t.Errorf("expected content in box output, got %q", output)
	}
}

// =============================================================================
// CheckStatus and PairSummary Tests
// =============================================================================

func TestCheckStatus_MachineMode_TabSeparated(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		CheckStatus("same-category", IconError, "category mismatch")
	})

	parts := strings.Split(strings.TrimSpace(output), "\t")
	if len(parts) != 3 {
		t.Fatalf("expected 3 tab-separated fields, got %d: %q", len(parts), output)
	}
	if parts[1] != "same-category" {
		t.Errorf("expected check name in second field, got %q", parts[1])
	}
}

func TestPairSummary_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		PairSummary(4, 2, 6)
	})

	if !strings.Contains(output, "compatible=4") ||
		!strings.Contains(output, "incompatible=2") ||
		!strings.Contains(output, "total=6") {
		t.Errorf("expected counts in machine summary, got %q", output)
	}
}

func TestPairSummary_FullMode_ContainsCounts(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityFull)

	output := captureStdout(func() {
		PairSummary(4, 2, 6)
	})

	for _, want := range []string{"4", "2", "6", "compatible", "pairs"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in summary output, got %q", want, output)
		}
	}
}

// =============================================================================
// ProgressBar Tests
// =============================================================================

func TestProgressBar_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	result := ProgressBar(3, 10, 20)
	if result != "3/10" {
		t.Errorf("expected 3/10 in machine mode, got %q", result)
	}
}

func TestProgressBar_FullMode_ShowsPercent(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityFull)

	result := ProgressBar(5, 10, 20)
	if !strings.Contains(result, "50%") {
		t.Errorf("expected 50%% in progress bar, got %q", result)
	}
}

func TestRepeatChar(t *testing.T) {
	if got := repeatChar('x', 3); got != "xxx" {
		t.Errorf("repeatChar('x', 3) = %q, want xxx", got)
	}
	if got := repeatChar('x', 0); got != "" {
		t.Errorf("repeatChar('x', 0) = %q, want empty", got)
	}
	if got := repeatChar('x', -1); got != "" {
		t.Errorf("repeatChar('x', -1) = %q, want empty", got)
	}
}
