// Copyright 2024 The ostime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ostime

import (
	"strings"
	"testing"
	"time"
)

func TestRenderCapacity(t *testing.T) {
	for _, test := range []struct {
		pattern string
		want    int
	}{
		{"", 0},
		{"abc", 3},
		{"%Y", 31},
		{"%Y-%m-%d", 95},
		{"100%", 33},
	} {
		if got := renderCapacity(test.pattern); got != test.want {
			t.Errorf("renderCapacity(%q) = %d, want %d", test.pattern, got, test.want)
		}
	}
}

func TestFormatLiteralSingleAttempt(t *testing.T) {
	oldRender := Render
	defer func() { Render = oldRender }()

	calls := 0
	Render = func(buf []byte, pattern string, _ time.Time) int {
		calls++
		return copy(buf, pattern)
	}

	// A pattern without conversion markers has an exact capacity
	// estimate, so the first attempt must succeed.
	if got := formatTime(time.Unix(0, 0), "plain text"); got != "plain text" {
		t.Errorf("formatTime = %q, want %q", got, "plain text")
	}
	if calls != 1 {
		t.Errorf("render attempts = %d, want 1", calls)
	}
}

func TestFormatGrowsUntilFit(t *testing.T) {
	oldRender := Render
	defer func() { Render = oldRender }()

	// An expansion far past the 30-byte estimate for "%X": the buffer
	// must grow 31 -> 62 -> 125 -> 250 and fit on the fourth attempt.
	out := strings.Repeat("x", 200)
	attempts := 0
	Render = func(buf []byte, _ string, _ time.Time) int {
		attempts++
		if len(buf) < len(out) {
			return 0
		}
		return copy(buf, out)
	}

	if got := formatTime(time.Unix(0, 0), "%X"); got != out {
		t.Errorf("formatTime length = %d, want %d", len(got), len(out))
	}
	if attempts > renderAttempts {
		t.Errorf("render attempts = %d, want at most %d", attempts, renderAttempts)
	}
}

func TestFormatDegradesToEmpty(t *testing.T) {
	oldRender := Render
	defer func() { Render = oldRender }()

	attempts := 0
	Render = func([]byte, string, time.Time) int {
		attempts++
		return 0
	}

	if got := formatTime(time.Unix(0, 0), "%Q"); got != "" {
		t.Errorf("formatTime = %q, want empty", got)
	}
	if attempts != renderAttempts {
		t.Errorf("render attempts = %d, want %d", attempts, renderAttempts)
	}
}

func TestFormatEmptyPatternSkipsRender(t *testing.T) {
	oldRender := Render
	defer func() { Render = oldRender }()

	Render = func([]byte, string, time.Time) int {
		t.Error("render called for empty pattern")
		return 0
	}
	if got := formatTime(time.Unix(0, 0), ""); got != "" {
		t.Errorf("formatTime = %q, want empty", got)
	}
}

func TestStrftimeRender(t *testing.T) {
	when := time.Date(2024, 2, 1, 15, 4, 5, 0, time.UTC)

	buf := make([]byte, 64)
	n := strftimeRender(buf, "%Y-%m-%d %H:%M:%S", when)
	if got, want := string(buf[:n]), "2024-02-01 15:04:05"; got != want {
		t.Errorf("strftimeRender = %q, want %q", got, want)
	}

	if n := strftimeRender(make([]byte, 4), "%Y-%m-%d", when); n != 0 {
		t.Errorf("render into a short buffer = %d, want 0", n)
	}
}
