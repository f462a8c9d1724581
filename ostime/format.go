// Copyright 2024 The ostime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ostime

import (
	"bytes"
	"time"

	"github.com/lestrrat-go/strftime"
)

// renderCapacity estimates a starting buffer size for pattern: one
// byte per ordinary character and thirty per conversion marker. The
// estimate may overshoot; it is a starting point, not a bound.
func renderCapacity(pattern string) int {
	n := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '%' {
			n += 30
		} else {
			n++
		}
	}
	return n
}

// Render expands a strftime pattern for t into buf, reporting the
// number of bytes written. A zero report means either that buf was
// too small or that the expansion was legitimately empty; the two
// cannot be told apart, matching the C strftime contract.
// Intentionally exported so that embedders can substitute a platform
// or locale specific renderer.
var Render = strftimeRender

func strftimeRender(buf []byte, pattern string, t time.Time) int {
	f, err := strftime.New(pattern)
	if err != nil {
		// Invalid conversion specifier; same outcome as a render
		// that produced nothing.
		return 0
	}
	var out bytes.Buffer
	out.Grow(len(buf))
	if err := f.Format(&out, t); err != nil {
		return 0
	}
	if out.Len() > len(buf) {
		return 0
	}
	return copy(buf, out.Bytes())
}

// renderAttempts bounds the grow-and-retry loop so that a pattern
// that never yields output degrades to an empty string instead of
// growing forever.
const renderAttempts = 4

// formatTime expands pattern for t. The buffer starts at the
// estimated capacity and, whenever a render reports no output, grows
// by size|1 (roughly doubling, never sticking at zero) before the
// next attempt. After the final attempt an empty result is returned
// as-is: a legitimately empty expansion and one that never fit are
// indistinguishable here.
func formatTime(t time.Time, pattern string) string {
	if pattern == "" {
		return ""
	}
	size := renderCapacity(pattern)
	for retry := renderAttempts; retry > 0; retry-- {
		buf := make([]byte, size)
		if n := Render(buf, pattern, t); n > 0 {
			return string(buf[:n])
		}
		size += size | 1
	}
	return ""
}
