// Copyright 2024 The ostime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package ostime

import "time"

var processStart = time.Now()

// cpuSeconds falls back to wall-clock time since process start where
// per-process CPU accounting is not available.
func cpuSeconds() float64 {
	return time.Since(processStart).Seconds()
}
