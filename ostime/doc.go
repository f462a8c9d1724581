// Copyright 2024 The ostime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*Package ostime defines operating-system calendar and clock primitives
for starlark: broken-down calendar records, strftime-style text
rendering, mktime-style field normalization, and the process CPU clock.

  outline: os
    os defines calendar and clock primitives
    path: os
    functions:
      clock() float
        processor time consumed by the process, in seconds, from an
        implementation-defined start point
      date(format=..., time=...) string | dict
        render an instant under a strftime pattern; the pattern "*t"
        returns the broken-down calendar fields as a dict instead of
        text, and a leading "!" selects UTC rather than local time;
        an instant outside the platform range yields None
      difftime(t2, t1=...) float
        t2 - t1 in seconds; negative results are valid
      time(table=...) int
        the current instant, or, given a mapping of calendar fields,
        the instant they denote after normalization; a calendar time
        outside the platform range yields None
*/
package ostime
