// Copyright 2024 The ostime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ostime

import (
	"fmt"
	"strings"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// ModuleName defines the expected name for this Module when used in a
// starlark runtime.
const ModuleName = "os"

// Module os is a Starlark module of calendar and clock functions.
var Module = &starlarkstruct.Module{
	Name: ModuleName,
	Members: starlark.StringDict{
		"clock":    starlark.NewBuiltin("clock", clock),
		"date":     starlark.NewBuiltin("date", date),
		"difftime": starlark.NewBuiltin("difftime", difftime),
		"time":     starlark.NewBuiltin("time", time_),
	},
}

// LoadModule loads the os module.
// It is concurrency-safe and idempotent.
func LoadModule() (starlark.StringDict, error) {
	return starlark.StringDict{
		ModuleName: Module,
	}, nil
}

// NowFunc is a function that generates the current time. Intentionally
// exported so that it can be overridden, for example by applications
// that require their Starlark scripts to be fully deterministic.
var NowFunc = time.Now

// instant is an absolute point in time counted in seconds from the
// Unix epoch. It unpacks from an int or a float, truncating any
// fractional seconds.
type instant int64

// assert at compile time that instant implements Unpacker.
var _ starlark.Unpacker = (*instant)(nil)

// Unpack is a custom argument unpacker.
func (i *instant) Unpack(v starlark.Value) error {
	switch x := v.(type) {
	case starlark.Int:
		sec, ok := x.Int64()
		if !ok {
			return fmt.Errorf("int value out of range (want signed 64-bit value)")
		}
		*i = instant(sec)
		return nil
	case starlark.Float:
		*i = instant(float64(x))
		return nil
	}
	return fmt.Errorf("got %s, want int or float", v.Type())
}

// date renders an instant as text under a strftime pattern. A leading
// "!" selects UTC decomposition; the pattern "*t" returns the
// broken-down calendar fields as a dict instead of text; an instant
// the platform cannot decompose yields None.
func date(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		format  = "%c"
		timeArg starlark.Value
	)
	if err := starlark.UnpackArgs("date", args, kwargs, "format?", &format, "time?", &timeArg); err != nil {
		return nil, err
	}
	sec := NowFunc().Unix()
	if timeArg != nil && timeArg != starlark.None {
		var when instant
		if err := when.Unpack(timeArg); err != nil {
			return nil, fmt.Errorf("date: for parameter time: %v", err)
		}
		sec = int64(when)
	}

	utc := strings.HasPrefix(format, "!")
	if utc {
		format = format[1:]
	}
	cal, t, err := decompose(sec, utc)
	if err != nil {
		return starlark.None, nil
	}
	if format == "*t" {
		return cal.Dict(), nil
	}
	return starlark.String(formatTime(t, format)), nil
}

// time_ returns the current instant, or, given a mapping of calendar
// fields, the instant they denote after normalization. A calendar
// time the platform cannot represent yields None; a mapping that
// omits day, month, or year is an error.
func time_(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var table starlark.Value
	if err := starlark.UnpackArgs("time", args, kwargs, "table?", &table); err != nil {
		return nil, err
	}
	if table == nil || table == starlark.None {
		return starlark.MakeInt64(NowFunc().Unix()), nil
	}
	m, ok := table.(starlark.IterableMapping)
	if !ok {
		return nil, fmt.Errorf("time: for parameter table: got %s, want mapping", table.Type())
	}
	c, err := calendarOf(m)
	if err != nil {
		return nil, err
	}
	sec, err := normalize(c)
	if err != nil {
		return starlark.None, nil
	}
	return starlark.MakeInt64(sec), nil
}

// difftime returns t2 - t1 in seconds. Negative results are valid;
// the arguments are not reordered.
func difftime(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var t2, t1 instant
	if err := starlark.UnpackArgs("difftime", args, kwargs, "t2", &t2, "t1?", &t1); err != nil {
		return nil, err
	}
	return starlark.Float(float64(t2 - t1)), nil
}

// clock returns the processor time consumed by the process, in
// seconds, measured from an implementation-defined start point.
func clock(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs("clock", args, kwargs); err != nil {
		return nil, err
	}
	return starlark.Float(cpuSeconds()), nil
}
