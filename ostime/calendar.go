// Copyright 2024 The ostime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ostime

import (
	"errors"
	"fmt"
	"time"

	"go.starlark.net/starlark"
)

// The C calendar primitives count years from 1900 and hold the offset
// in an int field; instants whose year falls outside that range have
// no broken-down form.
const (
	yearBase = 1900
	minYear  = yearBase - int64(1)<<31
	maxYear  = yearBase + int64(1)<<31 - 1
)

var (
	// ErrInvalidInstant means the platform cannot decompose the given
	// instant into calendar fields.
	ErrInvalidInstant = errors.New("instant not representable as a calendar time")

	// ErrUnrepresentable means a calendar time, after normalization,
	// has no corresponding instant on this platform.
	ErrUnrepresentable = errors.New("calendar time not representable as an instant")
)

// A MissingFieldError reports a calendar mapping that omits one of the
// required fields day, month, or year.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field %q missing in calendar mapping", e.Field)
}

// Calendar is an instant broken down into calendar fields: the field
// set of the C struct tm, but with 1-based month, weekday, and day of
// year, and with the year held absolutely rather than as an offset
// from 1900. IsDST is a tri-state flag, negative when unknown.
type Calendar struct {
	Sec   int
	Min   int
	Hour  int
	Day   int
	Month int
	Year  int
	Wday  int
	Yday  int
	IsDST int
}

// decompose converts sec, an instant in seconds from the Unix epoch,
// into its broken-down form, in UTC or in the process's local zone.
// The time.Time carrying the chosen zone is returned alongside the
// record for use by the text formatter.
func decompose(sec int64, utc bool) (Calendar, time.Time, error) {
	t := time.Unix(sec, 0)
	if utc {
		t = t.UTC()
	}
	if y := int64(t.Year()); y < minYear || y > maxYear {
		return Calendar{}, time.Time{}, ErrInvalidInstant
	}
	c := Calendar{
		Sec:   t.Second(),
		Min:   t.Minute(),
		Hour:  t.Hour(),
		Day:   t.Day(),
		Month: int(t.Month()),
		Year:  t.Year(),
		Wday:  int(t.Weekday()) + 1,
		Yday:  t.YearDay(),
	}
	if t.IsDST() {
		c.IsDST = 1
	}
	return c, t, nil
}

// normalize converts c, whose fields may lie outside their calendar
// ranges, into the canonical instant, carrying overflow into the
// larger units the way mktime does (day 32 of January rolls into
// February). The DST flag is accepted but not consulted: the platform
// resolves ambiguous local times itself.
func normalize(c Calendar) (int64, error) {
	if y := int64(c.Year); y < minYear || y > maxYear {
		return 0, ErrUnrepresentable
	}
	t := time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Min, c.Sec, 0, time.Local)
	if y := int64(t.Year()); y < minYear || y > maxYear {
		return 0, ErrUnrepresentable
	}
	return t.Unix(), nil
}

// calendarOf builds a Calendar from a script mapping, defaulting sec
// and min to 0, hour to 12 (noon), and isdst to unknown. day, month,
// and year have no default; omitting one is an error.
func calendarOf(m starlark.IterableMapping) (Calendar, error) {
	var (
		c   Calendar
		err error
	)
	if c.Sec, err = numField(m, "sec", 0); err != nil {
		return Calendar{}, err
	}
	if c.Min, err = numField(m, "min", 0); err != nil {
		return Calendar{}, err
	}
	if c.Hour, err = numField(m, "hour", 12); err != nil {
		return Calendar{}, err
	}
	if c.Day, err = numField(m, "day", -1); err != nil {
		return Calendar{}, err
	}
	if c.Month, err = numField(m, "month", -1); err != nil {
		return Calendar{}, err
	}
	if c.Year, err = numField(m, "year", -1); err != nil {
		return Calendar{}, err
	}
	if c.IsDST, err = boolField(m, "isdst"); err != nil {
		return Calendar{}, err
	}
	return c, nil
}

// Dict returns the calendar as a script mapping with the keys sec,
// min, hour, day, month, year, wday, and yday. The isdst key is set
// only when the flag is known.
func (c Calendar) Dict() *starlark.Dict {
	d := starlark.NewDict(9)
	setField(d, "sec", starlark.MakeInt(c.Sec))
	setField(d, "min", starlark.MakeInt(c.Min))
	setField(d, "hour", starlark.MakeInt(c.Hour))
	setField(d, "day", starlark.MakeInt(c.Day))
	setField(d, "month", starlark.MakeInt(c.Month))
	setField(d, "year", starlark.MakeInt(c.Year))
	setField(d, "wday", starlark.MakeInt(c.Wday))
	setField(d, "yday", starlark.MakeInt(c.Yday))
	if c.IsDST >= 0 {
		setField(d, "isdst", starlark.Bool(c.IsDST != 0))
	}
	return d
}

// setField inserts a string-keyed entry into d. Inserting string keys
// into a fresh dict cannot fail.
func setField(d *starlark.Dict, key string, v starlark.Value) {
	_ = d.SetKey(starlark.String(key), v)
}

// numField reads an integer field from m. A missing or None value
// takes the default; a negative default marks the field required.
func numField(m starlark.IterableMapping, key string, dflt int) (int, error) {
	v, found, err := m.Get(starlark.String(key))
	if err != nil {
		return 0, err
	}
	if !found || v == starlark.None {
		if dflt < 0 {
			return 0, &MissingFieldError{key}
		}
		return dflt, nil
	}
	switch x := v.(type) {
	case starlark.Int:
		i, ok := x.Int64()
		if !ok {
			return 0, fmt.Errorf("field %q out of range (want signed 64-bit value)", key)
		}
		return int(i), nil
	case starlark.Float:
		return int(x), nil
	}
	return 0, fmt.Errorf("field %q: got %s, want int or float", key, v.Type())
}

// boolField reads the tri-state DST flag from m: -1 when absent.
func boolField(m starlark.IterableMapping, key string) (int, error) {
	v, found, err := m.Get(starlark.String(key))
	if err != nil {
		return -1, err
	}
	if !found || v == starlark.None {
		return -1, nil
	}
	if v.Truth() {
		return 1, nil
	}
	return 0, nil
}
