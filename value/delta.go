// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	microsPerSecond = 1000000
	secondsPerDay   = 24 * 60 * 60
	microsPerDay    = secondsPerDay * microsPerSecond
)

// TimeDelta is a duration in days, seconds and microseconds.
// It is always normalized: 0 <= Seconds < 86400 and 0 <= Microseconds < 1e6,
// so only Days may be negative.
type TimeDelta struct {
	Days         int
	Seconds      int
	Microseconds int
}

// NewTimeDelta returns the normalized TimeDelta for the given parts,
// which may have any sign.
func NewTimeDelta(days, seconds, microseconds int) TimeDelta {
	return timeDeltaOfMicros(int64(days)*microsPerDay + int64(seconds)*microsPerSecond + int64(microseconds))
}

func timeDeltaOfMicros(total int64) TimeDelta {
	days := floorDiv64(total, microsPerDay)
	rest := total - days*microsPerDay
	return TimeDelta{
		Days:         int(days),
		Seconds:      int(rest / microsPerSecond),
		Microseconds: int(rest % microsPerSecond),
	}
}

// Micros returns the length of d in microseconds.
func (d TimeDelta) Micros() int64 {
	return int64(d.Days)*microsPerDay + int64(d.Seconds)*microsPerSecond + int64(d.Microseconds)
}

// Duration returns d as a time.Duration.
func (d TimeDelta) Duration() time.Duration {
	return time.Duration(d.Micros()) * time.Microsecond
}

func (d TimeDelta) Type() Type { return TimeDeltaType }

func (d TimeDelta) String() string {
	var b strings.Builder
	if d.Days != 0 {
		fmt.Fprintf(&b, "%d day", d.Days)
		if d.Days != 1 && d.Days != -1 {
			b.WriteByte('s')
		}
		b.WriteString(", ")
	}
	fmt.Fprintf(&b, "%d:%02d:%02d", d.Seconds/3600, d.Seconds/60%60, d.Seconds%60)
	if d.Microseconds != 0 {
		fmt.Fprintf(&b, ".%06d", d.Microseconds)
	}
	return b.String()
}

// MonthDelta is a number of calendar months.
type MonthDelta struct {
	Months int
}

func (d MonthDelta) Type() Type { return MonthDeltaType }

func (d MonthDelta) String() string {
	if d.Months == 1 || d.Months == -1 {
		return fmt.Sprintf("%d month", d.Months)
	}
	return fmt.Sprintf("%d months", d.Months)
}

type timeDeltaType struct {
	baseType
	constructor
}

var timeDeltaT = &timeDeltaType{baseType: baseType{name: "timedelta", doc: "A time span"}}

var TimeDeltaType Type = timeDeltaT

type monthDeltaType struct {
	baseType
	constructor
}

var monthDeltaT = &monthDeltaType{baseType: baseType{name: "monthdelta", doc: "A number of months"}}

var MonthDeltaType Type = monthDeltaT

func init() {
	timeDeltaT.constructor = constructor{
		sig: MustSignature(Opt("days", Int(0)), Opt("seconds", Int(0)), Opt("microseconds", Int(0))),
		fn: func(c Context, args *BoundArguments) (Value, error) {
			var total float64
			for i, unit := range []float64{microsPerDay, microsPerSecond, 1} {
				x, err := args.Float(i)
				if err != nil {
					return nil, err
				}
				total += x * unit
			}
			if math.IsNaN(total) || math.Abs(total) > math.MaxInt64/2 {
				return nil, &ValueError{Msg: "timedelta out of range"}
			}
			return timeDeltaOfMicros(int64(math.Round(total))), nil
		},
	}
	timeDeltaT.methods = methods(
		&Method{Name: "days", Sig: MustSignature(), Fn: deltaField},
		&Method{Name: "seconds", Sig: MustSignature(), Fn: deltaField},
		&Method{Name: "microseconds", Sig: MustSignature(), Fn: deltaField},
	)
	monthDeltaT.constructor = constructor{
		sig: MustSignature(Opt("months", Int(0))),
		fn: func(c Context, args *BoundArguments) (Value, error) {
			n, err := args.Int(0)
			if err != nil {
				return nil, err
			}
			return MonthDelta{n}, nil
		},
	}
	monthDeltaT.methods = methods(
		&Method{Name: "months", Sig: MustSignature(), Fn: deltaField},
	)
}

func (t *timeDeltaType) InstanceCheck(v Value) bool {
	_, ok := v.(TimeDelta)
	return ok
}

func (t *timeDeltaType) Bool(v Value) bool { return v.(TimeDelta) != TimeDelta{} }

func (t *timeDeltaType) Str(v Value) string { return v.(TimeDelta).String() }

func (t *timeDeltaType) Repr(f *Formatter, v Value) {
	d := v.(TimeDelta)
	switch {
	case d.Microseconds != 0:
		fmt.Fprintf(f, "timedelta(%d, %d, %d)", d.Days, d.Seconds, d.Microseconds)
	case d.Seconds != 0:
		fmt.Fprintf(f, "timedelta(%d, %d)", d.Days, d.Seconds)
	case d.Days != 0:
		fmt.Fprintf(f, "timedelta(%d)", d.Days)
	default:
		f.WriteString("timedelta()")
	}
}

func (t *monthDeltaType) InstanceCheck(v Value) bool {
	_, ok := v.(MonthDelta)
	return ok
}

func (t *monthDeltaType) Bool(v Value) bool { return v.(MonthDelta).Months != 0 }

func (t *monthDeltaType) Str(v Value) string { return v.(MonthDelta).String() }

func (t *monthDeltaType) Repr(f *Formatter, v Value) {
	if n := v.(MonthDelta).Months; n != 0 {
		fmt.Fprintf(f, "monthdelta(%d)", n)
		return
	}
	f.WriteString("monthdelta()")
}

func deltaField(c Context, self Value, args *BoundArguments) (Value, error) {
	switch d := self.(type) {
	case TimeDelta:
		switch args.Callable() {
		case "days":
			return Int(d.Days), nil
		case "seconds":
			return Int(d.Seconds), nil
		case "microseconds":
			return Int(d.Microseconds), nil
		}
	case MonthDelta:
		return Int(d.Months), nil
	}
	return nil, &UnknownMethodError{Type: TypeName(self), Name: args.Callable()}
}

// addMonths moves t by n calendar months, clamping the day to the
// length of the target month.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := y*12 + int(m) - 1 + n
	ny, nm := floorDivInt(total, 12), total-floorDivInt(total, 12)*12+1
	last := time.Date(ny, time.Month(nm)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if d > last {
		d = last
	}
	return time.Date(ny, time.Month(nm), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// addDelta returns t moved by d. It avoids time.Duration, which
// cannot span the full calendar range.
func addDelta(t time.Time, d TimeDelta) time.Time {
	return t.AddDate(0, 0, d.Days).Add(time.Duration(d.Seconds)*time.Second + time.Duration(d.Microseconds)*time.Microsecond)
}

// microsBetween returns a-b in microseconds.
func microsBetween(a, b time.Time) int64 {
	return (a.Unix()-b.Unix())*microsPerSecond + int64(a.Nanosecond()-b.Nanosecond())/1000
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorDivInt(a, b int) int {
	return int(floorDiv64(int64(a), int64(b)))
}
