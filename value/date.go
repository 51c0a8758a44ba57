// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"time"
)

// Date is a calendar date without a time of day or time zone.
type Date struct {
	t time.Time // midnight UTC
}

// DateTime is a date and time of day without a time zone,
// with microsecond resolution.
type DateTime struct {
	t time.Time // UTC
}

func NewDate(year, month, day int) Date {
	return Date{time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func NewDateTime(year, month, day, hour, minute, second, microsecond int) DateTime {
	return DateTime{time.Date(year, time.Month(month), day, hour, minute, second, microsecond*1000, time.UTC)}
}

// DateOf returns the date part of t, ignoring its location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// DateTimeOf returns the wall clock reading of t, truncated to microseconds.
func DateTimeOf(t time.Time) DateTime {
	return NewDateTime(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1000)
}

func (d Date) Type() Type     { return DateType }
func (d DateTime) Type() Type { return DateTimeType }

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time { return d.t }

// Time returns the date and time in UTC.
func (d DateTime) Time() time.Time { return d.t }

func (d Date) String() string {
	return d.t.Format("2006-01-02")
}

func (d DateTime) String() string {
	if d.t.Nanosecond() != 0 {
		return d.t.Format("2006-01-02 15:04:05.000000")
	}
	return d.t.Format("2006-01-02 15:04:05")
}

// ISO returns the ISO 8601 form of d.
func (d DateTime) ISO() string {
	if d.t.Nanosecond() != 0 {
		return d.t.Format("2006-01-02T15:04:05.000000")
	}
	return d.t.Format("2006-01-02T15:04:05")
}

// timeOf returns the time of a Date or DateTime.
func timeOf(v Value) (time.Time, bool) {
	switch v := v.(type) {
	case Date:
		return v.t, true
	case DateTime:
		return v.t, true
	}
	return time.Time{}, false
}

type dateType struct {
	baseType
	constructor
	isDate bool
}

var (
	dateT     = &dateType{baseType: baseType{name: "date", doc: "A date"}, isDate: true}
	dateTimeT = &dateType{baseType: baseType{name: "datetime", doc: "A date and time"}}
)

var (
	DateType     Type = dateT
	DateTimeType Type = dateTimeT
)

func init() {
	dateMethods := methods(
		&Method{Name: "year", Sig: MustSignature(), Fn: dateField},
		&Method{Name: "month", Sig: MustSignature(), Fn: dateField},
		&Method{Name: "day", Sig: MustSignature(), Fn: dateField},
		&Method{Name: "hour", Sig: MustSignature(), Fn: dateField},
		&Method{Name: "minute", Sig: MustSignature(), Fn: dateField},
		&Method{Name: "second", Sig: MustSignature(), Fn: dateField},
		&Method{Name: "microsecond", Sig: MustSignature(), Fn: dateField},
		&Method{Name: "weekday", Sig: MustSignature(), Fn: dateField},
		&Method{Name: "yearday", Sig: MustSignature(), Fn: dateField},
		&Method{Name: "isoformat", Sig: MustSignature(), Fn: dateFormat},
		&Method{Name: "mimeformat", Sig: MustSignature(), Fn: dateFormat},
	)
	dateT.methods = dateMethods
	dateTimeT.methods = dateMethods
	dateT.constructor = constructor{
		sig: MustSignature(Req("year"), Req("month"), Req("day")),
		fn:  dateConstruct,
	}
	dateTimeT.constructor = constructor{
		sig: MustSignature(Req("year"), Req("month"), Req("day"), Opt("hour", Int(0)), Opt("minute", Int(0)), Opt("second", Int(0)), Opt("microsecond", Int(0))),
		fn:  dateConstruct,
	}
}

var dateLimits = [...]struct {
	name     string
	min, max int
}{
	{"year", 1, 9999},
	{"month", 1, 12},
	{"day", 1, 31},
	{"hour", 0, 23},
	{"minute", 0, 59},
	{"second", 0, 59},
	{"microsecond", 0, 999999},
}

func dateConstruct(c Context, args *BoundArguments) (Value, error) {
	f := make([]int, args.Len())
	for i := range f {
		x, err := args.Int(i)
		if err != nil {
			return nil, err
		}
		if x < dateLimits[i].min || x > dateLimits[i].max {
			return nil, &ValueError{Msg: fmt.Sprintf("%s %d out of range", dateLimits[i].name, x)}
		}
		f[i] = x
	}
	t := time.Date(f[0], time.Month(f[1]), f[2], 0, 0, 0, 0, time.UTC)
	if t.Day() != f[2] {
		return nil, &ValueError{Msg: fmt.Sprintf("day %d out of range for month %d", f[2], f[1])}
	}
	if len(f) == 3 {
		return Date{t}, nil
	}
	return NewDateTime(f[0], f[1], f[2], f[3], f[4], f[5], f[6]), nil
}

func (t *dateType) InstanceCheck(v Value) bool {
	if t.isDate {
		_, ok := v.(Date)
		return ok
	}
	_, ok := v.(DateTime)
	return ok
}

func (t *dateType) Str(v Value) string {
	return v.(fmt.Stringer).String()
}

func (t *dateType) Repr(f *Formatter, v Value) {
	f.WriteString("@(")
	switch v := v.(type) {
	case Date:
		f.WriteString(v.String())
	case DateTime:
		f.WriteString(v.ISO())
	}
	f.WriteString(")")
}

func dateField(c Context, self Value, args *BoundArguments) (Value, error) {
	t, _ := timeOf(self)
	switch args.Callable() {
	case "year":
		return Int(t.Year()), nil
	case "month":
		return Int(t.Month()), nil
	case "day":
		return Int(t.Day()), nil
	case "hour":
		return Int(t.Hour()), nil
	case "minute":
		return Int(t.Minute()), nil
	case "second":
		return Int(t.Second()), nil
	case "microsecond":
		return Int(t.Nanosecond() / 1000), nil
	case "weekday":
		// Monday is 0.
		return Int((int(t.Weekday()) + 6) % 7), nil
	case "yearday":
		return Int(t.YearDay()), nil
	}
	return nil, &UnknownMethodError{Type: TypeName(self), Name: args.Callable()}
}

func dateFormat(c Context, self Value, args *BoundArguments) (Value, error) {
	switch v := self.(type) {
	case Date:
		if args.Callable() == "isoformat" {
			return Str(v.String()), nil
		}
		return Str(v.t.Format("Mon, 02 Jan 2006")), nil
	case DateTime:
		if args.Callable() == "isoformat" {
			return Str(v.ISO()), nil
		}
		return Str(v.t.Format("Mon, 02 Jan 2006 15:04:05 GMT")), nil
	}
	return nil, &UnknownMethodError{Type: TypeName(self), Name: args.Callable()}
}
