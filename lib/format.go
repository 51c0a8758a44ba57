// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lib

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"robpike.io/ul4/value"
)

var formatFuncs = []*value.Function{
	fn("format", "Format a date with strftime directives, using the names of the language lang.",
		sig(value.PosReq("obj"), value.PosReq("fmt"), value.PosOpt("lang", value.None)), format),
}

// names holds the day and month names of one language.
type names struct {
	days, shortDays     [7]string // Sunday first
	months, shortMonths [12]string
	am, pm              string
}

var english = &names{
	days:        [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	shortDays:   [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	months:      [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	shortMonths: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	am:          "AM",
	pm:          "PM",
}

var german = &names{
	days:        [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
	shortDays:   [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
	months:      [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
	shortMonths: [12]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
	am:          "AM",
	pm:          "PM",
}

var french = &names{
	days:        [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
	shortDays:   [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
	months:      [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	shortMonths: [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
	am:          "AM",
	pm:          "PM",
}

// The first language is the fallback for tags that match none.
var (
	languages = []*names{english, german, french}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.German, language.French})
)

// namesFor returns the names for a BCP 47 tag such as "de" or "de_AT".
func namesFor(lang string) (*names, error) {
	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return nil, &value.ValueError{Msg: fmt.Sprintf("format(): unknown language %q", lang)}
	}
	_, i, _ := matcher.Match(tag)
	return languages[i], nil
}

func format(c value.Context, args *value.BoundArguments) (value.Value, error) {
	var t time.Time
	switch v := args.Value(0).(type) {
	case value.Date:
		t = v.Time()
	case value.DateTime:
		t = v.Time()
	default:
		return nil, &value.ArgumentTypeError{Callable: "format", Param: "obj", Want: "date or datetime", Got: value.TypeName(v)}
	}
	f, err := args.Str(1)
	if err != nil {
		return nil, err
	}
	n := english
	if lang := args.Value(2); !value.IsNone(lang) {
		s, err := args.Str(2)
		if err != nil {
			return nil, err
		}
		if n, err = namesFor(s); err != nil {
			return nil, err
		}
	}
	return value.Str(strftime(t, f, n)), nil
}

// strftime expands the % directives of f for t. Unknown directives
// are copied through.
func strftime(t time.Time, f string, n *names) string {
	var b strings.Builder
	escaped := false
	for _, r := range f {
		if !escaped {
			if r == '%' {
				escaped = true
			} else {
				b.WriteRune(r)
			}
			continue
		}
		escaped = false
		switch r {
		case 'a':
			b.WriteString(n.shortDays[t.Weekday()])
		case 'A':
			b.WriteString(n.days[t.Weekday()])
		case 'b':
			b.WriteString(n.shortMonths[t.Month()-1])
		case 'B':
			b.WriteString(n.months[t.Month()-1])
		case 'c':
			fmt.Fprintf(&b, "%s %s %2d %02d:%02d:%02d %04d", n.shortDays[t.Weekday()], n.shortMonths[t.Month()-1], t.Day(), t.Hour(), t.Minute(), t.Second(), t.Year())
		case 'd':
			fmt.Fprintf(&b, "%02d", t.Day())
		case 'f':
			fmt.Fprintf(&b, "%06d", t.Nanosecond()/1000)
		case 'H':
			fmt.Fprintf(&b, "%02d", t.Hour())
		case 'I':
			fmt.Fprintf(&b, "%02d", (t.Hour()+11)%12+1)
		case 'j':
			fmt.Fprintf(&b, "%03d", t.YearDay())
		case 'm':
			fmt.Fprintf(&b, "%02d", t.Month())
		case 'M':
			fmt.Fprintf(&b, "%02d", t.Minute())
		case 'p':
			if t.Hour() < 12 {
				b.WriteString(n.am)
			} else {
				b.WriteString(n.pm)
			}
		case 'S':
			fmt.Fprintf(&b, "%02d", t.Second())
		case 'U':
			// Weeks start on Sunday; days before the first Sunday are week 0.
			fmt.Fprintf(&b, "%02d", (t.YearDay()+6-int(t.Weekday()))/7)
		case 'W':
			fmt.Fprintf(&b, "%02d", (t.YearDay()+6-(int(t.Weekday())+6)%7)/7)
		case 'w':
			fmt.Fprintf(&b, "%d", t.Weekday())
		case 'x':
			fmt.Fprintf(&b, "%02d/%02d/%02d", t.Month(), t.Day(), t.Year()%100)
		case 'X':
			fmt.Fprintf(&b, "%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
		case 'y':
			fmt.Fprintf(&b, "%02d", t.Year()%100)
		case 'Y':
			fmt.Fprintf(&b, "%04d", t.Year())
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteByte('%')
	}
	return b.String()
}
