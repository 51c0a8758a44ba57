// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"strings"
	"unicode"
)

// Formatter accumulates the diagnostic form of values. It remembers
// the containers currently being printed so a self-referential
// structure prints "..." instead of recursing forever.
type Formatter struct {
	strings.Builder
	ascii   bool
	visited []Value
}

// NewFormatter returns a Formatter. If ascii is set, every non-ASCII
// character of a string is escaped.
func NewFormatter(ascii bool) *Formatter {
	return &Formatter{ascii: ascii}
}

// Repr appends the diagnostic form of v.
func (f *Formatter) Repr(v Value) {
	if isContainer(v) {
		for _, w := range f.visited {
			if w == v {
				f.WriteString("...")
				return
			}
		}
		f.visited = append(f.visited, v)
		defer func() { f.visited = f.visited[:len(f.visited)-1] }()
	}
	TypeOf(v).Repr(f, v)
}

// Repr returns the diagnostic form of v.
func Repr(v Value) string {
	f := NewFormatter(false)
	f.Repr(v)
	return f.String()
}

// ASCII returns the diagnostic form of v with all non-ASCII characters escaped.
func ASCII(v Value) string {
	f := NewFormatter(true)
	f.Repr(v)
	return f.String()
}

func isContainer(v Value) bool {
	switch v.(type) {
	case *List, *Dict, *Set, *Instance:
		return true
	}
	return false
}

// quote appends the quoted and escaped form of s.
// Single quotes are preferred; double quotes are used when s holds a
// single quote but no double quote.
func (f *Formatter) quote(s string) {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	f.WriteByte(q)
	for _, r := range s {
		switch r {
		case '\'', '"':
			if byte(r) == q {
				f.WriteByte('\\')
			}
			f.WriteRune(r)
		case '\\':
			f.WriteString(`\\`)
		case '\t':
			f.WriteString(`\t`)
		case '\n':
			f.WriteString(`\n`)
		case '\r':
			f.WriteString(`\r`)
		default:
			switch {
			case r < 0x20:
				fmt.Fprintf(f, `\x%02x`, r)
			case r < 0x7f:
				f.WriteRune(r)
			case f.ascii || !printable(r):
				escape(f, r)
			default:
				f.WriteRune(r)
			}
		}
	}
	f.WriteByte(q)
}

// printable reports whether r is shown literally in a string repr:
// letters, marks, numbers, punctuation and symbols are, separators
// (other than the ASCII space) and control, format, private or
// unassigned code points are not.
func printable(r rune) bool {
	return unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S)
}

func escape(f *Formatter, r rune) {
	switch {
	case r <= 0xff:
		fmt.Fprintf(f, `\x%02x`, r)
	case r <= 0xffff:
		fmt.Fprintf(f, `\u%04x`, r)
	default:
		fmt.Fprintf(f, `\U%08x`, r)
	}
}

// sequence appends the items separated by commas between open and close.
func (f *Formatter) sequence(open, close string, items []Value) {
	f.WriteString(open)
	for i, item := range items {
		if i > 0 {
			f.WriteString(", ")
		}
		f.Repr(item)
	}
	f.WriteString(close)
}
