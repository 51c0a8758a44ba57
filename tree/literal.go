// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"robpike.io/ul4/value"
)

// ParseLiteral parses the UL4 source form of a constant: None, True,
// False, numbers, strings, dates, colors, time spans and lists, dicts
// and sets of constants. It accepts everything value.Repr produces
// for those types.
func ParseLiteral(s string) (value.Value, error) {
	p := &literal{src: s}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.space()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return v, nil
}

type literal struct {
	src string
	pos int
}

func (p *literal) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(&value.ValueError{Msg: "invalid literal " + strconv.Quote(p.src)}, "offset %d: "+format, append([]interface{}{p.pos}, args...)...)
}

func (p *literal) space() {
	for p.pos < len(p.src) && strings.ContainsRune(" \t\r\n", rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *literal) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

// accept consumes s if it comes next.
func (p *literal) accept(s string) bool {
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *literal) expect(s string) error {
	p.space()
	if !p.accept(s) {
		return p.errorf("expected %q", s)
	}
	return nil
}

// word returns the identifier or number characters starting at pos.
func (p *literal) word() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || c == '.' || c == '+' && p.pos > start && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E') ||
			c == '-' && p.pos > start && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E') ||
			'0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *literal) value() (value.Value, error) {
	p.space()
	switch c := p.peek(); {
	case c == '\'' || c == '"':
		s, err := p.str()
		if err != nil {
			return nil, err
		}
		return value.Str(s), nil
	case c == '@':
		return p.date()
	case c == '#':
		return p.color()
	case c == '[':
		p.pos++
		items, err := p.items("]")
		if err != nil {
			return nil, err
		}
		return value.NewList(items...), nil
	case c == '{':
		return p.dictOrSet()
	case c == '-' || c == '+' || c == '.' || '0' <= c && c <= '9':
		return p.number()
	}
	start := p.pos
	switch w := p.word(); w {
	case "None":
		return value.None, nil
	case "True":
		return value.True, nil
	case "False":
		return value.False, nil
	case "inf", "nan":
		p.pos = start
		return p.number()
	case "timedelta", "monthdelta":
		if err := p.expect("("); err != nil {
			return nil, err
		}
		args, err := p.items(")")
		if err != nil {
			return nil, err
		}
		t := value.TimeDeltaType
		if w == "monthdelta" {
			t = value.MonthDeltaType
		}
		return value.Call(nil, t, args, nil)
	}
	p.pos = start
	return nil, p.errorf("unknown constant")
}

func (p *literal) number() (value.Value, error) {
	start := p.pos
	if p.peek() == '-' || p.peek() == '+' {
		p.pos++
	}
	p.word()
	text := strings.ReplaceAll(p.src[start:p.pos], "_", "")
	lower := strings.ToLower(text)
	isFloat := strings.ContainsAny(lower, ".en") && !strings.Contains(lower, "0x") ||
		strings.HasSuffix(lower, "inf")
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.pos = start
			return nil, p.errorf("bad float")
		}
		return value.Float(f), nil
	}
	v, err := value.ParseInt(text, 0)
	if err != nil {
		p.pos = start
		return nil, p.errorf("bad int")
	}
	return v, nil
}

// str parses a quoted string with backslash escapes.
func (p *literal) str() (string, error) {
	quote := p.src[p.pos]
	p.pos++
	var b strings.Builder
	for {
		if p.pos >= len(p.src) {
			return "", p.errorf("unterminated string")
		}
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c != '\\':
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
			continue
		}
		p.pos++
		if p.pos >= len(p.src) {
			return "", p.errorf("unterminated string")
		}
		e := p.src[p.pos]
		p.pos++
		switch e {
		case '\\', '\'', '"':
			b.WriteByte(e)
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case 'x', 'u', 'U':
			n := 2
			switch e {
			case 'u':
				n = 4
			case 'U':
				n = 8
			}
			if p.pos+n > len(p.src) {
				return "", p.errorf("short escape")
			}
			r, err := strconv.ParseUint(p.src[p.pos:p.pos+n], 16, 32)
			if err != nil {
				return "", p.errorf("bad escape")
			}
			b.WriteRune(rune(r))
			p.pos += n
		default:
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
}

// date parses @(2024-01-31) or @(2024-01-31T12:30[:00[.000123]]).
func (p *literal) date() (value.Value, error) {
	p.pos++
	if err := p.expect("("); err != nil {
		return nil, err
	}
	end := strings.IndexByte(p.src[p.pos:], ')')
	if end < 0 {
		return nil, p.errorf("unterminated date")
	}
	text := p.src[p.pos : p.pos+end]
	var f [7]int
	var n int
	var err error
	switch {
	case len(text) == 10:
		n, err = scanInts(text, "-", f[:3])
	case len(text) >= 16 && text[10] == 'T':
		n, err = scanDateTime(text, f[:])
	default:
		err = errors.New("bad date")
	}
	if err != nil {
		return nil, p.errorf("%v", err)
	}
	p.pos += end + 1
	args := make([]value.Value, n)
	for i := range args {
		args[i] = value.Int(f[i])
	}
	if n == 3 {
		return value.Call(nil, value.DateType, args, nil)
	}
	return value.Call(nil, value.DateTimeType, args, nil)
}

func scanInts(s, sep string, out []int) (int, error) {
	parts := strings.Split(s, sep)
	if len(parts) != len(out) {
		return 0, errors.Errorf("expected %d fields in %q", len(out), s)
	}
	for i, part := range parts {
		x, err := strconv.Atoi(part)
		if err != nil {
			return 0, errors.Wrapf(err, "field %d of %q", i, s)
		}
		out[i] = x
	}
	return len(out), nil
}

func scanDateTime(s string, f []int) (int, error) {
	if _, err := scanInts(s[:10], "-", f[:3]); err != nil {
		return 0, err
	}
	clock := s[11:]
	if i := strings.IndexByte(clock, '.'); i >= 0 {
		frac := clock[i+1:]
		if len(frac) == 0 || len(frac) > 6 {
			return 0, errors.Errorf("bad fraction %q", frac)
		}
		us, err := strconv.Atoi(frac + strings.Repeat("0", 6-len(frac)))
		if err != nil {
			return 0, errors.Wrap(err, "fraction")
		}
		f[6] = us
		clock = clock[:i]
	}
	fields := strings.Split(clock, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return 0, errors.Errorf("bad time %q", clock)
	}
	if _, err := scanInts(strings.Join(fields, ":"), ":", f[3:3+len(fields)]); err != nil {
		return 0, err
	}
	return 7, nil
}

// color parses #rgb, #rgba, #rrggbb or #rrggbbaa.
func (p *literal) color() (value.Value, error) {
	p.pos++
	start := p.pos
	for p.pos < len(p.src) && strings.IndexByte("0123456789abcdefABCDEF", p.src[p.pos]) >= 0 {
		p.pos++
	}
	hex := p.src[start:p.pos]
	var ch [4]uint64
	ch[3] = 255
	switch len(hex) {
	case 3, 4:
		for i := range hex {
			x, _ := strconv.ParseUint(hex[i:i+1], 16, 8)
			ch[i] = x * 17
		}
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			x, _ := strconv.ParseUint(hex[i:i+2], 16, 8)
			ch[i/2] = x
		}
	default:
		p.pos = start
		return nil, p.errorf("bad color")
	}
	return value.Color{R: uint8(ch[0]), G: uint8(ch[1]), B: uint8(ch[2]), A: uint8(ch[3])}, nil
}

// items parses comma separated values up to close.
func (p *literal) items(close string) ([]value.Value, error) {
	var items []value.Value
	for {
		p.space()
		if p.accept(close) {
			return items, nil
		}
		if len(items) > 0 {
			if err := p.expect(","); err != nil {
				return nil, err
			}
			p.space()
			if p.accept(close) {
				return items, nil
			}
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func (p *literal) dictOrSet() (value.Value, error) {
	p.pos++
	p.space()
	if p.accept("/}") {
		return value.NewSet(), nil
	}
	if p.accept("}") {
		return value.NewDict(), nil
	}
	first, err := p.value()
	if err != nil {
		return nil, err
	}
	p.space()
	if p.peek() != ':' {
		var rest []value.Value
		if !p.accept("}") {
			if err := p.expect(","); err != nil {
				return nil, err
			}
			if rest, err = p.items("}"); err != nil {
				return nil, err
			}
		}
		s := value.NewSet()
		for _, item := range append([]value.Value{first}, rest...) {
			if err := s.Add(item); err != nil {
				return nil, err
			}
		}
		return s, nil
	}
	d := value.NewDict()
	key := first
	for {
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		if err := d.Set(key, v); err != nil {
			return nil, err
		}
		p.space()
		if p.accept("}") {
			return d, nil
		}
		if err := p.expect(","); err != nil {
			return nil, err
		}
		p.space()
		if p.accept("}") {
			return d, nil
		}
		if key, err = p.value(); err != nil {
			return nil, err
		}
	}
}
