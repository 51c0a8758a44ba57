// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Str is a string of Unicode code points. Lengths and indices count
// code points, not bytes.
type Str string

func (s Str) Type() Type { return StrType }

type strType struct {
	baseType
	constructor
}

var strT = &strType{baseType: baseType{name: "str", doc: "A string"}}

var StrType Type = strT

func init() {
	strT.constructor = constructor{
		sig: MustSignature(PosOpt("obj", Str(""))),
		fn: func(c Context, args *BoundArguments) (Value, error) {
			return Str(String(args.Value(0))), nil
		},
	}
	strT.methods = methods(
		&Method{Name: "split", Sig: MustSignature(Opt("sep", None), Opt("count", None)), Fn: strSplit},
		&Method{Name: "rsplit", Sig: MustSignature(Opt("sep", None), Opt("count", None)), Fn: strRSplit},
		&Method{Name: "strip", Sig: MustSignature(Opt("chars", None)), Fn: strStrip},
		&Method{Name: "lstrip", Sig: MustSignature(Opt("chars", None)), Fn: strStrip},
		&Method{Name: "rstrip", Sig: MustSignature(Opt("chars", None)), Fn: strStrip},
		&Method{Name: "upper", Sig: MustSignature(), Fn: strCase},
		&Method{Name: "lower", Sig: MustSignature(), Fn: strCase},
		&Method{Name: "capitalize", Sig: MustSignature(), Fn: strCase},
		&Method{Name: "title", Sig: MustSignature(), Fn: strCase},
		&Method{Name: "startswith", Sig: MustSignature(Req("prefix")), Fn: strAffix},
		&Method{Name: "endswith", Sig: MustSignature(Req("suffix")), Fn: strAffix},
		&Method{Name: "find", Sig: MustSignature(Req("sub"), Opt("start", None), Opt("end", None)), Fn: strFind},
		&Method{Name: "rfind", Sig: MustSignature(Req("sub"), Opt("start", None), Opt("end", None)), Fn: strFind},
		&Method{Name: "count", Sig: MustSignature(Req("sub"), Opt("start", None), Opt("end", None)), Fn: strFind},
		&Method{Name: "replace", Sig: MustSignature(Req("old"), Req("new"), Opt("count", None)), Fn: strReplace},
		&Method{Name: "join", Sig: MustSignature(Req("iterable")), Fn: strJoin},
		&Method{Name: "splitlines", Sig: MustSignature(Opt("keepends", False)), Fn: strSplitLines},
	)
}

func (t *strType) InstanceCheck(v Value) bool {
	_, ok := v.(Str)
	return ok
}

func (t *strType) Bool(v Value) bool { return v.(Str) != "" }

func (t *strType) Len(v Value) (int, error) {
	return utf8.RuneCountInString(string(v.(Str))), nil
}

func (t *strType) Str(v Value) string { return string(v.(Str)) }

func (t *strType) Repr(f *Formatter, v Value) {
	f.quote(string(v.(Str)))
}

func strList(parts []string) *List {
	items := make([]Value, len(parts))
	for i, p := range parts {
		items[i] = Str(p)
	}
	return NewList(items...)
}

// optCount returns the optional count argument i, or -1 if it is None.
func optCount(args *BoundArguments, i int) (int, error) {
	if IsNone(args.Value(i)) {
		return -1, nil
	}
	return args.Int(i)
}

func strSplit(c Context, self Value, args *BoundArguments) (Value, error) {
	s := string(self.(Str))
	n, err := optCount(args, 1)
	if err != nil {
		return nil, err
	}
	if IsNone(args.Value(0)) {
		return strList(splitFields(s, n)), nil
	}
	sep, err := args.Str(0)
	if err != nil {
		return nil, err
	}
	if sep == "" {
		return nil, &ValueError{Msg: "empty separator"}
	}
	if n >= 0 {
		return strList(strings.SplitN(s, sep, n+1)), nil
	}
	return strList(strings.Split(s, sep)), nil
}

func strRSplit(c Context, self Value, args *BoundArguments) (Value, error) {
	s := string(self.(Str))
	n, err := optCount(args, 1)
	if err != nil {
		return nil, err
	}
	if IsNone(args.Value(0)) {
		return strList(rsplitFields(s, n)), nil
	}
	sep, err := args.Str(0)
	if err != nil {
		return nil, err
	}
	if sep == "" {
		return nil, &ValueError{Msg: "empty separator"}
	}
	var parts []string
	for n != 0 {
		i := strings.LastIndex(s, sep)
		if i < 0 {
			break
		}
		parts = append(parts, s[i+len(sep):])
		s = s[:i]
		n--
	}
	parts = append(parts, s)
	reverseStrings(parts)
	return strList(parts), nil
}

// splitFields splits s around runs of white space, making at most n splits
// (n < 0 means no limit). The last field keeps its trailing white space.
func splitFields(s string, n int) []string {
	var parts []string
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" {
			return parts
		}
		if n == 0 {
			return append(parts, s)
		}
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 {
			return append(parts, s)
		}
		parts = append(parts, s[:i])
		s = s[i:]
		n--
	}
}

func rsplitFields(s string, n int) []string {
	var parts []string
	for {
		s = strings.TrimRightFunc(s, unicode.IsSpace)
		if s == "" {
			break
		}
		if n == 0 {
			parts = append(parts, s)
			break
		}
		i := strings.LastIndexFunc(s, unicode.IsSpace)
		if i < 0 {
			parts = append(parts, s)
			break
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		parts = append(parts, s[i+size:])
		s = s[:i]
		n--
	}
	reverseStrings(parts)
	return parts
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func strStrip(c Context, self Value, args *BoundArguments) (Value, error) {
	s := string(self.(Str))
	name := args.Callable()
	if IsNone(args.Value(0)) {
		switch name {
		case "lstrip":
			return Str(strings.TrimLeftFunc(s, unicode.IsSpace)), nil
		case "rstrip":
			return Str(strings.TrimRightFunc(s, unicode.IsSpace)), nil
		}
		return Str(strings.TrimSpace(s)), nil
	}
	chars, err := args.Str(0)
	if err != nil {
		return nil, err
	}
	switch name {
	case "lstrip":
		return Str(strings.TrimLeft(s, chars)), nil
	case "rstrip":
		return Str(strings.TrimRight(s, chars)), nil
	}
	return Str(strings.Trim(s, chars)), nil
}

func strCase(c Context, self Value, args *BoundArguments) (Value, error) {
	s := string(self.(Str))
	switch args.Callable() {
	case "upper":
		return Str(cases.Upper(language.Und).String(s)), nil
	case "lower":
		return Str(cases.Lower(language.Und).String(s)), nil
	case "title":
		return Str(cases.Title(language.Und).String(s)), nil
	}
	// capitalize
	if s == "" {
		return self, nil
	}
	_, size := utf8.DecodeRuneInString(s)
	return Str(cases.Upper(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])), nil
}

func strAffix(c Context, self Value, args *BoundArguments) (Value, error) {
	s := string(self.(Str))
	test := strings.HasPrefix
	if args.Callable() == "endswith" {
		test = strings.HasSuffix
	}
	var affixes []Value
	switch x := args.Value(0).(type) {
	case Str:
		affixes = []Value{x}
	case *List:
		affixes = x.Items
	default:
		return nil, &ArgumentTypeError{Callable: args.Callable(), Param: args.Name(0), Want: "str or list", Got: TypeName(x)}
	}
	for _, a := range affixes {
		as, ok := a.(Str)
		if !ok {
			return nil, &ArgumentTypeError{Callable: args.Callable(), Param: args.Name(0), Want: "str", Got: TypeName(a)}
		}
		if test(s, string(as)) {
			return True, nil
		}
	}
	return False, nil
}

// sliceBounds normalizes optional start and end arguments against length n
// the way slicing does.
func sliceBounds(args *BoundArguments, i, n int) (int, int, error) {
	start, end := 0, n
	if !IsNone(args.Value(i)) {
		x, err := args.Int(i)
		if err != nil {
			return 0, 0, err
		}
		start = clampIndex(x, n)
	}
	if !IsNone(args.Value(i + 1)) {
		x, err := args.Int(i + 1)
		if err != nil {
			return 0, 0, err
		}
		end = clampIndex(x, n)
	}
	return start, end, nil
}

func strFind(c Context, self Value, args *BoundArguments) (Value, error) {
	hay := []rune(string(self.(Str)))
	sub, err := args.Str(0)
	if err != nil {
		return nil, err
	}
	needle := []rune(sub)
	start, end, err := sliceBounds(args, 1, len(hay))
	if err != nil {
		return nil, err
	}
	if start > end {
		if args.Callable() == "count" {
			return Int(0), nil
		}
		return Int(-1), nil
	}
	window := hay[start:end]
	switch args.Callable() {
	case "find":
		if i := runeIndex(window, needle); i >= 0 {
			return Int(start + i), nil
		}
	case "rfind":
		if i := runeLastIndex(window, needle); i >= 0 {
			return Int(start + i), nil
		}
	case "count":
		return Int(strings.Count(string(window), sub)), nil
	}
	return Int(-1), nil
}

func runeIndex(hay, needle []rune) int {
	for i := 0; i+len(needle) <= len(hay); i++ {
		if runesEqual(hay[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

func runeLastIndex(hay, needle []rune) int {
	for i := len(hay) - len(needle); i >= 0; i-- {
		if runesEqual(hay[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func strReplace(c Context, self Value, args *BoundArguments) (Value, error) {
	old, err := args.Str(0)
	if err != nil {
		return nil, err
	}
	repl, err := args.Str(1)
	if err != nil {
		return nil, err
	}
	n, err := optCount(args, 2)
	if err != nil {
		return nil, err
	}
	return Str(strings.Replace(string(self.(Str)), old, repl, n)), nil
}

func strJoin(c Context, self Value, args *BoundArguments) (Value, error) {
	items, err := Items(c, args.Value(0))
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(Str)
		if !ok {
			return nil, &ArgumentTypeError{Callable: "join", Param: "iterable", Want: "iterable of str", Got: TypeName(item)}
		}
		parts[i] = string(s)
	}
	return Str(strings.Join(parts, string(self.(Str)))), nil
}

func strSplitLines(c Context, self Value, args *BoundArguments) (Value, error) {
	s := string(self.(Str))
	keep := Truth(args.Value(0))
	var lines []string
	for s != "" {
		i := strings.IndexAny(s, "\r\n")
		if i < 0 {
			lines = append(lines, s)
			break
		}
		end := i + 1
		if s[i] == '\r' && end < len(s) && s[end] == '\n' {
			end++
		}
		if keep {
			lines = append(lines, s[:end])
		} else {
			lines = append(lines, s[:i])
		}
		s = s[end:]
	}
	return strList(lines), nil
}
