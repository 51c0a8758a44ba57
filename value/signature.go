// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"strings"
)

// ParamKind says how a parameter may be passed. The zero value is
// PositionalOrKeyword.
type ParamKind int

const (
	PositionalOrKeyword ParamKind = iota // f(x) or f(x=1)
	PositionalOnly                       // f(x)
	VarPositional                        // *args
	KeywordOnly                          // f(x=1) only
	VarKeyword                           // **kwargs
)

var kindNames = [...]string{"positional-or-keyword", "positional-only", "var-positional", "keyword-only", "var-keyword"}

func (k ParamKind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// rank is the position of kind k in a parameter list.
func (k ParamKind) rank() int {
	switch k {
	case PositionalOnly:
		return 0
	case PositionalOrKeyword:
		return 1
	case VarPositional:
		return 2
	case KeywordOnly:
		return 3
	case VarKeyword:
		return 4
	}
	return -1
}

// Param describes one parameter of a Signature.
type Param struct {
	Name       string
	Kind       ParamKind
	HasDefault bool
	Default    Value
}

// Req is a required positional-or-keyword parameter.
func Req(name string) Param {
	return Param{Name: name, Kind: PositionalOrKeyword}
}

// Opt is a positional-or-keyword parameter with a default.
func Opt(name string, def Value) Param {
	return Param{Name: name, Kind: PositionalOrKeyword, HasDefault: true, Default: def}
}

// PosReq is a required positional-only parameter.
func PosReq(name string) Param {
	return Param{Name: name, Kind: PositionalOnly}
}

// PosOpt is a positional-only parameter with a default.
func PosOpt(name string, def Value) Param {
	return Param{Name: name, Kind: PositionalOnly, HasDefault: true, Default: def}
}

// KwReq is a required keyword-only parameter.
func KwReq(name string) Param {
	return Param{Name: name, Kind: KeywordOnly}
}

// KwOpt is a keyword-only parameter with a default.
func KwOpt(name string, def Value) Param {
	return Param{Name: name, Kind: KeywordOnly, HasDefault: true, Default: def}
}

// Star collects surplus positional arguments into a list.
func Star(name string) Param {
	return Param{Name: name, Kind: VarPositional}
}

// StarStar collects surplus keyword arguments into a dict.
func StarStar(name string) Param {
	return Param{Name: name, Kind: VarKeyword}
}

// Signature is the immutable parameter list of a callable. Parameters
// appear in kind order: positional-only, positional-or-keyword, *args,
// keyword-only, **kwargs.
type Signature struct {
	params []Param
	index  map[string]int
	npos   int // number of parameters that accept a positional argument
	star   int // index of *args, or -1
	kwargs int // index of **kwargs, or -1
}

// NewSignature checks the parameters and returns their Signature.
// Names must be unique, kinds must appear in order with at most one
// *args and one **kwargs, and among positional parameters the required
// ones must come first.
func NewSignature(params ...Param) (*Signature, error) {
	s := &Signature{
		params: append([]Param(nil), params...),
		index:  make(map[string]int, len(params)),
		star:   -1,
		kwargs: -1,
	}
	last := PositionalOnly
	defaulted := false
	for i, p := range params {
		if _, dup := s.index[p.Name]; dup {
			return nil, &DuplicateParameterError{Name: p.Name}
		}
		s.index[p.Name] = i
		if p.Kind.rank() < 0 {
			return nil, &SignatureError{Msg: "parameter " + p.Name + " has unknown kind"}
		}
		if p.Kind.rank() < last.rank() || (p.Kind == last && (p.Kind == VarPositional || p.Kind == VarKeyword)) {
			return nil, &SignatureError{Msg: "parameter " + p.Name + " (" + p.Kind.String() + ") out of order"}
		}
		last = p.Kind
		switch p.Kind {
		case PositionalOnly, PositionalOrKeyword:
			if p.HasDefault {
				defaulted = true
			} else if defaulted {
				return nil, &SignatureError{Msg: "required parameter " + p.Name + " follows parameter with default"}
			}
			s.npos++
		case VarPositional:
			s.star = i
		case VarKeyword:
			s.kwargs = i
		}
		if (p.Kind == VarPositional || p.Kind == VarKeyword) && p.HasDefault {
			return nil, &SignatureError{Msg: "variadic parameter " + p.Name + " cannot have a default"}
		}
	}
	return s, nil
}

// MustSignature is like NewSignature but panics on error.
// It is meant for signatures of builtins built at startup.
func MustSignature(params ...Param) *Signature {
	s, err := NewSignature(params...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of parameters.
func (s *Signature) Len() int {
	return len(s.params)
}

// Param returns the i'th parameter.
func (s *Signature) Param(i int) Param {
	return s.params[i]
}

// Params returns a copy of the parameters.
func (s *Signature) Params() []Param {
	return append([]Param(nil), s.params...)
}

func (s *Signature) String() string {
	var b strings.Builder
	b.WriteByte('(')
	posOnly := false
	kwMarked := false
	for i, p := range s.params {
		if posOnly && p.Kind != PositionalOnly {
			b.WriteString("/, ")
			posOnly = false
		}
		if p.Kind == KeywordOnly && s.star < 0 && !kwMarked {
			b.WriteString("*, ")
			kwMarked = true
		}
		switch p.Kind {
		case PositionalOnly:
			posOnly = true
		case VarPositional:
			b.WriteByte('*')
		case VarKeyword:
			b.WriteString("**")
		}
		b.WriteString(p.Name)
		if p.HasDefault {
			b.WriteByte('=')
			b.WriteString(Repr(p.Default))
		}
		if i < len(s.params)-1 {
			b.WriteString(", ")
		}
	}
	if posOnly {
		b.WriteString(", /")
	}
	b.WriteByte(')')
	return b.String()
}

// Bind matches a call's positional and keyword arguments to the
// parameters of s. The name of the callable is used in errors.
// Binding has no side effects on its inputs.
func (s *Signature) Bind(name string, args []Value, kw []Keyword) (*BoundArguments, error) {
	b := &BoundArguments{name: name, sig: s, values: make([]Value, len(s.params))}
	filled := make([]bool, len(s.params))

	seen := make(map[string]bool, len(kw))
	for _, k := range kw {
		if seen[k.Name] {
			return nil, &DuplicateArgumentError{Callable: name, Name: k.Name}
		}
		seen[k.Name] = true
	}

	var extraArgs []Value
	for i, arg := range args {
		if i < s.npos {
			b.values[i] = arg
			filled[i] = true
		} else {
			extraArgs = append(extraArgs, arg)
		}
	}
	if len(extraArgs) > 0 && s.star < 0 {
		for _, p := range s.params {
			if p.Kind == KeywordOnly {
				return nil, &ArgumentMustBeKeywordError{Callable: name, Param: p.Name}
			}
		}
		return nil, &TooManyArgumentsError{Callable: name, Max: s.npos, Given: len(args)}
	}

	var extraKw *Dict
	if s.kwargs >= 0 {
		extraKw = NewDict()
	}
	for _, k := range kw {
		i, ok := s.index[k.Name]
		if ok {
			switch s.params[i].Kind {
			case VarPositional, VarKeyword:
				ok = false
			case PositionalOnly:
				if extraKw == nil {
					return nil, &ArgumentMustBePositionalError{Callable: name, Param: k.Name}
				}
				ok = false
			}
		}
		if !ok {
			if extraKw == nil {
				return nil, &UnsupportedArgumentNameError{Callable: name, Name: k.Name}
			}
			extraKw.setStr(k.Name, k.Value)
			continue
		}
		if filled[i] {
			return nil, &DuplicateArgumentError{Callable: name, Name: k.Name}
		}
		b.values[i] = k.Value
		filled[i] = true
	}

	for i, p := range s.params {
		switch {
		case filled[i]:
		case p.Kind == VarPositional:
			b.values[i] = NewList(extraArgs...)
		case p.Kind == VarKeyword:
			b.values[i] = extraKw
		case p.HasDefault:
			b.values[i] = p.Default
		default:
			return nil, &MissingArgumentError{Callable: name, Param: p.Name, Position: i}
		}
	}
	return b, nil
}
