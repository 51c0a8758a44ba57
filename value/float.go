// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"strconv"
	"strings"
)

type Float float64

func (x Float) Type() Type { return FloatType }

type floatType struct {
	baseType
	constructor
}

var floatT = &floatType{baseType: baseType{name: "float", doc: "A floating point number"}}

var FloatType Type = floatT

func init() {
	floatT.constructor = constructor{
		sig: MustSignature(PosOpt("x", Float(0))),
		fn: func(c Context, args *BoundArguments) (Value, error) {
			switch x := args.Value(0).(type) {
			case Str:
				return ParseFloat(string(x))
			default:
				if f, ok := AsFloat(x); ok {
					return Float(f), nil
				}
			}
			return nil, &ArgumentTypeError{Callable: "float", Param: "x", Want: "number or str", Got: TypeName(args.Value(0))}
		},
	}
}

// ParseFloat parses s as a float.
func ParseFloat(s string) (Value, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, &ValueError{Msg: "invalid literal for float(): " + Repr(Str(s))}
	}
	return Float(f), nil
}

func (t *floatType) InstanceCheck(v Value) bool {
	_, ok := v.(Float)
	return ok
}

func (t *floatType) Bool(v Value) bool { return v.(Float) != 0 }

func (t *floatType) Str(v Value) string {
	return formatFloat(float64(v.(Float)))
}

func (t *floatType) Repr(f *Formatter, v Value) {
	f.WriteString(formatFloat(float64(v.(Float))))
}

// formatFloat formats x with the shortest digits that read back to x.
// Plain notation is used for exponents between -4 and 15, and a
// decimal point always appears.
func formatFloat(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	case math.IsNaN(x):
		return "nan"
	}
	e := strconv.FormatFloat(x, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return e
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
