// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Int is not only the simplest representation, it provides the operands that mix
// types upward. An Int always holds a value that fits in intBits bits, so the
// product of two Ints cannot overflow an int64. Larger values are BigInts.
type Int int64

const (
	intBits = 32
	minInt  = -(1 << (intBits - 1))
	maxInt  = 1<<(intBits-1) - 1
)

// NewInt returns x as an Int if it is small enough, otherwise as a BigInt.
func NewInt(x int64) Value {
	if minInt <= x && x <= maxInt {
		return Int(x)
	}
	return BigInt{big.NewInt(x)}
}

// NewBigInt returns b as a Value, shrinking it to an Int if possible.
// The caller must not modify b afterwards.
func NewBigInt(b *big.Int) Value {
	if b.IsInt64() {
		if x := b.Int64(); minInt <= x && x <= maxInt {
			return Int(x)
		}
	}
	return BigInt{b}
}

func (i Int) Type() Type { return IntType }

// BigInt is an integer outside the range of Int.
type BigInt struct {
	*big.Int
}

func (i BigInt) Type() Type { return IntType }

type intType struct {
	baseType
	constructor
}

var intT = &intType{baseType: baseType{name: "int", doc: "An integer"}}

var IntType Type = intT

func init() {
	intT.constructor = constructor{
		sig: MustSignature(PosOpt("obj", Int(0)), PosOpt("base", None)),
		fn:  intConstruct,
	}
}

func intConstruct(c Context, args *BoundArguments) (Value, error) {
	obj, base := args.Value(0), args.Value(1)
	if !IsNone(base) {
		s, ok := obj.(Str)
		if !ok {
			return nil, &ArgumentTypeError{Callable: "int", Param: "obj", Want: "str", Got: TypeName(obj)}
		}
		b, err := args.Int(1)
		if err != nil {
			return nil, err
		}
		return ParseInt(string(s), b)
	}
	switch x := obj.(type) {
	case Bool:
		if x {
			return Int(1), nil
		}
		return Int(0), nil
	case Int, BigInt:
		return x, nil
	case Float:
		return FloatToInt(float64(x))
	case Str:
		return ParseInt(string(x), 10)
	}
	return nil, &ArgumentTypeError{Callable: "int", Param: "obj", Want: "number or str", Got: TypeName(obj)}
}

// ParseInt parses s in the given base (0 means guess from the prefix).
func ParseInt(s string, base int) (Value, error) {
	t := strings.TrimSpace(s)
	if x, err := strconv.ParseInt(t, base, 64); err == nil {
		return NewInt(x), nil
	}
	b, ok := new(big.Int).SetString(t, base)
	if !ok {
		return nil, &ValueError{Msg: "invalid literal for int(): " + Repr(Str(s))}
	}
	return NewBigInt(b), nil
}

// FloatToInt truncates x toward zero.
func FloatToInt(x float64) (Value, error) {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return nil, &ValueError{Msg: "cannot convert " + formatFloat(x) + " to int"}
	}
	x = math.Trunc(x)
	if math.Abs(x) < 1<<62 {
		return NewInt(int64(x)), nil
	}
	b, _ := big.NewFloat(x).Int(nil)
	return NewBigInt(b), nil
}

func (t *intType) InstanceCheck(v Value) bool {
	switch v.(type) {
	case Int, BigInt:
		return true
	}
	return false
}

func (t *intType) Bool(v Value) bool {
	switch v := v.(type) {
	case Int:
		return v != 0
	case BigInt:
		return v.Sign() != 0
	}
	return false
}

func (t *intType) Str(v Value) string {
	switch v := v.(type) {
	case Int:
		return strconv.FormatInt(int64(v), 10)
	case BigInt:
		return v.Int.String()
	}
	return ""
}

func (t *intType) Repr(f *Formatter, v Value) {
	f.WriteString(t.Str(v))
}

// bigOf returns the integer value of v, which must be a Bool, Int or BigInt.
// The result must not be modified.
func bigOf(v Value) *big.Int {
	switch v := v.(type) {
	case Bool:
		if v {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	case Int:
		return big.NewInt(int64(v))
	case BigInt:
		return v.Int
	}
	panic("bigOf: not an integer: " + TypeName(v))
}

// isInteger reports whether v is a Bool, Int or BigInt.
func isInteger(v Value) bool {
	switch v.(type) {
	case Bool, Int, BigInt:
		return true
	}
	return false
}

// isNumber reports whether v is an integer or a Float.
func isNumber(v Value) bool {
	_, ok := v.(Float)
	return ok || isInteger(v)
}

// small returns v as an int64 if it is a Bool or an Int.
func small(v Value) (int64, bool) {
	switch v := v.(type) {
	case Bool:
		if v {
			return 1, true
		}
		return 0, true
	case Int:
		return int64(v), true
	}
	return 0, false
}

// floatOf returns the value of the number v as a float64.
func floatOf(v Value) float64 {
	switch v := v.(type) {
	case Float:
		return float64(v)
	case BigInt:
		f, _ := new(big.Float).SetInt(v.Int).Float64()
		return f
	}
	x, _ := small(v)
	return float64(x)
}

// AsInt returns v as an int if it is a Bool or an Int.
func AsInt(v Value) (int, bool) {
	x, ok := small(v)
	return int(x), ok
}

// AsFloat returns v as a float64 if it is a number.
func AsFloat(v Value) (float64, bool) {
	if !isNumber(v) {
		return 0, false
	}
	return floatOf(v), true
}
