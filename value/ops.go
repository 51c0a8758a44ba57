// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"math/big"
	"strings"
)

// BinaryOp is the implementation of a binary operator.
type BinaryOp func(a, b Value) (Value, error)

// UnaryOp is the implementation of a unary operator.
type UnaryOp func(a Value) (Value, error)

// BinaryOps maps the names of the binary operators to their implementations.
// The table is built once and never modified.
var BinaryOps map[string]BinaryOp

// UnaryOps maps the names of the unary operators to their implementations.
var UnaryOps map[string]UnaryOp

// Symbols maps operator names to their source spelling, for messages.
var Symbols = map[string]string{
	"add": "+", "sub": "-", "mul": "*", "truediv": "/", "floordiv": "//", "mod": "%",
	"shiftleft": "<<", "shiftright": ">>", "bitand": "&", "bitxor": "^", "bitor": "|",
	"eq": "==", "ne": "!=", "lt": "<", "le": "<=", "gt": ">", "ge": ">=",
	"is": "is", "isnot": "is not", "in": "in", "notin": "not in",
	"not": "not", "neg": "-", "bitnot": "~",
}

func init() {
	BinaryOps = map[string]BinaryOp{
		"add":        Add,
		"sub":        Sub,
		"mul":        Mul,
		"truediv":    TrueDiv,
		"floordiv":   FloorDiv,
		"mod":        Mod,
		"shiftleft":  ShiftLeft,
		"shiftright": ShiftRight,
		"bitand":     BitAnd,
		"bitxor":     BitXor,
		"bitor":      BitOr,
		"eq":         func(a, b Value) (Value, error) { return Bool(Equal(a, b)), nil },
		"ne":         func(a, b Value) (Value, error) { return Bool(!Equal(a, b)), nil },
		"lt":         ordering("<", func(c int) bool { return c < 0 }),
		"le":         ordering("<=", func(c int) bool { return c <= 0 }),
		"gt":         ordering(">", func(c int) bool { return c > 0 }),
		"ge":         ordering(">=", func(c int) bool { return c >= 0 }),
		"is":         func(a, b Value) (Value, error) { return Bool(Identical(a, b)), nil },
		"isnot":      func(a, b Value) (Value, error) { return Bool(!Identical(a, b)), nil },
		"in":         func(a, b Value) (Value, error) { ok, err := Contains(b, a); return Bool(ok), err },
		"notin":      func(a, b Value) (Value, error) { ok, err := Contains(b, a); return Bool(!ok), err },
	}
	UnaryOps = map[string]UnaryOp{
		"not":    func(a Value) (Value, error) { return Bool(!Truth(a)), nil },
		"neg":    Neg,
		"bitnot": BitNot,
	}
}

// arith applies a numeric operator. ints is used when both operands are
// small, bigs when both are integers, floats when either is a Float.
func arith(op string, a, b Value, ints func(x, y int64) (Value, error), bigs func(x, y *big.Int) (Value, error), floats func(x, y float64) (Value, error)) (Value, error) {
	if !isNumber(a) || !isNumber(b) {
		return nil, mismatch(op, a, b)
	}
	_, af := a.(Float)
	_, bf := b.(Float)
	if af || bf {
		if floats == nil {
			return nil, mismatch(op, a, b)
		}
		return floats(floatOf(a), floatOf(b))
	}
	if x, ok := small(a); ok {
		if y, ok := small(b); ok {
			return ints(x, y)
		}
	}
	return bigs(bigOf(a), bigOf(b))
}

func Add(a, b Value) (Value, error) {
	if isNumber(a) && isNumber(b) {
		return arith("+", a, b,
			func(x, y int64) (Value, error) { return NewInt(x + y), nil },
			func(x, y *big.Int) (Value, error) { return NewBigInt(new(big.Int).Add(x, y)), nil },
			func(x, y float64) (Value, error) { return Float(x + y), nil })
	}
	switch a := a.(type) {
	case Str:
		if b, ok := b.(Str); ok {
			return a + b, nil
		}
	case *List:
		if b, ok := b.(*List); ok {
			items := make([]Value, 0, len(a.Items)+len(b.Items))
			items = append(items, a.Items...)
			return NewList(append(items, b.Items...)...), nil
		}
	case Date:
		switch b := b.(type) {
		case TimeDelta:
			return Date{a.t.AddDate(0, 0, b.Days)}, nil
		case MonthDelta:
			return Date{addMonths(a.t, b.Months)}, nil
		}
	case DateTime:
		switch b := b.(type) {
		case TimeDelta:
			return DateTime{addDelta(a.t, b)}, nil
		case MonthDelta:
			return DateTime{addMonths(a.t, b.Months)}, nil
		}
	case TimeDelta:
		switch b.(type) {
		case TimeDelta:
			return timeDeltaOfMicros(a.Micros() + b.(TimeDelta).Micros()), nil
		case Date, DateTime:
			return Add(b, a)
		}
	case MonthDelta:
		switch b.(type) {
		case MonthDelta:
			return MonthDelta{a.Months + b.(MonthDelta).Months}, nil
		case Date, DateTime:
			return Add(b, a)
		}
	}
	return nil, mismatch("+", a, b)
}

func Sub(a, b Value) (Value, error) {
	if isNumber(a) && isNumber(b) {
		return arith("-", a, b,
			func(x, y int64) (Value, error) { return NewInt(x - y), nil },
			func(x, y *big.Int) (Value, error) { return NewBigInt(new(big.Int).Sub(x, y)), nil },
			func(x, y float64) (Value, error) { return Float(x - y), nil })
	}
	switch a := a.(type) {
	case Date:
		switch b := b.(type) {
		case Date:
			return timeDeltaOfMicros(microsBetween(a.t, b.t)), nil
		case TimeDelta:
			return Date{a.t.AddDate(0, 0, -b.Days)}, nil
		case MonthDelta:
			return Date{addMonths(a.t, -b.Months)}, nil
		}
	case DateTime:
		switch b := b.(type) {
		case DateTime:
			return timeDeltaOfMicros(microsBetween(a.t, b.t)), nil
		case TimeDelta:
			return DateTime{addDelta(a.t, timeDeltaOfMicros(-b.Micros()))}, nil
		case MonthDelta:
			return DateTime{addMonths(a.t, -b.Months)}, nil
		}
	case TimeDelta:
		if b, ok := b.(TimeDelta); ok {
			return timeDeltaOfMicros(a.Micros() - b.Micros()), nil
		}
	case MonthDelta:
		if b, ok := b.(MonthDelta); ok {
			return MonthDelta{a.Months - b.Months}, nil
		}
	}
	return nil, mismatch("-", a, b)
}

// repeatCount returns the repetition count n for str or list repetition.
func repeatCount(op string, a, n Value) (int, error) {
	x, ok := small(n)
	if !ok {
		return 0, mismatch(op, a, n)
	}
	if x < 0 {
		x = 0
	}
	return int(x), nil
}

func Mul(a, b Value) (Value, error) {
	if isNumber(a) && isNumber(b) {
		return arith("*", a, b,
			func(x, y int64) (Value, error) { return NewInt(x * y), nil },
			func(x, y *big.Int) (Value, error) { return NewBigInt(new(big.Int).Mul(x, y)), nil },
			func(x, y float64) (Value, error) { return Float(x * y), nil })
	}
	if isInteger(a) {
		switch b.(type) {
		case Str, *List, TimeDelta, MonthDelta:
			return Mul(b, a)
		}
	}
	if isNumber(a) {
		if _, ok := b.(TimeDelta); ok {
			return Mul(b, a)
		}
	}
	switch a := a.(type) {
	case Str:
		n, err := repeatCount("*", a, b)
		if err != nil {
			return nil, err
		}
		return Str(strings.Repeat(string(a), n)), nil
	case *List:
		n, err := repeatCount("*", a, b)
		if err != nil {
			return nil, err
		}
		items := make([]Value, 0, n*len(a.Items))
		for i := 0; i < n; i++ {
			items = append(items, a.Items...)
		}
		return NewList(items...), nil
	case TimeDelta:
		if f, ok := AsFloat(b); ok {
			return timeDeltaOfMicros(int64(math.Round(float64(a.Micros()) * f))), nil
		}
	case MonthDelta:
		if n, ok := small(b); ok {
			return MonthDelta{a.Months * int(n)}, nil
		}
	}
	return nil, mismatch("*", a, b)
}

func TrueDiv(a, b Value) (Value, error) {
	if isNumber(a) && isNumber(b) {
		y := floatOf(b)
		if y == 0 {
			return nil, &ZeroDivisionError{}
		}
		if isInteger(a) && isInteger(b) {
			q, _ := new(big.Rat).SetFrac(bigOf(a), bigOf(b)).Float64()
			return Float(q), nil
		}
		return Float(floatOf(a) / y), nil
	}
	if a, ok := a.(TimeDelta); ok {
		switch b := b.(type) {
		case TimeDelta:
			if b.Micros() == 0 {
				return nil, &ZeroDivisionError{}
			}
			return Float(float64(a.Micros()) / float64(b.Micros())), nil
		default:
			if f, ok := AsFloat(b); ok {
				if f == 0 {
					return nil, &ZeroDivisionError{}
				}
				return timeDeltaOfMicros(int64(math.Round(float64(a.Micros()) / f))), nil
			}
		}
	}
	return nil, mismatch("/", a, b)
}

// bigFloorDivMod returns the quotient rounded toward negative infinity
// and the remainder with the sign of the divisor.
func bigFloorDivMod(x, y *big.Int) (*big.Int, *big.Int) {
	q, m := new(big.Int).QuoRem(x, y, new(big.Int))
	if m.Sign() != 0 && (m.Sign() < 0) != (y.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
		m.Add(m, y)
	}
	return q, m
}

func floorMod64(x, y int64) int64 {
	m := x % y
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}

func floatMod(x, y float64) float64 {
	m := math.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}

func isZero(v Value) bool {
	return isNumber(v) && !Truth(v)
}

func FloorDiv(a, b Value) (Value, error) {
	if isNumber(a) && isNumber(b) {
		if isZero(b) {
			return nil, &ZeroDivisionError{}
		}
		return arith("//", a, b,
			func(x, y int64) (Value, error) { return NewInt(floorDiv64(x, y)), nil },
			func(x, y *big.Int) (Value, error) { q, _ := bigFloorDivMod(x, y); return NewBigInt(q), nil },
			func(x, y float64) (Value, error) { return Float(math.Floor(x / y)), nil })
	}
	switch a := a.(type) {
	case TimeDelta:
		switch b := b.(type) {
		case TimeDelta:
			if b.Micros() == 0 {
				return nil, &ZeroDivisionError{}
			}
			return NewInt(floorDiv64(a.Micros(), b.Micros())), nil
		default:
			if n, ok := small(b); ok {
				if n == 0 {
					return nil, &ZeroDivisionError{}
				}
				return timeDeltaOfMicros(floorDiv64(a.Micros(), n)), nil
			}
		}
	case MonthDelta:
		switch b := b.(type) {
		case MonthDelta:
			if b.Months == 0 {
				return nil, &ZeroDivisionError{}
			}
			return Int(floorDivInt(a.Months, b.Months)), nil
		default:
			if n, ok := small(b); ok {
				if n == 0 {
					return nil, &ZeroDivisionError{}
				}
				return MonthDelta{floorDivInt(a.Months, int(n))}, nil
			}
		}
	}
	return nil, mismatch("//", a, b)
}

func Mod(a, b Value) (Value, error) {
	if isNumber(a) && isNumber(b) {
		if isZero(b) {
			return nil, &ZeroDivisionError{}
		}
		return arith("%", a, b,
			func(x, y int64) (Value, error) { return NewInt(floorMod64(x, y)), nil },
			func(x, y *big.Int) (Value, error) { _, m := bigFloorDivMod(x, y); return NewBigInt(m), nil },
			func(x, y float64) (Value, error) { return Float(floatMod(x, y)), nil })
	}
	return nil, mismatch("%", a, b)
}

// shift shifts a left by count bits; a negative count shifts right.
func shift(op string, a, b Value, left bool) (Value, error) {
	if !isInteger(a) || !isInteger(b) {
		return nil, mismatch(op, a, b)
	}
	n, ok := small(b)
	if !ok {
		return nil, &ValueError{Msg: "shift count too large"}
	}
	if n < 0 {
		n, left = -n, !left
	}
	x := bigOf(a)
	if left {
		if n > 1<<20 && x.Sign() != 0 {
			return nil, &ValueError{Msg: "shift count too large"}
		}
		return NewBigInt(new(big.Int).Lsh(x, uint(n))), nil
	}
	return NewBigInt(new(big.Int).Rsh(x, uint(n))), nil
}

func ShiftLeft(a, b Value) (Value, error) {
	return shift("<<", a, b, true)
}

func ShiftRight(a, b Value) (Value, error) {
	return shift(">>", a, b, false)
}

// bitwise applies a bitwise operator. Two Bools give a Bool.
func bitwise(op string, a, b Value, bools func(x, y bool) bool, bigs func(z, x, y *big.Int) *big.Int) (Value, error) {
	if x, ok := a.(Bool); ok {
		if y, ok := b.(Bool); ok {
			return Bool(bools(bool(x), bool(y))), nil
		}
	}
	if !isInteger(a) || !isInteger(b) {
		return nil, mismatch(op, a, b)
	}
	return NewBigInt(bigs(new(big.Int), bigOf(a), bigOf(b))), nil
}

func BitAnd(a, b Value) (Value, error) {
	return bitwise("&", a, b, func(x, y bool) bool { return x && y }, (*big.Int).And)
}

func BitOr(a, b Value) (Value, error) {
	return bitwise("|", a, b, func(x, y bool) bool { return x || y }, (*big.Int).Or)
}

func BitXor(a, b Value) (Value, error) {
	return bitwise("^", a, b, func(x, y bool) bool { return x != y }, (*big.Int).Xor)
}

func Neg(a Value) (Value, error) {
	switch a := a.(type) {
	case Bool, Int:
		x, _ := small(a)
		return NewInt(-x), nil
	case BigInt:
		return NewBigInt(new(big.Int).Neg(a.Int)), nil
	case Float:
		return -a, nil
	case TimeDelta:
		return timeDeltaOfMicros(-a.Micros()), nil
	case MonthDelta:
		return MonthDelta{-a.Months}, nil
	}
	return nil, mismatch("-", a)
}

func BitNot(a Value) (Value, error) {
	if !isInteger(a) {
		return nil, mismatch("~", a)
	}
	if x, ok := small(a); ok {
		return NewInt(-x - 1), nil
	}
	return NewBigInt(new(big.Int).Not(bigOf(a))), nil
}

// InPlace applies the augmented assignment operator op to a and b.
// A list on the left of += or *= is modified in place; everything
// else uses the binary operator.
func InPlace(c Context, op string, a, b Value) (Value, error) {
	if l, ok := a.(*List); ok {
		switch op {
		case "add":
			items, err := Items(c, b)
			if err != nil {
				return nil, mismatch("+=", a, b)
			}
			l.Append(items...)
			return l, nil
		case "mul":
			n, err := repeatCount("*=", a, b)
			if err != nil {
				return nil, err
			}
			items := make([]Value, 0, n*len(l.Items))
			for i := 0; i < n; i++ {
				items = append(items, l.Items...)
			}
			l.Items = items
			return l, nil
		}
	}
	fn := BinaryOps[op]
	if fn == nil {
		return nil, Errorf("unknown operator %q", op)
	}
	return fn(a, b)
}
