// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lib

import (
	"math"
	"math/big"
	"unicode/utf8"

	"robpike.io/ul4/value"
)

var numberFuncs = []*value.Function{
	fn("abs", "Return the absolute value of a number or time span.", sig(value.PosReq("number")), abs),
	fn("round", "Round a number to a given number of decimal digits.",
		sig(req("x"), opt("digits", value.Int(0))), round),
	fn("floor", "Round a number down to a given number of decimal digits.",
		sig(value.PosReq("number"), opt("digits", value.Int(0))),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return roundTo(args, false)
		}),
	fn("ceil", "Round a number up to a given number of decimal digits.",
		sig(value.PosReq("number"), opt("digits", value.Int(0))),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return roundTo(args, true)
		}),
	fn("isclose", "Report whether two numbers are close to each other.",
		sig(req("a"), req("b"), value.KwOpt("rel_tol", value.Float(1e-9)), value.KwOpt("abs_tol", value.Float(0))),
		isclose),
	fn("min", "Return the smallest of the arguments, or of the items of a single iterable argument.",
		sig(value.Star("args"), value.KwOpt("key", value.None)),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return extremum(c, args, "lt")
		}),
	fn("max", "Return the largest of the arguments, or of the items of a single iterable argument.",
		sig(value.Star("args"), value.KwOpt("key", value.None)),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return extremum(c, args, "gt")
		}),
	fn("sum", "Return the sum of the items of an iterable, plus start.",
		sig(value.PosReq("iterable"), value.PosOpt("start", value.Int(0))),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			items, err := value.Items(c, args.Value(0))
			if err != nil {
				return nil, err
			}
			total := args.Value(1)
			for _, item := range items {
				if total, err = value.Add(total, item); err != nil {
					return nil, err
				}
			}
			return total, nil
		}),
	fn("chr", "Return the one character string for a code point.", sig(value.PosReq("i")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			i, err := args.Int(0)
			if err != nil {
				return nil, err
			}
			if i < 0 || i > utf8.MaxRune {
				return nil, &value.ValueError{Msg: "chr() arg not in range(0x110000)"}
			}
			return value.Str(rune(i)), nil
		}),
	fn("ord", "Return the code point of a one character string.", sig(value.PosReq("c")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			s, err := args.Str(0)
			if err != nil {
				return nil, err
			}
			if utf8.RuneCountInString(s) != 1 {
				return nil, &value.ValueError{Msg: "ord() expected a character"}
			}
			r, _ := utf8.DecodeRuneInString(s)
			return value.Int(r), nil
		}),
	radix("hex", "0x", 16),
	radix("oct", "0o", 8),
	radix("bin", "0b", 2),
}

func abs(c value.Context, args *value.BoundArguments) (value.Value, error) {
	x := args.Value(0)
	switch x := x.(type) {
	case value.TimeDelta:
		if x.Days < 0 {
			return value.Neg(x)
		}
		return x, nil
	case value.MonthDelta:
		if x.Months < 0 {
			return value.Neg(x)
		}
		return x, nil
	}
	n, err := value.Compare("abs", x, value.Int(0))
	if err != nil {
		return nil, &value.ArgumentTypeMismatchError{Op: "abs()", Types: []string{value.TypeName(x)}}
	}
	if n < 0 {
		return value.Neg(x)
	}
	if _, ok := x.(value.Bool); ok {
		return value.NewBigInt(bigInt(x)), nil
	}
	return x, nil
}

// round rounds half to even. Integers stay integers; a float rounded
// to zero or fewer digits becomes an integer.
func round(c value.Context, args *value.BoundArguments) (value.Value, error) {
	digits, err := args.Int(1)
	if err != nil {
		return nil, err
	}
	switch x := args.Value(0).(type) {
	case value.Bool, value.Int, value.BigInt:
		n := bigInt(x)
		if digits >= 0 {
			return value.NewBigInt(n), nil
		}
		p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-digits)), nil)
		q, r := new(big.Int).DivMod(n, p, new(big.Int))
		r.Lsh(r, 1)
		if cmp := r.Cmp(p); cmp > 0 || (cmp == 0 && q.Bit(0) == 1) {
			q.Add(q, big.NewInt(1))
		}
		return value.NewBigInt(q.Mul(q, p)), nil
	case value.Float:
		f := float64(x)
		p := math.Pow(10, float64(digits))
		if digits <= 0 {
			return value.FloatToInt(math.RoundToEven(f*p) / p)
		}
		return value.Float(math.RoundToEven(f*p) / p), nil
	}
	return nil, &value.ArgumentTypeMismatchError{Op: "round()", Types: []string{value.TypeName(args.Value(0))}}
}

// roundTo implements floor and, when up is set, ceil.
func roundTo(args *value.BoundArguments, up bool) (value.Value, error) {
	digits, err := args.Int(1)
	if err != nil {
		return nil, err
	}
	mode := math.Floor
	if up {
		mode = math.Ceil
	}
	switch x := args.Value(0).(type) {
	case value.Bool, value.Int, value.BigInt:
		n := bigInt(x)
		if digits >= 0 {
			return value.NewBigInt(n), nil
		}
		p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-digits)), nil)
		// DivMod truncates toward negative infinity for a positive divisor.
		q, r := new(big.Int).DivMod(n, p, new(big.Int))
		if r.Sign() != 0 && up {
			q.Add(q, big.NewInt(1))
		}
		return value.NewBigInt(q.Mul(q, p)), nil
	case value.Float:
		f := float64(x)
		switch {
		case digits == 0:
			return value.FloatToInt(mode(f))
		case digits < 0:
			p := math.Pow(10, float64(-digits))
			return value.FloatToInt(mode(f/p) * p)
		}
		p := math.Pow(10, float64(digits))
		return value.Float(mode(f*p) / p), nil
	}
	return nil, &value.ArgumentTypeMismatchError{Op: args.Callable() + "()", Types: []string{value.TypeName(args.Value(0))}}
}

func isclose(c value.Context, args *value.BoundArguments) (value.Value, error) {
	var x [4]float64
	for i := range x {
		f, ok := value.AsFloat(args.Value(i))
		if !ok {
			types := make([]string, len(x))
			for j := range types {
				types[j] = value.TypeName(args.Value(j))
			}
			return nil, &value.ArgumentTypeMismatchError{Op: "isclose()", Types: types}
		}
		x[i] = f
	}
	a, b, rel, abs := x[0], x[1], x[2], x[3]
	if rel < 0 || abs < 0 {
		return nil, &value.ValueError{Msg: "isclose() tolerances must be non-negative"}
	}
	if a == b {
		return value.True, nil
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return value.False, nil
	}
	diff := math.Abs(b - a)
	return value.Bool(diff <= math.Abs(rel*b) || diff <= math.Abs(rel*a) || diff <= abs), nil
}

// bigInt returns the integer value of a Bool, Int or BigInt.
func bigInt(v value.Value) *big.Int {
	switch v := v.(type) {
	case value.Bool:
		if v {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	case value.Int:
		return big.NewInt(int64(v))
	case value.BigInt:
		return new(big.Int).Set(v.Int)
	}
	return nil
}

// extremum implements min (op "lt") and max (op "gt").
func extremum(c value.Context, args *value.BoundArguments, op string) (value.Value, error) {
	name := args.Callable()
	items := args.Value(0).(*value.List).Items
	switch len(items) {
	case 0:
		return nil, &value.MissingArgumentError{Callable: name, Param: "args", Position: 0}
	case 1:
		var err error
		if items, err = value.Items(c, items[0]); err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, &value.ValueError{Msg: name + "() arg is an empty sequence"}
		}
	}
	key := args.Value(1)
	keyOf := func(v value.Value) (value.Value, error) {
		if value.IsNone(key) {
			return v, nil
		}
		return value.Call(c, key, []value.Value{v}, nil)
	}
	best := items[0]
	bestKey, err := keyOf(best)
	if err != nil {
		return nil, err
	}
	for _, item := range items[1:] {
		k, err := keyOf(item)
		if err != nil {
			return nil, err
		}
		better, err := value.BinaryOps[op](k, bestKey)
		if err != nil {
			return nil, err
		}
		if value.Truth(better) {
			best, bestKey = item, k
		}
	}
	return best, nil
}

// radix returns a builtin formatting an integer in base with prefix.
func radix(name, prefix string, base int) *value.Function {
	return fn(name, "Return the "+prefix+" representation of an integer.", sig(value.PosReq("number")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			n := bigInt(args.Value(0))
			if n == nil {
				return nil, &value.ArgumentTypeMismatchError{Op: name + "()", Types: []string{value.TypeName(args.Value(0))}}
			}
			if n.Sign() < 0 {
				return value.Str("-" + prefix + new(big.Int).Neg(n).Text(base)), nil
			}
			return value.Str(prefix + n.Text(base)), nil
		})
}
