// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

type none struct{}

// None is the None value. A nil Value is treated as None too.
var None Value = none{}

func (none) Type() Type { return NoneType }

// IsNone reports whether v is None.
func IsNone(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(none)
	return ok
}

type noneType struct {
	baseType
}

var NoneType Type = &noneType{baseType{name: "none", doc: "The type of None"}}

func (t *noneType) InstanceCheck(v Value) bool {
	return IsNone(v)
}

func (t *noneType) Bool(Value) bool { return false }

func (t *noneType) Str(Value) string { return "" }

func (t *noneType) Repr(f *Formatter, v Value) {
	f.WriteString("None")
}

// Bool is a boolean value. In arithmetic it behaves as 0 or 1.
type Bool bool

const (
	True  = Bool(true)
	False = Bool(false)
)

func (b Bool) Type() Type { return BoolType }

type boolType struct {
	baseType
	constructor
}

var boolT = &boolType{baseType: baseType{name: "bool", doc: "An instance of this class can be either True or False"}}

var BoolType Type = boolT

func init() {
	boolT.constructor = constructor{
		sig: MustSignature(PosOpt("x", False)),
		fn: func(c Context, args *BoundArguments) (Value, error) {
			return Bool(Truth(args.Value(0))), nil
		},
	}
}

func (t *boolType) InstanceCheck(v Value) bool {
	_, ok := v.(Bool)
	return ok
}

func (t *boolType) Bool(v Value) bool { return bool(v.(Bool)) }

func (t *boolType) Str(v Value) string {
	if v.(Bool) {
		return "True"
	}
	return "False"
}

func (t *boolType) Repr(f *Formatter, v Value) {
	f.WriteString(t.Str(v))
}
