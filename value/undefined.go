// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import "fmt"

// The undefined values are placeholders produced by looking up something
// that does not exist. They are not errors: they are falsy, print as
// nothing, and record where they came from for diagnostics.
// Using one in an operation fails with an ArgumentTypeMismatchError.

type UndefinedVariable struct {
	Name string
}

type UndefinedAttribute struct {
	Object Value
	Name   string
}

type UndefinedKey struct {
	Object Value
	Key    Value
}

type UndefinedIndex struct {
	Object Value
	Index  Value
}

func (u *UndefinedVariable) Type() Type  { return UndefinedVariableType }
func (u *UndefinedAttribute) Type() Type { return UndefinedAttributeType }
func (u *UndefinedKey) Type() Type       { return UndefinedKeyType }
func (u *UndefinedIndex) Type() Type     { return UndefinedIndexType }

func (u *UndefinedVariable) undefined()  {}
func (u *UndefinedAttribute) undefined() {}
func (u *UndefinedKey) undefined()       {}
func (u *UndefinedIndex) undefined()     {}

type undefinedValue interface {
	Value
	undefined()
}

// IsUndefined reports whether v is one of the undefined values.
func IsUndefined(v Value) bool {
	_, ok := v.(undefinedValue)
	return ok
}

type undefinedType struct {
	baseType
	check func(Value) bool
}

var (
	UndefinedVariableType Type = &undefinedType{
		baseType: baseType{name: "undefinedvariable", doc: "The result of looking up an unknown variable"},
		check:    func(v Value) bool { _, ok := v.(*UndefinedVariable); return ok },
	}
	UndefinedAttributeType Type = &undefinedType{
		baseType: baseType{name: "undefinedattribute", doc: "The result of looking up an unknown attribute"},
		check:    func(v Value) bool { _, ok := v.(*UndefinedAttribute); return ok },
	}
	UndefinedKeyType Type = &undefinedType{
		baseType: baseType{name: "undefinedkey", doc: "The result of looking up an unknown key"},
		check:    func(v Value) bool { _, ok := v.(*UndefinedKey); return ok },
	}
	UndefinedIndexType Type = &undefinedType{
		baseType: baseType{name: "undefinedindex", doc: "The result of looking up an index out of range"},
		check:    func(v Value) bool { _, ok := v.(*UndefinedIndex); return ok },
	}
)

func (t *undefinedType) InstanceCheck(v Value) bool { return t.check(v) }

func (t *undefinedType) Bool(Value) bool { return false }

func (t *undefinedType) Attr(c Context, v Value, name string) (Value, error) {
	return &UndefinedAttribute{Object: v, Name: name}, nil
}

func (t *undefinedType) Dir(Value) []string { return nil }

func (t *undefinedType) Str(Value) string { return "" }

func (t *undefinedType) Repr(f *Formatter, v Value) {
	switch u := v.(type) {
	case *UndefinedVariable:
		fmt.Fprintf(f, "<undefined variable %s>", Repr(Str(u.Name)))
	case *UndefinedAttribute:
		fmt.Fprintf(f, "<undefined attribute %s of %s>", Repr(Str(u.Name)), TypeName(u.Object))
	case *UndefinedKey:
		fmt.Fprintf(f, "<undefined key %s>", Repr(u.Key))
	case *UndefinedIndex:
		fmt.Fprintf(f, "<undefined index %s>", Repr(u.Index))
	}
}
