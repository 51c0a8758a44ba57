// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value implements the runtime values of UL4 and the type
// descriptors that give them behavior: truth, length, attributes,
// string conversion, operators and argument binding.
package value // import "robpike.io/ul4/value"

import "sort"

// Value is implemented by every runtime value.
// Type returns the descriptor that owns the value; it never returns nil.
type Value interface {
	Type() Type
}

// Type is a descriptor for one variant of Value. Descriptors are
// immutable once built and may be shared between evaluations.
// A Type is itself a Value, of type "type".
type Type interface {
	Value

	// Name returns the name of the type as seen by templates.
	Name() string

	// Doc returns a one-line description of the type.
	Doc() string

	// InstanceCheck reports whether v belongs to the type.
	InstanceCheck(v Value) bool

	// Bool returns the truth value of v.
	Bool(v Value) bool

	// Len returns the length of v, or an UnsupportedOperationError.
	Len(v Value) (int, error)

	// Attr returns the attribute name of v. Unknown names
	// yield an *UndefinedAttribute, not an error.
	Attr(c Context, v Value, name string) (Value, error)

	// SetAttr sets the attribute name of v to x.
	SetAttr(c Context, v Value, name string, x Value) error

	// Dir returns the attribute names of v.
	Dir(v Value) []string

	// Str returns the user-facing string form of v.
	Str(v Value) string

	// Repr writes the diagnostic form of v to f.
	Repr(f *Formatter, v Value)
}

// TypeOf returns the type of v.
func TypeOf(v Value) Type {
	if v == nil {
		return NoneType
	}
	return v.Type()
}

// Truth returns the truth value of v.
func Truth(v Value) bool {
	return TypeOf(v).Bool(v)
}

// Length returns the length of v.
func Length(v Value) (int, error) {
	return TypeOf(v).Len(v)
}

// Attr returns the attribute name of v.
func Attr(c Context, v Value, name string) (Value, error) {
	return TypeOf(v).Attr(c, v, name)
}

// SetAttr sets the attribute name of v.
func SetAttr(c Context, v Value, name string, x Value) error {
	return TypeOf(v).SetAttr(c, v, name, x)
}

// HasAttr reports whether v has an attribute called name.
func HasAttr(c Context, v Value, name string) bool {
	a, err := Attr(c, v, name)
	return err == nil && !IsUndefined(a)
}

// Dir returns the sorted attribute names of v.
func Dir(v Value) []string {
	names := TypeOf(v).Dir(v)
	sort.Strings(names)
	return names
}

// String returns the user-facing string form of v.
func String(v Value) string {
	return TypeOf(v).Str(v)
}

// TypeName returns the name of the type of v.
func TypeName(v Value) string {
	return TypeOf(v).Name()
}

// baseType holds the behavior shared by most descriptors.
// Concrete descriptors embed it and override what differs.
type baseType struct {
	name    string
	doc     string
	methods map[string]*Method
}

func (t *baseType) Type() Type { return TypeType }

func (t *baseType) Name() string { return t.name }

func (t *baseType) Doc() string { return t.doc }

func (t *baseType) Bool(Value) bool { return true }

func (t *baseType) Len(v Value) (int, error) {
	return 0, &UnsupportedOperationError{Op: "len", Type: TypeName(v)}
}

func (t *baseType) Attr(c Context, v Value, name string) (Value, error) {
	if m := t.methods[name]; m != nil {
		return &BoundMethod{Self: v, Method: m}, nil
	}
	return &UndefinedAttribute{Object: v, Name: name}, nil
}

func (t *baseType) SetAttr(c Context, v Value, name string, x Value) error {
	return &ReadOnlyError{Type: TypeName(v), Name: name}
}

func (t *baseType) Dir(Value) []string {
	names := make([]string, 0, len(t.methods))
	for name := range t.methods {
		names = append(names, name)
	}
	return names
}

func (t *baseType) Str(v Value) string {
	return Repr(v)
}

// method returns the named method of the type, or nil.
func (t *baseType) method(name string) *Method {
	return t.methods[name]
}

// typeType is the descriptor of descriptors.
type typeType struct {
	baseType
}

// TypeType is the type of all types.
var TypeType Type = &typeType{baseType{name: "type", doc: "The type of all types"}}

func (t *typeType) Type() Type { return t }

func (t *typeType) InstanceCheck(v Value) bool {
	_, ok := v.(Type)
	return ok
}

func (t *typeType) Attr(c Context, v Value, name string) (Value, error) {
	typ := v.(Type)
	switch name {
	case "__name__":
		return Str(typ.Name()), nil
	case "__doc__":
		return Str(typ.Doc()), nil
	}
	return &UndefinedAttribute{Object: v, Name: name}, nil
}

func (t *typeType) Dir(Value) []string {
	return []string{"__name__", "__doc__"}
}

func (t *typeType) Repr(f *Formatter, v Value) {
	f.WriteString("<type ")
	f.WriteString(v.(Type).Name())
	f.WriteString(">")
}
