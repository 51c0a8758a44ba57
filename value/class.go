// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"sort"
)

// Class is a user-defined type. It declares a fixed set of attribute
// names and a method table. Calling the class creates an Instance;
// the declared attributes are its parameters, each defaulting to None.
type Class struct {
	name    string
	doc     string
	attrs   []string
	methods map[string]*Method
	sig     *Signature
}

// NewClass returns a Class. Methods must not use a declared attribute name.
func NewClass(name, doc string, attrs []string, ms ...*Method) (*Class, error) {
	params := make([]Param, len(attrs))
	for i, a := range attrs {
		params[i] = Opt(a, None)
	}
	sig, err := NewSignature(params...)
	if err != nil {
		return nil, err
	}
	c := &Class{
		name:    name,
		doc:     doc,
		attrs:   append([]string(nil), attrs...),
		methods: methods(ms...),
		sig:     sig,
	}
	for _, a := range attrs {
		if c.methods[a] != nil {
			return nil, &DuplicateParameterError{Callable: name, Name: a}
		}
	}
	return c, nil
}

func (c *Class) Type() Type            { return TypeType }
func (c *Class) Name() string          { return c.name }
func (c *Class) Doc() string           { return c.doc }
func (c *Class) Signature() *Signature { return c.sig }

// Call creates an instance from the bound attribute values.
func (c *Class) Call(ctx Context, args *BoundArguments) (Value, error) {
	inst := &Instance{class: c, attrs: make(map[string]Value, len(c.attrs))}
	for i, a := range c.attrs {
		inst.attrs[a] = args.Value(i)
	}
	return inst, nil
}

func (c *Class) InstanceCheck(v Value) bool {
	inst, ok := v.(*Instance)
	return ok && inst.class == c
}

func (c *Class) Bool(Value) bool { return true }

func (c *Class) Len(v Value) (int, error) {
	return 0, &UnsupportedOperationError{Op: "len", Type: c.name}
}

// Attr looks in the instance's attributes, then in the method table.
func (c *Class) Attr(ctx Context, v Value, name string) (Value, error) {
	inst := v.(*Instance)
	if x, ok := inst.attrs[name]; ok {
		return x, nil
	}
	if m := c.methods[name]; m != nil {
		return &BoundMethod{Self: v, Method: m}, nil
	}
	return &UndefinedAttribute{Object: v, Name: name}, nil
}

// SetAttr sets a declared attribute. Methods are read only and
// other names are an AttributeError.
func (c *Class) SetAttr(ctx Context, v Value, name string, x Value) error {
	inst := v.(*Instance)
	if _, ok := inst.attrs[name]; ok {
		inst.attrs[name] = x
		return nil
	}
	if c.methods[name] != nil {
		return &ReadOnlyError{Type: c.name, Name: name}
	}
	return &AttributeError{Type: c.name, Name: name}
}

func (c *Class) Dir(Value) []string {
	names := append([]string(nil), c.attrs...)
	for name := range c.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Class) Str(v Value) string {
	return Repr(v)
}

func (c *Class) Repr(f *Formatter, v Value) {
	inst := v.(*Instance)
	f.WriteString("<")
	f.WriteString(c.name)
	for _, a := range c.attrs {
		f.WriteString(" ")
		f.WriteString(a)
		f.WriteString("=")
		f.Repr(inst.attrs[a])
	}
	f.WriteString(">")
}

// Instance is a value of a user-defined Class.
type Instance struct {
	class *Class
	attrs map[string]Value
}

func (i *Instance) Type() Type { return i.class }

func (i *Instance) Class() *Class { return i.class }
