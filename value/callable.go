// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

// Callable is implemented by every value that can be called:
// builtin functions, bound methods, type constructors, classes and templates.
type Callable interface {
	Value
	Name() string
	Signature() *Signature
	Call(c Context, args *BoundArguments) (Value, error)
}

// Renderable is implemented by callables that produce output when rendered.
type Renderable interface {
	Callable
	Render(c Context, args *BoundArguments) error
}

// A Keyword is one keyword argument at a call site.
type Keyword struct {
	Name  string
	Value Value
}

// Call binds args and kw against the signature of f and calls it.
func Call(c Context, f Value, args []Value, kw []Keyword) (Value, error) {
	fn, ok := f.(Callable)
	if !ok {
		return nil, &NotCallableError{Type: TypeName(f)}
	}
	bound, err := fn.Signature().Bind(fn.Name(), args, kw)
	if err != nil {
		return nil, err
	}
	return fn.Call(c, bound)
}

// Render binds args and kw against the signature of f and renders it
// to the output of the current frame.
func Render(c Context, f Value, args []Value, kw []Keyword) error {
	r, ok := f.(Renderable)
	if !ok {
		return &NotRenderableError{Type: TypeName(f)}
	}
	bound, err := r.Signature().Bind(r.Name(), args, kw)
	if err != nil {
		return err
	}
	return r.Render(c, bound)
}

// IsCallable reports whether v can be called.
func IsCallable(v Value) bool {
	_, ok := v.(Callable)
	return ok
}

// Function is a callable implemented in Go.
type Function struct {
	name string
	doc  string
	sig  *Signature
	fn   func(c Context, args *BoundArguments) (Value, error)
}

// NewFunction returns a Function called name.
func NewFunction(name, doc string, sig *Signature, fn func(c Context, args *BoundArguments) (Value, error)) *Function {
	return &Function{name: name, doc: doc, sig: sig, fn: fn}
}

func (f *Function) Type() Type            { return FunctionType }
func (f *Function) Name() string          { return f.name }
func (f *Function) Doc() string           { return f.doc }
func (f *Function) Signature() *Signature { return f.sig }

func (f *Function) Call(c Context, args *BoundArguments) (Value, error) {
	return f.fn(c, args)
}

type functionType struct {
	baseType
}

var FunctionType Type = &functionType{baseType{name: "function", doc: "A function"}}

func (t *functionType) InstanceCheck(v Value) bool {
	_, ok := v.(*Function)
	return ok
}

func (t *functionType) Attr(c Context, v Value, name string) (Value, error) {
	f := v.(*Function)
	switch name {
	case "__name__":
		return Str(f.name), nil
	case "__doc__":
		return Str(f.doc), nil
	}
	return &UndefinedAttribute{Object: v, Name: name}, nil
}

func (t *functionType) Dir(Value) []string {
	return []string{"__name__", "__doc__"}
}

func (t *functionType) Repr(f *Formatter, v Value) {
	f.WriteString("<function ")
	f.WriteString(v.(*Function).name)
	f.WriteString(">")
}

// Method is an entry in the method table of a type. Fn receives the
// object the method was fetched from.
type Method struct {
	Name string
	Sig  *Signature
	Fn   func(c Context, self Value, args *BoundArguments) (Value, error)
}

func methods(ms ...*Method) map[string]*Method {
	m := make(map[string]*Method, len(ms))
	for _, meth := range ms {
		m[meth.Name] = meth
	}
	return m
}

// BoundMethod is a Method together with the object it belongs to.
type BoundMethod struct {
	Self   Value
	Method *Method
}

func (m *BoundMethod) Type() Type            { return MethodType }
func (m *BoundMethod) Name() string          { return m.Method.Name }
func (m *BoundMethod) Signature() *Signature { return m.Method.Sig }

func (m *BoundMethod) Call(c Context, args *BoundArguments) (Value, error) {
	return m.Method.Fn(c, m.Self, args)
}

type methodType struct {
	baseType
}

var MethodType Type = &methodType{baseType{name: "method", doc: "A method bound to an object"}}

func (t *methodType) InstanceCheck(v Value) bool {
	_, ok := v.(*BoundMethod)
	return ok
}

func (t *methodType) Attr(c Context, v Value, name string) (Value, error) {
	m := v.(*BoundMethod)
	switch name {
	case "__name__":
		return Str(m.Method.Name), nil
	case "__self__":
		return m.Self, nil
	}
	return &UndefinedAttribute{Object: v, Name: name}, nil
}

func (t *methodType) Dir(Value) []string {
	return []string{"__name__", "__self__"}
}

func (t *methodType) Repr(f *Formatter, v Value) {
	m := v.(*BoundMethod)
	f.WriteString("<method ")
	f.WriteString(m.Method.Name)
	f.WriteString(" of ")
	f.WriteString(TypeName(m.Self))
	f.WriteString(" object>")
}

// constructor makes a type descriptor callable.
type constructor struct {
	sig *Signature
	fn  func(c Context, args *BoundArguments) (Value, error)
}

func (k *constructor) Signature() *Signature { return k.sig }

func (k *constructor) Call(c Context, args *BoundArguments) (Value, error) {
	return k.fn(c, args)
}
