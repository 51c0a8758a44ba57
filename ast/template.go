// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"io"
	"sort"
	"strings"

	"robpike.io/ul4/value"
)

// Closure is a template bound to the scope it was defined in.
// It is the runtime value of a template: calling it runs the body
// and yields what it returns, rendering it writes its output.
type Closure struct {
	Template *Template
	scope    *value.Scope
	sig      *value.Signature
}

// free is the signature of a template without parameters:
// any keyword argument is accepted and becomes a local variable.
var free = value.MustSignature(value.StarStar("vars"))

// NewClosure evaluates the parameter defaults of t and binds it
// to the current scope of c.
func NewClosure(c value.Context, t *Template) (*Closure, error) {
	sig, err := signature(c, t)
	if err != nil {
		return nil, err
	}
	return &Closure{Template: t, scope: c.Frame().Scope, sig: sig}, nil
}

func signature(c value.Context, t *Template) (*value.Signature, error) {
	if t.Params == nil {
		return free, nil
	}
	params := make([]value.Param, len(t.Params))
	for i, p := range t.Params {
		params[i] = value.Param{Name: p.Name, Kind: p.Kind}
		if p.Default != nil {
			v, err := Eval(c, p.Default)
			if err != nil {
				return nil, err
			}
			params[i].HasDefault = true
			params[i].Default = v
		}
	}
	sig, err := value.NewSignature(params...)
	if err != nil {
		return nil, err
	}
	return sig, nil
}

func (cl *Closure) Type() value.Type            { return TemplateType }
func (cl *Closure) Name() string                { return cl.Template.Name }
func (cl *Closure) Signature() *value.Signature { return cl.sig }
func (cl *Closure) Scope() *value.Scope         { return cl.scope }
func (cl *Closure) String() string              { return "<template " + cl.Template.Name + ">" }
func (cl *Closure) free() bool                  { return cl.sig == free }

func (cl *Closure) newFrame(out io.Writer) *value.Frame {
	return &value.Frame{
		Name:   cl.Template.Name,
		Source: cl.Template.Source,
		Scope:  value.NewScope(cl.scope),
		Out:    out,
	}
}

// bind stores the arguments in scope.
func (cl *Closure) bind(scope *value.Scope, args *value.BoundArguments) {
	if cl.free() {
		args.Value(0).(*value.Dict).Each(func(k, v value.Value) bool {
			scope.Set(string(k.(value.Str)), v)
			return true
		})
		return
	}
	for i := 0; i < args.Len(); i++ {
		scope.Set(args.Name(i), args.Value(i))
	}
}

// run executes the body in a new frame writing to out and returns
// the value of the return statement that ended it, or None.
func (cl *Closure) run(c value.Context, args *value.BoundArguments, out io.Writer) (value.Value, error) {
	f := cl.newFrame(out)
	cl.bind(f.Scope, args)
	if err := c.Push(f); err != nil {
		return nil, err
	}
	defer c.Pop()
	result, err := ExecBlock(c, cl.Template.Body)
	if err != nil {
		return nil, err
	}
	if result.Flow == FlowReturn && result.Value != nil {
		return result.Value, nil
	}
	return value.None, nil
}

// Call runs the template, discarding its output.
func (cl *Closure) Call(c value.Context, args *value.BoundArguments) (value.Value, error) {
	return cl.run(c, args, io.Discard)
}

// Render runs the template, writing to the output of the caller.
func (cl *Closure) Render(c value.Context, args *value.BoundArguments) error {
	_, err := cl.run(c, args, c.Frame().Out)
	return err
}

// Renders runs the template and returns its output.
func (cl *Closure) Renders(c value.Context, args *value.BoundArguments) (string, error) {
	var b strings.Builder
	_, err := cl.run(c, args, &b)
	return b.String(), err
}

// Execute runs the body of t in the current frame of c, with vars bound
// against the signature of t as keyword arguments. It is how a host
// runs its outermost template: the variables the template assigns stay
// visible in the frame afterwards.
func Execute(c value.Context, t *Template, vars []value.Keyword) error {
	cl, err := NewClosure(c, t)
	if err != nil {
		return err
	}
	args, err := cl.sig.Bind(t.Name, nil, vars)
	if err != nil {
		return err
	}
	cl.bind(c.Frame().Scope, args)
	_, err = ExecBlock(c, t.Body)
	return err
}

type templateType struct {
	methods map[string]*value.Method
}

// TemplateType is the type of template closures.
var TemplateType value.Type = templateT

var templateT = &templateType{}

func init() {
	templateT.methods = map[string]*value.Method{
		"render":  {Name: "render", Fn: templateRender},
		"renders": {Name: "renders", Fn: templateRenders},
	}
}

func templateRender(c value.Context, self value.Value, args *value.BoundArguments) (value.Value, error) {
	return value.None, self.(*Closure).Render(c, args)
}

func templateRenders(c value.Context, self value.Value, args *value.BoundArguments) (value.Value, error) {
	s, err := self.(*Closure).Renders(c, args)
	if err != nil {
		return nil, err
	}
	return value.Str(s), nil
}

func (t *templateType) Type() value.Type { return value.TypeType }
func (t *templateType) Name() string     { return "template" }
func (t *templateType) Doc() string      { return "A template" }

func (t *templateType) InstanceCheck(v value.Value) bool {
	_, ok := v.(*Closure)
	return ok
}

func (t *templateType) Bool(value.Value) bool { return true }

func (t *templateType) Len(v value.Value) (int, error) {
	return 0, &value.UnsupportedOperationError{Op: "len", Type: "template"}
}

// Attr returns the render methods, which share the template's
// signature, and the name, doc and source of the template.
func (t *templateType) Attr(c value.Context, v value.Value, name string) (value.Value, error) {
	cl := v.(*Closure)
	switch name {
	case "name":
		return value.Str(cl.Template.Name), nil
	case "doc":
		if cl.Template.Doc == "" {
			return value.None, nil
		}
		return value.Str(cl.Template.Doc), nil
	case "source":
		return value.Str(cl.Template.Source), nil
	case "signature":
		return value.Str(cl.sig.String()), nil
	}
	if m := t.methods[name]; m != nil {
		return &value.BoundMethod{Self: v, Method: &value.Method{Name: m.Name, Sig: cl.sig, Fn: m.Fn}}, nil
	}
	return &value.UndefinedAttribute{Object: v, Name: name}, nil
}

func (t *templateType) SetAttr(c value.Context, v value.Value, name string, x value.Value) error {
	return &value.ReadOnlyError{Type: "template", Name: name}
}

func (t *templateType) Dir(value.Value) []string {
	names := []string{"doc", "name", "signature", "source"}
	for name := range t.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *templateType) Str(v value.Value) string {
	return v.(*Closure).String()
}

func (t *templateType) Repr(f *value.Formatter, v value.Value) {
	f.WriteString(v.(*Closure).String())
}
