// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"strings"

	"robpike.io/ul4/value"
)

// Flow says how control leaves a statement.
type Flow int

const (
	FlowNormal Flow = iota
	FlowBreak
	FlowContinue
	FlowReturn
)

func (f Flow) String() string {
	switch f {
	case FlowBreak:
		return "break"
	case FlowContinue:
		return "continue"
	case FlowReturn:
		return "return"
	}
	return "normal"
}

// Outcome is the result of executing a statement. Break, continue and
// return are outcomes, not errors: they travel up through enclosing
// blocks until a loop or a template call absorbs them.
type Outcome struct {
	Flow  Flow
	Value value.Value // For FlowReturn.
}

var normal = Outcome{}

// Exec executes s.
func Exec(c value.Context, s Stmt) (Outcome, error) {
	if err := c.Step(); err != nil {
		return normal, locate(c, s, err)
	}
	out, err := exec(c, s)
	if err != nil {
		return normal, locate(c, s, err)
	}
	return out, nil
}

// ExecBlock executes the statements of body in order, stopping at the
// first one that does not complete normally.
func ExecBlock(c value.Context, body []Stmt) (Outcome, error) {
	for _, s := range body {
		out, err := Exec(c, s)
		if err != nil || out.Flow != FlowNormal {
			return out, err
		}
	}
	return normal, nil
}

func exec(c value.Context, s Stmt) (Outcome, error) {
	switch s := s.(type) {
	case *Text:
		return normal, c.Write(s.Text)
	case *Print:
		v, err := Eval(c, s.Obj)
		if err != nil {
			return normal, err
		}
		return normal, c.Write(value.String(v))
	case *PrintX:
		v, err := Eval(c, s.Obj)
		if err != nil {
			return normal, err
		}
		return normal, c.Write(value.XMLEscape(value.String(v)))
	case *ExprStmt:
		_, err := Eval(c, s.Obj)
		return normal, err
	case *SetVar:
		v, err := Eval(c, s.Value)
		if err != nil {
			return normal, err
		}
		return normal, assign(c, s.Target, v)
	case *ChangeVar:
		v, err := Eval(c, s.Value)
		if err != nil {
			return normal, err
		}
		return normal, change(c, s.Op, s.Target, v)
	case *Cond:
		for _, b := range s.Blocks {
			if b.Cond != nil {
				v, err := Eval(c, b.Cond)
				if err != nil {
					return normal, err
				}
				if !value.Truth(v) {
					continue
				}
			}
			return ExecBlock(c, b.Body)
		}
		return normal, nil
	case *For:
		return execFor(c, s)
	case *While:
		for {
			v, err := Eval(c, s.Cond)
			if err != nil || !value.Truth(v) {
				return normal, err
			}
			out, err := ExecBlock(c, s.Body)
			if err != nil {
				return normal, err
			}
			switch out.Flow {
			case FlowBreak:
				return normal, nil
			case FlowReturn:
				return out, nil
			}
		}
	case *Break:
		return Outcome{Flow: FlowBreak}, nil
	case *Continue:
		return Outcome{Flow: FlowContinue}, nil
	case *Return:
		v, err := Eval(c, s.Value)
		if err != nil {
			return normal, err
		}
		return Outcome{Flow: FlowReturn, Value: v}, nil
	case *Render:
		return normal, execRender(c, s)
	case *Def:
		cl, err := NewClosure(c, s.Template)
		if err != nil {
			return normal, err
		}
		c.Assign(s.Template.Name, cl)
		return normal, nil
	}
	return normal, value.Errorf("cannot execute %T", s)
}

func execFor(c value.Context, s *For) (Outcome, error) {
	container, err := Eval(c, s.Iter)
	if err != nil {
		return normal, err
	}
	it, err := value.Iter(container)
	if err != nil {
		return normal, err
	}
	for {
		item, ok, err := it.Next()
		if err != nil || !ok {
			return normal, err
		}
		if err := assign(c, s.Target, item); err != nil {
			return normal, err
		}
		out, err := ExecBlock(c, s.Body)
		if err != nil {
			return normal, err
		}
		switch out.Flow {
		case FlowBreak:
			return normal, nil
		case FlowReturn:
			return out, nil
		}
	}
}

func execRender(c value.Context, s *Render) error {
	fn, args, kw, err := evalCall(c, s.Call)
	if err != nil {
		return locate(c, s.Call, err)
	}
	if !s.Escape {
		return value.Render(c, fn, args, kw)
	}
	f := c.Frame()
	saved := f.Out
	var b strings.Builder
	f.Out = &b
	err = value.Render(c, fn, args, kw)
	f.Out = saved
	if err != nil {
		return err
	}
	return c.Write(value.XMLEscape(b.String()))
}

// assign stores v through target.
func assign(c value.Context, target Expr, v value.Value) error {
	var err error
	switch t := target.(type) {
	case *Var:
		c.Assign(t.Name, v)
	case *Attr:
		var obj value.Value
		if obj, err = Eval(c, t.Obj); err == nil {
			err = value.SetAttr(c, obj, t.Name, v)
		}
	case *Item:
		var obj value.Value
		if obj, err = Eval(c, t.Obj); err != nil {
			break
		}
		if s, ok := t.Key.(*Slice); ok {
			var start, stop value.Value
			if start, stop, err = evalBounds(c, s); err == nil {
				err = value.SetSlice(c, obj, start, stop, v)
			}
			break
		}
		var key value.Value
		if key, err = Eval(c, t.Key); err == nil {
			err = value.SetItem(obj, key, v)
		}
	case *Unpack:
		err = unpack(c, t, v)
	default:
		err = value.Errorf("cannot assign to %s", target.Kind())
	}
	return locate(c, target, err)
}

func unpack(c value.Context, t *Unpack, v value.Value) error {
	items, err := value.Items(c, v)
	if err != nil {
		return err
	}
	if len(items) != len(t.Items) {
		return &value.UnpackingError{Want: len(t.Items), Got: len(items)}
	}
	for i, target := range t.Items {
		if err := assign(c, target, items[i]); err != nil {
			return err
		}
	}
	return nil
}

// change performs the augmented assignment target op= v. The target's
// object and key are evaluated once and used both to fetch the old
// value and to store the new one.
func change(c value.Context, op string, target Expr, v value.Value) error {
	var err error
	switch t := target.(type) {
	case *Var:
		old, ok := c.Lookup(t.Name)
		if !ok {
			old = &value.UndefinedVariable{Name: t.Name}
		}
		var x value.Value
		if x, err = value.InPlace(c, op, old, v); err == nil {
			c.Assign(t.Name, x)
		}
	case *Attr:
		var obj, old, x value.Value
		if obj, err = Eval(c, t.Obj); err != nil {
			break
		}
		if old, err = value.Attr(c, obj, t.Name); err != nil {
			break
		}
		if x, err = value.InPlace(c, op, old, v); err == nil {
			err = value.SetAttr(c, obj, t.Name, x)
		}
	case *Item:
		err = changeItem(c, op, t, v)
	default:
		err = value.Errorf("cannot use %s as the target of an augmented assignment", target.Kind())
	}
	return locate(c, target, err)
}

func changeItem(c value.Context, op string, t *Item, v value.Value) error {
	obj, err := Eval(c, t.Obj)
	if err != nil {
		return err
	}
	if s, ok := t.Key.(*Slice); ok {
		start, stop, err := evalBounds(c, s)
		if err != nil {
			return err
		}
		old, err := value.Slice(obj, start, stop)
		if err != nil {
			return err
		}
		x, err := value.InPlace(c, op, old, v)
		if err != nil {
			return err
		}
		return value.SetSlice(c, obj, start, stop, x)
	}
	key, err := Eval(c, t.Key)
	if err != nil {
		return err
	}
	old, err := value.Item(obj, key)
	if err != nil {
		return err
	}
	x, err := value.InPlace(c, op, old, v)
	if err != nil {
		return err
	}
	return value.SetItem(obj, key, x)
}
