// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import (
	"github.com/pkg/errors"

	"robpike.io/ul4/value"
)

// Eval evaluates e. Every node visited costs one step of c, and any
// error is tagged with the location of the node that failed.
func Eval(c value.Context, e Expr) (value.Value, error) {
	if err := c.Step(); err != nil {
		return nil, locate(c, e, err)
	}
	v, err := eval(c, e)
	if err != nil {
		return nil, locate(c, e, err)
	}
	return v, nil
}

func eval(c value.Context, e Expr) (value.Value, error) {
	switch e := e.(type) {
	case *Const:
		return e.Value, nil
	case *Var:
		if v, ok := c.Lookup(e.Name); ok {
			return v, nil
		}
		return &value.UndefinedVariable{Name: e.Name}, nil
	case *List:
		items, err := evalSeq(c, e.Items)
		if err != nil {
			return nil, err
		}
		return value.NewList(items...), nil
	case *Set:
		items, err := evalSeq(c, e.Items)
		if err != nil {
			return nil, err
		}
		s := value.NewSet()
		for _, item := range items {
			if err := s.Add(item); err != nil {
				return nil, err
			}
		}
		return s, nil
	case *Dict:
		return evalDict(c, e)
	case *ListComp:
		l := value.NewList()
		err := comprehend(c, e.Target, e.Iter, e.Cond, func() error {
			v, err := Eval(c, e.Item)
			if err == nil {
				l.Append(v)
			}
			return err
		})
		return l, err
	case *SetComp:
		s := value.NewSet()
		err := comprehend(c, e.Target, e.Iter, e.Cond, func() error {
			v, err := Eval(c, e.Item)
			if err != nil {
				return err
			}
			return s.Add(v)
		})
		return s, err
	case *DictComp:
		d := value.NewDict()
		err := comprehend(c, e.Target, e.Iter, e.Cond, func() error {
			k, err := Eval(c, e.Key)
			if err != nil {
				return err
			}
			v, err := Eval(c, e.Value)
			if err != nil {
				return err
			}
			return d.Set(k, v)
		})
		return d, err
	case *GenExpr:
		return generate(c, e)
	case *Attr:
		obj, err := Eval(c, e.Obj)
		if err != nil {
			return nil, err
		}
		return value.Attr(c, obj, e.Name)
	case *Item:
		obj, err := Eval(c, e.Obj)
		if err != nil {
			return nil, err
		}
		if s, ok := e.Key.(*Slice); ok {
			start, stop, err := evalBounds(c, s)
			if err != nil {
				return nil, err
			}
			return value.Slice(obj, start, stop)
		}
		key, err := Eval(c, e.Key)
		if err != nil {
			return nil, err
		}
		return value.Item(obj, key)
	case *Slice:
		return nil, value.Errorf("slice %s used outside of an index", e.Span)
	case *Unpack:
		items := make([]value.Value, len(e.Items))
		for i, item := range e.Items {
			v, err := Eval(c, item)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return value.NewList(items...), nil
	case *Unary:
		fn := value.UnaryOps[e.Op]
		if fn == nil {
			return nil, value.Errorf("unknown unary operator %q", e.Op)
		}
		obj, err := Eval(c, e.Obj)
		if err != nil {
			return nil, err
		}
		return fn(obj)
	case *Binary:
		fn := value.BinaryOps[e.Op]
		if fn == nil {
			return nil, value.Errorf("unknown binary operator %q", e.Op)
		}
		left, err := Eval(c, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := Eval(c, e.Right)
		if err != nil {
			return nil, err
		}
		return fn(left, right)
	case *And:
		left, err := Eval(c, e.Left)
		if err != nil || !value.Truth(left) {
			return left, err
		}
		return Eval(c, e.Right)
	case *Or:
		left, err := Eval(c, e.Left)
		if err != nil || value.Truth(left) {
			return left, err
		}
		return Eval(c, e.Right)
	case *If:
		cond, err := Eval(c, e.Cond)
		if err != nil {
			return nil, err
		}
		if value.Truth(cond) {
			return Eval(c, e.Then)
		}
		return Eval(c, e.Else)
	case *Call:
		fn, args, kw, err := evalCall(c, e)
		if err != nil {
			return nil, err
		}
		return value.Call(c, fn, args, kw)
	}
	return nil, value.Errorf("cannot evaluate %T", e)
}

func evalSeq(c value.Context, entries []SeqItem) ([]value.Value, error) {
	var items []value.Value
	for _, entry := range entries {
		v, err := Eval(c, entry.Expr)
		if err != nil {
			return nil, err
		}
		if !entry.Star {
			items = append(items, v)
			continue
		}
		if !value.IsIterable(v) {
			return nil, &value.ArgumentTypeMismatchError{Op: "*", Types: []string{value.TypeName(v)}}
		}
		more, err := value.Items(c, v)
		if err != nil {
			return nil, err
		}
		items = append(items, more...)
	}
	return items, nil
}

// evalDict builds a dict literal. Later entries replace earlier ones
// with the same key. A ** entry is a dict or an iterable of pairs.
func evalDict(c value.Context, e *Dict) (value.Value, error) {
	d := value.NewDict()
	for _, entry := range e.Items {
		if entry.StarStar {
			v, err := Eval(c, entry.Value)
			if err != nil {
				return nil, err
			}
			if _, ok := v.(*value.Dict); !ok && !value.IsIterable(v) {
				return nil, &value.ArgumentTypeMismatchError{Op: "**", Types: []string{value.TypeName(v)}}
			}
			if err := d.Update(c, v); err != nil {
				return nil, err
			}
			continue
		}
		k, err := Eval(c, entry.Key)
		if err != nil {
			return nil, err
		}
		v, err := Eval(c, entry.Value)
		if err != nil {
			return nil, err
		}
		if err := d.Set(k, v); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func evalBounds(c value.Context, s *Slice) (start, stop value.Value, err error) {
	start, stop = value.None, value.None
	if s.Start != nil {
		if start, err = Eval(c, s.Start); err != nil {
			return nil, nil, err
		}
	}
	if s.Stop != nil {
		if stop, err = Eval(c, s.Stop); err != nil {
			return nil, nil, err
		}
	}
	return start, stop, nil
}

// comprehend runs body once per item of iter that passes cond, with the
// item bound to target in a scope of its own.
func comprehend(c value.Context, target, iter, cond Expr, body func() error) error {
	container, err := Eval(c, iter)
	if err != nil {
		return err
	}
	it, err := value.Iter(container)
	if err != nil {
		return err
	}
	f := c.Frame()
	saved := f.Scope
	f.Scope = value.NewScope(saved)
	defer func() { f.Scope = saved }()
	for {
		item, ok, err := it.Next()
		if err != nil || !ok {
			return err
		}
		if err := assign(c, target, item); err != nil {
			return err
		}
		if cond != nil {
			v, err := Eval(c, cond)
			if err != nil {
				return err
			}
			if !value.Truth(v) {
				continue
			}
		}
		if err := body(); err != nil {
			return err
		}
	}
}

// generate returns the iterator of a generator expression. Iter is
// evaluated at once; the rest runs in a scope of its own each time the
// iterator is advanced.
func generate(c value.Context, e *GenExpr) (value.Value, error) {
	container, err := Eval(c, e.Iter)
	if err != nil {
		return nil, err
	}
	it, err := value.Iter(container)
	if err != nil {
		return nil, err
	}
	scope := value.NewScope(c.Frame().Scope)
	return value.NewIterator(func() (value.Value, bool, error) {
		f := c.Frame()
		saved := f.Scope
		f.Scope = scope
		defer func() { f.Scope = saved }()
		for {
			item, ok, err := it.Next()
			if err != nil || !ok {
				return nil, false, err
			}
			if err := assign(c, e.Target, item); err != nil {
				return nil, false, err
			}
			if e.Cond != nil {
				v, err := Eval(c, e.Cond)
				if err != nil {
					return nil, false, err
				}
				if !value.Truth(v) {
					continue
				}
			}
			v, err := Eval(c, e.Item)
			if err != nil {
				return nil, false, err
			}
			return v, true, nil
		}
	}), nil
}

// evalCall evaluates the callee and the arguments of a call.
// A name or method that does not resolve is reported as unknown
// rather than as a call of an undefined value.
func evalCall(c value.Context, e *Call) (value.Value, []value.Value, []value.Keyword, error) {
	fn, err := Eval(c, e.Obj)
	if err != nil {
		return nil, nil, nil, err
	}
	switch u := fn.(type) {
	case *value.UndefinedVariable:
		return nil, nil, nil, &value.UnknownFunctionError{Name: u.Name}
	case *value.UndefinedAttribute:
		return nil, nil, nil, &value.UnknownMethodError{Type: value.TypeName(u.Object), Name: u.Name}
	}
	var args []value.Value
	var kw []value.Keyword
	for _, arg := range e.Args {
		v, err := Eval(c, arg.Value)
		if err != nil {
			return nil, nil, nil, err
		}
		switch {
		case arg.Star:
			if !value.IsIterable(v) {
				return nil, nil, nil, &value.ArgumentTypeMismatchError{Op: "*", Types: []string{value.TypeName(v)}}
			}
			items, err := value.Items(c, v)
			if err != nil {
				return nil, nil, nil, err
			}
			args = append(args, items...)
		case arg.StarStar:
			d, ok := v.(*value.Dict)
			if !ok {
				return nil, nil, nil, &value.ArgumentTypeMismatchError{Op: "**", Types: []string{value.TypeName(v)}}
			}
			for _, k := range d.Keys() {
				name, ok := k.(value.Str)
				if !ok {
					return nil, nil, nil, errors.Wrapf(&value.ArgumentTypeMismatchError{Op: "**", Types: []string{value.TypeName(k)}}, "keyword names must be strings")
				}
				x, _, _ := d.Get(k)
				kw = append(kw, value.Keyword{Name: string(name), Value: x})
			}
		case arg.Name != "":
			kw = append(kw, value.Keyword{Name: arg.Name, Value: v})
		default:
			args = append(args, v)
		}
	}
	return fn, args, kw, nil
}
