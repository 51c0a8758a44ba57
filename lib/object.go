// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lib

import (
	"robpike.io/ul4/value"
)

var objectFuncs = []*value.Function{
	fn("len", "Return the number of items of a container.", sig(value.PosReq("sequence")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			n, err := value.Length(args.Value(0))
			if err != nil {
				return nil, err
			}
			return value.Int(n), nil
		}),
	fn("repr", "Return the printable representation of an object.", sig(value.PosReq("obj")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return value.Str(value.Repr(args.Value(0))), nil
		}),
	fn("ascii", "Like repr, but escape all non-ASCII characters.", sig(value.PosReq("obj")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return value.Str(value.ASCII(args.Value(0))), nil
		}),
	fn("type", "Return the type of an object.", sig(value.PosReq("obj")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return value.TypeOf(args.Value(0)), nil
		}),
	fn("dir", "Return the attribute names of an object.", sig(value.PosReq("obj")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			s := value.NewSet()
			for _, name := range value.Dir(args.Value(0)) {
				if err := s.Add(value.Str(name)); err != nil {
					return nil, err
				}
			}
			return s, nil
		}),
	fn("get", "Return the variable called name, or default if there is none.",
		sig(value.PosReq("name"), value.PosOpt("default", value.None)),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			name, err := args.Str(0)
			if err != nil {
				return nil, err
			}
			if v, ok := c.Frame().Scope.Lookup(name); ok {
				return v, nil
			}
			return args.Value(1), nil
		}),
	fn("getattr", "Return an attribute of an object, or default if there is none.",
		sig(value.PosReq("obj"), value.PosReq("attrname"), value.PosOpt("default", value.None)),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			name, err := args.Str(1)
			if err != nil {
				return nil, err
			}
			v, err := value.Attr(c, args.Value(0), name)
			if err != nil {
				return nil, err
			}
			if value.IsUndefined(v) {
				return args.Value(2), nil
			}
			return v, nil
		}),
	fn("setattr", "Set an attribute of an object.",
		sig(value.PosReq("obj"), value.PosReq("attrname"), value.PosReq("value")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			name, err := args.Str(1)
			if err != nil {
				return nil, err
			}
			return value.None, value.SetAttr(c, args.Value(0), name, args.Value(2))
		}),
	fn("hasattr", "Report whether an object has an attribute.",
		sig(value.PosReq("obj"), value.PosReq("attrname")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			name, err := args.Str(1)
			if err != nil {
				return nil, err
			}
			return value.Bool(value.HasAttr(c, args.Value(0), name)), nil
		}),
	fn("isinstance", "Report whether an object is an instance of a type or of one of a list of types.",
		sig(value.PosReq("obj"), value.PosReq("type")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			obj := args.Value(0)
			types := []value.Value{args.Value(1)}
			if l, ok := args.Value(1).(*value.List); ok {
				types = l.Items
			}
			for _, t := range types {
				typ, ok := t.(value.Type)
				if !ok {
					return nil, &value.ArgumentTypeError{Callable: "isinstance", Param: "type", Want: "type", Got: value.TypeName(t)}
				}
				if typ.InstanceCheck(obj) {
					return value.True, nil
				}
			}
			return value.False, nil
		}),
}
