// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

// List is an ordered, mutable sequence.
type List struct {
	Items []Value
}

// NewList returns a list holding items. The list owns the slice.
func NewList(items ...Value) *List {
	return &List{Items: items}
}

func (l *List) Type() Type { return ListType }

func (l *List) Append(v ...Value) {
	l.Items = append(l.Items, v...)
}

type listType struct {
	baseType
	constructor
}

var listT = &listType{baseType: baseType{name: "list", doc: "A list of values"}}

var ListType Type = listT

func init() {
	listT.constructor = constructor{
		sig: MustSignature(PosOpt("iterable", None)),
		fn: func(c Context, args *BoundArguments) (Value, error) {
			if IsNone(args.Value(0)) {
				return NewList(), nil
			}
			items, err := Items(c, args.Value(0))
			if err != nil {
				return nil, err
			}
			return NewList(items...), nil
		},
	}
	listT.methods = methods(
		&Method{Name: "append", Sig: MustSignature(Star("items")), Fn: listAppend},
		&Method{Name: "insert", Sig: MustSignature(Req("pos"), Star("items")), Fn: listInsert},
		&Method{Name: "pop", Sig: MustSignature(Opt("pos", Int(-1))), Fn: listPop},
		&Method{Name: "find", Sig: MustSignature(Req("sub"), Opt("start", None), Opt("end", None)), Fn: listFind},
		&Method{Name: "rfind", Sig: MustSignature(Req("sub"), Opt("start", None), Opt("end", None)), Fn: listFind},
		&Method{Name: "count", Sig: MustSignature(Req("sub"), Opt("start", None), Opt("end", None)), Fn: listFind},
	)
}

func (t *listType) InstanceCheck(v Value) bool {
	_, ok := v.(*List)
	return ok
}

func (t *listType) Bool(v Value) bool { return len(v.(*List).Items) > 0 }

func (t *listType) Len(v Value) (int, error) {
	return len(v.(*List).Items), nil
}

func (t *listType) Repr(f *Formatter, v Value) {
	f.sequence("[", "]", v.(*List).Items)
}

func listAppend(c Context, self Value, args *BoundArguments) (Value, error) {
	l := self.(*List)
	l.Append(args.Value(0).(*List).Items...)
	return None, nil
}

func listInsert(c Context, self Value, args *BoundArguments) (Value, error) {
	l := self.(*List)
	pos, err := args.Int(0)
	if err != nil {
		return nil, err
	}
	pos = clampIndex(pos, len(l.Items))
	items := args.Value(1).(*List).Items
	n := make([]Value, 0, len(l.Items)+len(items))
	n = append(n, l.Items[:pos]...)
	n = append(n, items...)
	n = append(n, l.Items[pos:]...)
	l.Items = n
	return None, nil
}

func listPop(c Context, self Value, args *BoundArguments) (Value, error) {
	l := self.(*List)
	pos, err := args.Int(0)
	if err != nil {
		return nil, err
	}
	i := pos
	if i < 0 {
		i += len(l.Items)
	}
	if i < 0 || i >= len(l.Items) {
		return nil, &IndexError{Object: l, Key: Int(pos)}
	}
	v := l.Items[i]
	l.Items = append(l.Items[:i:i], l.Items[i+1:]...)
	return v, nil
}

func listFind(c Context, self Value, args *BoundArguments) (Value, error) {
	items := self.(*List).Items
	start, end, err := sliceBounds(args, 1, len(items))
	if err != nil {
		return nil, err
	}
	sub := args.Value(0)
	switch args.Callable() {
	case "find":
		for i := start; i < end; i++ {
			if Equal(items[i], sub) {
				return Int(i), nil
			}
		}
	case "rfind":
		for i := end - 1; i >= start; i-- {
			if Equal(items[i], sub) {
				return Int(i), nil
			}
		}
	case "count":
		n := 0
		for i := start; i < end; i++ {
			if Equal(items[i], sub) {
				n++
			}
		}
		return Int(n), nil
	}
	return Int(-1), nil
}

// clampIndex normalizes a slice bound i against length n:
// negative values count from the end, and the result lies in [0, n].
func clampIndex(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			i = 0
		}
	}
	if i > n {
		i = n
	}
	return i
}
