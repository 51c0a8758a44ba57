// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

// Dict is a mutable mapping that remembers insertion order.
type Dict struct {
	keys  []Value
	vals  []Value
	index map[interface{}]int
}

func NewDict() *Dict {
	return &Dict{index: make(map[interface{}]int)}
}

func (d *Dict) Type() Type { return DictType }

func (d *Dict) Len() int {
	return len(d.keys)
}

// Get returns the value stored under k.
func (d *Dict) Get(k Value) (Value, bool, error) {
	key, err := Key(k)
	if err != nil {
		return nil, false, err
	}
	i, ok := d.index[key]
	if !ok {
		return nil, false, nil
	}
	return d.vals[i], true, nil
}

// Set stores v under k.
func (d *Dict) Set(k, v Value) error {
	key, err := Key(k)
	if err != nil {
		return err
	}
	if i, ok := d.index[key]; ok {
		d.vals[i] = v
		return nil
	}
	d.index[key] = len(d.keys)
	d.keys = append(d.keys, k)
	d.vals = append(d.vals, v)
	return nil
}

func (d *Dict) setStr(k string, v Value) {
	d.Set(Str(k), v)
}

// Delete removes k and returns the value it held.
func (d *Dict) Delete(k Value) (Value, bool, error) {
	key, err := Key(k)
	if err != nil {
		return nil, false, err
	}
	i, ok := d.index[key]
	if !ok {
		return nil, false, nil
	}
	v := d.vals[i]
	delete(d.index, key)
	d.keys = append(d.keys[:i:i], d.keys[i+1:]...)
	d.vals = append(d.vals[:i:i], d.vals[i+1:]...)
	for j := i; j < len(d.keys); j++ {
		kj, _ := Key(d.keys[j])
		d.index[kj] = j
	}
	return v, true, nil
}

func (d *Dict) Clear() {
	d.keys, d.vals = nil, nil
	d.index = make(map[interface{}]int)
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []Value {
	return append([]Value(nil), d.keys...)
}

// Values returns the values in insertion order.
func (d *Dict) Values() []Value {
	return append([]Value(nil), d.vals...)
}

// Each calls fn for every entry in insertion order until fn returns false.
func (d *Dict) Each(fn func(k, v Value) bool) {
	for i := range d.keys {
		if !fn(d.keys[i], d.vals[i]) {
			return
		}
	}
}

// Update copies the items of src, which may be a dict or an iterable
// of pairs, into d.
func (d *Dict) Update(c Context, src Value) error {
	if other, ok := src.(*Dict); ok {
		for i := range other.keys {
			if err := d.Set(other.keys[i], other.vals[i]); err != nil {
				return err
			}
		}
		return nil
	}
	items, err := Items(c, src)
	if err != nil {
		return err
	}
	for _, item := range items {
		pair, err := Items(c, item)
		if err != nil {
			return err
		}
		if len(pair) != 2 {
			return &UnpackingError{Want: 2, Got: len(pair)}
		}
		if err := d.Set(pair[0], pair[1]); err != nil {
			return err
		}
	}
	return nil
}

type dictType struct {
	baseType
	constructor
}

var dictT = &dictType{baseType: baseType{name: "dict", doc: "A dictionary"}}

var DictType Type = dictT

// noDefault marks an optional argument that was not passed.
type noDefault struct{}

func (noDefault) Type() Type { return NoneType }

func init() {
	dictT.constructor = constructor{
		sig: MustSignature(Star("args"), StarStar("kwargs")),
		fn: func(c Context, args *BoundArguments) (Value, error) {
			d := NewDict()
			if err := dictUpdateArgs(c, d, args); err != nil {
				return nil, err
			}
			return d, nil
		},
	}
	dictT.methods = methods(
		&Method{Name: "items", Sig: MustSignature(), Fn: dictItems},
		&Method{Name: "keys", Sig: MustSignature(), Fn: dictItems},
		&Method{Name: "values", Sig: MustSignature(), Fn: dictItems},
		&Method{Name: "get", Sig: MustSignature(Req("key"), Opt("default", None)), Fn: dictGet},
		&Method{Name: "update", Sig: MustSignature(Star("others"), StarStar("kwargs")), Fn: dictUpdate},
		&Method{Name: "pop", Sig: MustSignature(Req("key"), Opt("default", noDefault{})), Fn: dictPop},
		&Method{Name: "clear", Sig: MustSignature(), Fn: dictClear},
	)
}

func (t *dictType) InstanceCheck(v Value) bool {
	_, ok := v.(*Dict)
	return ok
}

func (t *dictType) Bool(v Value) bool { return v.(*Dict).Len() > 0 }

func (t *dictType) Len(v Value) (int, error) {
	return v.(*Dict).Len(), nil
}

// Attr returns a method, or else the item stored under the name.
func (t *dictType) Attr(c Context, v Value, name string) (Value, error) {
	if m := t.methods[name]; m != nil {
		return &BoundMethod{Self: v, Method: m}, nil
	}
	d := v.(*Dict)
	x, ok, _ := d.Get(Str(name))
	if !ok {
		return &UndefinedKey{Object: v, Key: Str(name)}, nil
	}
	return x, nil
}

// SetAttr stores under the name, so d.x = 1 is d["x"] = 1.
func (t *dictType) SetAttr(c Context, v Value, name string, x Value) error {
	if t.methods[name] != nil {
		return &ReadOnlyError{Type: "dict", Name: name}
	}
	return v.(*Dict).Set(Str(name), x)
}

func (t *dictType) Repr(f *Formatter, v Value) {
	d := v.(*Dict)
	f.WriteString("{")
	for i := range d.keys {
		if i > 0 {
			f.WriteString(", ")
		}
		f.Repr(d.keys[i])
		f.WriteString(": ")
		f.Repr(d.vals[i])
	}
	f.WriteString("}")
}

func dictUpdateArgs(c Context, d *Dict, args *BoundArguments) error {
	for _, src := range args.Value(0).(*List).Items {
		if err := d.Update(c, src); err != nil {
			return err
		}
	}
	return d.Update(c, args.Value(1))
}

func dictItems(c Context, self Value, args *BoundArguments) (Value, error) {
	d := self.(*Dict)
	switch args.Callable() {
	case "keys":
		return NewList(d.Keys()...), nil
	case "values":
		return NewList(d.Values()...), nil
	}
	items := make([]Value, len(d.keys))
	for i := range d.keys {
		items[i] = NewList(d.keys[i], d.vals[i])
	}
	return NewList(items...), nil
}

func dictGet(c Context, self Value, args *BoundArguments) (Value, error) {
	v, ok, err := self.(*Dict).Get(args.Value(0))
	if err != nil {
		return nil, err
	}
	if !ok {
		return args.Value(1), nil
	}
	return v, nil
}

func dictUpdate(c Context, self Value, args *BoundArguments) (Value, error) {
	return None, dictUpdateArgs(c, self.(*Dict), args)
}

func dictPop(c Context, self Value, args *BoundArguments) (Value, error) {
	v, ok, err := self.(*Dict).Delete(args.Value(0))
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, missing := args.Value(1).(noDefault); missing {
			return nil, &KeyError{Key: args.Value(0)}
		}
		return args.Value(1), nil
	}
	return v, nil
}

func dictClear(c Context, self Value, args *BoundArguments) (Value, error) {
	self.(*Dict).Clear()
	return None, nil
}
