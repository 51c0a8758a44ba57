// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

// Set is a mutable collection of distinct hashable values.
// Iteration follows insertion order.
type Set struct {
	items []Value
	index map[interface{}]int
}

func NewSet() *Set {
	return &Set{index: make(map[interface{}]int)}
}

func (s *Set) Type() Type { return SetType }

func (s *Set) Len() int {
	return len(s.items)
}

// Add adds v to the set.
func (s *Set) Add(v Value) error {
	key, err := Key(v)
	if err != nil {
		return err
	}
	if _, ok := s.index[key]; ok {
		return nil
	}
	s.index[key] = len(s.items)
	s.items = append(s.items, v)
	return nil
}

// Contains reports whether v is in the set.
func (s *Set) Contains(v Value) (bool, error) {
	key, err := Key(v)
	if err != nil {
		return false, err
	}
	_, ok := s.index[key]
	return ok, nil
}

func (s *Set) Clear() {
	s.items = nil
	s.index = make(map[interface{}]int)
}

// Items returns the members in insertion order.
func (s *Set) Items() []Value {
	return append([]Value(nil), s.items...)
}

type setType struct {
	baseType
	constructor
}

var setT = &setType{baseType: baseType{name: "set", doc: "A set of values"}}

var SetType Type = setT

func init() {
	setT.constructor = constructor{
		sig: MustSignature(PosOpt("iterable", None)),
		fn: func(c Context, args *BoundArguments) (Value, error) {
			s := NewSet()
			if IsNone(args.Value(0)) {
				return s, nil
			}
			items, err := Items(c, args.Value(0))
			if err != nil {
				return nil, err
			}
			for _, item := range items {
				if err := s.Add(item); err != nil {
					return nil, err
				}
			}
			return s, nil
		},
	}
	setT.methods = methods(
		&Method{Name: "add", Sig: MustSignature(Star("items")), Fn: setAdd},
		&Method{Name: "clear", Sig: MustSignature(), Fn: setClear},
	)
}

func (t *setType) InstanceCheck(v Value) bool {
	_, ok := v.(*Set)
	return ok
}

func (t *setType) Bool(v Value) bool { return v.(*Set).Len() > 0 }

func (t *setType) Len(v Value) (int, error) {
	return v.(*Set).Len(), nil
}

func (t *setType) Repr(f *Formatter, v Value) {
	s := v.(*Set)
	if len(s.items) == 0 {
		f.WriteString("{/}")
		return
	}
	f.sequence("{", "}", s.items)
}

func setAdd(c Context, self Value, args *BoundArguments) (Value, error) {
	s := self.(*Set)
	for _, item := range args.Value(0).(*List).Items {
		if err := s.Add(item); err != nil {
			return nil, err
		}
	}
	return None, nil
}

func setClear(c Context, self Value, args *BoundArguments) (Value, error) {
	self.(*Set).Clear()
	return None, nil
}
