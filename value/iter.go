// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

// Iterator produces the items of an iterable one at a time.
// It is also a value in its own right, returned by lazy builtins
// such as range and enumerate.
type Iterator struct {
	next func() (Value, bool, error)
}

// NewIterator returns an Iterator that calls next for each item.
// next reports false when there are no more items.
func NewIterator(next func() (Value, bool, error)) *Iterator {
	return &Iterator{next: next}
}

// Next returns the next item, or false at the end.
func (it *Iterator) Next() (Value, bool, error) {
	if it.next == nil {
		return nil, false, nil
	}
	v, ok, err := it.next()
	if !ok || err != nil {
		it.next = nil
	}
	return v, ok, err
}

func (it *Iterator) Type() Type { return IteratorType }

type iteratorType struct {
	baseType
}

var IteratorType Type = &iteratorType{baseType{name: "iterator", doc: "An iterator"}}

func (t *iteratorType) InstanceCheck(v Value) bool {
	_, ok := v.(*Iterator)
	return ok
}

func (t *iteratorType) Repr(f *Formatter, v Value) {
	f.WriteString("<iterator>")
}

// sliceIterator iterates over a fixed slice of values.
func sliceIterator(items []Value) *Iterator {
	i := 0
	return NewIterator(func() (Value, bool, error) {
		if i >= len(items) {
			return nil, false, nil
		}
		i++
		return items[i-1], true, nil
	})
}

// Iter returns an Iterator over the items of v: the characters of a
// string, the items of a list or set, or the keys of a dict.
// A list is iterated live, so items appended during the iteration are seen.
func Iter(v Value) (*Iterator, error) {
	switch v := v.(type) {
	case *Iterator:
		return v, nil
	case *List:
		i := 0
		return NewIterator(func() (Value, bool, error) {
			if i >= len(v.Items) {
				return nil, false, nil
			}
			i++
			return v.Items[i-1], true, nil
		}), nil
	case Str:
		runes := []rune(string(v))
		i := 0
		return NewIterator(func() (Value, bool, error) {
			if i >= len(runes) {
				return nil, false, nil
			}
			i++
			return Str(runes[i-1]), true, nil
		}), nil
	case *Dict:
		return sliceIterator(v.Keys()), nil
	case *Set:
		return sliceIterator(v.Items()), nil
	}
	return nil, &UnsupportedOperationError{Op: "iter", Type: TypeName(v)}
}

// IsIterable reports whether Iter accepts v.
func IsIterable(v Value) bool {
	switch v.(type) {
	case *Iterator, *List, Str, *Dict, *Set:
		return true
	}
	return false
}

// Items returns all items of the iterable v. Each item costs one step of c.
func Items(c Context, v Value) ([]Value, error) {
	if l, ok := v.(*List); ok {
		return append([]Value(nil), l.Items...), nil
	}
	it, err := Iter(v)
	if err != nil {
		return nil, err
	}
	var items []Value
	for {
		item, ok, err := it.Next()
		if err != nil || !ok {
			return items, err
		}
		if c != nil {
			if err := c.Step(); err != nil {
				return nil, err
			}
		}
		items = append(items, item)
	}
}
