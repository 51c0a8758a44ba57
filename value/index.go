// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

// index returns the position in a sequence of length n named by key.
// Negative keys count from the end.
func index(obj, key Value, n int) (int, error) {
	if !isInteger(key) {
		return 0, mismatch("[]", obj, key)
	}
	i, ok := small(key)
	if !ok {
		return 0, &IndexError{Object: obj, Key: key}
	}
	if i < 0 {
		i += int64(n)
	}
	if i < 0 || i >= int64(n) {
		return 0, &IndexError{Object: obj, Key: key}
	}
	return int(i), nil
}

// Item returns obj[key]. A missing dict key yields an UndefinedKey;
// an index out of range fails with an IndexError.
func Item(obj, key Value) (Value, error) {
	switch o := obj.(type) {
	case Str:
		runes := []rune(string(o))
		i, err := index(obj, key, len(runes))
		if err != nil {
			return nil, err
		}
		return Str(runes[i]), nil
	case *List:
		i, err := index(obj, key, len(o.Items))
		if err != nil {
			return nil, err
		}
		return o.Items[i], nil
	case *Dict:
		v, ok, err := o.Get(key)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &UndefinedKey{Object: obj, Key: key}, nil
		}
		return v, nil
	case Color:
		i, err := index(obj, key, 4)
		if err != nil {
			return nil, err
		}
		return Int([]uint8{o.R, o.G, o.B, o.A}[i]), nil
	}
	return nil, mismatch("[]", obj, key)
}

// bound converts an optional slice bound to an int.
func bound(obj, v Value, n, def int) (int, error) {
	if IsNone(v) {
		return def, nil
	}
	if !isInteger(v) {
		return 0, mismatch("[:]", obj, v)
	}
	i, ok := small(v)
	if !ok {
		if bigOf(v).Sign() < 0 {
			return 0, nil
		}
		return n, nil
	}
	return clampIndex(int(i), n), nil
}

func bounds(obj, start, stop Value, n int) (int, int, error) {
	lo, err := bound(obj, start, n, 0)
	if err != nil {
		return 0, 0, err
	}
	hi, err := bound(obj, stop, n, n)
	if err != nil {
		return 0, 0, err
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi, nil
}

// Slice returns obj[start:stop]. Either bound may be None.
func Slice(obj, start, stop Value) (Value, error) {
	switch o := obj.(type) {
	case Str:
		runes := []rune(string(o))
		lo, hi, err := bounds(obj, start, stop, len(runes))
		if err != nil {
			return nil, err
		}
		return Str(runes[lo:hi]), nil
	case *List:
		lo, hi, err := bounds(obj, start, stop, len(o.Items))
		if err != nil {
			return nil, err
		}
		return NewList(append([]Value(nil), o.Items[lo:hi]...)...), nil
	}
	return nil, mismatch("[:]", obj, start, stop)
}

// SetItem performs obj[key] = v.
func SetItem(obj, key, v Value) error {
	switch o := obj.(type) {
	case *List:
		i, err := index(obj, key, len(o.Items))
		if err != nil {
			return err
		}
		o.Items[i] = v
		return nil
	case *Dict:
		return o.Set(key, v)
	}
	return &UnsupportedOperationError{Op: "setitem", Type: TypeName(obj)}
}

// SetSlice performs obj[start:stop] = v, replacing part of a list with
// the items of an iterable.
func SetSlice(c Context, obj, start, stop, v Value) error {
	l, ok := obj.(*List)
	if !ok {
		return &UnsupportedOperationError{Op: "setslice", Type: TypeName(obj)}
	}
	lo, hi, err := bounds(obj, start, stop, len(l.Items))
	if err != nil {
		return err
	}
	items, err := Items(c, v)
	if err != nil {
		return err
	}
	n := make([]Value, 0, len(l.Items)-(hi-lo)+len(items))
	n = append(n, l.Items[:lo]...)
	n = append(n, items...)
	l.Items = append(n, l.Items[hi:]...)
	return nil
}
