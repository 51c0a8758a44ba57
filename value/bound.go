// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

// BoundArguments holds the arguments of one call, one value per
// parameter of the signature in parameter order. The *args slot
// holds a *List and the **kwargs slot a *Dict.
type BoundArguments struct {
	name   string
	sig    *Signature
	values []Value
}

// Callable returns the name of the callable the arguments were bound for.
func (b *BoundArguments) Callable() string {
	return b.name
}

func (b *BoundArguments) Signature() *Signature {
	return b.sig
}

func (b *BoundArguments) Len() int {
	return len(b.values)
}

// Value returns the argument for the i'th parameter.
func (b *BoundArguments) Value(i int) Value {
	v := b.values[i]
	if v == nil {
		return None
	}
	return v
}

// Values returns a copy of all arguments.
func (b *BoundArguments) Values() []Value {
	return append([]Value(nil), b.values...)
}

// Name returns the name of the i'th parameter.
func (b *BoundArguments) Name(i int) string {
	return b.sig.params[i].Name
}

// Get returns the argument for the parameter called name.
func (b *BoundArguments) Get(name string) (Value, bool) {
	i, ok := b.sig.index[name]
	if !ok {
		return nil, false
	}
	return b.Value(i), true
}

func (b *BoundArguments) typeError(i int, want string) error {
	return &ArgumentTypeError{Callable: b.name, Param: b.Name(i), Want: want, Got: TypeName(b.Value(i))}
}

// Int returns the i'th argument, which must be a small integer.
func (b *BoundArguments) Int(i int) (int, error) {
	x, ok := AsInt(b.Value(i))
	if !ok {
		return 0, b.typeError(i, "int")
	}
	return x, nil
}

// Float returns the i'th argument, which must be a number.
func (b *BoundArguments) Float(i int) (float64, error) {
	x, ok := AsFloat(b.Value(i))
	if !ok {
		return 0, b.typeError(i, "number")
	}
	return x, nil
}

// Str returns the i'th argument, which must be a str.
func (b *BoundArguments) Str(i int) (string, error) {
	s, ok := b.Value(i).(Str)
	if !ok {
		return "", b.typeError(i, "str")
	}
	return string(s), nil
}

// List returns the i'th argument, which must be a list.
func (b *BoundArguments) List(i int) (*List, error) {
	l, ok := b.Value(i).(*List)
	if !ok {
		return nil, b.typeError(i, "list")
	}
	return l, nil
}

// Dict returns the i'th argument, which must be a dict.
func (b *BoundArguments) Dict(i int) (*Dict, error) {
	d, ok := b.Value(i).(*Dict)
	if !ok {
		return nil, b.typeError(i, "dict")
	}
	return d, nil
}
