// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dictOf(t *testing.T, kv ...Value) *Dict {
	t.Helper()
	d := NewDict()
	for i := 0; i < len(kv); i += 2 {
		require.NoError(t, d.Set(kv[i], kv[i+1]))
	}
	return d
}

func setOf(t *testing.T, items ...Value) *Set {
	t.Helper()
	s := NewSet()
	for _, item := range items {
		require.NoError(t, s.Add(item))
	}
	return s
}

func huge() Value {
	b, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	return NewBigInt(b)
}

func TestRepr(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{None, "None"},
		{True, "True"},
		{False, "False"},
		{Int(42), "42"},
		{Int(-7), "-7"},
		{huge(), "123456789012345678901234567890"},
		{Float(1.5), "1.5"},
		{Float(1), "1.0"},
		{Float(1e20), "1e+20"},
		{Str("abc"), "'abc'"},
		{Str("it's"), `"it's"`},
		{Str(`it's "x"`), `'it\'s "x"'`},
		{Str("a\tb\n\\"), `'a\tb\n\\'`},
		{Str("\x01"), `'\x01'`},
		{Str("ä"), "'ä'"},
		{Str("\u2028"), `'\u2028'`},
		{Str("\u00a0"), `'\xa0'`},
		{Str("\u3000"), `'\u3000'`},
		{NewDate(2024, 1, 31), "@(2024-01-31)"},
		{NewDateTime(2024, 1, 31, 12, 30, 0, 0), "@(2024-01-31T12:30:00)"},
		{NewDateTime(2024, 1, 31, 12, 30, 0, 123), "@(2024-01-31T12:30:00.000123)"},
		{Color{0xaa, 0xbb, 0xcc, 0xff}, "#abc"},
		{Color{0x12, 0x34, 0x56, 0xff}, "#123456"},
		{Color{0x12, 0x34, 0x56, 0x78}, "#12345678"},
		{NewList(Int(1), Int(2)), "[1, 2]"},
		{NewList(), "[]"},
		{dictOf(t, Str("a"), Int(1)), "{'a': 1}"},
		{setOf(t, Int(1), Int(2)), "{1, 2}"},
		{NewSet(), "{/}"},
		{NewTimeDelta(1, 2, 3), "timedelta(1, 2, 3)"},
		{NewTimeDelta(1, 0, 0), "timedelta(1)"},
		{TimeDelta{}, "timedelta()"},
		{MonthDelta{3}, "monthdelta(3)"},
		{IntType, "<type int>"},
		{&UndefinedVariable{Name: "x"}, "<undefined variable 'x'>"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, Repr(test.v))
	}
	assert.Equal(t, `'\xe4'`, ASCII(Str("ä")))
}

func TestStr(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{None, ""},
		{Str("abc"), "abc"},
		{NewDate(2024, 1, 31), "2024-01-31"},
		{NewDateTime(2024, 1, 31, 12, 30, 0, 123), "2024-01-31 12:30:00.000123"},
		{Color{0xaa, 0xbb, 0xcc, 0xff}, "#abc"},
		{NewTimeDelta(1, 2, 3), "1 day, 0:00:02.000003"},
		{NewTimeDelta(-1, 0, 0), "-1 day, 0:00:00"},
		{MonthDelta{3}, "3 months"},
		{MonthDelta{1}, "1 month"},
		{&UndefinedKey{Key: Str("k")}, ""},
		{NewList(Str("a")), "['a']"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, String(test.v))
	}
}

func TestCyclicRepr(t *testing.T) {
	l := NewList(Int(1))
	l.Append(l)
	assert.Equal(t, "[1, ...]", Repr(l))

	d := NewDict()
	require.NoError(t, d.Set(Str("self"), d))
	assert.Equal(t, "{'self': ...}", Repr(d))

	// Sharing without a cycle is not elided.
	inner := NewList(Int(2))
	assert.Equal(t, "[[2], [2]]", Repr(NewList(inner, inner)))
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		op   string
		a, b Value
		want string
	}{
		{"add", Int(1), Int(2), "3"},
		{"add", Int(1), Float(0.5), "1.5"},
		{"add", True, True, "2"},
		{"add", Str("a"), Str("b"), "'ab'"},
		{"add", NewList(Int(1)), NewList(Int(2)), "[1, 2]"},
		{"add", Int(1 << 30), Int(1 << 30), "2147483648"},
		{"add", NewDate(2024, 1, 31), MonthDelta{1}, "@(2024-02-29)"},
		{"add", NewDate(2024, 1, 31), NewTimeDelta(1, 0, 0), "@(2024-02-01)"},
		{"sub", NewDate(2024, 3, 1), NewDate(2024, 2, 1), "timedelta(29)"},
		{"mul", Str("ab"), Int(3), "'ababab'"},
		{"mul", Int(2), NewList(Int(0)), "[0, 0]"},
		{"mul", huge(), Int(10), "1234567890123456789012345678900"},
		{"truediv", Int(1), Int(2), "0.5"},
		{"truediv", Int(4), Int(2), "2.0"},
		{"floordiv", Int(-7), Int(2), "-4"},
		{"floordiv", Float(7), Int(2), "3.0"},
		{"mod", Int(-7), Int(2), "1"},
		{"mod", Int(7), Int(-2), "-1"},
		{"shiftleft", Int(1), Int(40), "1099511627776"},
		{"shiftright", Int(-8), Int(1), "-4"},
		{"bitand", Int(6), Int(3), "2"},
		{"bitor", Int(6), Int(3), "7"},
		{"bitxor", Int(6), Int(3), "5"},
		{"lt", Str("a"), Str("b"), "True"},
		{"ge", NewList(Int(1), Int(2)), NewList(Int(1)), "True"},
		{"in", Str("b"), Str("abc"), "True"},
		{"notin", Int(4), NewList(Int(1)), "True"},
		{"in", Float(1), setOf(t, Int(1)), "True"},
		{"is", None, None, "True"},
	}
	for _, test := range tests {
		v, err := BinaryOps[test.op](test.a, test.b)
		require.NoError(t, err, "%s %s %s", Repr(test.a), test.op, Repr(test.b))
		assert.Equal(t, test.want, Repr(v), "%s %s %s", Repr(test.a), test.op, Repr(test.b))
	}
}

func TestArithmeticErrors(t *testing.T) {
	_, err := Add(Int(1), Str("a"))
	var mm *ArgumentTypeMismatchError
	require.ErrorAs(t, err, &mm)
	assert.Equal(t, []string{"int", "str"}, mm.Types)

	_, err = Add(&UndefinedVariable{Name: "x"}, Int(1))
	require.ErrorAs(t, err, &mm)
	assert.Contains(t, err.Error(), "undefined")

	for _, op := range []string{"truediv", "floordiv", "mod"} {
		_, err = BinaryOps[op](Int(1), Int(0))
		assert.IsType(t, &ZeroDivisionError{}, err, op)
	}

	_, err = Compare("<", Int(1), Str("a"))
	assert.Error(t, err)
	_, err = Compare("<", None, None)
	assert.Error(t, err)
}

func TestUnary(t *testing.T) {
	v, err := UnaryOps["neg"](Int(5))
	require.NoError(t, err)
	assert.Equal(t, Int(-5), v)
	v, err = UnaryOps["bitnot"](Int(5))
	require.NoError(t, err)
	assert.Equal(t, Int(-6), v)
	v, err = UnaryOps["not"](NewList())
	require.NoError(t, err)
	assert.Equal(t, True, v)
	_, err = UnaryOps["neg"](Str("x"))
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Int(1), Float(1)))
	assert.True(t, Equal(True, Int(1)))
	assert.True(t, Equal(NewList(Int(1), Str("a")), NewList(Float(1), Str("a"))))
	assert.True(t, Equal(dictOf(t, Str("a"), Int(1), Str("b"), Int(2)), dictOf(t, Str("b"), Int(2), Str("a"), Int(1))))
	assert.True(t, Equal(setOf(t, Int(1), Int(2)), setOf(t, Int(2), Int(1))))
	assert.False(t, Equal(None, Int(0)))
	assert.False(t, Equal(Str("1"), Int(1)))
	assert.False(t, Equal(Float(nan()), Float(nan())))

	// Undefined equals undefined and nothing else.
	assert.True(t, Equal(&UndefinedVariable{Name: "a"}, &UndefinedKey{Key: Str("b")}))
	assert.False(t, Equal(&UndefinedVariable{Name: "a"}, None))
	assert.False(t, Equal(None, &UndefinedVariable{Name: "a"}))
}

func TestCyclicEqual(t *testing.T) {
	a := NewList(Int(1))
	a.Append(a)
	b := NewList(Int(1))
	b.Append(b)
	assert.True(t, Equal(a, b))

	c := NewList(Int(2))
	c.Append(c)
	assert.False(t, Equal(a, c))

	d := NewDict()
	require.NoError(t, d.Set(Str("self"), d))
	e := NewDict()
	require.NoError(t, e.Set(Str("self"), e))
	assert.True(t, Equal(d, e))
	require.NoError(t, e.Set(Str("x"), None))
	assert.False(t, Equal(d, e))

	// A list holding a dict holding the list.
	x, y := NewList(), NewList()
	xd, yd := NewDict(), NewDict()
	require.NoError(t, xd.Set(Str("l"), x))
	require.NoError(t, yd.Set(Str("l"), y))
	x.Append(xd)
	y.Append(yd)
	assert.True(t, Equal(x, y))
}

func nan() float64 {
	zero := 0.0
	return zero / zero
}

func TestKeys(t *testing.T) {
	d := NewDict()
	require.NoError(t, d.Set(True, Str("bool")))
	require.NoError(t, d.Set(Int(1), Str("int")))
	require.NoError(t, d.Set(Float(1), Str("float")))
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, "{True: 'float'}", Repr(d))

	require.NoError(t, d.Set(NewDate(2024, 1, 1), Int(1)))
	v, ok, err := d.Get(NewDate(2024, 1, 1))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Int(1), v)

	for _, v := range []Value{NewList(), NewDict(), NewSet()} {
		assert.False(t, IsHashable(v), TypeName(v))
		assert.Error(t, d.Set(v, None))
	}
	assert.True(t, IsHashable(huge()))
}

func TestTruthAndLength(t *testing.T) {
	containers := []Value{
		Str(""), Str("x"),
		NewList(), NewList(None),
		NewDict(), dictOf(t, None, None),
		NewSet(), setOf(t, None),
	}
	for _, v := range containers {
		n, err := Length(v)
		require.NoError(t, err)
		assert.Equal(t, n == 0, !Truth(v), Repr(v))
	}
	for _, v := range []Value{None, False, Int(0), Float(0), TimeDelta{}, MonthDelta{}, &UndefinedVariable{Name: "x"}} {
		assert.False(t, Truth(v), Repr(v))
	}
	for _, v := range []Value{True, Int(-1), huge(), Float(0.1), NewDate(2000, 1, 1), Color{}, IntType} {
		assert.True(t, Truth(v), Repr(v))
	}
	_, err := Length(Int(1))
	assert.IsType(t, &UnsupportedOperationError{}, err)
}

func TestInstanceCheck(t *testing.T) {
	values := []Value{
		None, True, Int(1), huge(), Float(1), Str(""),
		NewDate(2000, 1, 1), NewDateTime(2000, 1, 1, 0, 0, 0, 0),
		Color{}, NewList(), NewDict(), NewSet(),
		TimeDelta{}, MonthDelta{}, IntType,
		NewFunction("f", "", MustSignature(), nil),
		&UndefinedVariable{}, &UndefinedAttribute{}, &UndefinedKey{}, &UndefinedIndex{},
	}
	for _, v := range values {
		typ := TypeOf(v)
		assert.True(t, typ.InstanceCheck(v), Repr(v))
		assert.Same(t, typ, TypeOf(v))
	}
	assert.False(t, IntType.InstanceCheck(Float(1)))
	assert.False(t, DateType.InstanceCheck(NewDateTime(2000, 1, 1, 0, 0, 0, 0)))
}

func TestTypesCallable(t *testing.T) {
	tests := []struct {
		typ  Type
		args []Value
		want string
	}{
		{IntType, []Value{Str("ff"), Int(16)}, "255"},
		{IntType, []Value{Float(-2.7)}, "-2"},
		{FloatType, []Value{Str("2.5")}, "2.5"},
		{StrType, []Value{Int(3)}, "'3'"},
		{BoolType, []Value{NewList()}, "False"},
		{ListType, []Value{Str("ab")}, "['a', 'b']"},
		{TimeDeltaType, []Value{Int(0), Int(90)}, "timedelta(0, 90)"},
		{MonthDeltaType, []Value{Int(2)}, "monthdelta(2)"},
		{DateType, []Value{Int(2024), Int(2), Int(29)}, "@(2024-02-29)"},
	}
	for _, test := range tests {
		v, err := Call(nil, test.typ, test.args, nil)
		require.NoError(t, err, test.typ.Name())
		assert.Equal(t, test.want, Repr(v), test.typ.Name())
	}
	_, err := Call(nil, IntType, []Value{Str("x")}, nil)
	assert.IsType(t, &ValueError{}, err)
	_, err = Call(nil, Int(1), nil, nil)
	assert.IsType(t, &NotCallableError{}, err)
}

func TestClass(t *testing.T) {
	greet := &Method{
		Name: "greet",
		Sig:  MustSignature(),
		Fn: func(c Context, self Value, args *BoundArguments) (Value, error) {
			name, err := Attr(c, self, "name")
			if err != nil {
				return nil, err
			}
			return Str("hello " + String(name)), nil
		},
	}
	person, err := NewClass("person", "A person", []string{"name", "age"}, greet)
	require.NoError(t, err)

	p, err := Call(nil, person, []Value{Str("ann")}, nil)
	require.NoError(t, err)
	assert.True(t, person.InstanceCheck(p))
	assert.Equal(t, "<person name='ann' age=None>", Repr(p))

	m, err := Attr(nil, p, "greet")
	require.NoError(t, err)
	v, err := Call(nil, m, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Str("hello ann"), v)

	require.NoError(t, SetAttr(nil, p, "age", Int(30)))
	assert.IsType(t, &ReadOnlyError{}, SetAttr(nil, p, "greet", None))
	assert.IsType(t, &AttributeError{}, SetAttr(nil, p, "height", None))
	assert.Equal(t, []string{"age", "greet", "name"}, Dir(p))

	_, err = NewClass("bad", "", []string{"greet"}, greet)
	assert.Error(t, err)
}
