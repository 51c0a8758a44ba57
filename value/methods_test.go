// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// call calls the method name of v.
func call(t *testing.T, v Value, name string, args ...Value) Value {
	t.Helper()
	m, err := Attr(nil, v, name)
	require.NoError(t, err)
	require.False(t, IsUndefined(m), "%s has no method %s", TypeName(v), name)
	r, err := Call(nil, m, args, nil)
	require.NoError(t, err, name)
	return r
}

func TestStrMethods(t *testing.T) {
	tests := []struct {
		s    string
		name string
		args []Value
		want string
	}{
		{"straße", "upper", nil, "'STRASSE'"},
		{"ÄBC", "lower", nil, "'äbc'"},
		{"hELLO wORLD", "capitalize", nil, "'Hello world'"},
		{"hello world", "title", nil, "'Hello World'"},
		{" a b  c ", "split", nil, "['a', 'b', 'c']"},
		{"a,b,c", "split", []Value{Str(","), Int(1)}, "['a', 'b,c']"},
		{"a,b,c", "rsplit", []Value{Str(","), Int(1)}, "['a,b', 'c']"},
		{"xxhixx", "strip", []Value{Str("x")}, "'hi'"},
		{"  hi  ", "lstrip", nil, "'hi  '"},
		{"hello", "startswith", []Value{Str("he")}, "True"},
		{"hello", "endswith", []Value{Str("x")}, "False"},
		{"hällo", "find", []Value{Str("l")}, "2"},
		{"hällo", "rfind", []Value{Str("l")}, "3"},
		{"hello", "find", []Value{Str("z")}, "-1"},
		{"banana", "count", []Value{Str("a")}, "3"},
		{"aaa", "replace", []Value{Str("a"), Str("b"), Int(2)}, "'bba'"},
		{", ", "join", []Value{NewList(Str("a"), Str("b"))}, "'a, b'"},
		{"a\nb\r\nc", "splitlines", nil, "['a', 'b', 'c']"},
	}
	for _, test := range tests {
		got := call(t, Str(test.s), test.name, test.args...)
		assert.Equal(t, test.want, Repr(got), "%q.%s", test.s, test.name)
	}
}

func TestListMethods(t *testing.T) {
	l := NewList(Int(1), Int(2))
	call(t, l, "append", Int(3), Int(4))
	assert.Equal(t, "[1, 2, 3, 4]", Repr(l))
	call(t, l, "insert", Int(0), Int(0))
	assert.Equal(t, "[0, 1, 2, 3, 4]", Repr(l))
	assert.Equal(t, Int(4), call(t, l, "pop"))
	assert.Equal(t, Int(0), call(t, l, "pop", Int(0)))
	assert.Equal(t, "[1, 2, 3]", Repr(l))
	assert.Equal(t, Int(1), call(t, l, "find", Int(2)))
	assert.Equal(t, Int(-1), call(t, l, "find", Int(9)))
	assert.Equal(t, Int(1), call(t, l, "count", Float(3)))

	m, err := Attr(nil, NewList(), "pop")
	require.NoError(t, err)
	_, err = Call(nil, m, nil, nil)
	assert.IsType(t, &IndexError{}, err)
}

func TestDictMethods(t *testing.T) {
	d := dictOf(t, Str("a"), Int(1), Str("b"), Int(2))
	assert.Equal(t, "[['a', 1], ['b', 2]]", Repr(call(t, d, "items")))
	assert.Equal(t, "['a', 'b']", Repr(call(t, d, "keys")))
	assert.Equal(t, "[1, 2]", Repr(call(t, d, "values")))
	assert.Equal(t, Int(2), call(t, d, "get", Str("b")))
	assert.Equal(t, None, call(t, d, "get", Str("z")))
	assert.Equal(t, Int(0), call(t, d, "get", Str("z"), Int(0)))

	// Attribute access falls back to the items.
	v, err := Attr(nil, d, "a")
	require.NoError(t, err)
	assert.Equal(t, Int(1), v)
	v, err = Attr(nil, d, "zz")
	require.NoError(t, err)
	assert.IsType(t, &UndefinedKey{}, v)

	assert.Equal(t, Int(1), call(t, d, "pop", Str("a")))
	assert.Equal(t, Str("gone"), call(t, d, "pop", Str("a"), Str("gone")))
	m, err := Attr(nil, d, "pop")
	require.NoError(t, err)
	_, err = Call(nil, m, []Value{Str("a")}, nil)
	assert.IsType(t, &KeyError{}, err)

	call(t, d, "clear")
	assert.Equal(t, 0, d.Len())
}

func TestItemAndSlice(t *testing.T) {
	l := NewList(Int(10), Int(20), Int(30))
	v, err := Item(l, Int(-1))
	require.NoError(t, err)
	assert.Equal(t, Int(30), v)
	_, err = Item(l, Int(3))
	assert.IsType(t, &IndexError{}, err)

	v, err = Item(Str("hällo"), Int(1))
	require.NoError(t, err)
	assert.Equal(t, Str("ä"), v)

	v, err = Slice(l, Int(1), None)
	require.NoError(t, err)
	assert.Equal(t, "[20, 30]", Repr(v))
	v, err = Slice(Str("hello"), Int(-3), Int(100))
	require.NoError(t, err)
	assert.Equal(t, Str("llo"), v)

	require.NoError(t, SetSlice(nil, l, Int(0), Int(2), NewList(Int(1))))
	assert.Equal(t, "[1, 30]", Repr(l))
	require.NoError(t, SetItem(l, Int(0), Str("x")))
	assert.Equal(t, "['x', 30]", Repr(l))

	v, err = Item(NewDict(), Str("k"))
	require.NoError(t, err)
	assert.True(t, IsUndefined(v))
	assert.Error(t, SetItem(Str("abc"), Int(0), Str("x")))
}

func TestInPlace(t *testing.T) {
	l := NewList(Int(1))
	v, err := InPlace(nil, "add", l, NewList(Int(2)))
	require.NoError(t, err)
	assert.Same(t, l, v)
	assert.Equal(t, "[1, 2]", Repr(l))

	v, err = InPlace(nil, "mul", l, Int(2))
	require.NoError(t, err)
	assert.Same(t, l, v)
	assert.Equal(t, "[1, 2, 1, 2]", Repr(l))

	v, err = InPlace(nil, "floordiv", Int(7), Int(2))
	require.NoError(t, err)
	assert.Equal(t, Int(3), v)
}

func TestXMLEscape(t *testing.T) {
	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;&amp;&#39;&lt;/a&gt;", XMLEscape(`<a href="x">&'</a>`))
	assert.Equal(t, "a&#1;b", XMLEscape("a\x01b"))
}
