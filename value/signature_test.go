// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kw(pairs ...interface{}) []Keyword {
	var k []Keyword
	for i := 0; i < len(pairs); i += 2 {
		k = append(k, Keyword{Name: pairs[i].(string), Value: pairs[i+1].(Value)})
	}
	return k
}

func TestBindStar(t *testing.T) {
	sig := MustSignature(Req("a"), Opt("b", Int(2)), Star("rest"))

	b, err := sig.Bind("f", []Value{Int(1), Int(3), Int(4)}, nil)
	require.NoError(t, err)
	assert.Equal(t, Int(1), b.Value(0))
	assert.Equal(t, Int(3), b.Value(1))
	assert.Equal(t, "[4]", Repr(b.Value(2)))

	b, err = sig.Bind("f", []Value{Int(1)}, kw("b", Int(5)))
	require.NoError(t, err)
	assert.Equal(t, Int(1), b.Value(0))
	assert.Equal(t, Int(5), b.Value(1))
	assert.Equal(t, "[]", Repr(b.Value(2)))
}

func TestBindKeywordOrder(t *testing.T) {
	sig := MustSignature(Req("a"), Req("b"), KwOpt("c", None), StarStar("kw"))
	one, err := sig.Bind("f", nil, kw("a", Int(1), "b", Int(2), "x", Str("x"), "y", Str("y")))
	require.NoError(t, err)
	two, err := sig.Bind("f", nil, kw("y", Str("y"), "b", Int(2), "x", Str("x"), "a", Int(1)))
	require.NoError(t, err)
	for i := 0; i < one.Len(); i++ {
		assert.True(t, Equal(one.Value(i), two.Value(i)), one.Name(i))
	}
	assert.Equal(t, Str("x"), mustGet(t, one.Value(3).(*Dict), Str("x")))
}

func mustGet(t *testing.T, d *Dict, k Value) Value {
	t.Helper()
	v, ok, err := d.Get(k)
	require.NoError(t, err)
	require.True(t, ok, "missing key %s", Repr(k))
	return v
}

func TestBindErrors(t *testing.T) {
	sig := MustSignature(PosReq("x"), Req("y"), KwOpt("z", Int(0)))
	tests := []struct {
		args []Value
		kw   []Keyword
		err  interface{}
	}{
		{[]Value{Int(1)}, nil, &MissingArgumentError{}},
		{[]Value{Int(1), Int(2), Int(3)}, nil, &ArgumentMustBeKeywordError{}},
		{[]Value{Int(1)}, kw("x", Int(1), "y", Int(2)), &ArgumentMustBePositionalError{}},
		{[]Value{Int(1), Int(2)}, kw("w", Int(1)), &UnsupportedArgumentNameError{}},
		{[]Value{Int(1), Int(2)}, kw("y", Int(1)), &DuplicateArgumentError{}},
		{[]Value{Int(1)}, kw("y", Int(1), "y", Int(2)), &DuplicateArgumentError{}},
	}
	for i, test := range tests {
		_, err := sig.Bind("f", test.args, test.kw)
		require.Error(t, err, "case %d", i)
		assert.IsType(t, test.err, err, "case %d: %v", i, err)
	}

	_, err := MustSignature(Req("a")).Bind("g", []Value{Int(1), Int(2)}, nil)
	var tooMany *TooManyArgumentsError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 1, tooMany.Max)
	assert.Equal(t, 2, tooMany.Given)
	assert.EqualError(t, err, "g() expects at most 1 positional argument, 2 given")

	_, err = sig.Bind("f", nil, kw("y", Int(1)))
	var missing *MissingArgumentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "x", missing.Param)
	assert.Equal(t, 0, missing.Position)
}

// A positional value never lands in a keyword-only slot.
func TestBindKeywordOnly(t *testing.T) {
	sig := MustSignature(Opt("a", None), KwReq("k"))
	for n := 0; n <= 3; n++ {
		args := make([]Value, n)
		for i := range args {
			args[i] = Int(i)
		}
		b, err := sig.Bind("f", args, kw("k", Str("k")))
		if n > 1 {
			assert.IsType(t, &ArgumentMustBeKeywordError{}, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, Str("k"), b.Value(1))
	}
}

func TestNewSignatureErrors(t *testing.T) {
	for i, params := range [][]Param{
		{Req("a"), Req("a")},
		{Opt("a", None), Req("b")},
		{KwReq("a"), Req("b")},
		{Star("a"), Star("b")},
		{StarStar("a"), KwReq("b")},
		{{Name: "a", Kind: ParamKind(9)}},
	} {
		_, err := NewSignature(params...)
		assert.Error(t, err, "case %d", i)
	}
}

// A Param built without a kind is positional-or-keyword.
func TestParamZeroKind(t *testing.T) {
	sig := MustSignature(PosReq("x"), Param{Name: "a"}, KwOpt("k", None))
	assert.Equal(t, "(x, /, a, *, k=None)", sig.String())
	b, err := sig.Bind("f", []Value{Int(1)}, kw("a", Int(2)))
	require.NoError(t, err)
	assert.Equal(t, Int(2), b.Value(1))
}

func TestSignatureString(t *testing.T) {
	tests := []struct {
		sig  *Signature
		want string
	}{
		{MustSignature(), "()"},
		{MustSignature(Req("a"), Opt("b", Int(2)), Star("rest")), "(a, b=2, *rest)"},
		{MustSignature(PosReq("x"), Req("y")), "(x, /, y)"},
		{MustSignature(PosReq("x")), "(x, /)"},
		{MustSignature(Req("a"), KwOpt("key", None), StarStar("kw")), "(a, *, key=None, **kw)"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.sig.String())
	}
}

// randomSignature makes a valid signature with up to two parameters
// of each fixed kind and possibly *args and **kwargs.
func randomSignature(r *rand.Rand) *Signature {
	var params []Param
	n := 0
	name := func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}
	defaulted := false
	for _, kind := range []ParamKind{PositionalOnly, PositionalOrKeyword} {
		for i := r.Intn(3); i > 0; i-- {
			p := Param{Name: name(), Kind: kind}
			if defaulted || r.Intn(2) == 0 {
				defaulted = true
				p.HasDefault, p.Default = true, Int(-1)
			}
			params = append(params, p)
		}
	}
	if r.Intn(2) == 0 {
		params = append(params, Star(name()))
	}
	for i := r.Intn(3); i > 0; i-- {
		p := KwReq(name())
		if r.Intn(2) == 0 {
			p = KwOpt(p.Name, Int(-1))
		}
		params = append(params, p)
	}
	if r.Intn(2) == 0 {
		params = append(params, StarStar(name()))
	}
	return MustSignature(params...)
}

// positional reports whether v is one of the positional values of a
// random call.
func positional(v Value) bool {
	n, ok := v.(Int)
	return ok && n >= 100
}

func TestBindRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	bound := 0
	for iter := 0; iter < 2000; iter++ {
		sig := randomSignature(r)
		args := make([]Value, r.Intn(sig.Len()+2))
		for i := range args {
			args[i] = Int(100 + i)
		}
		var kws []Keyword
		for i := 0; i < sig.Len()+1; i++ {
			if r.Intn(3) == 0 {
				name := fmt.Sprintf("p%d", i+1)
				kws = append(kws, Keyword{Name: name, Value: Str(name)})
			}
		}
		argsCopy := make([]Value, len(args))
		copy(argsCopy, args)
		kwCopy := append([]Keyword(nil), kws...)

		one, err1 := sig.Bind("f", args, kws)
		two, err2 := sig.Bind("f", args, kws)
		require.Equal(t, argsCopy, args, "%s", sig)
		require.Equal(t, kwCopy, kws, "%s", sig)
		if err1 != nil {
			require.Error(t, err2, "%s", sig)
			assert.Equal(t, err1.Error(), err2.Error(), "%s", sig)
			continue
		}
		require.NoError(t, err2, "%s", sig)
		bound++
		require.Equal(t, one.Len(), two.Len())
		for i := 0; i < one.Len(); i++ {
			assert.True(t, Equal(one.Value(i), two.Value(i)), "%s: %s", sig, one.Name(i))
			switch sig.Param(i).Kind {
			case KeywordOnly:
				assert.False(t, positional(one.Value(i)), "%s: %s=%s", sig, one.Name(i), Repr(one.Value(i)))
			case VarKeyword:
				d := one.Value(i).(*Dict)
				for _, k := range d.keys {
					v, _, _ := d.Get(k)
					assert.False(t, positional(v), "%s: **%s", sig, one.Name(i))
				}
			}
		}
	}
	assert.Greater(t, bound, 100)
}
