// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast_test

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robpike.io/ul4/ast"
	"robpike.io/ul4/config"
	"robpike.io/ul4/exec"
	"robpike.io/ul4/lib"
	"robpike.io/ul4/value"
)

// Tree building shorthands.

func num(n int) ast.Expr        { return &ast.Const{Value: value.Int(n)} }
func str(s string) ast.Expr     { return &ast.Const{Value: value.Str(s)} }
func name(n string) *ast.Var    { return &ast.Var{Name: n} }
func print(e ast.Expr) ast.Stmt { return &ast.Print{Obj: e} }
func text(s string) ast.Stmt    { return &ast.Text{Text: s} }

func set(target, v ast.Expr) ast.Stmt {
	return &ast.SetVar{Target: target, Value: v}
}

func bin(op string, l, r ast.Expr) ast.Expr {
	return &ast.Binary{Op: op, Left: l, Right: r}
}

func list(items ...ast.Expr) *ast.List {
	l := &ast.List{}
	for _, item := range items {
		l.Items = append(l.Items, ast.SeqItem{Expr: item})
	}
	return l
}

func call(fn ast.Expr, args ...ast.Expr) *ast.Call {
	c := &ast.Call{Obj: fn}
	for _, a := range args {
		c.Args = append(c.Args, ast.Arg{Value: a})
	}
	return c
}

func cond(blocks ...*ast.CondBlock) ast.Stmt {
	c, err := ast.NewCond(ast.Span{}, blocks...)
	if err != nil {
		panic(err)
	}
	return c
}

func def(n string, params []ast.Param, body ...ast.Stmt) ast.Stmt {
	return &ast.Def{Template: &ast.Template{Name: n, Params: params, Body: body}}
}

// run executes body as the outermost template and returns its output.
func run(t *testing.T, conf *config.Config, body ...ast.Stmt) (string, error) {
	t.Helper()
	if conf == nil {
		conf = new(config.Config)
	}
	var out strings.Builder
	conf.SetOutput(&out)
	c := exec.NewContext(conf, lib.Builtins())
	tmpl := &ast.Template{Name: "test", Body: body}
	c.Frame().Name = tmpl.Name
	require.NoError(t, ast.Validate(tmpl))
	err := ast.Execute(c, tmpl, nil)
	return out.String(), err
}

func output(t *testing.T, body ...ast.Stmt) string {
	t.Helper()
	out, err := run(t, nil, body...)
	require.NoError(t, err)
	return out
}

func TestLoopControl(t *testing.T) {
	loop := func(jump ast.Stmt) ast.Stmt {
		return &ast.For{
			Target: name("x"),
			Iter:   list(num(1), num(2), num(3)),
			Body: []ast.Stmt{
				cond(&ast.CondBlock{Which: "if", Cond: bin("eq", name("x"), num(2)), Body: []ast.Stmt{jump}}),
				print(name("x")),
			},
		}
	}
	assert.Equal(t, "13", output(t, loop(&ast.Continue{})))
	assert.Equal(t, "1", output(t, loop(&ast.Break{})))
}

func TestWhile(t *testing.T) {
	out := output(t,
		set(name("i"), num(0)),
		&ast.While{
			Cond: bin("lt", name("i"), num(5)),
			Body: []ast.Stmt{
				&ast.ChangeVar{Op: "add", Target: name("i"), Value: num(1)},
				cond(
					&ast.CondBlock{Which: "if", Cond: bin("eq", name("i"), num(2)), Body: []ast.Stmt{&ast.Continue{}}},
					&ast.CondBlock{Which: "elif", Cond: bin("eq", name("i"), num(4)), Body: []ast.Stmt{&ast.Break{}}},
				),
				print(name("i")),
			},
		},
	)
	assert.Equal(t, "13", out)
}

func TestCondChain(t *testing.T) {
	chain := func(n int) ast.Stmt {
		return cond(
			&ast.CondBlock{Which: "if", Cond: bin("lt", num(n), num(0)), Body: []ast.Stmt{text("neg")}},
			&ast.CondBlock{Which: "elif", Cond: bin("eq", num(n), num(0)), Body: []ast.Stmt{text("zero")}},
			&ast.CondBlock{Which: "else", Body: []ast.Stmt{text("pos")}},
		)
	}
	assert.Equal(t, "neg zero pos", output(t, chain(-1), text(" "), chain(0), text(" "), chain(1)))
}

func TestReturn(t *testing.T) {
	out := output(t,
		def("double", []ast.Param{{Name: "x"}},
			text("never seen"),
			&ast.Return{Value: bin("mul", name("x"), num(2))},
			text("unreachable"),
		),
		print(call(name("double"), num(21))),
	)
	assert.Equal(t, "42", out)

	// Return inside a loop ends the template.
	out = output(t,
		def("first", nil,
			&ast.For{Target: name("x"), Iter: list(num(7), num(8)), Body: []ast.Stmt{&ast.Return{Value: name("x")}}},
		),
		print(call(name("first"))),
	)
	assert.Equal(t, "7", out)
}

func TestRender(t *testing.T) {
	out := output(t,
		def("bold", []ast.Param{{Name: "s", Default: str("x")}},
			text("<b>"), print(name("s")), text("</b>"),
		),
		&ast.Render{Call: call(name("bold"), str("hi"))},
		&ast.Render{Call: call(name("bold")), Escape: true},
	)
	assert.Equal(t, "<b>hi</b>&lt;b&gt;x&lt;/b&gt;", out)
}

func TestClosureScope(t *testing.T) {
	out := output(t,
		set(name("x"), num(1)),
		def("show", nil, print(name("x")), set(name("x"), num(99))),
		set(name("x"), num(2)),
		&ast.Render{Call: call(name("show"))},
		print(name("x")),
	)
	// The template sees the defining scope; its own assignments stay local.
	assert.Equal(t, "22", out)

	// A template without parameters takes any keyword arguments as locals.
	out = output(t,
		def("greet", nil, text("hello "), print(name("who"))),
		&ast.Render{Call: &ast.Call{Obj: name("greet"), Args: []ast.Arg{{Name: "who", Value: str("bob")}}}},
	)
	assert.Equal(t, "hello bob", out)
}

func TestUndefined(t *testing.T) {
	out := output(t, print(call(name("isdefined"), name("nope"))))
	assert.Equal(t, "False", out)

	// Printing an undefined value prints nothing.
	out = output(t, print(&ast.Attr{Obj: str("s"), Name: "nope"}))
	assert.Equal(t, "", out)

	_, err := run(t, nil, print(bin("add", name("nope"), num(1))))
	var mm *value.ArgumentTypeMismatchError
	require.ErrorAs(t, err, &mm)
	assert.Contains(t, mm.Types[0], "undefined")
}

func TestLocationChain(t *testing.T) {
	source := "<?print nope + 1?>"
	inner := &ast.Template{
		Name:   "inner",
		Source: source,
		Body: []ast.Stmt{&ast.Print{
			Span: ast.Span{Start: 0, Stop: len(source)},
			Obj: &ast.Binary{
				Span: ast.Span{Start: 8, Stop: 16},
				Op:   "add", Left: name("nope"), Right: num(1),
			},
		}},
	}
	_, err := run(t, nil,
		&ast.Def{Template: inner},
		def("middle", nil, &ast.Render{Call: call(name("inner"))}),
		&ast.Render{Call: call(name("middle"))},
	)
	require.Error(t, err)
	frames := ast.Frames(err)
	require.Len(t, frames, 3)
	assert.Equal(t, "inner", frames[0].Template)
	assert.Equal(t, "middle", frames[1].Template)
	assert.Equal(t, "test", frames[2].Template)
	assert.Equal(t, "nope + 1", frames[0].Snippet())
	line, col := frames[0].Line()
	assert.Equal(t, 1, line)
	assert.Equal(t, 9, col)

	var mm *value.ArgumentTypeMismatchError
	assert.ErrorAs(t, err, &mm)
	assert.IsType(t, &value.ArgumentTypeMismatchError{}, errors.Cause(err))
	assert.True(t, strings.HasPrefix(err.Error(), "in template test"))
}

func TestAssignment(t *testing.T) {
	out := output(t,
		set(&ast.Unpack{Items: []ast.Expr{name("a"), &ast.Unpack{Items: []ast.Expr{name("b"), name("c")}}}},
			list(num(1), list(num(2), num(3)))),
		print(name("a")), print(name("b")), print(name("c")),
		set(name("l"), list(num(1), num(2), num(3))),
		set(&ast.Item{Obj: name("l"), Key: &ast.Slice{Start: num(0), Stop: num(2)}}, list(num(9))),
		set(&ast.Item{Obj: name("l"), Key: num(-1)}, num(4)),
		print(name("l")),
		set(name("d"), &ast.Dict{}),
		set(&ast.Attr{Obj: name("d"), Name: "x"}, num(1)),
		&ast.ChangeVar{Op: "add", Target: &ast.Item{Obj: name("d"), Key: str("x")}, Value: num(10)},
		print(name("d")),
		set(name("m"), list(num(1))),
		set(name("alias"), name("m")),
		&ast.ChangeVar{Op: "add", Target: name("m"), Value: list(num(2))},
		print(name("alias")),
	)
	assert.Equal(t, "123[9, 4]{'x': 11}[1, 2]", out)

	_, err := run(t, nil, set(&ast.Unpack{Items: []ast.Expr{name("a"), name("b")}}, list(num(1))))
	assert.IsType(t, &value.UnpackingError{}, errors.Cause(err))
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		e    ast.Expr
		want string
	}{
		{&ast.ListComp{
			Item:   bin("mul", name("x"), name("x")),
			Target: name("x"),
			Iter:   call(name("range"), num(4)),
			Cond:   bin("mod", name("x"), num(2)),
		}, "[1, 9]"},
		{&ast.DictComp{
			Key:    name("x"),
			Value:  bin("add", name("x"), str("!")),
			Target: name("x"),
			Iter:   str("ab"),
		}, "{'a': 'a!', 'b': 'b!'}"},
		{&ast.Dict{Items: []ast.DictItem{
			{StarStar: true, Value: &ast.Dict{Items: []ast.DictItem{{Key: str("a"), Value: num(1)}}}},
			{Key: str("a"), Value: num(2)},
		}}, "{'a': 2}"},
		{&ast.Dict{Items: []ast.DictItem{
			{Key: str("a"), Value: num(0)},
			{StarStar: true, Value: list(list(str("a"), num(1)), list(str("b"), num(2)))},
		}}, "{'a': 1, 'b': 2}"},
		{&ast.List{Items: []ast.SeqItem{{Expr: num(0)}, {Expr: str("xy"), Star: true}}}, "[0, 'x', 'y']"},
		{&ast.Set{Items: []ast.SeqItem{{Expr: num(1)}, {Expr: num(1)}}}, "{1}"},
		{&ast.Call{Obj: name("max"), Args: []ast.Arg{{Value: list(num(3), num(1), num(2)), Star: true}}}, "3"},
		{&ast.If{Then: str("yes"), Cond: list(), Else: str("no")}, "'no'"},
		{&ast.And{Left: num(0), Right: name("undefined_is_never_evaluated")}, "0"},
		{&ast.Or{Left: str(""), Right: str("b")}, "'b'"},
		{&ast.Unary{Op: "not", Obj: name("nope")}, "True"},
		{&ast.Item{Obj: str("hello"), Key: &ast.Slice{Start: num(1), Stop: num(-1)}}, "'ell'"},
		{&ast.Call{Obj: &ast.Attr{Obj: str("a,b"), Name: "split"}, Args: []ast.Arg{{Value: str(",")}}}, "['a', 'b']"},
	}
	for _, test := range tests {
		out := output(t, print(call(name("repr"), test.e)))
		assert.Equal(t, test.want, out, test.e.Kind())
	}
}

func TestCallErrors(t *testing.T) {
	_, err := run(t, nil, print(call(name("nosuchfunction"))))
	assert.IsType(t, &value.UnknownFunctionError{}, errors.Cause(err))

	_, err = run(t, nil, print(call(&ast.Attr{Obj: str("s"), Name: "nosuchmethod"})))
	assert.IsType(t, &value.UnknownMethodError{}, errors.Cause(err))

	_, err = run(t, nil, print(call(num(1))))
	assert.IsType(t, &value.NotCallableError{}, errors.Cause(err))

	_, err = run(t, nil,
		def("f", []ast.Param{{Name: "x"}}),
		print(call(name("f"))),
	)
	assert.IsType(t, &value.MissingArgumentError{}, errors.Cause(err))
}

func TestLimits(t *testing.T) {
	conf := new(config.Config)
	conf.SetMaxSteps(1000)
	_, err := run(t, conf, &ast.While{Cond: &ast.Const{Value: value.True}})
	var exceeded *value.RuntimeExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, "step", exceeded.Resource)

	conf = new(config.Config)
	conf.SetMaxDepth(10)
	_, err = run(t, conf,
		def("forever", nil, &ast.Render{Call: call(name("forever"))}),
		&ast.Render{Call: call(name("forever"))},
	)
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, "call depth", exceeded.Resource)
	assert.Len(t, ast.Frames(err), 11)
}

func TestValidate(t *testing.T) {
	bad := []*ast.Template{
		{Body: []ast.Stmt{&ast.Break{}}},
		{Body: []ast.Stmt{&ast.For{Target: name("x"), Iter: list(), Body: []ast.Stmt{
			def("inner", nil, &ast.Continue{}),
		}}}},
		{Body: []ast.Stmt{&ast.Cond{Blocks: []*ast.CondBlock{{Which: "else"}}}}},
	}
	for i, tmpl := range bad {
		err := ast.Validate(tmpl)
		assert.IsType(t, &value.BlockError{}, err, "case %d", i)
	}

	for i, blocks := range [][]*ast.CondBlock{
		nil,
		{{Which: "elif", Cond: num(1)}},
		{{Which: "if", Cond: num(1)}, {Which: "else"}, {Which: "else"}},
		{{Which: "if", Cond: num(1)}, {Which: "else"}, {Which: "elif", Cond: num(1)}},
		{{Which: "if", Cond: num(1)}, {Which: "if", Cond: num(1)}},
		{{Which: "if"}},
	} {
		_, err := ast.NewCond(ast.Span{}, blocks...)
		assert.IsType(t, &value.BlockError{}, err, "case %d", i)
	}
}

func TestTemplateValue(t *testing.T) {
	out := output(t,
		&ast.Def{Template: &ast.Template{Name: "t", Doc: "doc", Params: []ast.Param{{Name: "a"}, {Name: "b", Default: num(2)}}}},
		print(&ast.Attr{Obj: name("t"), Name: "name"}), text(" "),
		print(&ast.Attr{Obj: name("t"), Name: "doc"}), text(" "),
		print(&ast.Attr{Obj: name("t"), Name: "signature"}), text(" "),
		print(call(name("repr"), name("t"))), text(" "),
		print(call(name("istemplate"), name("t"))),
	)
	assert.Equal(t, "t doc (a, b=2) <template t> True", out)
}

func TestParamDefaultKind(t *testing.T) {
	out := output(t,
		def("f", []ast.Param{{Name: "a"}}, print(name("a"))),
		&ast.Render{Call: call(name("f"), num(1))},
		&ast.Render{Call: &ast.Call{Obj: name("f"), Args: []ast.Arg{{Name: "a", Value: num(2)}}}},
	)
	assert.Equal(t, "12", out)

	_, err := run(t, nil,
		def("g", []ast.Param{{Name: "a", Kind: value.PositionalOnly}}),
		&ast.Print{Obj: &ast.Call{Obj: name("g"), Args: []ast.Arg{{Name: "a", Value: num(2)}}}},
	)
	assert.IsType(t, &value.ArgumentMustBePositionalError{}, errors.Cause(err))
}

func TestRenderSteps(t *testing.T) {
	conf := new(config.Config)
	conf.SetOutput(new(strings.Builder))
	c := exec.NewContext(conf, lib.Builtins())
	tmpl := &ast.Template{Name: "test", Body: []ast.Stmt{
		def("f", nil),
		&ast.Render{Call: call(name("f"))},
	}}
	require.NoError(t, ast.Execute(c, tmpl, nil))
	// One each for the def, the render and the variable f.
	assert.EqualValues(t, 3, c.Steps())
}

func TestDictPairErrors(t *testing.T) {
	_, err := run(t, nil, print(&ast.Dict{Items: []ast.DictItem{{StarStar: true, Value: list(list(num(1)))}}}))
	assert.IsType(t, &value.UnpackingError{}, errors.Cause(err))
	_, err = run(t, nil, print(&ast.Dict{Items: []ast.DictItem{{StarStar: true, Value: num(1)}}}))
	assert.IsType(t, &value.ArgumentTypeMismatchError{}, errors.Cause(err))
}

func TestGenExpr(t *testing.T) {
	quotients := func(iter ast.Expr) *ast.GenExpr {
		return &ast.GenExpr{
			Item:   bin("truediv", num(12), name("x")),
			Target: name("x"),
			Iter:   iter,
			Cond:   bin("ne", name("x"), num(2)),
		}
	}
	out := output(t,
		print(call(name("sum"), quotients(list(num(1), num(2), num(3))))),
		text(" "),
		// The item for 0 is never computed.
		print(call(name("first"), quotients(list(num(4), num(0))))),
		text(" "),
		print(call(name("repr"), name("x"))),
	)
	assert.Equal(t, "16.0 3.0 <undefined variable 'x'>", out)

	_, err := run(t, nil, print(call(name("sum"), quotients(list(num(0))))))
	assert.IsType(t, &value.ZeroDivisionError{}, errors.Cause(err))
}
