// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree builds program trees and values from YAML documents.
//
// A template is a mapping with the keys name, doc, source, params and
// body. Every node is a mapping whose key names the kind of node, as
// reported by its Kind method, plus an optional span: [start, stop].
// For example
//
//	name: greet
//	params:
//	  - {name: who, default: {const: world}}
//	body:
//	  - text: "Hello, "
//	  - print: {var: who}
//
// Constants are written as YAML values, with tags for the types YAML
// lacks (see ValueOf), or as UL4 literals with the lit key.
package tree // import "robpike.io/ul4/tree"

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"robpike.io/ul4/ast"
	"robpike.io/ul4/value"
)

// Decode reads a template from r and validates it.
func Decode(r io.Reader) (*ast.Template, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding template")
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("empty template document")
	}
	return Template(doc.Content[0])
}

// Template builds a template from a YAML mapping and validates it.
func Template(n *yaml.Node) (*ast.Template, error) {
	t, err := template(n)
	if err != nil {
		return nil, err
	}
	if err := ast.Validate(t); err != nil {
		return nil, errors.Wrapf(err, "template %s", t.Name)
	}
	return t, nil
}

// syntaxError reports a malformed tree.
type syntaxError struct {
	line int
	msg  string
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.line, e.msg)
}

func errorf(n *yaml.Node, format string, args ...interface{}) error {
	return &syntaxError{line: n.Line, msg: fmt.Sprintf(format, args...)}
}

// fields returns the keys of a mapping node and their values.
func fields(n *yaml.Node) (map[string]*yaml.Node, []string, error) {
	if n.Kind != yaml.MappingNode {
		return nil, nil, errorf(n, "expected a mapping")
	}
	m := make(map[string]*yaml.Node)
	var keys []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i].Value
		if _, dup := m[k]; dup {
			return nil, nil, errorf(n.Content[i], "duplicate key %q", k)
		}
		m[k] = n.Content[i+1]
		keys = append(keys, k)
	}
	return m, keys, nil
}

// node splits a node mapping into its kind, payload and span.
func node(n *yaml.Node) (string, *yaml.Node, ast.Span, error) {
	m, keys, err := fields(n)
	if err != nil {
		return "", nil, ast.Span{}, err
	}
	var span ast.Span
	if s := m["span"]; s != nil {
		var pair []int
		if err := s.Decode(&pair); err != nil || len(pair) != 2 {
			return "", nil, span, errorf(s, "span must be [start, stop]")
		}
		span = ast.Span{Start: pair[0], Stop: pair[1]}
	}
	var kind string
	for _, k := range keys {
		if k == "span" {
			continue
		}
		if kind != "" {
			return "", nil, span, errorf(n, "node has two kinds, %s and %s", kind, k)
		}
		kind = k
	}
	if kind == "" {
		return "", nil, span, errorf(n, "node without kind")
	}
	return kind, m[kind], span, nil
}

func str(n *yaml.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", errorf(n, "expected a string")
	}
	return n.Value, nil
}

func template(n *yaml.Node) (*ast.Template, error) {
	m, _, err := fields(n)
	if err != nil {
		return nil, err
	}
	t := &ast.Template{}
	if t.Name, err = str(m["name"]); err != nil {
		return nil, err
	}
	if t.Doc, err = str(m["doc"]); err != nil {
		return nil, err
	}
	if t.Source, err = str(m["source"]); err != nil {
		return nil, err
	}
	if s := m["span"]; s != nil {
		var pair []int
		if err := s.Decode(&pair); err != nil || len(pair) != 2 {
			return nil, errorf(s, "span must be [start, stop]")
		}
		t.Span = ast.Span{Start: pair[0], Stop: pair[1]}
	}
	if p := m["params"]; p != nil {
		if t.Params, err = params(p); err != nil {
			return nil, err
		}
	}
	if t.Body, err = block(m["body"]); err != nil {
		return nil, err
	}
	return t, nil
}

var kinds = map[string]value.ParamKind{
	"":                      value.PositionalOrKeyword,
	"positional-only":       value.PositionalOnly,
	"positional-or-keyword": value.PositionalOrKeyword,
	"var-positional":        value.VarPositional,
	"keyword-only":          value.KeywordOnly,
	"var-keyword":           value.VarKeyword,
}

func params(n *yaml.Node) ([]ast.Param, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errorf(n, "params must be a list")
	}
	ps := []ast.Param{}
	for _, c := range n.Content {
		m, _, err := fields(c)
		if err != nil {
			return nil, err
		}
		var p ast.Param
		if p.Name, err = str(m["name"]); err != nil {
			return nil, err
		}
		kind, err := str(m["kind"])
		if err != nil {
			return nil, err
		}
		var ok bool
		if p.Kind, ok = kinds[kind]; !ok {
			return nil, errorf(c, "unknown parameter kind %q", kind)
		}
		if d := m["default"]; d != nil {
			if p.Default, err = expr(d); err != nil {
				return nil, err
			}
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func block(n *yaml.Node) ([]ast.Stmt, error) {
	if n == nil || n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errorf(n, "a block must be a list of statements")
	}
	body := make([]ast.Stmt, 0, len(n.Content))
	for _, c := range n.Content {
		s, err := stmt(c)
		if err != nil {
			return nil, err
		}
		body = append(body, s)
	}
	return body, nil
}

func exprs(n *yaml.Node, want int) ([]ast.Expr, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errorf(n, "expected a list of expressions")
	}
	if want >= 0 && len(n.Content) != want {
		return nil, errorf(n, "expected %d expressions, found %d", want, len(n.Content))
	}
	es := make([]ast.Expr, len(n.Content))
	for i, c := range n.Content {
		e, err := expr(c)
		if err != nil {
			return nil, err
		}
		es[i] = e
	}
	return es, nil
}

// optExpr decodes n, which may be absent.
func optExpr(n *yaml.Node) (ast.Expr, error) {
	if n == nil {
		return nil, nil
	}
	return expr(n)
}

func required(m map[string]*yaml.Node, parent *yaml.Node, names ...string) error {
	for _, name := range names {
		if m[name] == nil {
			return errorf(parent, "missing %s", name)
		}
	}
	return nil
}

func isUnary(op string) bool {
	_, ok := value.UnaryOps[op]
	return ok
}

func isBinary(op string) bool {
	_, ok := value.BinaryOps[op]
	return ok
}

func expr(n *yaml.Node) (ast.Expr, error) {
	kind, p, span, err := node(n)
	if err != nil {
		return nil, err
	}
	switch {
	case kind == "const":
		v, err := ValueOf(p)
		if err != nil {
			return nil, err
		}
		return &ast.Const{Span: span, Value: v}, nil
	case kind == "lit":
		v, err := ParseLiteral(p.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", p.Line)
		}
		return &ast.Const{Span: span, Value: v}, nil
	case kind == "var":
		name, err := str(p)
		if err != nil {
			return nil, err
		}
		return &ast.Var{Span: span, Name: name}, nil
	case kind == "list" || kind == "set":
		items, err := seqItems(p)
		if err != nil {
			return nil, err
		}
		if kind == "set" {
			return &ast.Set{Span: span, Items: items}, nil
		}
		return &ast.List{Span: span, Items: items}, nil
	case kind == "dict":
		return dict(p, span)
	case kind == "listcomp" || kind == "setcomp" || kind == "dictcomp" || kind == "genexpr":
		return comp(kind, p, span)
	case kind == "attr":
		m, _, err := fields(p)
		if err != nil {
			return nil, err
		}
		if err := required(m, p, "obj", "name"); err != nil {
			return nil, err
		}
		obj, err := expr(m["obj"])
		if err != nil {
			return nil, err
		}
		return &ast.Attr{Span: span, Obj: obj, Name: m["name"].Value}, nil
	case kind == "item":
		m, _, err := fields(p)
		if err != nil {
			return nil, err
		}
		if err := required(m, p, "obj", "key"); err != nil {
			return nil, err
		}
		obj, err := expr(m["obj"])
		if err != nil {
			return nil, err
		}
		key, err := expr(m["key"])
		if err != nil {
			return nil, err
		}
		return &ast.Item{Span: span, Obj: obj, Key: key}, nil
	case kind == "slice":
		m, _, err := fields(p)
		if err != nil {
			return nil, err
		}
		start, err := optExpr(m["start"])
		if err != nil {
			return nil, err
		}
		stop, err := optExpr(m["stop"])
		if err != nil {
			return nil, err
		}
		return &ast.Slice{Span: span, Start: start, Stop: stop}, nil
	case kind == "unpack":
		items, err := exprs(p, -1)
		if err != nil {
			return nil, err
		}
		return &ast.Unpack{Span: span, Items: items}, nil
	case isUnary(kind):
		obj, err := expr(p)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Span: span, Op: kind, Obj: obj}, nil
	case isBinary(kind) || kind == "and" || kind == "or":
		ops, err := exprs(p, 2)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "and":
			return &ast.And{Span: span, Left: ops[0], Right: ops[1]}, nil
		case "or":
			return &ast.Or{Span: span, Left: ops[0], Right: ops[1]}, nil
		}
		return &ast.Binary{Span: span, Op: kind, Left: ops[0], Right: ops[1]}, nil
	case kind == "if":
		m, _, err := fields(p)
		if err != nil {
			return nil, err
		}
		if err := required(m, p, "then", "cond", "else"); err != nil {
			return nil, err
		}
		var e [3]ast.Expr
		for i, k := range []string{"then", "cond", "else"} {
			if e[i], err = expr(m[k]); err != nil {
				return nil, err
			}
		}
		return &ast.If{Span: span, Then: e[0], Cond: e[1], Else: e[2]}, nil
	case kind == "call":
		return call(p, span)
	}
	return nil, errorf(n, "unknown expression %q", kind)
}

func seqItems(n *yaml.Node) ([]ast.SeqItem, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errorf(n, "expected a list")
	}
	items := make([]ast.SeqItem, 0, len(n.Content))
	for _, c := range n.Content {
		if c.Kind == yaml.MappingNode && len(c.Content) == 2 && c.Content[0].Value == "star" {
			e, err := expr(c.Content[1])
			if err != nil {
				return nil, err
			}
			items = append(items, ast.SeqItem{Expr: e, Star: true})
			continue
		}
		e, err := expr(c)
		if err != nil {
			return nil, err
		}
		items = append(items, ast.SeqItem{Expr: e})
	}
	return items, nil
}

func dict(n *yaml.Node, span ast.Span) (ast.Expr, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errorf(n, "dict entries must be a list")
	}
	d := &ast.Dict{Span: span}
	for _, c := range n.Content {
		m, _, err := fields(c)
		if err != nil {
			return nil, err
		}
		if s := m["starstar"]; s != nil {
			e, err := expr(s)
			if err != nil {
				return nil, err
			}
			d.Items = append(d.Items, ast.DictItem{Value: e, StarStar: true})
			continue
		}
		if err := required(m, c, "key", "value"); err != nil {
			return nil, err
		}
		k, err := expr(m["key"])
		if err != nil {
			return nil, err
		}
		v, err := expr(m["value"])
		if err != nil {
			return nil, err
		}
		d.Items = append(d.Items, ast.DictItem{Key: k, Value: v})
	}
	return d, nil
}

func comp(kind string, n *yaml.Node, span ast.Span) (ast.Expr, error) {
	m, _, err := fields(n)
	if err != nil {
		return nil, err
	}
	want := []string{"item", "target", "iter"}
	if kind == "dictcomp" {
		want = []string{"key", "value", "target", "iter"}
	}
	if err := required(m, n, want...); err != nil {
		return nil, err
	}
	e := make(map[string]ast.Expr)
	for _, k := range append(want, "cond") {
		if e[k], err = optExpr(m[k]); err != nil {
			return nil, err
		}
	}
	switch kind {
	case "setcomp":
		return &ast.SetComp{Span: span, Item: e["item"], Target: e["target"], Iter: e["iter"], Cond: e["cond"]}, nil
	case "dictcomp":
		return &ast.DictComp{Span: span, Key: e["key"], Value: e["value"], Target: e["target"], Iter: e["iter"], Cond: e["cond"]}, nil
	case "genexpr":
		return &ast.GenExpr{Span: span, Item: e["item"], Target: e["target"], Iter: e["iter"], Cond: e["cond"]}, nil
	}
	return &ast.ListComp{Span: span, Item: e["item"], Target: e["target"], Iter: e["iter"], Cond: e["cond"]}, nil
}

func call(n *yaml.Node, span ast.Span) (*ast.Call, error) {
	m, _, err := fields(n)
	if err != nil {
		return nil, err
	}
	if err := required(m, n, "obj"); err != nil {
		return nil, err
	}
	obj, err := expr(m["obj"])
	if err != nil {
		return nil, err
	}
	c := &ast.Call{Span: span, Obj: obj}
	if a := m["args"]; a != nil {
		if a.Kind != yaml.SequenceNode {
			return nil, errorf(a, "args must be a list")
		}
		for _, an := range a.Content {
			arg, err := argument(an)
			if err != nil {
				return nil, err
			}
			c.Args = append(c.Args, arg)
		}
	}
	return c, nil
}

// argument decodes one call argument: an expression, {star: e},
// {starstar: e} or {name: n, value: e}.
func argument(n *yaml.Node) (ast.Arg, error) {
	m, _, err := fields(n)
	if err != nil {
		return ast.Arg{}, err
	}
	switch {
	case m["star"] != nil && len(m) == 1:
		e, err := expr(m["star"])
		return ast.Arg{Value: e, Star: true}, err
	case m["starstar"] != nil && len(m) == 1:
		e, err := expr(m["starstar"])
		return ast.Arg{Value: e, StarStar: true}, err
	case m["name"] != nil && m["value"] != nil && len(m) == 2:
		e, err := expr(m["value"])
		return ast.Arg{Name: m["name"].Value, Value: e}, err
	}
	e, err := expr(n)
	return ast.Arg{Value: e}, err
}

func stmt(n *yaml.Node) (ast.Stmt, error) {
	kind, p, span, err := node(n)
	if err != nil {
		return nil, err
	}
	switch {
	case kind == "text":
		s, err := str(p)
		if err != nil {
			return nil, err
		}
		return &ast.Text{Span: span, Text: s}, nil
	case kind == "print" || kind == "printx" || kind == "expr" || kind == "return":
		e, err := expr(p)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "print":
			return &ast.Print{Span: span, Obj: e}, nil
		case "printx":
			return &ast.PrintX{Span: span, Obj: e}, nil
		case "return":
			return &ast.Return{Span: span, Value: e}, nil
		}
		return &ast.ExprStmt{Span: span, Obj: e}, nil
	case kind == "setvar" || strings.HasSuffix(kind, "var") && isBinary(strings.TrimSuffix(kind, "var")):
		m, _, err := fields(p)
		if err != nil {
			return nil, err
		}
		if err := required(m, p, "target", "value"); err != nil {
			return nil, err
		}
		target, err := expr(m["target"])
		if err != nil {
			return nil, err
		}
		v, err := expr(m["value"])
		if err != nil {
			return nil, err
		}
		if kind == "setvar" {
			return &ast.SetVar{Span: span, Target: target, Value: v}, nil
		}
		return &ast.ChangeVar{Span: span, Op: strings.TrimSuffix(kind, "var"), Target: target, Value: v}, nil
	case kind == "cond":
		return cond(p, span)
	case kind == "for":
		m, _, err := fields(p)
		if err != nil {
			return nil, err
		}
		if err := required(m, p, "target", "iter"); err != nil {
			return nil, err
		}
		target, err := expr(m["target"])
		if err != nil {
			return nil, err
		}
		iter, err := expr(m["iter"])
		if err != nil {
			return nil, err
		}
		body, err := block(m["body"])
		if err != nil {
			return nil, err
		}
		return &ast.For{Span: span, Target: target, Iter: iter, Body: body}, nil
	case kind == "while":
		m, _, err := fields(p)
		if err != nil {
			return nil, err
		}
		if err := required(m, p, "cond"); err != nil {
			return nil, err
		}
		c, err := expr(m["cond"])
		if err != nil {
			return nil, err
		}
		body, err := block(m["body"])
		if err != nil {
			return nil, err
		}
		return &ast.While{Span: span, Cond: c, Body: body}, nil
	case kind == "break":
		return &ast.Break{Span: span}, nil
	case kind == "continue":
		return &ast.Continue{Span: span}, nil
	case kind == "render" || kind == "renderx":
		c, err := call(p, span)
		if err != nil {
			return nil, err
		}
		return &ast.Render{Span: span, Call: c, Escape: kind == "renderx"}, nil
	case kind == "def":
		t, err := template(p)
		if err != nil {
			return nil, err
		}
		return &ast.Def{Span: span, Template: t}, nil
	}
	return nil, errorf(n, "unknown statement %q", kind)
}

// cond decodes a list of blocks, each {if: e, body: [...]},
// {elif: e, body: [...]} or {else: null, body: [...]}.
func cond(n *yaml.Node, span ast.Span) (ast.Stmt, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errorf(n, "cond must be a list of blocks")
	}
	var blocks []*ast.CondBlock
	for _, c := range n.Content {
		m, keys, err := fields(c)
		if err != nil {
			return nil, err
		}
		b := &ast.CondBlock{}
		for _, k := range keys {
			switch k {
			case "if", "elif":
				b.Which = k
				if b.Cond, err = expr(m[k]); err != nil {
					return nil, err
				}
			case "else":
				b.Which = k
			case "span":
				var pair []int
				if err := m[k].Decode(&pair); err != nil || len(pair) != 2 {
					return nil, errorf(m[k], "span must be [start, stop]")
				}
				b.Span = ast.Span{Start: pair[0], Stop: pair[1]}
			case "body":
				if b.Body, err = block(m[k]); err != nil {
					return nil, err
				}
			default:
				return nil, errorf(c, "unknown key %q in cond block", k)
			}
		}
		if b.Which == "" {
			return nil, errorf(c, "cond block needs if, elif or else")
		}
		blocks = append(blocks, b)
	}
	return ast.NewCond(span, blocks...)
}
