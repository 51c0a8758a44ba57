// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ast defines the nodes of a UL4 program tree and evaluates them.
//
// Trees are built by a parser (or by package tree from a YAML
// document) and never modified by evaluation; all mutable state
// lives in the value.Context.
package ast // import "robpike.io/ul4/ast"

import (
	"fmt"

	"robpike.io/ul4/value"
)

// Span is the range of source text a node was parsed from:
// byte offsets Start through Stop (exclusive) of the template source.
type Span struct {
	Start int
	Stop  int
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.Stop)
}

// Contains reports whether t lies inside s.
func (s Span) Contains(t Span) bool {
	return s.Start <= t.Start && t.Stop <= s.Stop
}

// Pos makes Span implement part of Node; nodes embed it.
func (s Span) Pos() Span {
	return s
}

// Node is implemented by every node. Kind returns a stable name
// for the variant, used when trees are encoded.
type Node interface {
	Pos() Span
	Kind() string
}

// Expr is a node that evaluates to a value.
type Expr interface {
	Node
	expr()
}

// Stmt is a node that is executed for its effect.
type Stmt interface {
	Node
	stmt()
}

// Expressions.

// Const is a literal.
type Const struct {
	Span
	Value value.Value
}

// Var is a variable reference.
type Var struct {
	Span
	Name string
}

// SeqItem is an entry of a list or set literal. If Star is set,
// Expr is an iterable whose items are all added.
type SeqItem struct {
	Expr Expr
	Star bool
}

// DictItem is an entry of a dict literal. If StarStar is set,
// Value is a dict whose items are all added and Key is nil.
type DictItem struct {
	Key      Expr
	Value    Expr
	StarStar bool
}

type List struct {
	Span
	Items []SeqItem
}

type Set struct {
	Span
	Items []SeqItem
}

type Dict struct {
	Span
	Items []DictItem
}

// ListComp is [Item for Target in Iter if Cond]. Cond may be nil.
type ListComp struct {
	Span
	Item   Expr
	Target Expr
	Iter   Expr
	Cond   Expr
}

// SetComp is {Item for Target in Iter if Cond}.
type SetComp struct {
	Span
	Item   Expr
	Target Expr
	Iter   Expr
	Cond   Expr
}

// DictComp is {Key: Value for Target in Iter if Cond}.
type DictComp struct {
	Span
	Key    Expr
	Value  Expr
	Target Expr
	Iter   Expr
	Cond   Expr
}

// GenExpr is (Item for Target in Iter if Cond). Its value is an
// iterator that evaluates Item lazily, one item per call of Next.
type GenExpr struct {
	Span
	Item   Expr
	Target Expr
	Iter   Expr
	Cond   Expr
}

// Attr is Obj.Name.
type Attr struct {
	Span
	Obj  Expr
	Name string
}

// Item is Obj[Key]. Key may be a *Slice.
type Item struct {
	Span
	Obj Expr
	Key Expr
}

// Slice is the index of Obj[Start:Stop]. Either bound may be nil.
// It is only valid as the Key of an Item.
type Slice struct {
	Span
	Start Expr
	Stop  Expr
}

// Unpack is a parenthesized list of assignment targets,
// as in "for (a, b) in pairs". As an expression it builds a list.
type Unpack struct {
	Span
	Items []Expr
}

// Unary applies the operator Op (not, neg, bitnot) to Obj.
type Unary struct {
	Span
	Op  string
	Obj Expr
}

// Binary applies the operator Op to Left and Right. Op is one of the
// names in value.BinaryOps.
type Binary struct {
	Span
	Op    string
	Left  Expr
	Right Expr
}

// And evaluates Right only if Left is true and yields the last
// operand evaluated.
type And struct {
	Span
	Left  Expr
	Right Expr
}

// Or evaluates Right only if Left is false.
type Or struct {
	Span
	Left  Expr
	Right Expr
}

// If is Then if Cond else Else.
type If struct {
	Span
	Then Expr
	Cond Expr
	Else Expr
}

// Arg is one argument at a call site: positional if Name is empty,
// an iterable of positional arguments if Star is set, or a dict of
// keyword arguments if StarStar is set.
type Arg struct {
	Name     string
	Value    Expr
	Star     bool
	StarStar bool
}

// Call is Obj(Args...).
type Call struct {
	Span
	Obj  Expr
	Args []Arg
}

// Statements.

// Text is literal template text.
type Text struct {
	Span
	Text string
}

// Print writes the string form of Obj.
type Print struct {
	Span
	Obj Expr
}

// PrintX writes the XML escaped string form of Obj.
type PrintX struct {
	Span
	Obj Expr
}

// ExprStmt evaluates Obj and discards the result.
type ExprStmt struct {
	Span
	Obj Expr
}

// SetVar is Target = Value. Target is a Var, Attr, Item or Unpack.
type SetVar struct {
	Span
	Target Expr
	Value  Expr
}

// ChangeVar is Target Op= Value, an augmented assignment.
// Op is the name of the binary operator.
type ChangeVar struct {
	Span
	Op     string
	Target Expr
	Value  Expr
}

// CondBlock is one branch of a Cond. Which is "if", "elif" or "else";
// Cond is nil for "else".
type CondBlock struct {
	Span
	Which string
	Cond  Expr
	Body  []Stmt
}

// Cond is an if/elif/else chain. Build one with NewCond.
type Cond struct {
	Span
	Blocks []*CondBlock
}

// For executes Body once per item of Iter, bound to Target.
type For struct {
	Span
	Target Expr
	Iter   Expr
	Body   []Stmt
}

// While executes Body while Cond is true.
type While struct {
	Span
	Cond Expr
	Body []Stmt
}

type Break struct {
	Span
}

type Continue struct {
	Span
}

// Return leaves the enclosing template, yielding Value.
type Return struct {
	Span
	Value Expr
}

// Render renders the template called by Call into the output.
// If Escape is set the output is XML escaped.
type Render struct {
	Span
	Call   *Call
	Escape bool
}

// Def defines a template in the current scope.
type Def struct {
	Span
	Template *Template
}

// Param is a parameter of a template. Default is nil for
// a required parameter.
type Param struct {
	Name    string
	Kind    value.ParamKind
	Default Expr
}

// Template is a named body of statements with an optional signature.
// A Template with nil Params accepts any keyword arguments, each
// bound as a local variable.
type Template struct {
	Span
	Name   string
	Doc    string
	Source string
	Params []Param
	Body   []Stmt
}

func (n *Const) Kind() string     { return "const" }
func (n *Var) Kind() string       { return "var" }
func (n *List) Kind() string      { return "list" }
func (n *Set) Kind() string       { return "set" }
func (n *Dict) Kind() string      { return "dict" }
func (n *ListComp) Kind() string  { return "listcomp" }
func (n *SetComp) Kind() string   { return "setcomp" }
func (n *GenExpr) Kind() string   { return "genexpr" }
func (n *DictComp) Kind() string  { return "dictcomp" }
func (n *Attr) Kind() string      { return "attr" }
func (n *Item) Kind() string      { return "item" }
func (n *Slice) Kind() string     { return "slice" }
func (n *Unpack) Kind() string    { return "unpack" }
func (n *Unary) Kind() string     { return n.Op }
func (n *Binary) Kind() string    { return n.Op }
func (n *And) Kind() string       { return "and" }
func (n *Or) Kind() string        { return "or" }
func (n *If) Kind() string        { return "if" }
func (n *Call) Kind() string      { return "call" }
func (n *Text) Kind() string      { return "text" }
func (n *Print) Kind() string     { return "print" }
func (n *PrintX) Kind() string    { return "printx" }
func (n *ExprStmt) Kind() string  { return "expr" }
func (n *SetVar) Kind() string    { return "setvar" }
func (n *ChangeVar) Kind() string { return n.Op + "var" }
func (n *CondBlock) Kind() string { return n.Which }
func (n *Cond) Kind() string      { return "cond" }
func (n *For) Kind() string       { return "for" }
func (n *While) Kind() string     { return "while" }
func (n *Break) Kind() string     { return "break" }
func (n *Continue) Kind() string  { return "continue" }
func (n *Return) Kind() string    { return "return" }
func (n *Def) Kind() string       { return "def" }
func (n *Template) Kind() string  { return "template" }

func (n *Render) Kind() string {
	if n.Escape {
		return "renderx"
	}
	return "render"
}

func (*Const) expr()    {}
func (*Var) expr()      {}
func (*List) expr()     {}
func (*Set) expr()      {}
func (*Dict) expr()     {}
func (*ListComp) expr() {}
func (*SetComp) expr()  {}
func (*GenExpr) expr()  {}
func (*DictComp) expr() {}
func (*Attr) expr()     {}
func (*Item) expr()     {}
func (*Slice) expr()    {}
func (*Unpack) expr()   {}
func (*Unary) expr()    {}
func (*Binary) expr()   {}
func (*And) expr()      {}
func (*Or) expr()       {}
func (*If) expr()       {}
func (*Call) expr()     {}

func (*Text) stmt()      {}
func (*Print) stmt()     {}
func (*PrintX) stmt()    {}
func (*ExprStmt) stmt()  {}
func (*SetVar) stmt()    {}
func (*ChangeVar) stmt() {}
func (*Cond) stmt()      {}
func (*For) stmt()       {}
func (*While) stmt()     {}
func (*Break) stmt()     {}
func (*Continue) stmt()  {}
func (*Return) stmt()    {}
func (*Render) stmt()    {}
func (*Def) stmt()       {}
