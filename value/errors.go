// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"strings"
)

// Error is a plain evaluation error with a message.
type Error string

func (err Error) Error() string {
	return string(err)
}

func Errorf(format string, args ...interface{}) Error {
	return Error(fmt.Sprintf(format, args...))
}

// Argument binding errors. Each names the callable being bound.

type MissingArgumentError struct {
	Callable string
	Param    string
	Position int
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s() missing required argument %q (position %d)", e.Callable, e.Param, e.Position)
}

type TooManyArgumentsError struct {
	Callable string
	Max      int
	Given    int
}

func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("%s() expects at most %d positional argument%s, %d given", e.Callable, e.Max, plural(e.Max), e.Given)
}

type ArgumentMustBeKeywordError struct {
	Callable string
	Param    string
}

func (e *ArgumentMustBeKeywordError) Error() string {
	return fmt.Sprintf("%s() argument %q must be passed by keyword", e.Callable, e.Param)
}

type ArgumentMustBePositionalError struct {
	Callable string
	Param    string
}

func (e *ArgumentMustBePositionalError) Error() string {
	return fmt.Sprintf("%s() argument %q must be passed by position", e.Callable, e.Param)
}

type UnsupportedArgumentNameError struct {
	Callable string
	Name     string
}

func (e *UnsupportedArgumentNameError) Error() string {
	return fmt.Sprintf("%s() doesn't support an argument named %q", e.Callable, e.Name)
}

type DuplicateArgumentError struct {
	Callable string
	Name     string
}

func (e *DuplicateArgumentError) Error() string {
	if e.Callable == "" {
		return fmt.Sprintf("duplicate argument %q", e.Name)
	}
	return fmt.Sprintf("%s() got multiple values for argument %q", e.Callable, e.Name)
}

// DuplicateParameterError reports a malformed Signature.
type DuplicateParameterError struct {
	Callable string
	Name     string
}

func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("%s(): duplicate parameter %q", e.Callable, e.Name)
}

// SignatureError reports any other malformed Signature.
type SignatureError struct {
	Callable string
	Msg      string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("%s(): %s", e.Callable, e.Msg)
}

// ArgumentTypeMismatchError reports an operation applied to operands
// of unsupported types. Types lists the names of the operand types.
type ArgumentTypeMismatchError struct {
	Op    string
	Types []string
}

func (e *ArgumentTypeMismatchError) Error() string {
	quoted := make([]string, len(e.Types))
	for i, t := range e.Types {
		quoted[i] = "'" + t + "'"
	}
	switch len(e.Types) {
	case 1:
		return fmt.Sprintf("unsupported operand type for %s: %s", e.Op, quoted[0])
	default:
		return fmt.Sprintf("unsupported operand types for %s: %s", e.Op, strings.Join(quoted, " and "))
	}
}

// mismatch returns an ArgumentTypeMismatchError naming the types of the operands.
func mismatch(op string, operands ...Value) error {
	types := make([]string, len(operands))
	for i, v := range operands {
		types[i] = TypeName(v)
	}
	return &ArgumentTypeMismatchError{Op: op, Types: types}
}

// ArgumentTypeError reports an argument of the wrong type passed to a callable.
type ArgumentTypeError struct {
	Callable string
	Param    string
	Want     string
	Got      string
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("%s() argument %q must be %s, not %s", e.Callable, e.Param, e.Want, e.Got)
}

type UnsupportedOperationError struct {
	Op   string
	Type string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s() not supported for %s", e.Op, e.Type)
}

type AttributeError struct {
	Type string
	Name string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("%s object has no attribute %q", e.Type, e.Name)
}

type ReadOnlyError struct {
	Type string
	Name string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("attribute %q of %s object is read only", e.Name, e.Type)
}

// IndexError reports an index out of range. Object and Key are the
// container and the offending index.
type IndexError struct {
	Object Value
	Key    Value
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %s out of range for %s", Repr(e.Key), TypeName(e.Object))
}

type KeyError struct {
	Key Value
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("key %s not found", Repr(e.Key))
}

type UnpackingError struct {
	Want int
	Got  int
}

func (e *UnpackingError) Error() string {
	if e.Got > e.Want {
		return fmt.Sprintf("too many values to unpack (expected %d)", e.Want)
	}
	return fmt.Sprintf("not enough values to unpack (expected %d, got %d)", e.Want, e.Got)
}

type NotCallableError struct {
	Type string
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("%s object is not callable", e.Type)
}

type NotRenderableError struct {
	Type string
}

func (e *NotRenderableError) Error() string {
	return fmt.Sprintf("%s object is not renderable", e.Type)
}

type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("function %q unknown", e.Name)
}

type UnknownMethodError struct {
	Type string
	Name string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("method %q unknown for %s", e.Name, e.Type)
}

// RuntimeExceededError reports that an evaluation ran out of budget.
// It is fatal: evaluation stops.
type RuntimeExceededError struct {
	Resource string
	Limit    string
}

func (e *RuntimeExceededError) Error() string {
	return fmt.Sprintf("runtime exceeded: %s limit %s reached", e.Resource, e.Limit)
}

// BlockError reports malformed nesting of control structures
// detected when a tree is built.
type BlockError struct {
	Msg string
}

func (e *BlockError) Error() string {
	return e.Msg
}

type ZeroDivisionError struct{}

func (e *ZeroDivisionError) Error() string {
	return "division by zero"
}

// ValueError reports an argument of the right type but an unusable value.
type ValueError struct {
	Msg string
}

func (e *ValueError) Error() string {
	return e.Msg
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
