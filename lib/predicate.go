// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lib

import (
	"robpike.io/ul4/ast"
	"robpike.io/ul4/value"
)

// predicate returns a builtin reporting whether its argument satisfies test.
func predicate(name, doc string, test func(v value.Value) bool) *value.Function {
	return fn(name, doc, sig(value.PosReq("obj")),
		func(c value.Context, args *value.BoundArguments) (value.Value, error) {
			return value.Bool(test(args.Value(0))), nil
		})
}

// instanceOf returns a test for membership of t.
func instanceOf(t value.Type) func(v value.Value) bool {
	return t.InstanceCheck
}

var predicateFuncs = []*value.Function{
	predicate("isdefined", "Report whether an object is defined.",
		func(v value.Value) bool { return !value.IsUndefined(v) }),
	predicate("isundefined", "Report whether an object is undefined.", value.IsUndefined),
	predicate("isnone", "Report whether an object is None.", value.IsNone),
	predicate("isbool", "Report whether an object is a bool.", instanceOf(value.BoolType)),
	predicate("isint", "Report whether an object is an integer.", instanceOf(value.IntType)),
	predicate("isfloat", "Report whether an object is a float.", instanceOf(value.FloatType)),
	predicate("isstr", "Report whether an object is a string.", instanceOf(value.StrType)),
	predicate("isdate", "Report whether an object is a date.", instanceOf(value.DateType)),
	predicate("isdatetime", "Report whether an object is a datetime.", instanceOf(value.DateTimeType)),
	predicate("iscolor", "Report whether an object is a color.", instanceOf(value.ColorType)),
	predicate("islist", "Report whether an object is a list.", instanceOf(value.ListType)),
	predicate("isdict", "Report whether an object is a dict.", instanceOf(value.DictType)),
	predicate("isset", "Report whether an object is a set.", instanceOf(value.SetType)),
	predicate("istimedelta", "Report whether an object is a timedelta.", instanceOf(value.TimeDeltaType)),
	predicate("ismonthdelta", "Report whether an object is a monthdelta.", instanceOf(value.MonthDeltaType)),
	predicate("istemplate", "Report whether an object is a template.", instanceOf(ast.TemplateType)),
	predicate("isfunction", "Report whether an object can be called.", value.IsCallable),
}
