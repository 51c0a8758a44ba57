// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lib holds the catalog of builtin functions available to
// every template. The catalog is built once and never modified.
package lib // import "robpike.io/ul4/lib"

import (
	"sort"

	"robpike.io/ul4/value"
)

// directory maps each builtin name to its function or type.
var directory map[string]value.Value

func init() {
	directory = make(map[string]value.Value)
	for _, group := range [][]*value.Function{
		objectFuncs,
		predicateFuncs,
		numberFuncs,
		iterFuncs,
		stringFuncs,
		timeFuncs,
		jsonFuncs,
		formatFuncs,
	} {
		for _, fn := range group {
			if directory[fn.Name()] != nil {
				panic("lib: duplicate builtin " + fn.Name())
			}
			directory[fn.Name()] = fn
		}
	}
	for _, t := range value.Types() {
		directory[t.Name()] = t
	}
}

// Builtins returns the catalog. The map is shared and must not be modified.
func Builtins() map[string]value.Value {
	return directory
}

// Lookup returns the builtin called name.
func Lookup(name string) (value.Value, bool) {
	v, ok := directory[name]
	return v, ok
}

// Names returns the names of all builtins in sorted order.
func Names() []string {
	names := make([]string, 0, len(directory))
	for name := range directory {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fn is shorthand for the catalog tables.
func fn(name, doc string, sig *value.Signature, impl func(c value.Context, args *value.BoundArguments) (value.Value, error)) *value.Function {
	return value.NewFunction(name, doc, sig, impl)
}

var (
	sig = value.MustSignature
	req = value.Req
	opt = value.Opt
)
