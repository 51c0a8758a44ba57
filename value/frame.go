// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Frame holds the execution state of one template or function call:
// its local variables and where its output goes. Source is the text
// of the template being executed, for error messages.
type Frame struct {
	Name   string
	Source string
	Scope  *Scope
	Out    io.Writer
}

func (f *Frame) String() string {
	return fmt.Sprintf("frame %s: %s", f.Name, f.Scope)
}

// Scope is one level of the variable scope chain. Lookups walk
// outward through parents; assignment always binds locally.
type Scope struct {
	parent *Scope
	vars   map[string]Value
}

// NewScope returns an empty scope whose enclosing scope is parent,
// which may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: make(map[string]Value)}
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

// Lookup returns the value bound to name in s or its ancestors.
func (s *Scope) Lookup(name string) (Value, bool) {
	for ; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name to v in s itself.
func (s *Scope) Set(name string, v Value) {
	s.vars[name] = v
}

// Local returns the value bound to name in s itself.
func (s *Scope) Local(name string) (Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Names returns the sorted names bound in s itself.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Vars returns a copy of the bindings of s itself.
func (s *Scope) Vars() map[string]Value {
	m := make(map[string]Value, len(s.vars))
	for k, v := range s.vars {
		m[k] = v
	}
	return m
}

func (s *Scope) String() string {
	var b strings.Builder
	for _, name := range s.Names() {
		fmt.Fprintf(&b, "{%s: %s} ", name, Repr(s.vars[name]))
	}
	return strings.TrimSpace(b.String())
}
