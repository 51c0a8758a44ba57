// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec // import "robpike.io/ul4/exec"

import (
	"fmt"
	"io"
	"time"

	"robpike.io/ul4/config"
	"robpike.io/ul4/value"
)

// Builtins is a table of names to builtin values. It is built once
// and shared, read only, by every Context.
type Builtins map[string]value.Value

// Context holds the state of one evaluation: the call frames, the step
// counter and the budget. It is the only implementation of
// ../value/Context, but since it references the value package, there
// would be a cycle if that package depended on this type definition.
type Context struct {
	// config is the configuration state used for evaluation.
	// Accessed through the value.Context Config method.
	config *config.Config

	// Stack holds one frame per template call, plus the 0th one
	// at the base, which holds the global variables.
	Stack []*value.Frame

	builtins Builtins
	steps    uint64
	deadline time.Time
}

// checkEvery is how many steps pass between checks of the clock.
const checkEvery = 1024

// NewContext returns a new execution context whose base frame
// writes to the configured output. The timeout, if any, starts now.
func NewContext(conf *config.Config, builtins Builtins) *Context {
	c := &Context{
		config:   conf,
		builtins: builtins,
	}
	c.Stack = []*value.Frame{{
		Name:  "<globals>",
		Scope: value.NewScope(nil),
		Out:   conf.Output(),
	}}
	if d := conf.Timeout(); d > 0 {
		c.deadline = time.Now().Add(d)
	}
	return c
}

func (c *Context) Config() *config.Config {
	return c.config
}

// Lookup returns the value of a variable, looking outward from the
// current frame's scope and then in the builtins.
func (c *Context) Lookup(name string) (value.Value, bool) {
	if v, ok := c.Frame().Scope.Lookup(name); ok {
		return v, true
	}
	return c.Builtin(name)
}

func (c *Context) Builtin(name string) (value.Value, bool) {
	v, ok := c.builtins[name]
	return v, ok
}

// Assign binds the variable in the current frame. Inside a template
// call, new variables are always locals.
func (c *Context) Assign(name string, v value.Value) {
	c.Frame().Scope.Set(name, v)
}

// Globals returns the variables of the base frame.
func (c *Context) Globals() *value.Scope {
	return c.Stack[0].Scope
}

func (c *Context) Frame() *value.Frame {
	return c.Stack[len(c.Stack)-1]
}

func (c *Context) Depth() int {
	return len(c.Stack) - 1
}

// Push pushes a new frame onto the context stack.
func (c *Context) Push(f *value.Frame) error {
	if max := c.config.MaxDepth(); max > 0 && uint(c.Depth()) >= max {
		if c.config.Debug("trace") {
			c.StackTrace()
		}
		return &value.RuntimeExceededError{Resource: "call depth", Limit: fmt.Sprint(max)}
	}
	c.Stack = append(c.Stack, f)
	if c.config.Debug("trace") {
		c.trace("call %s", f.Name)
	}
	return nil
}

// Pop pops the top frame from the stack. The base frame stays.
func (c *Context) Pop() {
	if len(c.Stack) == 1 {
		return
	}
	if c.config.Debug("trace") {
		c.trace("return from %s", c.Frame().Name)
	}
	c.Stack[len(c.Stack)-1] = nil
	c.Stack = c.Stack[:len(c.Stack)-1]
}

func (c *Context) Write(s string) error {
	_, err := io.WriteString(c.Frame().Out, s)
	return err
}

// Step counts one node visit. It fails once the step limit is passed,
// and checks the clock every checkEvery steps when there is a timeout.
func (c *Context) Step() error {
	c.steps++
	if max := c.config.MaxSteps(); max > 0 && c.steps > max {
		return &value.RuntimeExceededError{Resource: "step", Limit: fmt.Sprint(max)}
	}
	if !c.deadline.IsZero() && c.steps%checkEvery == 0 && time.Now().After(c.deadline) {
		return &value.RuntimeExceededError{Resource: "time", Limit: c.config.Timeout().String()}
	}
	return nil
}

func (c *Context) Steps() uint64 {
	return c.steps
}
