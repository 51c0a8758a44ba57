// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"robpike.io/ul4/config"
	"robpike.io/ul4/value"
)

func newContext(conf *config.Config) *Context {
	return NewContext(conf, Builtins{"len": value.Str("builtin len")})
}

func frame(name string, parent *value.Scope) *value.Frame {
	return &value.Frame{Name: name, Scope: value.NewScope(parent), Out: new(strings.Builder)}
}

func TestScopes(t *testing.T) {
	c := newContext(new(config.Config))
	assert.Equal(t, 0, c.Depth())
	c.Assign("x", value.Int(1))

	v, ok := c.Lookup("len")
	require.True(t, ok)
	assert.Equal(t, value.Str("builtin len"), v)
	_, ok = c.Lookup("nope")
	assert.False(t, ok)

	require.NoError(t, c.Push(frame("f", c.Globals())))
	assert.Equal(t, 1, c.Depth())
	v, ok = c.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, value.Int(1), v)

	// Assignment inside a call is local and may shadow builtins.
	c.Assign("x", value.Int(2))
	c.Assign("len", value.Int(3))
	v, _ = c.Lookup("len")
	assert.Equal(t, value.Int(3), v)
	c.Pop()

	v, _ = c.Lookup("x")
	assert.Equal(t, value.Int(1), v)
	assert.Equal(t, map[string]value.Value{"x": value.Int(1)}, c.Globals().Vars())

	// The base frame is never popped.
	c.Pop()
	assert.Equal(t, 0, c.Depth())
	assert.Equal(t, "<globals>", c.Frame().Name)
}

func TestWrite(t *testing.T) {
	var out strings.Builder
	conf := new(config.Config)
	conf.SetOutput(&out)
	c := newContext(conf)
	require.NoError(t, c.Write("a"))
	f := frame("f", nil)
	require.NoError(t, c.Push(f))
	require.NoError(t, c.Write("b"))
	c.Pop()
	require.NoError(t, c.Write("c"))
	assert.Equal(t, "ac", out.String())
	assert.Equal(t, "b", f.Out.(*strings.Builder).String())
}

func TestMaxSteps(t *testing.T) {
	conf := new(config.Config)
	conf.SetMaxSteps(10)
	c := newContext(conf)
	for i := 0; i < 10; i++ {
		require.NoError(t, c.Step())
	}
	err := c.Step()
	var exceeded *value.RuntimeExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, "step", exceeded.Resource)
	assert.Equal(t, "10", exceeded.Limit)
	assert.Equal(t, uint64(11), c.Steps())
}

func TestMaxDepth(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	conf := new(config.Config)
	conf.SetMaxDepth(3)
	conf.SetDebug("trace", true)
	conf.SetLogger(zap.New(core).Sugar())
	c := newContext(conf)
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Push(frame("f", nil)))
	}
	err := c.Push(frame("f", nil))
	var exceeded *value.RuntimeExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, "call depth", exceeded.Resource)
	assert.Equal(t, 3, c.Depth())

	assert.Equal(t, 3, logs.FilterMessageSnippet("[trace] ").FilterMessageSnippet("call f").Len())
	assert.Equal(t, 4, logs.FilterMessageSnippet("•> ").Len())
}

func TestTimeout(t *testing.T) {
	conf := new(config.Config)
	conf.SetTimeout(time.Nanosecond)
	c := newContext(conf)
	time.Sleep(time.Millisecond)
	var err error
	for i := 0; i < 2*checkEvery && err == nil; i++ {
		err = c.Step()
	}
	var exceeded *value.RuntimeExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, "time", exceeded.Resource)
	assert.Equal(t, uint64(checkEvery), c.Steps())
}

func TestTraceIndent(t *testing.T) {
	c := newContext(new(config.Config))
	assert.Equal(t, "", c.TraceIndent())
	require.NoError(t, c.Push(frame("f", nil)))
	require.NoError(t, c.Push(frame("g", nil)))
	assert.Equal(t, "| | ", c.TraceIndent())
}
