// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"robpike.io/ul4/ast"
	"robpike.io/ul4/config"
	"robpike.io/ul4/tree"
	"robpike.io/ul4/value"
)

func decode(t *testing.T, src string) *ast.Template {
	t.Helper()
	tmpl, err := tree.Decode(strings.NewReader(src))
	require.NoError(t, err)
	return tmpl
}

const counter = `
name: counter
params:
  - {name: n, default: {const: 3}}
body:
  - setvar: {target: {var: total}, value: {const: 0}}
  - for:
      target: {var: i}
      iter: {call: {obj: {var: range}, args: [{var: n}]}}
      body:
        - print: {var: i}
        - addvar: {target: {var: total}, value: {var: i}}
  - return: {var: total}
`

const spin = `
name: spin
body:
  - while:
      cond: {const: true}
      body: []
`

const broken = `
name: broken
body:
  - text: before
  - print: {call: {obj: {var: nosuch}}}
`

func TestEvaluate(t *testing.T) {
	var b strings.Builder
	vars, err := Evaluate(decode(t, counter), []value.Keyword{{Name: "n", Value: value.Int(4)}}, &b, new(config.Config))
	require.NoError(t, err)
	assert.Equal(t, "0123", b.String())
	assert.Equal(t, "4", value.Repr(vars["n"]))
	assert.Equal(t, "6", value.Repr(vars["total"]))
	assert.Equal(t, "3", value.Repr(vars["i"]))
}

func TestRenders(t *testing.T) {
	out, err := Renders(decode(t, counter), nil, new(config.Config))
	require.NoError(t, err)
	assert.Equal(t, "012", out)

	_, err = Renders(decode(t, broken), nil, new(config.Config))
	assert.Error(t, err)
}

func TestCall(t *testing.T) {
	v, err := Call(decode(t, counter), []value.Keyword{{Name: "n", Value: value.Int(5)}}, new(config.Config))
	require.NoError(t, err)
	assert.Equal(t, "10", value.Repr(v))

	_, err = Call(decode(t, counter), []value.Keyword{{Name: "m", Value: value.Int(5)}}, new(config.Config))
	assert.Error(t, err)
}

func TestLimits(t *testing.T) {
	conf := new(config.Config)
	conf.SetMaxSteps(100)
	_, err := Renders(decode(t, spin), nil, conf)
	var exceeded *value.RuntimeExceededError
	require.True(t, errors.As(err, &exceeded), "%v", err)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)
	conf := new(config.Config)
	conf.SetMaxSteps(1000)
	e := New(conf, m)

	for i := 0; i < 2; i++ {
		_, err := e.Renders(decode(t, counter), nil)
		require.NoError(t, err)
	}
	_, err = e.Renders(decode(t, broken), nil)
	require.Error(t, err)
	_, err = e.Call(decode(t, spin), nil)
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Evaluations.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evaluations.WithLabelValues(ResultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evaluations.WithLabelValues(ResultExceeded)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Steps))
	assert.Equal(t, 3, testutil.CollectAndCount(m.Evaluations))

	n, err := testutil.GatherAndCount(reg, "ul4_evaluation_steps", "ul4_evaluation_duration_seconds", "ul4_evaluation_cpu_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = NewMetrics(reg)
	assert.Error(t, err, "registering twice")
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	conf := new(config.Config)
	conf.SetLogger(zap.New(core).Sugar())
	conf.SetDebug("cpu", true)

	_, err := Renders(decode(t, counter), nil, conf)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("evaluating").Len())
	assert.Equal(t, 1, logs.FilterMessage("evaluated").Len())
	cpu := logs.FilterLevelExact(zapcore.InfoLevel).All()
	require.Len(t, cpu, 1)
	assert.True(t, strings.HasPrefix(cpu[0].Message, "counter: "), cpu[0].Message)

	_, err = Renders(decode(t, broken), nil, conf)
	require.Error(t, err)
	failed := logs.FilterMessage("evaluation failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "broken", failed[0].ContextMap()["template"])
	assert.EqualValues(t, 1, failed[0].ContextMap()["frames"])
}
