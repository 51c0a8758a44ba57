// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package run provides the execution control for UL4 templates:
// the entry points a host uses to render a template or call it.
package run // import "robpike.io/ul4/run"

import (
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"robpike.io/ul4/ast"
	"robpike.io/ul4/config"
	"robpike.io/ul4/exec"
	"robpike.io/ul4/lib"
	"robpike.io/ul4/value"
)

// cpuTime returns the user CPU time of the process, where the
// system can tell.
var cpuTime = func() time.Duration { return 0 }

// Evaluator runs templates with one configuration. It may be used by
// several goroutines at once; every run gets its own context.
type Evaluator struct {
	conf    *config.Config
	metrics *Metrics
}

// New returns an Evaluator. Metrics may be nil.
func New(conf *config.Config, metrics *Metrics) *Evaluator {
	return &Evaluator{conf: conf, metrics: metrics}
}

// Evaluate renders t to w with vars bound against the signature of t
// and returns the variables of t when it finishes.
func Evaluate(t *ast.Template, vars []value.Keyword, w io.Writer, conf *config.Config) (map[string]value.Value, error) {
	return New(conf, nil).Evaluate(t, vars, w)
}

// Renders renders t and returns its output.
func Renders(t *ast.Template, vars []value.Keyword, conf *config.Config) (string, error) {
	return New(conf, nil).Renders(t, vars)
}

// Call calls t and returns the value of its return statement,
// or None. The output of t is discarded.
func Call(t *ast.Template, vars []value.Keyword, conf *config.Config) (value.Value, error) {
	return New(conf, nil).Call(t, vars)
}

// stats describes one finished run.
type stats struct {
	result  string
	steps   uint64
	elapsed time.Duration
	cpu     time.Duration
}

// context returns a fresh context whose base frame runs t and writes to w.
func (e *Evaluator) context(t *ast.Template, w io.Writer) *exec.Context {
	c := exec.NewContext(e.conf, lib.Builtins())
	f := c.Frame()
	f.Name = t.Name
	f.Source = t.Source
	f.Out = w
	return c
}

// run calls fn with a fresh context and accounts for it.
func (e *Evaluator) run(t *ast.Template, w io.Writer, fn func(c *exec.Context) error) (*exec.Context, error) {
	log := e.conf.Logger()
	c := e.context(t, w)
	log.Debugw("evaluating", "template", t.Name)
	start, cpu := time.Now(), cpuTime()
	err := fn(c)
	s := &stats{
		result:  ResultOK,
		steps:   c.Steps(),
		elapsed: time.Since(start),
		cpu:     cpuTime() - cpu,
	}
	if err != nil {
		s.result = ResultError
		var exceeded *value.RuntimeExceededError
		if errors.As(err, &exceeded) {
			s.result = ResultExceeded
		}
		log.Warnw("evaluation failed", "template", t.Name, "steps", s.steps, "frames", len(ast.Frames(err)), "error", errors.Cause(err))
	} else {
		log.Debugw("evaluated", "template", t.Name, "steps", s.steps, "duration", s.elapsed)
	}
	if e.conf.Debug("cpu") {
		log.Infof("%s: %d steps, %s (%s cpu)", t.Name, s.steps, s.elapsed, s.cpu)
	}
	e.metrics.observe(s)
	return c, err
}

// Evaluate renders t to w and returns the variables of t.
func (e *Evaluator) Evaluate(t *ast.Template, vars []value.Keyword, w io.Writer) (map[string]value.Value, error) {
	c, err := e.run(t, w, func(c *exec.Context) error {
		return ast.Execute(c, t, vars)
	})
	if err != nil {
		return nil, err
	}
	return c.Globals().Vars(), nil
}

// Renders renders t and returns its output.
func (e *Evaluator) Renders(t *ast.Template, vars []value.Keyword) (string, error) {
	var b strings.Builder
	_, err := e.Evaluate(t, vars, &b)
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// Call calls t, discarding its output, and returns its result.
func (e *Evaluator) Call(t *ast.Template, vars []value.Keyword) (value.Value, error) {
	var result value.Value
	_, err := e.run(t, io.Discard, func(c *exec.Context) error {
		cl, err := ast.NewClosure(c, t)
		if err != nil {
			return err
		}
		result, err = value.Call(c, cl, nil, vars)
		return err
	})
	return result, err
}
