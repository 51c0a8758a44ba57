// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings that control an evaluation:
// output streams, resource limits, debugging flags and the logger.
package config // import "robpike.io/ul4/config"

import (
	"io"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"
)

const defaultMaxDepth = 512

// A Config holds the settings for an evaluation. The zero value is
// usable: output goes to os.Stdout, there is no step or time limit,
// and logging is discarded.
// A Config must not be modified while an evaluation that uses it is running.
type Config struct {
	output    io.Writer
	errOutput io.Writer
	maxSteps  uint64
	maxDepth  uint
	timeout   time.Duration
	debug     map[string]bool
	logger    *zap.SugaredLogger
}

func (c *Config) Output() io.Writer {
	if c.output == nil {
		return os.Stdout
	}
	return c.output
}

func (c *Config) SetOutput(w io.Writer) {
	c.output = w
}

func (c *Config) ErrOutput() io.Writer {
	if c.errOutput == nil {
		return os.Stderr
	}
	return c.errOutput
}

func (c *Config) SetErrOutput(w io.Writer) {
	c.errOutput = w
}

// MaxSteps returns the maximum number of nodes an evaluation may visit.
// Zero means no limit.
func (c *Config) MaxSteps() uint64 {
	return c.maxSteps
}

func (c *Config) SetMaxSteps(n uint64) {
	c.maxSteps = n
}

// MaxDepth returns the maximum depth of the call stack.
func (c *Config) MaxDepth() uint {
	if c.maxDepth == 0 {
		return defaultMaxDepth
	}
	return c.maxDepth
}

func (c *Config) SetMaxDepth(n uint) {
	c.maxDepth = n
}

// Timeout returns the wall-clock budget of an evaluation.
// Zero means no limit.
func (c *Config) Timeout() time.Duration {
	return c.timeout
}

func (c *Config) SetTimeout(d time.Duration) {
	c.timeout = d
}

func (c *Config) Debug(s string) bool {
	return c.debug[s]
}

func (c *Config) SetDebug(s string, state bool) {
	if c.debug == nil {
		c.debug = make(map[string]bool)
	}
	c.debug[s] = state
}

// DebugFlags returns the names of the debug flags that are set, sorted.
func (c *Config) DebugFlags() []string {
	var flags []string
	for name, on := range c.debug {
		if on {
			flags = append(flags, name)
		}
	}
	sort.Strings(flags)
	return flags
}

func (c *Config) Logger() *zap.SugaredLogger {
	if c.logger == nil {
		return zap.NewNop().Sugar()
	}
	return c.logger
}

func (c *Config) SetLogger(l *zap.SugaredLogger) {
	c.logger = l
}
