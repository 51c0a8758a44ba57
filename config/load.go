// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// file is the on-disk form of a Config.
type file struct {
	MaxSteps uint64   `yaml:"max_steps"`
	MaxDepth uint     `yaml:"max_depth"`
	Timeout  string   `yaml:"timeout"`
	Debug    []string `yaml:"debug"`
	LogLevel string   `yaml:"log_level"`
}

// Load reads a YAML configuration. Unknown keys are an error.
// Output streams are left at their defaults.
func Load(r io.Reader) (*Config, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "config")
	}
	conf := new(Config)
	conf.SetMaxSteps(f.MaxSteps)
	conf.SetMaxDepth(f.MaxDepth)
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return nil, errors.Wrapf(err, "config: timeout %q", f.Timeout)
		}
		conf.SetTimeout(d)
	}
	for _, name := range f.Debug {
		conf.SetDebug(name, true)
	}
	if f.LogLevel != "" {
		logger, err := NewLogger(f.LogLevel)
		if err != nil {
			return nil, err
		}
		conf.SetLogger(logger)
	}
	return conf, nil
}

// NewLogger returns a console logger writing to standard error at the named level
// ("debug", "info", "warn", "error").
func NewLogger(level string) (*zap.SugaredLogger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "config: log level %q", level)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	logger, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "config: logger")
	}
	return logger.Sugar(), nil
}
