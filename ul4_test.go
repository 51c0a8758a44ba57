// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"robpike.io/ul4/config"
	"robpike.io/ul4/run"
	"robpike.io/ul4/tree"
	"robpike.io/ul4/value"
)

// A programCase is one entry of a testdata file.
type programCase struct {
	Case     string    `yaml:"case"`
	Vars     yaml.Node `yaml:"vars"`
	Template yaml.Node `yaml:"template"`
	Output   *string   `yaml:"output"`
	Error    string    `yaml:"error"`
}

func TestPrograms(t *testing.T) {
	files, err := filepath.Glob("testdata/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".yaml"), func(t *testing.T) {
			runFile(t, file)
		})
	}
}

func runFile(t *testing.T, file string) {
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	var cases []programCase
	require.NoError(t, yaml.Unmarshal(data, &cases), file)
	for _, c := range cases {
		if c.Output == nil && c.Error == "" {
			t.Errorf("%s: %s: no output or error", file, c.Case)
			continue
		}
		out, err := runCase(&c)
		if c.Error != "" {
			if assert.Error(t, err, "%s: %s", file, c.Case) {
				assert.Contains(t, err.Error(), c.Error, "%s: %s", file, c.Case)
			}
			continue
		}
		if assert.NoError(t, err, "%s: %s", file, c.Case) {
			assert.Equal(t, *c.Output, out, "%s: %s", file, c.Case)
		}
	}
}

func runCase(c *programCase) (string, error) {
	tmpl, err := tree.Template(&c.Template)
	if err != nil {
		return "", err
	}
	var vars []value.Keyword
	if c.Vars.Kind != 0 {
		if vars, err = tree.Vars(&c.Vars); err != nil {
			return "", err
		}
	}
	conf := new(config.Config)
	conf.SetMaxSteps(100000)
	return run.Renders(tmpl, vars, conf)
}

const countProgram = `
name: count
params: [{name: n, default: {const: 0}}]
body:
  - addvar: {target: {var: n}, value: {const: 1}}
  - print: {var: n}
`

// setFlag points a flag variable at v for the rest of the test.
func setFlag(t *testing.T, p *string, v string) {
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

func TestSessionState(t *testing.T) {
	dir := t.TempDir()
	prog := filepath.Join(dir, "count.yaml")
	require.NoError(t, os.WriteFile(prog, []byte(countProgram), 0644))
	setFlag(t, stateDB, filepath.Join(dir, "state.db"))
	setFlag(t, session, "test")

	conf := new(config.Config)
	var out strings.Builder
	for i := 0; i < 3; i++ {
		require.NoError(t, ul4(conf, prog, &out))
	}
	assert.Equal(t, "123", out.String())

	vars := filepath.Join(dir, "vars.yaml")
	require.NoError(t, os.WriteFile(vars, []byte("n: 10\n"), 0644))
	setFlag(t, varsFile, vars)
	out.Reset()
	require.NoError(t, ul4(conf, prog, &out))
	assert.Equal(t, "11", out.String())

	setFlag(t, session, "other")
	setFlag(t, varsFile, "")
	out.Reset()
	require.NoError(t, ul4(conf, prog, &out))
	assert.Equal(t, "1", out.String())
}

func TestProgramErrors(t *testing.T) {
	dir := t.TempDir()
	conf := new(config.Config)
	var out strings.Builder

	err := ul4(conf, filepath.Join(dir, "missing.yaml"), &out)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("body: [{nope: 1}]\n"), 0644))
	err = ul4(conf, bad, &out)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "bad.yaml")
	}

	prog := filepath.Join(dir, "count.yaml")
	require.NoError(t, os.WriteFile(prog, []byte(countProgram), 0644))
	vars := filepath.Join(dir, "vars.yaml")
	require.NoError(t, os.WriteFile(vars, []byte("[1, 2]\n"), 0644))
	setFlag(t, varsFile, vars)
	assert.Error(t, ul4(conf, prog, &out))
}

func TestMerge(t *testing.T) {
	kw := func(name string, n int) value.Keyword { return value.Keyword{Name: name, Value: value.Int(n)} }
	got := merge([]value.Keyword{kw("a", 1), kw("b", 2)}, []value.Keyword{kw("b", 3), kw("c", 4)})
	var names []string
	for _, k := range got {
		names = append(names, k.Name+"="+value.Repr(k.Value))
	}
	assert.Equal(t, []string{"a=1", "b=3", "c=4"}, names)
}
