// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroConfig(t *testing.T) {
	var c Config
	assert.Equal(t, os.Stdout, c.Output())
	assert.Equal(t, os.Stderr, c.ErrOutput())
	assert.Zero(t, c.MaxSteps())
	assert.Equal(t, uint(defaultMaxDepth), c.MaxDepth())
	assert.Zero(t, c.Timeout())
	assert.False(t, c.Debug("trace"))
	assert.NotNil(t, c.Logger())
}

func TestDebugFlags(t *testing.T) {
	var c Config
	c.SetDebug("trace", true)
	c.SetDebug("steps", true)
	c.SetDebug("types", false)
	assert.Equal(t, []string{"steps", "trace"}, c.DebugFlags())
}

func TestLoad(t *testing.T) {
	src := `
max_steps: 1000
max_depth: 20
timeout: 2s
debug: [trace]
log_level: warn
`
	c, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), c.MaxSteps())
	assert.Equal(t, uint(20), c.MaxDepth())
	assert.Equal(t, 2*time.Second, c.Timeout())
	assert.True(t, c.Debug("trace"))
}

func TestLoadEmpty(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, c.MaxSteps())
}

func TestLoadErrors(t *testing.T) {
	for _, src := range []string{
		"max_stepz: 3\n",
		"timeout: soon\n",
		"log_level: loud\n",
	} {
		_, err := Load(strings.NewReader(src))
		assert.Error(t, err, src)
	}
}
