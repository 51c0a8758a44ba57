// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"robpike.io/ul4/value"
)

func open(t *testing.T) (*Store, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	s, err := Open(filepath.Join(t.TempDir(), "sessions.db"), zap.New(core).Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, logs
}

func TestSaveLoad(t *testing.T) {
	s, logs := open(t)
	d := value.NewDict()
	require.NoError(t, d.Set(value.Str("when"), value.NewDate(2026, 10, 18)))
	vars := map[string]value.Value{
		"n":    value.Int(3),
		"list": value.NewList(value.Str("a"), value.Float(1.5), value.None),
		"d":    d,
		"fn":   value.NewFunction("fn", "", value.MustSignature(), nil),
	}
	require.NoError(t, s.Save("one", vars))

	loaded, err := s.Load("one")
	require.NoError(t, err)
	var got []string
	for _, kw := range loaded {
		got = append(got, kw.Name+"="+value.Repr(kw.Value))
	}
	assert.Equal(t, []string{
		"d={'when': @(2026-10-18)}",
		"list=['a', 1.5, None]",
		"n=3",
	}, got)

	entries := logs.FilterMessage("not saving variable").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "fn", entries[0].ContextMap()["name"])
}

func TestSaveReplaces(t *testing.T) {
	s, _ := open(t)
	require.NoError(t, s.Save("x", map[string]value.Value{"a": value.Int(1), "b": value.Int(2)}))
	require.NoError(t, s.Save("x", map[string]value.Value{"b": value.Int(3)}))
	loaded, err := s.Load("x")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "b", loaded[0].Name)
	assert.Equal(t, "3", value.Repr(loaded[0].Value))
}

func TestSessions(t *testing.T) {
	s, _ := open(t)
	loaded, err := s.Load("missing")
	require.NoError(t, err)
	assert.Empty(t, loaded)

	for _, name := range []string{"beta", "alpha", "gamma"} {
		require.NoError(t, s.Save(name, map[string]value.Value{"v": value.Str(name)}))
	}
	names, err := s.Sessions()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, names)

	require.NoError(t, s.Delete("beta"))
	require.NoError(t, s.Delete("beta"))
	names, err = s.Sessions()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "gamma"}, names)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save("keep", map[string]value.Value{"c": value.Color{R: 1, G: 2, B: 3, A: 4}}))
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()
	loaded, err := s.Load("keep")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "#01020304", value.Repr(loaded[0].Value))
}

func TestOpenError(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "no", "such", "dir", "x.db"), nil)
	assert.Error(t, err)
}
