// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main // import "robpike.io/ul4"

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"robpike.io/ul4/config"
	"robpike.io/ul4/run"
	"robpike.io/ul4/store"
	"robpike.io/ul4/tree"
	"robpike.io/ul4/value"
)

var (
	confFile = flag.String("config", "", "YAML configuration `file`")
	varsFile = flag.String("vars", "", "YAML `file` of variables passed to the template")
	maxSteps = flag.Uint64("steps", 0, "maximum number of evaluation steps; 0 means no limit")
	timeout  = flag.Duration("timeout", 0, "maximum evaluation time; 0 means no limit")
	stateDB  = flag.String("state", "", "bbolt `database` holding variables between runs")
	session  = flag.String("session", "default", "session `name` within the -state database")
	debugF   = flag.String("debug", "", "comma-separated debug flags: trace, cpu")
	logLevel = flag.String("log", "", "log `level` (debug, info, warn, error)")
)

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}
	conf, err := configure()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ul4: %s\n", err)
		os.Exit(2)
	}
	if err := ul4(conf, flag.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "ul4: %s\n", err)
		os.Exit(1)
	}
}

// configure builds the configuration from -config and the flags,
// which take precedence.
func configure() (*config.Config, error) {
	conf := new(config.Config)
	if *confFile != "" {
		fd, err := os.Open(*confFile)
		if err != nil {
			return nil, err
		}
		defer fd.Close()
		if conf, err = config.Load(fd); err != nil {
			return nil, errors.Wrap(err, *confFile)
		}
	}
	if *maxSteps > 0 {
		conf.SetMaxSteps(*maxSteps)
	}
	if *timeout > 0 {
		conf.SetTimeout(*timeout)
	}
	if *debugF != "" {
		for _, name := range strings.Split(*debugF, ",") {
			conf.SetDebug(strings.TrimSpace(name), true)
		}
	}
	if *logLevel != "" {
		logger, err := config.NewLogger(*logLevel)
		if err != nil {
			return nil, err
		}
		conf.SetLogger(logger)
	}
	return conf, nil
}

// ul4 runs the program in the named file, writing its output to w.
func ul4(conf *config.Config, name string, w io.Writer) error {
	fd, err := os.Open(name)
	if err != nil {
		return err
	}
	defer fd.Close()
	t, err := tree.Decode(fd)
	if err != nil {
		return errors.Wrap(err, name)
	}
	vars, err := readVars(*varsFile)
	if err != nil {
		return err
	}
	var db *store.Store
	if *stateDB != "" {
		db, err = store.Open(*stateDB, conf.Logger())
		if err != nil {
			return err
		}
		defer db.Close()
		saved, err := db.Load(*session)
		if err != nil {
			return err
		}
		// Variables from -vars win over the saved ones.
		vars = merge(saved, vars)
	}
	start := time.Now()
	globals, err := run.New(conf, nil).Evaluate(t, vars, w)
	if err != nil {
		return err
	}
	conf.Logger().Debugw("done", "program", name, "elapsed", time.Since(start), "vars", len(globals))
	if db != nil {
		return db.Save(*session, globals)
	}
	return nil
}

func readVars(name string) ([]value.Keyword, error) {
	if name == "" {
		return nil, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, name)
	}
	vars, err := tree.Vars(&doc)
	return vars, errors.Wrap(err, name)
}

// merge returns the keywords of a overridden by those of b.
func merge(a, b []value.Keyword) []value.Keyword {
	over := make(map[string]bool, len(b))
	for _, kw := range b {
		over[kw.Name] = true
	}
	var out []value.Keyword
	for _, kw := range a {
		if !over[kw.Name] {
			out = append(out, kw)
		}
	}
	return append(out, b...)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: ul4 [options] program.yaml\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	os.Exit(2)
}
