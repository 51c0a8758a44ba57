// Copyright 2014 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Ul4 evaluates UL4 templates. A template is a program of expressions and
statements that writes text; it has no syntax of its own here, since the
parser lives elsewhere. Instead the command reads the program tree as a
YAML document, as described in package robpike.io/ul4/tree, and runs it.

Usage:

	ul4 [flags] program.yaml

The flags are:

	-vars file
		YAML mapping of variables passed to the template as keyword
		arguments.
	-config file
		YAML configuration with the keys max_steps, max_depth,
		timeout, debug and log_level.
	-steps n
		Stop after n evaluation steps.
	-timeout d
		Stop after d, a duration such as 2s.
	-state db -session name
		Load the variables saved under name from the bbolt database
		db before running and save the template's variables after.
	-debug flags
		Comma-separated debug flags. Trace prints every call, cpu
		reports the cost of the run.
	-log level
		Log at the given level.

A small program:

	name: hello
	params:
	  - {name: who, default: {const: world}}
	body:
	  - text: "Hello, "
	  - print: {var: who}
	  - for:
	      target: {var: i}
	      iter: {call: {obj: {var: range}, args: [{const: 3}]}}
	      body:
	        - text: " "
	        - print: {var: i}

prints

	Hello, world 0 1 2

Values follow Python closely: integers have arbitrary precision, there
are dates, datetimes, colors and time spans, and lists, dicts and sets
with the usual operators. A variable that was never set is undefined
rather than an error; using an undefined value in arithmetic fails with
an error naming the undefined type. Errors carry the location of each
template call that led to them, outermost first.

Templates may define templates with def, render them with render and
renderx, and call them as functions; a template's return value is the
result of the call.

*/
package main
