// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scmd registers expected command-line arguments and parses command
// lines against them.
//
// A host declares definitions on a Registry: flagged definitions are matched
// by name after a leading "-", positional definitions are filled in
// registration order. Each definition carries a value kind (bool, number or
// string), an id, and optional caller-owned storage and validation callback.
//
//	reg := scmd.New()
//	reg.Register(scmd.Arg{Flags: scmd.TypeNumber, ID: 1, Name: "n"})
//	reg.Register(scmd.Arg{Flags: scmd.TypeString | scmd.ArgRequired, ID: 2})
//	ok := reg.Process("-n 42 input.txt", false, nil, func(e *scmd.CmdError) {
//	    fmt.Fprint(os.Stderr, e.Message)
//	})
//	n := reg.GetNumber(1) // 42
//
// # Flag Syntax
//
// Flag names are matched by the longest registered name that prefixes the
// token, so values may follow the name directly ("-n42") and several flags
// may be bundled in one token ("-abc"). A token that is an unambiguous
// prefix of exactly one registered name selects that name ("-verb" for
// "verbose"). The abbreviation rule is tried first on the whole token, so
// with "a", "b" and "abc" registered "-ab" selects "abc" rather than the
// bundle "a" "b". Bool flags accept a trailing "+" or "-" to set or clear
// them.
//
// # Linked Definitions
//
// Definitions sharing an id and value kind form a linked set: converting a
// value for one member copies it to every other member.
//
// # Response Files
//
// An unquoted token "@path" is replaced by the contents of the file at path,
// tokenized with the same rules. Response files may nest.
package scmd
