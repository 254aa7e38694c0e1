// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command greet prints a greeting configured from its command line.
//
//	greet [-loud] [-times N] [-from NAME] NAME [PUNCT]
//	greet @args.rsp
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/yeetrun/scmd/pkg/scmd"
)

const (
	idName = iota + 1
	idPunct
	idLoud
	idTimes
	idFrom
)

func main() {
	log.SetFlags(0)
	err := scmd.RegisterBatch([]scmd.ListEntry{
		{Flags: scmd.TypeBool, ID: idLoud, Name: "loud"},
		{Flags: scmd.TypeString, ID: idFrom, Name: "from"},
		{Flags: scmd.TypeNumber, ID: idTimes, Name: "times", Callback: func(p *scmd.Params, _ string) bool {
			if p.Value == 0 || p.Value > 10 {
				log.Printf("-times must be between 1 and 10, got %d", p.Value)
				return false
			}
			return true
		}},
	})
	if err != nil {
		log.Fatalf("registering flags: %v", err)
	}
	if err := scmd.Register(scmd.Arg{Flags: scmd.TypeString | scmd.ArgRequired, ID: idName}); err != nil {
		log.Fatal(err)
	}
	if err := scmd.Register(scmd.Arg{Flags: scmd.TypeString | scmd.ArgOptional, ID: idPunct}); err != nil {
		log.Fatal(err)
	}

	failed := false
	ok := scmd.ProcessCommandLine(nil, func(e *scmd.CmdError) {
		fmt.Fprint(os.Stderr, e.Message)
		if !strings.HasSuffix(e.Message, "\n") {
			fmt.Fprintln(os.Stderr)
		}
		failed = true
	})
	if !ok || failed {
		os.Exit(1)
	}

	buf := make([]byte, 64)
	scmd.GetString(idName, buf)
	msg := "Hello, " + scmd.Storage(buf).String()
	if scmd.GetString(idFrom, buf) && buf[0] != 0 {
		msg += ", from " + scmd.Storage(buf).String()
	}
	punct := "!"
	if scmd.GetString(idPunct, buf) && buf[0] != 0 {
		punct = scmd.Storage(buf).String()
	}
	msg += punct
	if scmd.GetBool(idLoud) {
		msg = strings.ToUpper(msg)
	}
	times := max(scmd.GetNumber(idTimes), 1)
	for range times {
		fmt.Println(msg)
	}
}
