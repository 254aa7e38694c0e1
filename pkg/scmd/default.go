// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scmd

// Default is the process-wide registry used by the package-level functions.
var Default = New()

// Register adds a definition to Default.
func Register(a Arg) error { return Default.Register(a) }

// RegisterBatch adds flagged definitions to Default.
func RegisterBatch(entries []ListEntry) error { return Default.RegisterBatch(entries) }

// Process parses cmdline against Default.
func Process(cmdline string, skipFirst bool, extra ExtraFunc, onErr ErrorFunc) bool {
	return Default.Process(cmdline, skipFirst, extra, onErr)
}

// ProcessCommandLine parses the running program's command line against
// Default.
func ProcessCommandLine(extra ExtraFunc, onErr ErrorFunc) bool {
	return Default.ProcessCommandLine(extra, onErr)
}

func GetNumber(id uint32) uint32 { return Default.GetNumber(id) }

func GetBool(id uint32) bool { return Default.GetBool(id) }

func GetString(id uint32, buf []byte) bool { return Default.GetString(id, buf) }
