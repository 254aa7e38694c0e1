// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !windows

package scmd

import "testing"

func TestProcessCommandLine(t *testing.T) {
	oldArgs, oldDefault := osArgs, Default
	defer func() { osArgs, Default = oldArgs, oldDefault }()
	osArgs = func() []string {
		return []string{"/usr/bin/tool", "-name", "two words", "-n", "0x20", "-q-"}
	}
	Default = New()

	if err := Register(Arg{Flags: TypeString, ID: 1, Name: "name"}); err != nil {
		t.Fatal(err)
	}
	if err := RegisterBatch([]ListEntry{
		{Flags: TypeNumber, ID: 2, Name: "n"},
		{Flags: TypeBool | BoolClear, ID: 3, Name: "q"},
	}); err != nil {
		t.Fatal(err)
	}
	if !GetBool(3) {
		t.Error("q before parsing = false, want true")
	}

	var errs errorLog
	if !ProcessCommandLine(nil, errs.record) {
		t.Fatalf("ProcessCommandLine() = false, errors %v", errs)
	}
	buf := make([]byte, 32)
	if !GetString(1, buf) || Storage(buf).String() != "two words" {
		t.Errorf("name = %q, want %q", Storage(buf).String(), "two words")
	}
	if got := GetNumber(2); got != 0x20 {
		t.Errorf("n = %#x, want 0x20", got)
	}
	if GetBool(3) {
		t.Error("q = true, want false")
	}
	if GetString(99, buf) {
		t.Error("GetString(99) = true, want false")
	}
	if GetString(1, nil) {
		t.Error("GetString with empty buffer = true, want false")
	}
}

func TestPackageProcess(t *testing.T) {
	oldDefault := Default
	defer func() { Default = oldDefault }()
	Default = New()

	if err := Register(Arg{Flags: TypeString | ArgRequired, ID: 1}); err != nil {
		t.Fatal(err)
	}
	if !Process("prog file.txt", true, nil, nil) {
		t.Fatal("Process() = false")
	}
	if got, _ := Default.String(1); got != "file.txt" {
		t.Errorf("String(1) = %q, want %q", got, "file.txt")
	}
}
