// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tui renders colored terminal reports.
package tui

import (
	"os"

	"golang.org/x/term"
)

// Style is an ANSI SGR sequence. The zero Style leaves text unchanged.
type Style string

const (
	Plain  Style = ""
	Red    Style = "\x1b[31m"
	Green  Style = "\x1b[32m"
	Yellow Style = "\x1b[33m"
	Dim    Style = "\x1b[90m"

	reset = "\x1b[0m"
)

// Colorizer paints text when Enabled.
type Colorizer struct {
	Enabled bool
}

// ColorizerFor returns a colorizer for output written to f. Color is used
// only when want is set, f is a terminal, NO_COLOR is unset and TERM names
// a real terminal.
func ColorizerFor(f *os.File, want bool) Colorizer {
	if !want || f == nil || !term.IsTerminal(int(f.Fd())) {
		return Colorizer{}
	}
	return Colorizer{Enabled: envAllowsColor()}
}

func envAllowsColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch os.Getenv("TERM") {
	case "", "dumb":
		return false
	}
	return true
}

// Paint wraps text in s and a reset sequence.
func (c Colorizer) Paint(s Style, text string) string {
	if !c.Enabled || s == Plain {
		return text
	}
	return string(s) + text + reset
}
