// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !windows

package scmd

import "os"

var osArgs = func() []string { return os.Args }

func hostCommandLine() string {
	return JoinArgs(osArgs())
}
