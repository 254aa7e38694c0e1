// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scmd

import "golang.org/x/sys/windows"

func hostCommandLine() string {
	return windows.UTF16PtrToString(windows.GetCommandLine())
}
