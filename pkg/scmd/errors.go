// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scmd

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrorCode identifies the class of a reported error.
type ErrorCode uint32

const (
	ErrorNone ErrorCode = 0
	// ErrorInvalidParameter is recorded when a registration is rejected.
	ErrorInvalidParameter ErrorCode = 87
	// ErrorOpenFailed is reported for unreadable response files and for
	// extra tokens that no definition or extra callback accepted.
	ErrorOpenFailed         ErrorCode = 0x6E
	ErrorBadArgument        ErrorCode = 0x85100065
	ErrorNotEnoughArguments ErrorCode = 0x8510006D
)

// ErrInvalidParameter is wrapped by every registration error.
var ErrInvalidParameter = errors.New("invalid parameter")

var errorTemplates = [...]string{
	"Invalid argument: %s",
	"The syntax of the command is incorrect.",
	"Unable to open response file: %s",
}

// CmdError is a parse-time error delivered to an ErrorFunc.
type CmdError struct {
	Code ErrorCode
	// Item is the offending text, if any.
	Item string
	// Message is the formatted, user-facing text.
	Message string
}

func (e *CmdError) Error() string {
	return strings.TrimSuffix(e.Message, "\n")
}

// ErrorFunc receives parse-time errors.
type ErrorFunc func(*CmdError)

func formatError(code ErrorCode, item string) (string, bool) {
	var tmpl string
	switch code {
	case ErrorBadArgument:
		tmpl = errorTemplates[0]
	case ErrorNotEnoughArguments:
		tmpl = errorTemplates[1]
	case ErrorOpenFailed:
		tmpl = errorTemplates[2]
	default:
		return "", false
	}
	if strings.Contains(tmpl, "%s") {
		return fmt.Sprintf(tmpl, item), true
	}
	return tmpl + "\n", true
}

// fatalf terminates the process on an internal invariant violation.
var fatalf = log.Fatalf

func assertf(cond bool, format string, args ...any) {
	if cond {
		return
	}
	_, file, line, _ := runtime.Caller(1)
	fatalf("%s:%d: assertion failed: %s", filepath.Base(file), line, fmt.Sprintf(format, args...))
}
