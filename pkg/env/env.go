// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env writes KEY=value environment files.
package env

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Var is one environment assignment.
type Var struct {
	Key   string
	Value string
}

// Key builds an environment key from prefix and name: letters are upper
// cased and any other character that is not a digit becomes '_'.
func Key(prefix, name string) string {
	var b strings.Builder
	b.Grow(len(prefix) + len(name))
	for _, s := range [2]string{prefix, name} {
		for i := 0; i < len(s); i++ {
			c := s[i]
			switch {
			case 'a' <= c && c <= 'z':
				b.WriteByte(c - 'a' + 'A')
			case 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
				b.WriteByte(c)
			default:
				b.WriteByte('_')
			}
		}
	}
	return b.String()
}

// Write writes an environment file with the given name and content.
func Write(name string, vars []Var) error {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := Marshal(f, vars); err != nil {
		return fmt.Errorf("failed to marshal env: %v", err)
	}
	return f.Close()
}

// Marshal writes one line per variable. Values holding spaces, quotes or
// shell metacharacters are double quoted.
func Marshal(w io.Writer, vars []Var) error {
	for _, v := range vars {
		if v.Key == "" {
			return fmt.Errorf("empty key for value %q", v.Value)
		}
		val := v.Value
		if needsQuote(val) {
			val = strconv.Quote(val)
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", v.Key, val); err != nil {
			return err
		}
	}
	return nil
}

func needsQuote(s string) bool {
	return strings.ContainsAny(s, " \t\r\n\"'\\$`#;&|<>()")
}
