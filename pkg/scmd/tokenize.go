// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scmd

import "strings"

// Delimiters separate tokens on a command line. A double quote also opens
// and closes a quoted token.
const Delimiters = " ,;\"\t\n\r\x1a"

// nextToken splits the first token off s. Leading delimiters are skipped; a
// double quote met while skipping starts a quoted token that runs to the
// next double quote. ok is false when s holds no further token.
func nextToken(s string) (tok string, quoted bool, rest string, ok bool) {
	i := 0
	for i < len(s) && strings.IndexByte(Delimiters, s[i]) >= 0 {
		if s[i] == '"' {
			quoted = true
			i++
			break
		}
		i++
	}
	if quoted {
		end := strings.IndexByte(s[i:], '"')
		if end < 0 {
			return s[i:], true, "", true
		}
		return s[i : i+end], true, s[i+end+1:], true
	}
	if i == len(s) {
		return "", false, "", false
	}
	end := strings.IndexAny(s[i:], Delimiters)
	if end < 0 {
		return s[i:], false, "", true
	}
	return s[i : i+end], false, s[i+end:], true
}

// JoinArgs joins args into a single command line. Arguments that are empty
// or contain delimiters are double quoted. The tokenizer has no escape for
// a literal quote, so quote characters inside an argument are dropped.
func JoinArgs(args []string) string {
	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		if arg == "" || strings.ContainsAny(arg, Delimiters) {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(arg, `"`, ""))
			b.WriteByte('"')
			continue
		}
		b.WriteString(arg)
	}
	return b.String()
}
