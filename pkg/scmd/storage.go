// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scmd

import (
	"bytes"
	"encoding/binary"
)

// Storage is caller-owned memory that a definition mirrors its converted
// values into. Numbers and bools are stored little-endian; strings are
// stored zero-terminated and truncated to fit.
type Storage []byte

// Uint32 decodes the first (up to) four bytes of s.
func (s Storage) Uint32() uint32 {
	var b [4]byte
	copy(b[:], s)
	return binary.LittleEndian.Uint32(b[:])
}

// String returns the contents of s up to the first zero byte.
func (s Storage) String() string {
	if i := bytes.IndexByte(s, 0); i >= 0 {
		return string(s[:i])
	}
	return string(s)
}

// put writes src into s, truncating to the capacity of s. Without terminate
// only the copied bytes change. With terminate the last byte of s is always
// zero and every byte past the copied data is zeroed.
func (s Storage) put(src []byte, terminate bool) {
	if len(s) == 0 {
		return
	}
	if !terminate {
		copy(s, src)
		return
	}
	n := copy(s[:len(s)-1], src)
	clear(s[n:])
}

func (s Storage) putUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	s.put(b[:], false)
}

func (s Storage) putString(v string) {
	s.put([]byte(v), true)
}
