// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scmd

import "strconv"

// Value is the current value of a definition. It is either Bits, for bool
// and number definitions, or Text, for string definitions.
type Value interface {
	Uint32() uint32
	String() string
	isValue()
}

// Bits is the value of a bool or number definition.
type Bits uint32

func (b Bits) Uint32() uint32 { return uint32(b) }
func (b Bits) String() string { return strconv.FormatUint(uint64(b), 10) }
func (Bits) isValue() {}

// Text is the owned value of a string definition.
type Text string

func (Text) Uint32() uint32 { return 0 }
func (t Text) String() string { return string(t) }
func (Text) isValue() {}

// Allocator owns the strings installed as current values. Every string
// returned by Dup is passed to Release exactly once, when it is replaced or
// when the registry is closed.
type Allocator interface {
	Dup(s string) string
	Release(s string)
}

type heapAllocator struct{}

func (heapAllocator) Dup(s string) string { return s }
func (heapAllocator) Release(string) {}

// replaceText installs a fresh duplicate of s as the value of d, releasing
// the string it owned before.
func replaceText(a Allocator, d *Definition, s string) {
	if old, ok := d.value.(Text); ok && d.owned {
		a.Release(string(old))
	}
	d.value = Text(a.Dup(s))
	d.owned = true
}
