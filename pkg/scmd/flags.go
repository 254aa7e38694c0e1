// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scmd

// Flags is the packed description of a definition: its value kind, bool
// polarity or number signedness, category and case sensitivity.
type Flags uint32

const (
	// CaseSensitive makes flag name matching case sensitive.
	CaseSensitive Flags = 1 << 8

	TypeBool   Flags = 0 << 16
	TypeNumber Flags = 1 << 16
	TypeString Flags = 2 << 16
	typeMask   Flags = 3 << 16

	// BoolSet makes a bare bool flag set its bits. BoolClear starts the
	// definition with its bits set and makes a bare flag clear them.
	BoolSet   Flags = 0
	BoolClear Flags = 1
	boolMask  Flags = 1

	NumUnsigned Flags = 0
	NumSigned   Flags = 1
	numMask     Flags = 1

	ArgFlagged  Flags = 0 << 24
	ArgOptional Flags = 1 << 24
	ArgRequired Flags = 2 << 24
	argMask     Flags = 3 << 24
)

// Kind is the value kind of a definition.
type Kind uint8

const (
	KindBool Kind = iota
	KindNumber
	KindString
	kindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	}
	return "invalid"
}

// Category says how a definition receives its value.
type Category uint8

const (
	CategoryFlagged Category = iota
	CategoryOptional
	CategoryRequired
	categoryInvalid
)

func (c Category) String() string {
	switch c {
	case CategoryFlagged:
		return "flagged"
	case CategoryOptional:
		return "optional"
	case CategoryRequired:
		return "required"
	}
	return "invalid"
}

func (f Flags) Kind() Kind {
	return Kind((f & typeMask) >> 16)
}

func (f Flags) Category() Category {
	return Category((f & argMask) >> 24)
}

// Signed reports whether a number definition parses signed integers.
func (f Flags) Signed() bool {
	return f&numMask == NumSigned
}

// ClearByDefault reports whether a bare bool flag clears its bits.
func (f Flags) ClearByDefault() bool {
	return f&boolMask == BoolClear
}

func (f Flags) IsCaseSensitive() bool {
	return f&CaseSensitive != 0
}

func (f Flags) positional() bool {
	return f.Category() != CategoryFlagged
}
