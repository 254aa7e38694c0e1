// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scmd

import "math"

// convertAll converts text for each definition in defs and returns the
// largest number of characters any conversion consumed.
func (r *Registry) convertAll(defs []*Definition, text string) (int, bool) {
	consumed := 0
	for _, d := range defs {
		n, ok := r.convert(d, text)
		if !ok {
			return 0, false
		}
		consumed = max(consumed, n)
	}
	return consumed, true
}

// convert applies text to d according to its kind, runs its callback and
// propagates the result to the rest of its linked set. It returns how many
// characters of text the conversion consumed.
func (r *Registry) convert(d *Definition, text string) (int, bool) {
	var consumed int
	switch d.flags.Kind() {
	case KindBool:
		consumed = convertBool(d, text)
	case KindNumber:
		consumed = convertNumber(d, text)
	case KindString:
		consumed = len(text)
		replaceText(r.alloc, d, text)
		if d.storage != nil {
			d.storage.putString(text)
		}
	default:
		assertf(false, "definition %q has kind %v", d.name, d.flags.Kind())
		return 0, false
	}
	d.found = true

	if d.callback != nil {
		p := &Params{
			Flags:    d.flags,
			ID:       d.id,
			Name:     d.name,
			Storage:  d.storage,
			SetValue: d.setValue,
			SetMask:  d.setMask,
			Value:    d.value.Uint32(),
		}
		if t, ok := d.value.(Text); ok {
			p.String = string(t)
		}
		if !d.callback(p, text) {
			r.logger.Debug("callback rejected value", "name", d.name, "id", d.id, "value", text)
			return 0, false
		}
	}

	r.propagate(d)
	return consumed, true
}

func convertBool(d *Definition, text string) int {
	var set bool
	consumed := 0
	switch {
	case len(text) > 0 && text[0] == '-':
		consumed = 1
	case len(text) > 0 && text[0] == '+':
		set, consumed = true, 1
	default:
		set = !d.flags.ClearByDefault()
	}

	v := d.value.Uint32() &^ d.setMask
	if set {
		v |= d.setValue
	}
	d.value = Bits(v)

	if d.storage != nil {
		sv := d.storage.Uint32() &^ d.setMask
		if set {
			sv |= d.setValue
		}
		d.storage.putUint32(sv)
	}
	return consumed
}

func convertNumber(d *Definition, text string) int {
	v, n := parseNumber(text, d.flags.Signed())
	if n == 0 {
		n = len(text)
	}
	d.value = Bits(v)
	if d.storage != nil {
		d.storage.putUint32(v)
	}
	return n
}

// propagate copies the value of d into every other definition with the
// same id and kind.
func (r *Registry) propagate(d *Definition) {
	r.each(func(o *Definition) bool {
		if o == d || o.id != d.id || o.flags.Kind() != d.flags.Kind() {
			return true
		}
		o.found = true
		if t, ok := d.value.(Text); ok {
			replaceText(r.alloc, o, string(t))
		} else {
			o.value = d.value
		}
		return true
	})
}

// parseNumber parses an integer prefix of s the way C's strtol (signed) or
// strtoul (unsigned) does with base 0: optional leading space and sign, a
// "0x" prefix selects hex, a leading "0" selects octal, anything else is
// decimal. Values out of the 32-bit range saturate. It returns the
// number of bytes accepted, which is 0 when no digits were found.
func parseNumber(s string, signed bool) (uint32, int) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	base := uint64(10)
	switch {
	case i+1 < len(s) && s[i] == '0' && (s[i+1] == 'x' || s[i+1] == 'X'):
		if i+2 < len(s) && digitVal(s[i+2]) < 16 {
			base = 16
			i += 2
		} else {
			// "0x" without hex digits parses as the single digit 0.
			return 0, i + 1
		}
	case i < len(s) && s[i] == '0':
		base = 8
	}

	start := i
	var acc uint64
	overflow := false
	for ; i < len(s); i++ {
		dv := digitVal(s[i])
		if dv >= base {
			break
		}
		if acc > (math.MaxUint64-dv)/base {
			overflow = true
			continue
		}
		acc = acc*base + dv
	}
	if i == start {
		return 0, 0
	}

	if signed {
		switch {
		case neg && (overflow || acc > 1<<31):
			return 1 << 31, i
		case !neg && (overflow || acc > math.MaxInt32):
			return math.MaxInt32, i
		case neg:
			return -uint32(acc), i
		}
		return uint32(acc), i
	}
	if overflow || acc > math.MaxUint32 {
		return math.MaxUint32, i
	}
	if neg {
		return -uint32(acc), i
	}
	return uint32(acc), i
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func digitVal(c byte) uint64 {
	switch {
	case '0' <= c && c <= '9':
		return uint64(c - '0')
	case 'a' <= c && c <= 'z':
		return uint64(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return uint64(c-'A') + 10
	}
	return 36
}
