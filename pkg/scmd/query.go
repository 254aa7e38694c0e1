// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scmd

// lookup returns the first definition registered with id, searching
// positional definitions before flagged ones.
func (r *Registry) lookup(id uint32) *Definition {
	var found *Definition
	r.each(func(d *Definition) bool {
		if d.id == id {
			found = d
			return false
		}
		return true
	})
	return found
}

// GetNumber returns the value of the definition with id, or 0 if there is
// none or it holds a string.
func (r *Registry) GetNumber(id uint32) uint32 {
	if d := r.lookup(id); d != nil {
		return d.value.Uint32()
	}
	return 0
}

// GetBool reports whether the value of the definition with id is non-zero.
func (r *Registry) GetBool(id uint32) bool {
	return r.GetNumber(id) != 0
}

// GetString copies the string value of the definition with id into buf,
// truncating it and always zero terminating. It returns false if buf is
// empty or no definition has id.
func (r *Registry) GetString(id uint32, buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	buf[0] = 0
	d := r.lookup(id)
	if d == nil {
		return false
	}
	if t, ok := d.value.(Text); ok {
		Storage(buf).putString(string(t))
	}
	return true
}

// String returns the string value of the definition with id.
func (r *Registry) String(id uint32) (string, bool) {
	d := r.lookup(id)
	if d == nil {
		return "", false
	}
	t, _ := d.value.(Text)
	return string(t), true
}

// Found reports whether any definition with id received a value.
func (r *Registry) Found(id uint32) bool {
	found := false
	r.each(func(d *Definition) bool {
		found = d.id == id && d.found
		return !found
	})
	return found
}
