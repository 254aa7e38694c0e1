// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scmd

import "strings"

// matchName compares a registered name against text of the same length
// using the definition's case rule.
func (d *Definition) matchName(text string) bool {
	if d.flags.IsCaseSensitive() {
		return d.name == text
	}
	return strings.EqualFold(d.name, text)
}

// findMatch returns the index of the flagged definition, at or after start,
// with the longest name that prefixes text and is at least minLength long.
// It returns -1 if there is none.
func (r *Registry) findMatch(text string, start, minLength int) int {
	best := -1
	bestLen := minLength - 1
	for i := start; i < len(r.flagged); i++ {
		d := r.flagged[i]
		n := len(d.name)
		if n <= bestLen || n > len(text) {
			continue
		}
		if d.matchName(text[:n]) {
			best, bestLen = i, n
		}
	}
	return best
}

// sameName returns the flagged definitions that match name exactly, starting
// with the one at index first.
func (r *Registry) sameName(first int, name string) []*Definition {
	defs := []*Definition{r.flagged[first]}
	for i := r.findMatch(name, first+1, len(name)); i >= 0; i = r.findMatch(name, i+1, len(name)) {
		defs = append(defs, r.flagged[i])
	}
	return defs
}

// abbreviation returns the flagged definitions whose names start with text
// when they all share one name. Text prefixing two distinct names is
// ambiguous and matches nothing.
func (r *Registry) abbreviation(text string) []*Definition {
	var defs []*Definition
	var canon string
	for _, d := range r.flagged {
		if !d.matchPrefix(text) {
			continue
		}
		folded := strings.ToLower(d.name)
		if len(defs) > 0 && folded != canon {
			return nil
		}
		canon = folded
		defs = append(defs, d)
	}
	return defs
}

func (d *Definition) matchPrefix(text string) bool {
	if d.flags.IsCaseSensitive() {
		return strings.HasPrefix(d.name, text)
	}
	return len(d.name) >= len(text) && strings.EqualFold(d.name[:len(text)], text)
}

// scanFlags processes the text of a flag token after the introducer. Each
// step matches one flag name; the characters after it are either that
// flag's value or further bundled flag names.
func (r *Registry) scanFlags(s *session, rest string) bool {
	var last string
	for step := 0; rest != ""; step++ {
		var defs []*Definition
		var consumed int
		if step == 0 {
			if defs = r.abbreviation(rest); defs != nil {
				last, consumed = defs[0].name, len(rest)
			}
		}
		for k := max(len(last), 1) - 1; defs == nil && k >= 0; k-- {
			cand := last[:k] + rest
			i := r.findMatch(cand, 0, 0)
			if i < 0 || len(r.flagged[i].name) <= k {
				continue
			}
			n := len(r.flagged[i].name)
			defs = r.sameName(i, cand[:n])
			last, consumed = cand[:n], n-k
		}
		if defs == nil {
			r.report(s, ErrorBadArgument, rest)
			return false
		}
		rest = rest[consumed:]

		if rest == "" && defs[0].flags.Kind() != KindBool {
			s.pending = defs
			return true
		}
		n, ok := r.convertAll(defs, rest)
		if !ok {
			return false
		}
		rest = rest[n:]
	}
	return true
}
