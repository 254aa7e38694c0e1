// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"encoding/hex"

	"github.com/yeetrun/scmd/pkg/scmd"
)

// Result is the parsed state of one manifest entry.
type Result struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	ID       uint32 `json:"id" yaml:"id"`
	Type     string `json:"type" yaml:"type"`
	Category string `json:"category" yaml:"category"`
	Found    bool   `json:"found" yaml:"found"`
	// Value is a bool, int32, uint32 or string depending on Type.
	Value any `json:"value" yaml:"value"`
	// Storage is the hex encoded bound storage, if any.
	Storage string `json:"storage,omitempty" yaml:"storage,omitempty"`
}

// Results reports the current value of every entry, in manifest order.
func (b *Binding) Results() []Result {
	defs := b.r.Definitions()
	out := make([]Result, 0, len(b.m.Args))
	for i := range b.m.Args {
		a := &b.m.Args[i]
		flags, err := a.Flags()
		if err != nil {
			continue
		}
		d := find(defs, a, flags)
		if d == nil {
			// Not registered; Register stopped before this entry.
			continue
		}
		res := Result{
			Name:     a.Name,
			ID:       a.ID,
			Type:     flags.Kind().String(),
			Category: flags.Category().String(),
			Found:    d.Found(),
		}
		switch v := d.Value().(type) {
		case scmd.Text:
			res.Value = string(v)
		case scmd.Bits:
			switch {
			case flags.Kind() == scmd.KindBool:
				res.Value = v != 0
			case flags.Signed():
				res.Value = int32(v)
			default:
				res.Value = uint32(v)
			}
		}
		if st := b.Storage[i]; st != nil {
			res.Storage = hex.EncodeToString(st)
		}
		out = append(out, res)
	}
	return out
}

func find(defs []*scmd.Definition, a *Arg, flags scmd.Flags) *scmd.Definition {
	for _, d := range defs {
		if d.ID() == a.ID && d.Name() == a.Name && d.Flags() == flags {
			return d
		}
	}
	return nil
}
