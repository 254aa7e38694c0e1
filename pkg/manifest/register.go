// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"fmt"

	"github.com/yeetrun/scmd/pkg/scmd"
)

// Binding ties the entries of a manifest to the registry they were
// registered with.
type Binding struct {
	m *Manifest
	r *scmd.Registry

	// Storage holds the buffer bound to each entry, in manifest order. It is
	// nil for entries without storage_bytes.
	Storage []scmd.Storage
	// Rejected lists the values validators refused during parsing.
	Rejected []Rejection
}

// Register adds every entry of m to r in manifest order. It stops at the
// first entry the registry refuses; earlier entries stay registered.
func (m *Manifest) Register(r *scmd.Registry) (*Binding, error) {
	b := &Binding{m: m, r: r, Storage: make([]scmd.Storage, len(m.Args))}
	for i := range m.Args {
		a := &m.Args[i]
		flags, err := a.Flags()
		if err != nil {
			return b, fmt.Errorf("arg %d (%s): %w", i, a.Label(), err)
		}
		cb, err := a.callback(&b.Rejected)
		if err != nil {
			return b, fmt.Errorf("arg %d (%s): %w", i, a.Label(), err)
		}
		if a.StorageBytes > 0 {
			b.Storage[i] = make(scmd.Storage, a.StorageBytes)
		}
		err = r.Register(scmd.Arg{
			Flags:    flags,
			ID:       a.ID,
			Name:     a.Name,
			Storage:  b.Storage[i],
			SetValue: a.setValue(),
			SetMask:  a.setMask(),
			Callback: cb,
		})
		if err != nil {
			b.Storage[i] = nil
			return b, fmt.Errorf("arg %d (%s): %w", i, a.Label(), err)
		}
	}
	return b, nil
}

// Reset clears the recorded rejections before another parse.
func (b *Binding) Reset() {
	b.Rejected = b.Rejected[:0]
}
