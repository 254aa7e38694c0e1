// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scmd

import (
	"fmt"
	"log/slog"

	"github.com/yeetrun/scmd/pkg/respfile"
)

// MaxNameLen is the exclusive upper bound on definition name length.
const MaxNameLen = 16

// Params is passed to a ParamsFunc after a value has been converted.
type Params struct {
	Flags    Flags
	ID       uint32
	Name     string
	Storage  Storage
	SetValue uint32
	SetMask  uint32
	// Value is the converted integer value. It is zero for strings.
	Value uint32
	// String is the converted string value. It is empty for bools and
	// numbers.
	String string
}

// ParamsFunc validates a converted value. raw is the text the value was
// converted from. Returning false fails the conversion and stops parsing.
type ParamsFunc func(p *Params, raw string) bool

// Arg describes a definition to register.
type Arg struct {
	Flags Flags
	ID    uint32
	Name  string
	// Storage, when non-nil, receives a copy of every converted value.
	// Bool definitions require exactly four bytes.
	Storage  Storage
	SetValue uint32
	SetMask  uint32
	Callback ParamsFunc
}

// ListEntry is one entry of a RegisterBatch call.
type ListEntry struct {
	Flags    Flags
	ID       uint32
	Name     string
	Callback ParamsFunc
}

// Definition is a registered argument or flag.
type Definition struct {
	flags    Flags
	id       uint32
	name     string
	setValue uint32
	setMask  uint32
	storage  Storage
	callback ParamsFunc
	value    Value
	owned    bool
	found    bool
}

func (d *Definition) ID() uint32 { return d.id }
func (d *Definition) Name() string { return d.name }
func (d *Definition) Flags() Flags { return d.flags }

// Found reports whether a value has been converted into d, directly or
// through a linked definition.
func (d *Definition) Found() bool { return d.found }

// Value returns the current value of d.
func (d *Definition) Value() Value { return d.value }

// Registry holds the positional and flagged definitions of a program.
// A Registry is not safe for concurrent use.
type Registry struct {
	positional []*Definition
	flagged    []*Definition

	addedOptional bool
	lastErr       ErrorCode

	fs     FileSystem
	alloc  Allocator
	logger *slog.Logger
}

// FileSystem reads response files.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
}

// Option configures a Registry.
type Option func(*Registry)

// WithFileSystem sets the file system used to read response files.
func WithFileSystem(fs FileSystem) Option {
	return func(r *Registry) { r.fs = fs }
}

// WithAllocator sets the allocator that owns string values.
func WithAllocator(a Allocator) Option {
	return func(r *Registry) { r.alloc = a }
}

// WithLogger sets the logger used for debug records.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// New returns an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		fs:     respfile.OS{},
		alloc:  heapAllocator{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LastError returns the code of the most recent registration failure or
// reported parse error.
func (r *Registry) LastError() ErrorCode {
	return r.lastErr
}

func (r *Registry) invalid(format string, args ...any) error {
	r.lastErr = ErrorInvalidParameter
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}

// Register adds a definition. Flagged definitions are matched by name;
// optional and required definitions are filled by position, in registration
// order. All required positionals must be registered before the first
// optional positional.
func (r *Registry) Register(a Arg) error {
	if len(a.Name) >= MaxNameLen {
		return r.invalid("name %q is %d bytes, must be shorter than %d", a.Name, len(a.Name), MaxNameLen)
	}
	if a.Storage != nil && len(a.Storage) == 0 {
		return r.invalid("storage for %q has no capacity", a.Name)
	}
	kind, cat := a.Flags.Kind(), a.Flags.Category()
	if kind == kindInvalid {
		return r.invalid("%q has an unknown value kind", a.Name)
	}
	if cat == categoryInvalid {
		return r.invalid("%q has an unknown category", a.Name)
	}
	if cat == CategoryRequired && r.addedOptional {
		return r.invalid("required argument %q registered after an optional argument", a.Name)
	}
	if cat == CategoryFlagged && a.Name == "" {
		return r.invalid("flagged argument needs a name")
	}
	if kind == KindBool && a.Storage != nil && len(a.Storage) != 4 {
		return r.invalid("bool storage for %q is %d bytes, want 4", a.Name, len(a.Storage))
	}

	d := &Definition{
		flags:    a.Flags,
		id:       a.ID,
		name:     a.Name,
		setValue: a.SetValue,
		setMask:  a.SetMask,
		storage:  a.Storage,
		callback: a.Callback,
	}
	switch {
	case kind == KindString:
		d.value = Text("")
	case kind == KindBool && a.Flags.ClearByDefault():
		d.value = Bits(a.SetValue)
	default:
		d.value = Bits(0)
	}

	if cat == CategoryFlagged {
		r.flagged = append(r.flagged, d)
	} else {
		r.positional = append(r.positional, d)
	}
	if cat == CategoryOptional {
		r.addedOptional = true
	}
	r.logger.Debug("registered argument", "name", a.Name, "id", a.ID, "kind", kind, "category", cat)
	return nil
}

// RegisterBatch registers each entry as a flagged definition with a set
// value of 1 and a full set mask. It stops at the first failing entry;
// entries registered before it stay registered.
func (r *Registry) RegisterBatch(entries []ListEntry) error {
	for i, e := range entries {
		err := r.Register(Arg{
			Flags:    e.Flags &^ argMask,
			ID:       e.ID,
			Name:     e.Name,
			SetValue: 1,
			SetMask:  0xFFFFFFFF,
			Callback: e.Callback,
		})
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// Definitions returns the registered definitions, positional ones first.
func (r *Registry) Definitions() []*Definition {
	out := make([]*Definition, 0, len(r.positional)+len(r.flagged))
	out = append(out, r.positional...)
	return append(out, r.flagged...)
}

// Close releases every string value owned by the registry's definitions.
// Values read after Close are empty.
func (r *Registry) Close() {
	for _, d := range r.Definitions() {
		if t, ok := d.value.(Text); ok && d.owned {
			r.alloc.Release(string(t))
			d.value = Text("")
			d.owned = false
		}
	}
}

// each calls fn for every definition, positional ones first, until fn
// returns false.
func (r *Registry) each(fn func(*Definition) bool) {
	for _, list := range [2][]*Definition{r.positional, r.flagged} {
		for _, d := range list {
			if !fn(d) {
				return
			}
		}
	}
}
