// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifest loads declarative argument definitions from TOML or YAML
// files and registers them with an scmd.Registry.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/scmd/pkg/scmd"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a manifest file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks the manifest format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("unsupported manifest extension %q", filepath.Ext(path))
}

// Manifest is an ordered list of argument definitions.
type Manifest struct {
	Args []Arg `toml:"arg" yaml:"arg"`
}

// Arg is one definition in a manifest.
type Arg struct {
	Name string `toml:"name,omitempty" yaml:"name,omitempty"`
	ID   uint32 `toml:"id" yaml:"id"`
	// Type is bool, number or string.
	Type string `toml:"type" yaml:"type"`
	// Default is the bool polarity, set (the default) or clear.
	Default string `toml:"default,omitempty" yaml:"default,omitempty"`
	Signed  bool   `toml:"signed,omitempty" yaml:"signed,omitempty"`
	// Category is flagged (the default), optional or required.
	Category      string `toml:"category,omitempty" yaml:"category,omitempty"`
	CaseSensitive bool   `toml:"case_sensitive,omitempty" yaml:"case_sensitive,omitempty"`
	// SetValue and SetMask default to 1 and 0xFFFFFFFF.
	SetValue     *uint32 `toml:"set_value,omitempty" yaml:"set_value,omitempty"`
	SetMask      *uint32 `toml:"set_mask,omitempty" yaml:"set_mask,omitempty"`
	StorageBytes int     `toml:"storage_bytes,omitempty" yaml:"storage_bytes,omitempty"`

	// Validate names a value check: semver or nonempty.
	Validate string `toml:"validate,omitempty" yaml:"validate,omitempty"`
	// Constraint is a semver range the value must satisfy.
	Constraint string `toml:"constraint,omitempty" yaml:"constraint,omitempty"`
	Min        *int64 `toml:"min,omitempty" yaml:"min,omitempty"`
	Max        *int64 `toml:"max,omitempty" yaml:"max,omitempty"`
}

// Label returns the name of a flagged argument, or a positional marker.
func (a *Arg) Label() string {
	if a.Name != "" {
		return a.Name
	}
	return fmt.Sprintf("#%d", a.ID)
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest and validates every entry. Unknown keys are
// rejected.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %v", format)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the entries for settings the registry cannot express.
// Constraints the registry enforces itself, such as name length, are left
// to registration.
func (m *Manifest) Validate() error {
	for i := range m.Args {
		a := &m.Args[i]
		if _, err := a.Flags(); err != nil {
			return fmt.Errorf("arg %d (%s): %w", i, a.Label(), err)
		}
		if err := a.checkValidators(); err != nil {
			return fmt.Errorf("arg %d (%s): %w", i, a.Label(), err)
		}
		if a.StorageBytes < 0 {
			return fmt.Errorf("arg %d (%s): negative storage_bytes", i, a.Label())
		}
	}
	return nil
}

// Flags returns the packed registry flags for a.
func (a *Arg) Flags() (scmd.Flags, error) {
	var f scmd.Flags
	switch a.Type {
	case "bool":
		f = scmd.TypeBool
		switch a.Default {
		case "", "set":
			f |= scmd.BoolSet
		case "clear":
			f |= scmd.BoolClear
		default:
			return 0, fmt.Errorf("unknown bool default %q", a.Default)
		}
	case "number":
		f = scmd.TypeNumber
		if a.Signed {
			f |= scmd.NumSigned
		}
	case "string":
		f = scmd.TypeString
	default:
		return 0, fmt.Errorf("unknown type %q", a.Type)
	}
	if a.Default != "" && a.Type != "bool" {
		return 0, fmt.Errorf("default applies to bool arguments only")
	}
	if a.Signed && a.Type != "number" {
		return 0, fmt.Errorf("signed applies to number arguments only")
	}

	switch a.Category {
	case "", "flagged":
		f |= scmd.ArgFlagged
	case "optional":
		f |= scmd.ArgOptional
	case "required":
		f |= scmd.ArgRequired
	default:
		return 0, fmt.Errorf("unknown category %q", a.Category)
	}
	if a.CaseSensitive {
		f |= scmd.CaseSensitive
	}
	return f, nil
}

func (a *Arg) setValue() uint32 {
	if a.SetValue != nil {
		return *a.SetValue
	}
	return 1
}

func (a *Arg) setMask() uint32 {
	if a.SetMask != nil {
		return *a.SetMask
	}
	return 0xFFFFFFFF
}
