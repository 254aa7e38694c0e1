// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scmd

import (
	"errors"
	"strings"
	"testing"
)

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		arg     Arg
		wantErr bool
	}{
		{
			name: "fifteen byte name",
			arg:  Arg{Flags: TypeBool, Name: strings.Repeat("a", 15), SetValue: 1, SetMask: 1},
		},
		{
			name:    "sixteen byte name",
			arg:     Arg{Flags: TypeBool, Name: strings.Repeat("a", 16)},
			wantErr: true,
		},
		{
			name:    "flagged without name",
			arg:     Arg{Flags: TypeString},
			wantErr: true,
		},
		{
			name: "positional without name",
			arg:  Arg{Flags: TypeString | ArgOptional},
		},
		{
			name:    "empty storage",
			arg:     Arg{Flags: TypeNumber, Name: "n", Storage: Storage{}},
			wantErr: true,
		},
		{
			name:    "bool storage too small",
			arg:     Arg{Flags: TypeBool, Name: "b", Storage: make(Storage, 3)},
			wantErr: true,
		},
		{
			name: "bool storage four bytes",
			arg:  Arg{Flags: TypeBool, Name: "b", Storage: make(Storage, 4)},
		},
		{
			name: "number storage two bytes",
			arg:  Arg{Flags: TypeNumber, Name: "n", Storage: make(Storage, 2)},
		},
		{
			name:    "unknown kind",
			arg:     Arg{Flags: 3 << 16, Name: "x"},
			wantErr: true,
		},
		{
			name:    "unknown category",
			arg:     Arg{Flags: 3 << 24, Name: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			err := r.Register(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidParameter) {
					t.Errorf("Register() error = %v, want ErrInvalidParameter", err)
				}
				if r.LastError() != ErrorInvalidParameter {
					t.Errorf("LastError() = %d, want %d", r.LastError(), ErrorInvalidParameter)
				}
				if n := len(r.Definitions()); n != 0 {
					t.Errorf("len(Definitions()) = %d, want 0", n)
				}
				return
			}
			if n := len(r.Definitions()); n != 1 {
				t.Errorf("len(Definitions()) = %d, want 1", n)
			}
		})
	}
}

func TestRegisterRequiredAfterOptional(t *testing.T) {
	r := New()
	if err := r.Register(Arg{Flags: TypeString | ArgRequired, ID: 1, Name: "src"}); err != nil {
		t.Fatalf("Register(src) error = %v", err)
	}
	if err := r.Register(Arg{Flags: TypeString | ArgOptional, ID: 2, Name: "dst"}); err != nil {
		t.Fatalf("Register(dst) error = %v", err)
	}
	err := r.Register(Arg{Flags: TypeString | ArgRequired, ID: 3, Name: "late"})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("Register(late) error = %v, want ErrInvalidParameter", err)
	}
	if n := len(r.Definitions()); n != 2 {
		t.Errorf("len(Definitions()) = %d, want 2", n)
	}

	// Flagged and optional registrations are still accepted.
	if err := r.Register(Arg{Flags: TypeBool, ID: 4, Name: "v", SetValue: 1, SetMask: 1}); err != nil {
		t.Errorf("Register(v) error = %v", err)
	}
	if err := r.Register(Arg{Flags: TypeString | ArgOptional, ID: 5}); err != nil {
		t.Errorf("Register(optional) error = %v", err)
	}
}

func TestRegisterInitialValues(t *testing.T) {
	r := New()
	mustRegister(t, r,
		Arg{Flags: TypeBool | BoolClear, ID: 1, Name: "quiet", SetValue: 5, SetMask: 7},
		Arg{Flags: TypeBool | BoolSet, ID: 2, Name: "loud", SetValue: 5, SetMask: 7},
		Arg{Flags: TypeNumber, ID: 3, Name: "n"},
		Arg{Flags: TypeString, ID: 4, Name: "s"},
	)

	if got := r.GetNumber(1); got != 5 {
		t.Errorf("GetNumber(quiet) = %d, want 5", got)
	}
	if got := r.GetNumber(2); got != 0 {
		t.Errorf("GetNumber(loud) = %d, want 0", got)
	}
	if got := r.GetNumber(3); got != 0 {
		t.Errorf("GetNumber(n) = %d, want 0", got)
	}
	if got, ok := r.String(4); !ok || got != "" {
		t.Errorf("String(s) = %q, %v; want \"\", true", got, ok)
	}
	for _, d := range r.Definitions() {
		if d.Found() {
			t.Errorf("%s: Found() = true before parsing", d.Name())
		}
	}
}

func TestRegisterBatch(t *testing.T) {
	r := New()
	err := r.RegisterBatch([]ListEntry{
		{Flags: TypeBool, ID: 1, Name: "one"},
		{Flags: TypeBool | ArgRequired, ID: 2, Name: "two"},
		{Flags: TypeBool, ID: 3, Name: strings.Repeat("x", 16)},
		{Flags: TypeBool, ID: 4, Name: "four"},
	})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("RegisterBatch() error = %v, want ErrInvalidParameter", err)
	}

	defs := r.Definitions()
	if len(defs) != 2 {
		t.Fatalf("len(Definitions()) = %d, want 2 (no rollback, stop at failure)", len(defs))
	}
	for _, d := range defs {
		if d.Flags().Category() != CategoryFlagged {
			t.Errorf("%s: Category() = %v, want flagged", d.Name(), d.Flags().Category())
		}
	}

	if !r.Process("-one -two", false, nil, nil) {
		t.Fatal("Process() = false, want true")
	}
	if !r.GetBool(1) || !r.GetBool(2) {
		t.Errorf("GetBool(1), GetBool(2) = %v, %v; want true, true", r.GetBool(1), r.GetBool(2))
	}
	if got := r.GetNumber(1); got != 1 {
		t.Errorf("GetNumber(1) = %d, want 1", got)
	}
}

func TestFlagsAccessors(t *testing.T) {
	f := TypeNumber | NumSigned | ArgOptional | CaseSensitive
	if f.Kind() != KindNumber {
		t.Errorf("Kind() = %v, want number", f.Kind())
	}
	if !f.Signed() {
		t.Error("Signed() = false, want true")
	}
	if f.Category() != CategoryOptional {
		t.Errorf("Category() = %v, want optional", f.Category())
	}
	if !f.IsCaseSensitive() {
		t.Error("IsCaseSensitive() = false, want true")
	}
	if (TypeBool | BoolClear).ClearByDefault() != true {
		t.Error("ClearByDefault() = false, want true")
	}
	if TypeString.Kind().String() != "string" || ArgRequired.Category().String() != "required" {
		t.Errorf("String() = %q, %q", TypeString.Kind(), ArgRequired.Category())
	}
}

func mustRegister(t *testing.T, r *Registry, args ...Arg) {
	t.Helper()
	for _, a := range args {
		if err := r.Register(a); err != nil {
			t.Fatalf("Register(%q) error = %v", a.Name, err)
		}
	}
}
