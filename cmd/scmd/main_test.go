// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/scmd/pkg/respfile"
)

const toolManifest = `
[[arg]]
id = 1
type = "string"
category = "required"

[[arg]]
name = "verbose"
id = 2
type = "bool"

[[arg]]
name = "level"
id = 3
type = "number"
signed = true
max = 5
`

// runCLI runs the command with captured output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, &errOut
	defer func() { stdout, stderr = oldOut, oldErr }()
	err := run(context.Background(), args)
	return out.String(), errOut.String(), err
}

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool.toml")
	if err := os.WriteFile(path, []byte(toolManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseJSON(t *testing.T) {
	path := writeManifest(t)
	out, _, err := runCLI(t, "parse", "-m", path, "--format", "json", "--", "in.txt", "-verbose", "-level-2", "surplus")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var got struct {
		Values []struct {
			Name  string `json:"name"`
			Found bool   `json:"found"`
			Value any    `json:"value"`
		} `json:"values"`
		Extra []string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad json %q: %v", out, err)
	}
	if len(got.Values) != 3 {
		t.Fatalf("values = %d, want 3", len(got.Values))
	}
	if got.Values[0].Value != "in.txt" || got.Values[1].Value != true || got.Values[2].Value != float64(-2) {
		t.Errorf("values = %+v", got.Values)
	}
	if diff := cmp.Diff([]string{"surplus"}, got.Extra); diff != "" {
		t.Errorf("extra mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEnv(t *testing.T) {
	path := writeManifest(t)
	out, _, err := runCLI(t, "parse", "-m", path, "--format", "env", "--line", "tool.exe in.txt -v", "--skip-first")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "SCMD_ARG_1=in.txt\nSCMD_VERBOSE=true\nSCMD_LEVEL=0\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestParseEnvFile(t *testing.T) {
	path := writeManifest(t)
	envPath := filepath.Join(t.TempDir(), "tool.env")
	if _, _, err := runCLI(t, "parse", "-m", path, "--env-file", envPath, "--no-color", "--", "in file.txt", "-level", "3"); err != nil {
		t.Fatalf("run: %v", err)
	}
	got, err := os.ReadFile(envPath)
	if err != nil {
		t.Fatal(err)
	}
	want := "SCMD_ARG_1=\"in file.txt\"\nSCMD_VERBOSE=false\nSCMD_LEVEL=3\n"
	if string(got) != want {
		t.Errorf("env file = %q, want %q", got, want)
	}
}

func TestParseEnvLinkedCaseVariants(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linked.toml")
	manifest := `
[[arg]]
name = "verbose"
id = 1
type = "bool"
case_sensitive = true

[[arg]]
name = "Verbose"
id = 1
type = "bool"
case_sensitive = true
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLI(t, "parse", "-m", path, "--format", "env", "--", "-Verbose")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if want := "SCMD_VERBOSE=true\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestParseText(t *testing.T) {
	path := writeManifest(t)
	out, _, err := runCLI(t, "parse", "-m", path, "--no-color", "--", "in.txt")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("output has %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.Contains(lines[1], "in.txt") || !strings.Contains(lines[2], "no") {
		t.Errorf("unexpected table:\n%s", out)
	}
}

func TestParseErrors(t *testing.T) {
	path := writeManifest(t)
	tests := []struct {
		name    string
		tokens  []string
		wantErr string
	}{
		{name: "bad flag", tokens: []string{"in.txt", "-zz"}, wantErr: "Invalid argument: zz"},
		{name: "missing required", tokens: []string{"-verbose"}, wantErr: "The syntax of the command is incorrect."},
		{name: "validator", tokens: []string{"in.txt", "-level", "9"}, wantErr: `level: invalid value "9"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"parse", "-m", path, "--format", "json", "--"}, tt.tokens...)
			_, errOut, err := runCLI(t, args...)
			if !errors.Is(err, errReported) {
				t.Fatalf("run error = %v, want errReported", err)
			}
			if !strings.Contains(errOut, tt.wantErr) {
				t.Errorf("stderr = %q, want %q", errOut, tt.wantErr)
			}
		})
	}
}

func TestPackAndParseResponseFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "args.txt")
	dst := filepath.Join(dir, "args.rsp")
	if err := os.WriteFile(src, []byte("in.txt\n-verbose\n-level 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, "pack", "--encoding", "gzip", src, dst); err != nil {
		t.Fatalf("pack: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if enc := respfile.Encoding(data); enc != "gzip" {
		t.Fatalf("packed encoding = %q, want gzip", enc)
	}
	if _, _, err := runCLI(t, "pack", dst, filepath.Join(dir, "again.rsp")); err == nil {
		t.Error("packing a compressed file succeeded")
	}

	path := writeManifest(t)
	out, _, err := runCLI(t, "parse", "-m", path, "--format", "env", "--", "@"+dst)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := "SCMD_ARG_1=in.txt\nSCMD_VERBOSE=true\nSCMD_LEVEL=4\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestCheck(t *testing.T) {
	path := writeManifest(t)
	out, _, err := runCLI(t, "check", "-m", path, "--format", "yaml")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, want := range []string{"name: verbose", "category: required", "found: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("arg:\n  - {id: 1, name: waytoolongforaname, type: bool}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, "check", "-m", bad); err == nil {
		t.Error("check accepted a 17 byte name")
	}
}

func TestCheckSeveral(t *testing.T) {
	first := writeManifest(t)
	second := filepath.Join(t.TempDir(), "other.yaml")
	if err := os.WriteFile(second, []byte("arg:\n  - {id: 9, name: out, type: string}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLI(t, "check", "--manifest", first, "--manifest", second, "--format", "json")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	var got []struct {
		Manifest string `json:"manifest"`
		Values   []struct {
			Name string `json:"name"`
		} `json:"values"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad json %q: %v", out, err)
	}
	if len(got) != 2 || got[0].Manifest != first || got[1].Manifest != second {
		t.Fatalf("reports = %+v", got)
	}
	if len(got[0].Values) != 3 || len(got[1].Values) != 1 || got[1].Values[0].Name != "out" {
		t.Errorf("values = %+v", got)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "scmd dev (go") {
		t.Errorf("version = %q", out)
	}
}

func TestCutDoubleDash(t *testing.T) {
	head, tail, found := cutDoubleDash([]string{"parse", "-m", "x", "--", "-h", "--"})
	if !found || !cmp.Equal(head, []string{"parse", "-m", "x"}) || !cmp.Equal(tail, []string{"-h", "--"}) {
		t.Errorf("cutDoubleDash = %q, %q, %v", head, tail, found)
	}
	if _, _, found := cutDoubleDash([]string{"version"}); found {
		t.Error("cutDoubleDash found a separator in [version]")
	}
}
