// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yeetrun/scmd/pkg/cli"
	"github.com/yeetrun/scmd/pkg/env"
	"github.com/yeetrun/scmd/pkg/manifest"
	"github.com/yeetrun/scmd/pkg/tui"
	"gopkg.in/yaml.v3"
)

const envPrefix = "SCMD_"

type report struct {
	Values []manifest.Result `json:"values" yaml:"values"`
	Extra  []string          `json:"extra,omitempty" yaml:"extra,omitempty"`
	Errors []string          `json:"errors,omitempty" yaml:"errors,omitempty"`
}

type checkReport struct {
	Manifest string            `json:"manifest" yaml:"manifest"`
	Values   []manifest.Result `json:"values" yaml:"values"`
}

func colorizer(noColor bool) tui.Colorizer {
	f, _ := stdout.(*os.File)
	return tui.ColorizerFor(f, !noColor)
}

func writeReport(w io.Writer, format string, c tui.Colorizer, rep report) error {
	switch format {
	case cli.FormatJSON, cli.FormatYAML:
		return writeStructured(w, format, rep)
	case cli.FormatEnv:
		return env.Marshal(w, envVars(rep))
	case cli.FormatText, "":
		return writeText(w, c, rep)
	}
	return fmt.Errorf("unsupported format %q", format)
}

func writeCheck(w io.Writer, format string, c tui.Colorizer, reports []checkReport) error {
	if format != cli.FormatText && format != "" {
		return writeStructured(w, format, reports)
	}
	for i, cr := range reports {
		if len(reports) > 1 {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, c.Paint(tui.Yellow, cr.Manifest)); err != nil {
				return err
			}
		}
		if err := writeText(w, c, report{Values: cr.Values}); err != nil {
			return err
		}
	}
	return nil
}

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case cli.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case cli.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", format)
}

// envVars renders the report as env variables. Names that differ only in
// case or punctuation share a key; the first of them wins.
func envVars(rep report) []env.Var {
	vars := make([]env.Var, 0, len(rep.Values)+1)
	seen := make(map[string]bool, len(rep.Values))
	for _, v := range rep.Values {
		name := v.Name
		if name == "" {
			name = "ARG_" + strconv.FormatUint(uint64(v.ID), 10)
		}
		key := env.Key(envPrefix, name)
		if seen[key] {
			continue
		}
		seen[key] = true
		vars = append(vars, env.Var{Key: key, Value: fmt.Sprint(v.Value)})
	}
	if len(rep.Extra) > 0 {
		vars = append(vars, env.Var{Key: envPrefix + "EXTRA", Value: strings.Join(rep.Extra, " ")})
	}
	return vars
}

func writeText(w io.Writer, c tui.Colorizer, rep report) error {
	rows := make([]tui.Row, 0, len(rep.Values))
	for _, v := range rep.Values {
		name := v.Name
		if name == "" {
			name = "#" + strconv.FormatUint(uint64(v.ID), 10)
		}
		found, style := "no", tui.Dim
		if v.Found {
			found, style = "yes", tui.Green
		}
		rows = append(rows, tui.Row{
			Cells: []string{name, strconv.FormatUint(uint64(v.ID), 10), v.Type, v.Category, found, fmt.Sprint(v.Value)},
			Style: style,
		})
	}
	if err := tui.WriteTable(w, c, []string{"NAME", "ID", "TYPE", "CATEGORY", "FOUND", "VALUE"}, rows); err != nil {
		return err
	}
	for _, tok := range rep.Extra {
		if _, err := fmt.Fprintln(w, c.Paint(tui.Yellow, "extra: "+tok)); err != nil {
			return err
		}
	}
	return nil
}
