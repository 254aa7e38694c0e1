// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Row is one table line. Style is applied to every cell.
type Row struct {
	Cells []string
	Style Style
}

// WriteTable writes header and rows as space padded columns. Padding is
// computed on the plain text so colored and plain rows line up.
func WriteTable(w io.Writer, c Colorizer, header []string, rows []Row) error {
	widths := make([]int, len(header))
	measure := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	measure(header)
	for _, r := range rows {
		measure(r.Cells)
	}

	line := func(cells []string, style Style) error {
		var b strings.Builder
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("   ")
			}
			if i < len(cells)-1 {
				cell += strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
			}
			b.WriteString(c.Paint(style, cell))
		}
		_, err := fmt.Fprintln(w, b.String())
		return err
	}
	if err := line(header, Dim); err != nil {
		return err
	}
	for _, r := range rows {
		if err := line(r.Cells, r.Style); err != nil {
			return err
		}
	}
	return nil
}
