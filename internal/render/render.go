// Package render prints report documents as plain text tables.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"salesstats/internal/report"
)

// BannerWidth is the width of the "=" line around each report title.
const BannerWidth = 80

const columnGap = "  "

// Renderer writes documents to w.
type Renderer struct {
	w io.Writer
}

func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Documents renders each document in turn and stops at the first write error.
func (r *Renderer) Documents(docs []report.Document) error {
	for _, doc := range docs {
		if err := r.Document(doc); err != nil {
			return err
		}
	}
	return nil
}

// Document renders the banner, the title and one table per section.
func (r *Renderer) Document(doc report.Document) error {
	var b strings.Builder
	banner := strings.Repeat("=", BannerWidth)
	b.WriteString(banner + "\n")
	b.WriteString(doc.Title + "\n")
	b.WriteString(banner + "\n")
	for _, sec := range doc.Sections {
		if sec.Title != "" {
			b.WriteString(sec.Title + "\n")
		}
		writeTable(&b, sec.Headers, sec.Rows)
		b.WriteString("\n")
	}
	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return fmt.Errorf("write %s report: %w", doc.Kind, err)
	}
	return nil
}

// Table returns headers and rows as an aligned table with a dashed rule under the header.
func Table(headers []string, rows [][]string) string {
	var b strings.Builder
	writeTable(&b, headers, rows)
	return b.String()
}

func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	cols := len(headers)
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return
	}

	widths := make([]int, cols)
	numeric := make([]bool, cols)
	for c := 0; c < cols; c++ {
		widths[c] = utf8.RuneCountInString(cell(headers, c))
		numeric[c] = len(rows) > 0
		for _, row := range rows {
			v := cell(row, c)
			if n := utf8.RuneCountInString(v); n > widths[c] {
				widths[c] = n
			}
			if !isNumber(v) {
				numeric[c] = false
			}
		}
	}

	line := func(cells []string) {
		parts := make([]string, cols)
		for c := 0; c < cols; c++ {
			parts[c] = pad(cell(cells, c), widths[c], numeric[c])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, columnGap), " ") + "\n")
	}

	line(headers)
	rule := make([]string, cols)
	for c := range rule {
		rule[c] = strings.Repeat("-", widths[c])
	}
	b.WriteString(strings.Join(rule, columnGap) + "\n")
	for _, row := range rows {
		line(row)
	}
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func pad(s string, width int, right bool) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
