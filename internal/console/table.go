package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical, cross                string
	tLeft, tRight, tTop, tBottom               string
}

var (
	lineBorder  = borderChars{"┌", "┐", "└", "┘", "─", "│", "┼", "├", "┤", "┬", "┴"}
	asciiBorder = borderChars{"+", "+", "+", "+", "-", "|", "+", "|", "|", "+", "+"}
)

// PrintTable prints a table with the given headers and data to stdout.
// data should be a flat list of strings, length must be a multiple of len(headers).
func PrintTable(headers []string, data []string, useLineChars bool) {
	FprintTable(os.Stdout, headers, data, useLineChars)
}

// FprintTable writes the table to w.
func FprintTable(w io.Writer, headers []string, data []string, useLineChars bool) {
	cols := len(headers)
	if cols == 0 {
		return
	}

	colWidths := make([]int, cols)
	for i, h := range headers {
		colWidths[i] = max(colWidths[i], utf8.RuneCountInString(Strip(h)))
	}
	for i, d := range data {
		col := i % cols
		colWidths[col] = max(colWidths[col], utf8.RuneCountInString(Strip(d)))
	}

	cs := asciiBorder
	if useLineChars {
		cs = lineBorder
	}

	var top, middle, bottom strings.Builder
	top.WriteString(cs.topLeft)
	middle.WriteString(cs.tLeft)
	bottom.WriteString(cs.bottomLeft)
	for i, width := range colWidths {
		dashes := strings.Repeat(cs.horizontal, width+2)
		top.WriteString(dashes)
		middle.WriteString(dashes)
		bottom.WriteString(dashes)
		if i < cols-1 {
			top.WriteString(cs.tTop)
			middle.WriteString(cs.cross)
			bottom.WriteString(cs.tBottom)
		} else {
			top.WriteString(cs.topRight)
			middle.WriteString(cs.tRight)
			bottom.WriteString(cs.bottomRight)
		}
	}

	printRow := func(rowItems []string) {
		var row strings.Builder
		row.WriteString(cs.vertical)
		for i, item := range rowItems {
			padding := colWidths[i] - utf8.RuneCountInString(Strip(item))
			row.WriteString(" ")
			row.WriteString(item)
			row.WriteString(strings.Repeat(" ", padding))
			row.WriteString(" ")
			row.WriteString(cs.vertical)
		}
		fmt.Fprintln(w, ToANSI(row.String()))
	}

	fmt.Fprintln(w, top.String())
	printRow(headers)
	fmt.Fprintln(w, middle.String())
	for i := 0; i < len(data); i += cols {
		rowSlice := data[i:min(i+cols, len(data))]
		if len(rowSlice) < cols {
			filled := make([]string, cols)
			copy(filled, rowSlice)
			rowSlice = filled
		}
		printRow(rowSlice)
	}
	fmt.Fprintln(w, bottom.String())
}
