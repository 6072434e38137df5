package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// printer writes formatted lines and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) line(s string) { p.printf("%s\n", s) }

func (p *printer) blank() { p.printf("\n") }

func (p *printer) title(s string) {
	p.line(s)
	p.line(strings.Repeat("=", len([]rune(s))))
}

func (p *printer) section(s string) {
	p.blank()
	p.printf("── %s ──\n", s)
}

// grid lays out rows of cells in aligned columns.
func (p *printer) grid(indent string, rows [][]string) {
	if p.err != nil || len(rows) == 0 {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s%s\n", indent, strings.Join(row, "\t")); err != nil {
			p.err = err
			return
		}
	}
	p.err = tw.Flush()
}

// chunk splits cells into rows of at most n.
func chunk(cells []string, n int) [][]string {
	var rows [][]string
	for len(cells) > n {
		rows = append(rows, cells[:n])
		cells = cells[n:]
	}
	if len(cells) > 0 {
		rows = append(rows, cells)
	}
	return rows
}

// number formats a display value without a trailing ".0".
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatSuccessRate renders a success rate with one decimal place.
func FormatSuccessRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64) + "%"
}
