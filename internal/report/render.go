package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"judder/internal/cadence"
	"judder/internal/framerate"
)

const ansiReset = "\x1b[0m"

// ShouldColorize reports whether writer is a terminal.
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Strip renders one cell per frame: a coloured block on terminals, the
// kind's letter otherwise.
func Strip(line Line, colorize bool) string {
	var b strings.Builder
	for _, f := range line.Frames {
		if colorize {
			r, g, bl := f.Classification.Color.RGB()
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm█", r, g, bl)
			continue
		}
		b.WriteByte(kindLetter(f.Classification.Kind))
	}
	if colorize && len(line.Frames) > 0 {
		b.WriteString(ansiReset)
	}
	return b.String()
}

// Legend explains the letters used by uncoloured strips.
func Legend() string {
	parts := make([]string, 0, len(cadence.Kinds()))
	for _, k := range cadence.Kinds() {
		parts = append(parts, fmt.Sprintf("%c=%s", kindLetter(k), k))
	}
	return strings.Join(parts, " ")
}

func kindLetter(k cadence.Kind) byte {
	switch k {
	case cadence.Exact:
		return 'E'
	case cadence.Doubled:
		return 'D'
	case cadence.Skipped:
		return 'S'
	case cadence.Partial:
		return 'P'
	default:
		return 'U'
	}
}

// FrameTable renders one row per frame with its boundaries and outcome.
func FrameTable(line Line) string {
	columns := []Column{
		{Header: "Frame", Right: true},
		{Header: "Start", Right: true},
		{Header: "End", Right: true},
		{Header: "Ref frames", Right: true},
		{Header: "Starts exact"},
		{Header: "Ends exact"},
		{Header: "Kind"},
		{Header: "Rule"},
		{Header: "Color"},
	}
	rows := make([][]string, 0, len(line.Frames))
	for _, f := range line.Frames {
		a := f.Alignment
		rows = append(rows, []string{
			strconv.Itoa(f.Index),
			FormatMillis(a.FrameStart),
			FormatMillis(a.FrameEnd),
			fmt.Sprintf("%d-%d", a.RefStartFrame, a.RefEndFrame),
			yesNo(a.StartsExact),
			yesNo(a.EndsExact),
			f.Classification.Kind.String(),
			f.Classification.Rule,
			f.Classification.Color.String(),
		})
	}
	tw := newTable(columns, rows)
	tw.SetCaption("rules, first match wins: %s", strings.Join(cadence.Rules(), " > "))
	return tw.Render()
}

// SummaryTable renders per-kind counts for each line.
func SummaryTable(lines []Line) string {
	columns := []Column{{Header: "Display"}, {Header: "Frames", Right: true}}
	for _, k := range cadence.Kinds() {
		columns = append(columns, Column{Header: k.String(), Right: true})
	}
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		row := []string{line.Label(), strconv.Itoa(line.Summary.Total())}
		for _, k := range cadence.Kinds() {
			row = append(row, strconv.Itoa(line.Summary[k]))
		}
		rows = append(rows, row)
	}
	return Table(columns, rows)
}

// MatrixStrips renders one labelled strip per line, aligned on the label.
func MatrixStrips(lines []Line, colorize bool) string {
	width := 0
	for _, line := range lines {
		if n := len(framerate.Format(line.DisplayFPS)); n > width {
			width = n
		}
	}
	var b strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&b, "%*s │%s\n", width, framerate.Format(line.DisplayFPS), Strip(line, colorize))
	}
	return b.String()
}

// Column describes one table column. Headers are title cased on render.
type Column struct {
	Header string
	Right  bool
}

// Table renders rows with the rounded box style. Short rows are padded.
func Table(columns []Column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}
	return newTable(columns, rows).Render()
}

func newTable(columns []Column, rows [][]string) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatTitle

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.Header
		align := text.AlignLeft
		if col.Right {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}
	return tw
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
