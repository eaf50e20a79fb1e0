package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// summary writes what a command produced. Labels are colored only on a
// terminal.
type summary struct {
	out   io.Writer
	color bool
}

func newSummary(out io.Writer) *summary {
	return &summary{out: out, color: isTerminal(out)}
}

type outcome int

const (
	outcomeNote outcome = iota
	outcomeDone
	outcomeWarn
)

var outcomeColors = map[outcome]text.Colors{
	outcomeNote: {text.FgBlue},
	outcomeDone: {text.FgGreen},
	outcomeWarn: {text.FgYellow, text.Bold},
}

const summaryLabelWidth = 14

func summaryLine(label string, o outcome, value string, color bool) string {
	key := fmt.Sprintf("%-*s", summaryLabelWidth, label+":")
	if color {
		key = outcomeColors[o].Sprint(key)
	}
	if value == "" {
		return strings.TrimRight(key, " ")
	}
	return key + " " + value
}

func (s *summary) line(label string, o outcome, value string) {
	fmt.Fprintln(s.out, summaryLine(label, o, value, s.color))
}

// warnings prints nothing when n is zero. The messages themselves go to
// stderr as they are reported.
func (s *summary) warnings(n int) {
	if n > 0 {
		s.line("Warnings", outcomeWarn, fmt.Sprintf("%d reported", n))
	}
}

func (s *summary) section(title string) {
	title = strings.TrimSpace(title)
	rule := strings.Repeat("─", text.RuneWidthWithoutEscSequences(title))
	if s.color {
		title = text.Colors{text.Bold}.Sprint(title)
	}
	fmt.Fprintln(s.out, title)
	fmt.Fprintln(s.out, rule)
}

// column describes one table column. Numeric columns are right-aligned.
type column struct {
	title   string
	numeric bool
}

func (s *summary) table(columns []column, rows [][]string) {
	fmt.Fprintln(s.out, renderColumns(columns, rows))
}

func renderColumns(columns []column, rows [][]string) string {
	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	tw := table.NewWriter()
	tw.SetStyle(style)
	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.title
		configs[i] = table.ColumnConfig{Number: i + 1, AlignHeader: text.AlignLeft, Align: text.AlignLeft}
		if c.numeric {
			configs[i].Align = text.AlignRight
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)
	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

// json writes v indented, for scripts consuming --json output.
func (s *summary) json(v any) error {
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
