package reporters

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"
)

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

import (
	"github.com/timtadh/maxsets/types/itemset"
)

const exampleWidth = 60

var (
	summaryHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	summaryCell   = lipgloss.NewStyle().Padding(0, 1)
	summaryNumber = summaryCell.Align(lipgloss.Right)
)

// Summary collects the levels and renders them as a table on Close: k, the
// maximum support, how many sets reach it and one of them.
type Summary struct {
	out    io.Writer
	levels []*itemset.Maximal
}

func NewSummary(out io.Writer) *Summary {
	return &Summary{out: out}
}

func (s *Summary) Report(m *itemset.Maximal) error {
	s.levels = append(s.levels, m)
	return nil
}

func (s *Summary) Rows() [][]string {
	rows := make([][]string, 0, len(s.levels))
	for _, m := range s.levels {
		example := truncate(m.Example().String(), exampleWidth)
		rows = append(rows, []string{
			strconv.Itoa(m.Level),
			strconv.Itoa(m.Support),
			strconv.Itoa(len(m.Sets)),
			example,
		})
	}
	return rows
}

func (s *Summary) Render() string {
	if len(s.levels) == 0 {
		return "no frequent itemsets"
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("k", "max support", "# max sets", "example").
		Rows(s.Rows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return summaryHeader
			case col < 3:
				return summaryNumber
			}
			return summaryCell
		})
	return t.String()
}

func (s *Summary) Close() error {
	_, err := fmt.Fprintln(s.out, s.Render())
	return err
}

// truncate cuts s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}
