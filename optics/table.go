package optics

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var tableStyle = lipgloss.NewStyle().Padding(0, 1)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func render(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style { return tableStyle }).
		Headers(headers...).
		Rows(rows...).
		String()
}

// Table renders one row per state of a trace
func Table(t Trace) string {
	rows := make([][]string, len(t))
	for i, s := range t {
		r := s.Record()
		row := []string{strconv.Itoa(i)}
		for _, v := range r {
			row = append(row, num(v))
		}
		rows[i] = row
	}
	return render([]string{"#", "x", "y", "slope", "amplitude", "x2", "y2", "slope2", "amplitude2"}, rows)
}

func AngleTable(t AngleTrace) string {
	rows := make([][]string, len(t))
	for i, s := range t {
		rows[i] = []string{strconv.Itoa(i), num(s.X), num(s.Y), num(s.Angle)}
	}
	return render([]string{"#", "x", "y", "angle"}, rows)
}
