package statsui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/codetype/internal/model"
	"github.com/verte-zerg/codetype/internal/stats"
)

func algoColumns() []table.Column {
	widths := []int{28, 6, 9, 9, 9, 11}
	cols := make([]table.Column, len(stats.AlgorithmHeaders))
	for i, title := range stats.AlgorithmHeaders {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	return cols
}

func charColumns() []table.Column {
	widths := []int{8, 9, 17, 7, 9}
	cols := make([]table.Column, len(stats.CharHeaders))
	for i, title := range stats.CharHeaders {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	return cols
}

func algoRows(sums []stats.AlgorithmSummary) []table.Row {
	cells := stats.AlgorithmRows(sums)
	rows := make([]table.Row, len(cells))
	for i, c := range cells {
		rows[i] = table.Row(c)
	}
	return rows
}

func charRows(aggs []model.CharAggregate) []table.Row {
	cells := stats.CharCells(stats.CharRows(aggs))
	rows := make([]table.Row, len(cells))
	for i, c := range cells {
		rows[i] = table.Row(c)
	}
	return rows
}

func newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(1),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
