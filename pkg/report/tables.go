package report

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/data"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func render(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// Table renders the counts and survival rates of a summary.
func Table(s stats.Summary) string {
	headers := append(slices.Clone(s.Grouping.Keys), "Count", "Survival Rate")
	rows := make([][]string, 0, len(s.Groups))
	for _, g := range s.Groups {
		row := append(slices.Clone(g.Keys), strconv.Itoa(g.Count), formatRate(g.SurvivalRate))
		rows = append(rows, row)
	}
	return render(headers, rows)
}

// DescribeTable renders descriptions side by side, one column per label.
func DescribeTable(labels []string, ds []stats.Description) string {
	headers := append([]string{""}, labels...)
	stat := func(name string, f func(stats.Description) string) []string {
		row := []string{name}
		for _, d := range ds {
			row = append(row, f(d))
		}
		return row
	}
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	rows := [][]string{
		stat("count", func(d stats.Description) string { return strconv.Itoa(d.Count) }),
		stat("mean", func(d stats.Description) string { return num(d.Mean) }),
		stat("std", func(d stats.Description) string { return num(d.Std) }),
		stat("min", func(d stats.Description) string { return num(d.Min) }),
		stat("25%", func(d stats.Description) string { return num(d.Q25) }),
		stat("50%", func(d stats.Description) string { return num(d.Median) }),
		stat("75%", func(d stats.Description) string { return num(d.Q75) }),
		stat("max", func(d stats.Description) string { return num(d.Max) }),
		stat("outliers", func(d stats.Description) string { return strconv.Itoa(d.Outliers) }),
	}
	return render(headers, rows)
}

// CompletenessTable renders the non-missing count of every column.
func CompletenessTable(info []data.ColumnInfo) string {
	rows := make([][]string, 0, len(info))
	for _, c := range info {
		rows = append(rows, []string{c.Name, string(c.Type), fmt.Sprintf("%d/%d", c.NonNull, c.Total)})
	}
	return render([]string{"Column", "Type", "Completeness"}, rows)
}

// ValueCountsTable renders the frequency of every value of a column.
func ValueCountsTable(column string, counts []stats.ValueCount) string {
	rows := make([][]string, 0, len(counts))
	for _, vc := range counts {
		rows = append(rows, []string{vc.Value, strconv.Itoa(vc.Count)})
	}
	return render([]string{column, "Count"}, rows)
}

func formatRate(r float64) string {
	return strconv.FormatFloat(r, 'f', 3, 64)
}
