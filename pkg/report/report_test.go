package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/plot/vg"

	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/data"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/stats"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func summaries(t *testing.T) []stats.Summary {
	t.Helper()
	df := dataframe.New(
		series.New([]int{1, 0, 1, 1, 0}, series.Int, data.ColSurvived),
		series.New([]int{1, 1, 2, 3, 3}, series.Int, data.ColPclass),
		series.New([]string{"female", "male", "female", "female", "male"}, series.String, data.ColSex),
	)
	single, err := stats.Aggregate(df, stats.Grouping{Name: "class", Keys: []string{data.ColPclass}})
	require.NoError(t, err)
	hued, err := stats.Aggregate(df, stats.Grouping{Name: "class_sex", Keys: []string{data.ColPclass, data.ColSex}})
	require.NoError(t, err)
	return []stats.Summary{single, hued}
}

func TestBarPlots(t *testing.T) {
	for _, s := range summaries(t) {
		t.Run(s.Grouping.Name, func(t *testing.T) {
			count, err := CountPlot(s, Chart{Title: "Number of Passengers", XLabel: "Passenger Class"})
			require.NoError(t, err)
			rate, err := RatePlot(s, Chart{Title: "Survival Rate", XLabel: "Passenger Class"})
			require.NoError(t, err)

			assert.Equal(t, "Number of Passengers", count.Title.Text)
			assert.Equal(t, 1.0, rate.Y.Max)
			assert.Zero(t, count.Y.Min)

			var buf bytes.Buffer
			require.NoError(t, WritePair(&buf, count, rate, 8*vg.Inch, 4*vg.Inch))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestBarPlots_Empty(t *testing.T) {
	_, err := CountPlot(stats.Summary{}, Chart{})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestAgeDistribution(t *testing.T) {
	observed := []float64{22, 38, math.NaN(), 35, 54, 2}
	imputed := []float64{22, 38, 36.5, 35, 54, 2}

	left, right, err := AgeDistribution(observed, imputed)
	require.NoError(t, err)
	assert.Contains(t, right.Title.Text, "Imputed")

	path := filepath.Join(t.TempDir(), "charts", "age.png")
	require.NoError(t, SavePair(path, left, right, 10*vg.Inch, 5*vg.Inch))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, pngMagic))

	_, _, err = AgeDistribution([]float64{math.NaN()}, imputed)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestTable(t *testing.T) {
	out := Table(summaries(t)[0])
	for _, want := range []string{"Pclass", "Count", "Survival Rate", "0.500", "1.000"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "0.500"), strings.Index(out, "1.000"), "groups keep summary order")

	out = Table(summaries(t)[1])
	for _, want := range []string{"Sex", "female", "0.000"} {
		assert.Contains(t, out, want)
	}
}

func TestDescribeTable(t *testing.T) {
	out := DescribeTable([]string{"Age", "Imputed Age"}, []stats.Description{
		stats.Describe([]float64{1, 2, 3, 4}),
		stats.Describe([]float64{1, 2, 3, 4, 5}),
	})
	for _, want := range []string{"Imputed Age", "count", "2.500000", "1.750000", "outliers"} {
		assert.Contains(t, out, want)
	}
}

func TestCompletenessAndValueCounts(t *testing.T) {
	out := CompletenessTable([]data.ColumnInfo{{Name: data.ColAge, Type: series.Float, NonNull: 13, Total: 15}})
	assert.Contains(t, out, "13/15")
	assert.Contains(t, out, "float")

	out = ValueCountsTable(data.ColEmbarked, []stats.ValueCount{{Value: "S", Count: 9}})
	assert.Contains(t, out, "Embarked")
	assert.Contains(t, out, "9")
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "survival.xlsx")
	require.NoError(t, WriteWorkbook(path, summaries(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"class", "class_sex"}, f.GetSheetList())

	rows, err := f.GetRows("class")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Pclass", "Count", "Survived", "SurvivalRate"}, rows[0])
	assert.Equal(t, []string{"1", "2", "1"}, rows[1][:3])

	rows, err = f.GetRows("class_sex")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pclass", "Sex", "Count", "Survived", "SurvivalRate"}, rows[0])
	assert.Len(t, rows, 6)

	assert.ErrorIs(t, WriteWorkbook(path, nil), ErrEmpty)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "class", sheetName("class"))
	assert.Len(t, sheetName(strings.Repeat("x", 40)), maxSheetName)
}

func TestWriteCSV(t *testing.T) {
	df := dataframe.New(
		series.New([]int{1, 2}, series.Int, data.ColPassengerID),
		series.New([]string{"S", "C"}, series.String, data.ColEmbarked),
	)
	path := filepath.Join(t.TempDir(), "nested", "cleaned.csv")
	require.NoError(t, WriteCSV(path, df))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PassengerId,Embarked\n1,S\n2,C\n", string(raw))
}
