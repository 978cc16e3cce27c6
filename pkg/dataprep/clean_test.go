package dataprep

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/data"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/pipeline"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/testutil"
)

func loadFixture(t *testing.T) dataframe.DataFrame {
	t.Helper()
	df, err := data.Read(strings.NewReader(testutil.PassengersCSV))
	require.NoError(t, err)
	return df
}

func TestClean(t *testing.T) {
	raw := loadFixture(t)

	cleaned, err := Clean(zaptest.NewLogger(t)).Run(raw)
	require.NoError(t, err)

	assert.False(t, data.HasColumn(cleaned, data.ColCabin), "Cabin is dropped")
	assert.True(t, data.HasColumn(raw, data.ColCabin), "input table keeps Cabin")
	assert.Equal(t, raw.Nrow(), cleaned.Nrow())

	for _, col := range []string{data.ColAge, data.ColEmbarked} {
		n, err := data.Missing(cleaned, col)
		require.NoError(t, err)
		assert.Zero(t, n, col)
	}

	ages := cleaned.Col(data.ColAge).Float()
	assert.InDelta(t, 44.5, ages[5], 1e-9, "between 35 and 54")
	assert.InDelta(t, 48.0, ages[12], 1e-9, "between 58 and 38")

	embarked := cleaned.Col(data.ColEmbarked).Records()
	assert.Equal(t, EmbarkedFill, embarked[13])
	assert.Equal(t, EmbarkedFill, embarked[14])
	for _, port := range embarked {
		assert.Contains(t, []string{"C", "Q", "S"}, port)
	}

	for _, name := range cleaned.Names() {
		if name == data.ColAge || name == data.ColEmbarked {
			continue
		}
		assert.Equal(t, raw.Col(name).Records(), cleaned.Col(name).Records(), "column %s is untouched", name)
	}
}

func TestClean_Idempotent(t *testing.T) {
	clean := Clean(zaptest.NewLogger(t))

	once, err := clean.Run(loadFixture(t))
	require.NoError(t, err)
	twice, err := clean.Run(once)
	require.NoError(t, err)

	assert.Equal(t, once.Names(), twice.Names())
	if diff := cmp.Diff(once.Records(), twice.Records()); diff != "" {
		t.Errorf("second clean changed the table (-first +second):\n%s", diff)
	}
}

func TestClean_StageOrder(t *testing.T) {
	assert.Equal(t, []string{"drop Cabin", "interpolate Age", "fill Embarked"}, Clean(nil).Stages())
}

func TestInterpolateColumn_Edges(t *testing.T) {
	tests := []struct {
		name string
		ages []float64
	}{
		{"leading", []float64{math.NaN(), 30, 40}},
		{"trailing", []float64{30, 40, math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			df := dataframe.New(series.New(tt.ages, series.Float, data.ColAge))

			_, err := pipeline.NewPipeline(zaptest.NewLogger(t), InterpolateColumn(data.ColAge, nil)).Run(df)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnresolvedEdge)

			var stageErr *pipeline.StageError
			require.True(t, errors.As(err, &stageErr))
			assert.Equal(t, "interpolate Age", stageErr.Stage)
		})
	}
}

func TestInterpolateColumn_WrongType(t *testing.T) {
	df := dataframe.New(series.New([]string{"a", "b"}, series.String, data.ColAge))
	_, err := InterpolateColumn(data.ColAge, nil).Apply(df)
	assert.ErrorIs(t, err, ErrColumnType)
}

func TestFillConstant_IgnoresMode(t *testing.T) {
	df := dataframe.New(series.New([]string{"C", "C", "NaN", "C", "Q"}, series.String, data.ColEmbarked))

	out, err := FillConstant(data.ColEmbarked, EmbarkedFill, nil).Apply(df)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "C", "S", "C", "Q"}, out.Col(data.ColEmbarked).Records())
}

func TestCleanStages_MissingColumn(t *testing.T) {
	df := dataframe.New(series.New([]int{1, 2}, series.Int, data.ColPassengerID))

	_, err := DropColumn(data.ColCabin, nil).Apply(df)
	assert.NoError(t, err, "dropping an absent column is a no-op")

	_, err = InterpolateColumn(data.ColAge, nil).Apply(df)
	assert.ErrorIs(t, err, data.ErrMissingColumn)

	_, err = FillConstant(data.ColEmbarked, EmbarkedFill, nil).Apply(df)
	assert.ErrorIs(t, err, data.ErrMissingColumn)
}
