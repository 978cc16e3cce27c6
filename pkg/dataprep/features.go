package dataprep

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"

	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/data"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/pipeline"
)

// AgeCategories lists the age buckets in ascending age order.
var AgeCategories = []string{"child", "teenager", "twenties", "thirties", "fourties", "fifties", "senior"}

// ageBounds are the exclusive upper bounds of every bucket but the last.
var ageBounds = []float64{12, 21, 30, 40, 50, 60}

// CategorizeAge maps an age to its bucket. The first bound the age is
// strictly below wins; anything from 60 up is "senior".
func CategorizeAge(age float64) string {
	for i, bound := range ageBounds {
		if age < bound {
			return AgeCategories[i]
		}
	}
	return AgeCategories[len(AgeCategories)-1]
}

// HasFamily labels a passenger "yes" when travelling with any sibling,
// spouse, parent or child.
func HasFamily(sibSp, parch int) string {
	if sibSp+parch > 0 {
		return "yes"
	}
	return "no"
}

// Derive returns the feature stages: age bucket, then family flag.
func Derive(log *zap.Logger) *pipeline.Pipeline {
	log = orNop(log)
	return pipeline.NewPipeline(log,
		DeriveAgeCategory(log),
		DeriveFamily(log),
	)
}

// DeriveAgeCategory writes the AgeCategory column from a cleaned Age column.
func DeriveAgeCategory(log *zap.Logger) pipeline.Stage {
	log = orNop(log)
	return pipeline.StageFunc{
		Label: "derive " + data.ColAgeCategory,
		Fn: func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
			if err := data.RequireColumns(df, data.ColAge); err != nil {
				return dataframe.DataFrame{}, err
			}
			ages, err := floatColumn(df.Col(data.ColAge))
			if err != nil {
				return dataframe.DataFrame{}, err
			}
			labels := make([]string, len(ages))
			for i, age := range ages {
				if math.IsNaN(age) {
					return dataframe.DataFrame{}, fmt.Errorf("%w: %s row %d", ErrMissingValue, data.ColAge, i+1)
				}
				labels[i] = CategorizeAge(age)
			}
			return mutate(df, series.New(labels, series.String, data.ColAgeCategory), log)
		},
	}
}

// DeriveFamily writes the HasFamily column from SibSp and Parch.
func DeriveFamily(log *zap.Logger) pipeline.Stage {
	log = orNop(log)
	return pipeline.StageFunc{
		Label: "derive " + data.ColHasFamily,
		Fn: func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
			if err := data.RequireColumns(df, data.ColSibSp, data.ColParch); err != nil {
				return dataframe.DataFrame{}, err
			}
			sibSp, err := df.Col(data.ColSibSp).Int()
			if err != nil {
				return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %v", ErrMissingValue, data.ColSibSp, err)
			}
			parch, err := df.Col(data.ColParch).Int()
			if err != nil {
				return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %v", ErrMissingValue, data.ColParch, err)
			}
			labels := make([]string, len(sibSp))
			for i := range labels {
				labels[i] = HasFamily(sibSp[i], parch[i])
			}
			return mutate(df, series.New(labels, series.String, data.ColHasFamily), log)
		},
	}
}

func mutate(df dataframe.DataFrame, s series.Series, log *zap.Logger) (dataframe.DataFrame, error) {
	out := df.Mutate(s)
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("write %q: %w", s.Name, out.Err)
	}
	log.Info("derived column", zap.String("column", s.Name))
	return out, nil
}
