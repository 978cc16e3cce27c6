package dataprep

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"

	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/data"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/pipeline"
)

// EmbarkedFill is the port written into missing Embarked cells. It is fixed
// rather than recomputed from the data.
const EmbarkedFill = "S"

// Clean returns the cleaning stages in their fixed order: drop Cabin,
// interpolate Age over row order, fill Embarked with EmbarkedFill.
func Clean(log *zap.Logger) *pipeline.Pipeline {
	log = orNop(log)
	return pipeline.NewPipeline(log,
		DropColumn(data.ColCabin, log),
		InterpolateColumn(data.ColAge, log),
		FillConstant(data.ColEmbarked, EmbarkedFill, log),
	)
}

// DropColumn removes a column. A table without the column passes through.
func DropColumn(name string, log *zap.Logger) pipeline.Stage {
	log = orNop(log)
	return pipeline.StageFunc{
		Label: "drop " + name,
		Fn: func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
			if !data.HasColumn(df, name) {
				return df, nil
			}
			missing, _ := data.Missing(df, name)
			out := df.Drop(name)
			if out.Err != nil {
				return dataframe.DataFrame{}, fmt.Errorf("drop %q: %w", name, out.Err)
			}
			log.Info("dropped column",
				zap.String("column", name),
				zap.Float64("missing_ratio", float64(missing)/float64(df.Nrow())))
			return out, nil
		},
	}
}

// InterpolateColumn imputes the missing cells of a numeric column by linear
// interpolation in row order.
func InterpolateColumn(name string, log *zap.Logger) pipeline.Stage {
	log = orNop(log)
	return pipeline.StageFunc{
		Label: "interpolate " + name,
		Fn: func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
			if err := data.RequireColumns(df, name); err != nil {
				return dataframe.DataFrame{}, err
			}
			values, err := floatColumn(df.Col(name))
			if err != nil {
				return dataframe.DataFrame{}, err
			}
			if countNaN(values) == 0 {
				return df, nil
			}

			imputed, filled := InterpolateLinear(values)
			if left := countNaN(imputed); left > 0 {
				return dataframe.DataFrame{}, fmt.Errorf("%w: column %q has %d", ErrUnresolvedEdge, name, left)
			}
			out := df.Mutate(series.New(imputed, series.Float, name))
			if out.Err != nil {
				return dataframe.DataFrame{}, fmt.Errorf("replace %q: %w", name, out.Err)
			}
			log.Info("interpolated column", zap.String("column", name), zap.Int("filled", filled))
			return out, nil
		},
	}
}

// FillConstant writes value into the missing cells of a string column.
func FillConstant(name, value string, log *zap.Logger) pipeline.Stage {
	log = orNop(log)
	return pipeline.StageFunc{
		Label: "fill " + name,
		Fn: func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
			if err := data.RequireColumns(df, name); err != nil {
				return dataframe.DataFrame{}, err
			}
			s := df.Col(name)
			if s.Type() != series.String {
				return dataframe.DataFrame{}, fmt.Errorf("%w: column %q is %s, want string", ErrColumnType, name, s.Type())
			}
			filled, n := ImputeConstant(s.Records(), data.MissingMask(s), value)
			if n == 0 {
				return df, nil
			}
			out := df.Mutate(series.New(filled, series.String, name))
			if out.Err != nil {
				return dataframe.DataFrame{}, fmt.Errorf("replace %q: %w", name, out.Err)
			}
			log.Info("filled column", zap.String("column", name), zap.String("value", value), zap.Int("filled", n))
			return out, nil
		},
	}
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
