// Package analysis runs the survival exploration end to end: load, clean,
// derive features, aggregate every view and report on it.
package analysis

import (
	"context"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/config"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/data"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/dataprep"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/pipeline"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/report"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/stats"
)

// AgeDistributionChart is the file name of the observed vs imputed age figure.
const AgeDistributionChart = "age_distribution.png"

// Result holds every table snapshot of a run and what was written.
type Result struct {
	RunID     string
	Raw       dataframe.DataFrame
	Cleaned   dataframe.DataFrame
	Derived   dataframe.DataFrame
	Summaries []stats.Summary
	Files     []string
}

// Analyzer runs the stages against one configuration.
type Analyzer struct {
	cfg   *config.Config
	log   *zap.Logger
	out   io.Writer
	runID string
}

// New returns an Analyzer printing tables to out. Every log entry carries
// the run ID.
func New(cfg *config.Config, log *zap.Logger, out io.Writer) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	runID := uuid.NewString()
	return &Analyzer{cfg: cfg, log: log.With(zap.String("run_id", runID)), out: out, runID: runID}
}

// Prepare loads, cleans and derives the table.
func (a *Analyzer) Prepare() (*Result, error) {
	raw, err := data.Load(a.cfg.Input)
	if err != nil {
		return nil, &pipeline.StageError{Stage: "load", Err: err}
	}
	rows, cols := raw.Dims()
	a.log.Info("loaded manifest", zap.String("path", a.cfg.Input), zap.Int("rows", rows), zap.Int("columns", cols))

	cleaned, err := dataprep.Clean(a.log).Run(raw)
	if err != nil {
		return nil, err
	}
	derived, err := dataprep.Derive(a.log).Run(cleaned)
	if err != nil {
		return nil, err
	}
	return &Result{RunID: a.runID, Raw: raw, Cleaned: cleaned, Derived: derived}, nil
}

// Run prepares the table, then aggregates and reports every view. A
// canceled ctx stops the run before the next chart.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	res, err := a.Prepare()
	if err != nil {
		return nil, err
	}

	views := Views()
	for _, v := range views {
		s, err := stats.Aggregate(res.Derived, v.Grouping)
		if err != nil {
			return nil, &pipeline.StageError{Stage: "aggregate " + v.Grouping.Name, Err: err}
		}
		res.Summaries = append(res.Summaries, s)

		if a.cfg.Tables {
			fmt.Fprintf(a.out, "%s\n%s\n\n", v.Rate.Title, report.Table(s))
		}
	}

	if a.cfg.Charts {
		paths, err := a.charts(ctx, views, res.Summaries)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, paths...)
	}

	if a.cfg.Workbook != "" {
		path := a.cfg.OutputPath(a.cfg.Workbook)
		if err := report.WriteWorkbook(path, res.Summaries); err != nil {
			return nil, &pipeline.StageError{Stage: "workbook", Err: err}
		}
		a.log.Info("wrote workbook", zap.String("path", path))
		res.Files = append(res.Files, path)
	}
	if a.cfg.CleanedCSV != "" {
		path, err := a.writeCleaned(res.Derived)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, path)
	}
	return res, nil
}

// Clean prepares the table and writes it as CSV.
func (a *Analyzer) Clean() (*Result, error) {
	res, err := a.Prepare()
	if err != nil {
		return nil, err
	}
	path, err := a.writeCleaned(res.Derived)
	if err != nil {
		return nil, err
	}
	res.Files = append(res.Files, path)
	return res, nil
}

// Describe reports column completeness, the age description before and
// after interpolation and the Embarked value counts before and after the
// fill.
func (a *Analyzer) Describe() (*Result, error) {
	res, err := a.Prepare()
	if err != nil {
		return nil, err
	}

	observed := res.Raw.Col(data.ColAge).Float()
	imputed := res.Cleaned.Col(data.ColAge).Float()
	before := stats.ValueCounts(present(res.Raw, data.ColEmbarked))
	after := stats.ValueCounts(res.Cleaned.Col(data.ColEmbarked).Records())

	fmt.Fprintf(a.out, "Completeness\n%s\n\n", report.CompletenessTable(data.Completeness(res.Raw)))
	fmt.Fprintf(a.out, "Age\n%s\n\n", report.DescribeTable(
		[]string{data.ColAge, "Imputed " + data.ColAge},
		[]stats.Description{stats.Describe(observed), stats.Describe(imputed)}))
	fmt.Fprintf(a.out, "Embarked before fill\n%s\n\n", report.ValueCountsTable(data.ColEmbarked, before))
	fmt.Fprintf(a.out, "Embarked after fill\n%s\n\n", report.ValueCountsTable(data.ColEmbarked, after))

	if a.cfg.Charts {
		left, right, err := report.AgeDistribution(observed, imputed)
		if err != nil {
			return nil, &pipeline.StageError{Stage: "report age distribution", Err: err}
		}
		path := a.cfg.OutputPath(AgeDistributionChart)
		if err := report.SavePair(path, left, right, a.width(), a.height()); err != nil {
			return nil, &pipeline.StageError{Stage: "report age distribution", Err: err}
		}
		res.Files = append(res.Files, path)
	}
	return res, nil
}

func (a *Analyzer) charts(ctx context.Context, views []View, summaries []stats.Summary) ([]string, error) {
	paths := make([]string, 0, len(views))
	for i, v := range views {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path, err := a.chart(v, summaries[i])
		if err != nil {
			return nil, &pipeline.StageError{Stage: "report " + v.Grouping.Name, Err: err}
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (a *Analyzer) chart(v View, s stats.Summary) (string, error) {
	left, err := report.CountPlot(s, v.Count)
	if err != nil {
		return "", err
	}
	right, err := report.RatePlot(s, v.Rate)
	if err != nil {
		return "", err
	}
	path := a.cfg.OutputPath(v.Grouping.Name + ".png")
	if err := report.SavePair(path, left, right, a.width(), a.height()); err != nil {
		return "", err
	}
	a.log.Info("wrote chart", zap.String("view", v.Grouping.Name), zap.String("path", path))
	return path, nil
}

func (a *Analyzer) writeCleaned(df dataframe.DataFrame) (string, error) {
	name := a.cfg.CleanedCSV
	if name == "" {
		name = "cleaned.csv"
	}
	path := a.cfg.OutputPath(name)
	if err := report.WriteCSV(path, df); err != nil {
		return "", &pipeline.StageError{Stage: "write cleaned table", Err: err}
	}
	a.log.Info("wrote cleaned table", zap.String("path", path))
	return path, nil
}

func (a *Analyzer) width() vg.Length  { return vg.Length(a.cfg.Chart.Width) * vg.Inch }
func (a *Analyzer) height() vg.Length { return vg.Length(a.cfg.Chart.Height) * vg.Inch }

// present returns the non-missing cells of a column.
func present(df dataframe.DataFrame, column string) []string {
	s := df.Col(column)
	records := s.Records()
	out := make([]string, 0, len(records))
	for i, missing := range data.MissingMask(s) {
		if !missing {
			out = append(out, records[i])
		}
	}
	return out
}
