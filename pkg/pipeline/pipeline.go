package pipeline

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
	"go.uber.org/zap"
)

// Stage is one step of the analysis. Apply returns a new table and leaves
// its input untouched.
type Stage interface {
	Name() string
	Apply(df dataframe.DataFrame) (dataframe.DataFrame, error)
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	Label string
	Fn    func(df dataframe.DataFrame) (dataframe.DataFrame, error)
}

func (s StageFunc) Name() string { return s.Label }

func (s StageFunc) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return s.Fn(df)
}

// StageError identifies the stage that aborted a run.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Pipeline chains multiple stages.
type Pipeline struct {
	log   *zap.Logger
	steps []Stage
}

func NewPipeline(log *zap.Logger, steps ...Stage) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{log: log, steps: steps}
}

// Then returns a pipeline running p's stages followed by next's.
func (p *Pipeline) Then(next *Pipeline) *Pipeline {
	steps := make([]Stage, 0, len(p.steps)+len(next.steps))
	steps = append(steps, p.steps...)
	steps = append(steps, next.steps...)
	return &Pipeline{log: p.log, steps: steps}
}

// Stages returns the stage names in run order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Run applies every stage in order and stops at the first failure.
func (p *Pipeline) Run(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	for _, step := range p.steps {
		start := time.Now()
		out, err := step.Apply(df)
		if err != nil {
			p.log.Error("stage failed", zap.String("stage", step.Name()), zap.Error(err))
			return dataframe.DataFrame{}, &StageError{Stage: step.Name(), Err: err}
		}
		rows, cols := out.Dims()
		p.log.Debug("stage done",
			zap.String("stage", step.Name()),
			zap.Int("rows", rows),
			zap.Int("columns", cols),
			zap.Duration("elapsed", time.Since(start)))
		df = out
	}
	return df, nil
}
