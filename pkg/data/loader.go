package data

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// MissingValues are the cell contents read as the missing marker.
var MissingValues = []string{"", "NA", "NaN"}

type loadConfig struct {
	delimiter rune
	schema    Schema
}

// LoadOption configures Load and Read.
type LoadOption func(*loadConfig)

// WithDelimiter sets the field separator. The default is a comma.
func WithDelimiter(delimiter rune) LoadOption {
	return func(c *loadConfig) {
		c.delimiter = delimiter
	}
}

// WithSchema replaces the expected schema.
func WithSchema(schema Schema) LoadOption {
	return func(c *loadConfig) {
		c.schema = schema
	}
}

// Load reads the manifest at path into a table, preserving file row order.
func Load(path string, opts ...LoadOption) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return dataframe.DataFrame{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	df, err := Read(bufio.NewReader(file), opts...)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("load %s: %w", path, err)
	}
	return df, nil
}

// Read parses a manifest from r. Columns are typed from the schema; empty
// cells become the missing marker of their column.
func Read(r io.Reader, opts ...LoadOption) (dataframe.DataFrame, error) {
	cfg := &loadConfig{
		delimiter: ',',
		schema:    PassengerSchema(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithDelimiter(cfg.delimiter),
		dataframe.WithTypes(cfg.schema.Types()),
		dataframe.NaNValues(MissingValues),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrParse, df.Err)
	}
	if err := cfg.schema.Validate(df); err != nil {
		return dataframe.DataFrame{}, err
	}
	return df, nil
}

// MissingMask flags every cell of s that carries the missing marker.
func MissingMask(s series.Series) []bool {
	mask := make([]bool, s.Len())
	if s.Type() == series.Float {
		for i, v := range s.Float() {
			mask[i] = math.IsNaN(v)
		}
		return mask
	}
	for i := range mask {
		mask[i] = s.Elem(i).IsNA()
	}
	return mask
}

// Missing counts the missing cells of a column.
func Missing(df dataframe.DataFrame, column string) (int, error) {
	if err := RequireColumns(df, column); err != nil {
		return 0, err
	}
	n := 0
	for _, m := range MissingMask(df.Col(column)) {
		if m {
			n++
		}
	}
	return n, nil
}

// ColumnInfo is the completeness of one column.
type ColumnInfo struct {
	Name    string
	Type    series.Type
	NonNull int
	Total   int
}

// Completeness reports the non-missing count of every column in table order.
func Completeness(df dataframe.DataFrame) []ColumnInfo {
	cols := df.Names()
	out := make([]ColumnInfo, 0, len(cols))
	for _, name := range cols {
		s := df.Col(name)
		missing, _ := Missing(df, name)
		out = append(out, ColumnInfo{
			Name:    name,
			Type:    s.Type(),
			NonNull: s.Len() - missing,
			Total:   s.Len(),
		})
	}
	return out
}
