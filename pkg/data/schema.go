package data

import (
	"fmt"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names of the passenger manifest.
const (
	ColPassengerID = "PassengerId"
	ColSurvived    = "Survived"
	ColPclass      = "Pclass"
	ColName        = "Name"
	ColSex         = "Sex"
	ColAge         = "Age"
	ColSibSp       = "SibSp"
	ColParch       = "Parch"
	ColTicket      = "Ticket"
	ColFare        = "Fare"
	ColCabin       = "Cabin"
	ColEmbarked    = "Embarked"

	// Derived columns.
	ColAgeCategory = "AgeCategory"
	ColHasFamily   = "HasFamily"
)

// Field describes one expected column.
type Field struct {
	Name string
	Type series.Type
	// Nullable columns may carry the missing marker at load time.
	Nullable bool
	// Allowed lists the permitted cell values. Empty allows any value.
	Allowed []string
}

// Schema describes the structure of a dataset.
type Schema struct {
	Fields []Field
}

// PassengerSchema returns the 12 columns of the raw manifest in file order.
func PassengerSchema() Schema {
	return Schema{Fields: []Field{
		{Name: ColPassengerID, Type: series.Int},
		{Name: ColSurvived, Type: series.Int, Allowed: []string{"0", "1"}},
		{Name: ColPclass, Type: series.Int},
		{Name: ColName, Type: series.String},
		{Name: ColSex, Type: series.String},
		{Name: ColAge, Type: series.Float, Nullable: true},
		{Name: ColSibSp, Type: series.Int},
		{Name: ColParch, Type: series.Int},
		{Name: ColTicket, Type: series.String},
		{Name: ColFare, Type: series.Float},
		{Name: ColCabin, Type: series.String, Nullable: true},
		{Name: ColEmbarked, Type: series.String, Nullable: true},
	}}
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Types maps every column to its table type, for typed loading.
func (s Schema) Types() map[string]series.Type {
	types := make(map[string]series.Type, len(s.Fields))
	for _, f := range s.Fields {
		types[f.Name] = f.Type
	}
	return types
}

// Validate checks that every schema column is present in df, that
// non-nullable columns carry no missing marker and that present cells hold
// an allowed value.
func (s Schema) Validate(df dataframe.DataFrame) error {
	if err := RequireColumns(df, s.Names()...); err != nil {
		return err
	}
	for _, f := range s.Fields {
		col := df.Col(f.Name)
		mask := MissingMask(col)
		if !f.Nullable {
			if row := slices.Index(mask, true); row >= 0 {
				return fmt.Errorf("%w: column %q row %d is empty or not a valid %s",
					ErrParse, f.Name, row+1, f.Type)
			}
		}
		if len(f.Allowed) == 0 {
			continue
		}
		for row, v := range col.Records() {
			if !mask[row] && !slices.Contains(f.Allowed, v) {
				return fmt.Errorf("%w: column %q row %d is %q, want one of %v",
					ErrParse, f.Name, row+1, v, f.Allowed)
			}
		}
	}
	return nil
}

// RequireColumns returns ErrMissingColumn for the first name absent from df.
func RequireColumns(df dataframe.DataFrame, names ...string) error {
	have := df.Names()
	for _, name := range names {
		if !slices.Contains(have, name) {
			return fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return nil
}

// HasColumn reports whether df has a column called name.
func HasColumn(df dataframe.DataFrame, name string) bool {
	return slices.Contains(df.Names(), name)
}
