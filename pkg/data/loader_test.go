package data

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/testutil"
)

const header = "PassengerId,Survived,Pclass,Name,Sex,Age,SibSp,Parch,Ticket,Fare,Cabin,Embarked\n"

func TestRead_Fixture(t *testing.T) {
	df, err := Read(strings.NewReader(testutil.PassengersCSV))
	require.NoError(t, err)

	rows, cols := df.Dims()
	assert.Equal(t, testutil.PassengerRows, rows)
	assert.Equal(t, 12, cols)
	assert.Equal(t, PassengerSchema().Names(), df.Names())

	for _, f := range PassengerSchema().Fields {
		assert.Equal(t, f.Type, df.Col(f.Name).Type(), f.Name)
	}

	ids, err := df.Col(ColPassengerID).Int()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 18, 62, 830}, ids, "file row order is kept")

	assert.Equal(t, "Braund, Mr. Owen Harris", df.Col(ColName).Records()[0])
}

func TestRead_MissingMarkers(t *testing.T) {
	df, err := Read(strings.NewReader(testutil.PassengersCSV))
	require.NoError(t, err)

	tests := []struct {
		column string
		want   int
	}{
		{ColAge, 2},
		{ColCabin, 8},
		{ColEmbarked, 2},
		{ColSex, 0},
		{ColFare, 0},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			n, err := Missing(df, tt.column)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}

	mask := MissingMask(df.Col(ColEmbarked))
	assert.True(t, mask[13])
	assert.True(t, mask[14])
	assert.False(t, mask[0])
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrParse,
		},
		{
			name:    "ragged row",
			input:   header + "1,0,3\n",
			wantErr: ErrParse,
		},
		{
			name:    "unparsable integer",
			input:   header + "x,0,3,\"A, Mr. B\",male,22,1,0,T1,7.25,,S\n",
			wantErr: ErrParse,
		},
		{
			name:    "empty required cell",
			input:   header + "1,0,3,\"A, Mr. B\",,22,1,0,T1,7.25,,S\n",
			wantErr: ErrParse,
		},
		{
			name:    "survived outside 0/1",
			input:   header + "1,2,3,\"A, Mr. B\",male,22,1,0,T1,7.25,,S\n",
			wantErr: ErrParse,
		},
		{
			name:    "missing column",
			input:   "PassengerId,Survived,Pclass,Name,Age,SibSp,Parch,Ticket,Fare,Cabin,Embarked\n1,0,3,B,22,1,0,T1,7.25,,S\n",
			wantErr: ErrMissingColumn,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestRead_Delimiter(t *testing.T) {
	input := strings.ReplaceAll(header, ",", ";") + "1;0;3;Braund;male;22;1;0;A/5 21171;7.25;;S\n"
	df, err := Read(strings.NewReader(input), WithDelimiter(';'))
	require.NoError(t, err)
	assert.Equal(t, 1, df.Nrow())
}

func TestRead_WithSchema(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: ColSurvived, Type: series.Int},
		{Name: ColSex, Type: series.String},
	}}
	df, err := Read(strings.NewReader("Survived,Sex\n1,female\n0,male\n"), WithSchema(schema))
	require.NoError(t, err)
	assert.Equal(t, 2, df.Nrow())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titanic_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(testutil.PassengersCSV), 0o644))

	df, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, testutil.PassengerRows, df.Nrow())
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteness(t *testing.T) {
	df, err := Read(strings.NewReader(testutil.PassengersCSV))
	require.NoError(t, err)

	info := Completeness(df)
	require.Len(t, info, 12)

	byName := make(map[string]ColumnInfo)
	for _, c := range info {
		byName[c.Name] = c
	}
	assert.Equal(t, 13, byName[ColAge].NonNull)
	assert.Equal(t, 7, byName[ColCabin].NonNull)
	assert.Equal(t, 13, byName[ColEmbarked].NonNull)
	assert.Equal(t, testutil.PassengerRows, byName[ColName].NonNull)
	assert.Equal(t, testutil.PassengerRows, byName[ColName].Total)
}

func TestRequireColumns(t *testing.T) {
	df, err := Read(strings.NewReader(testutil.PassengersCSV))
	require.NoError(t, err)

	assert.NoError(t, RequireColumns(df, ColAge, ColSex))
	err = RequireColumns(df, ColAge, ColAgeCategory)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), ColAgeCategory)

	_, err = Missing(df, "Deck")
	assert.ErrorIs(t, err, ErrMissingColumn)
}
