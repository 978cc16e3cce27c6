package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/stats"
)

// maxSheetName is the longest sheet name a workbook accepts.
const maxSheetName = 31

// WriteWorkbook writes every summary to its own sheet of an xlsx file.
func WriteWorkbook(path string, summaries []stats.Summary) error {
	if len(summaries) == 0 {
		return ErrEmpty
	}
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range summaries {
		sheet := sheetName(s.Grouping.Name)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("name sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("add sheet %s: %w", sheet, err)
		}

		header := make([]interface{}, 0, len(s.Grouping.Keys)+3)
		for _, k := range s.Grouping.Keys {
			header = append(header, k)
		}
		header = append(header, "Count", "Survived", "SurvivalRate")
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("write header of %s: %w", sheet, err)
		}

		for r, g := range s.Groups {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			row := make([]interface{}, 0, len(g.Keys)+3)
			for _, k := range g.Keys {
				row = append(row, k)
			}
			row = append(row, g.Count, g.Survived, g.SurvivalRate)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("write row %d of %s: %w", r+1, sheet, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create workbook directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func sheetName(name string) string {
	if len(name) > maxSheetName {
		return name[:maxSheetName]
	}
	return name
}

// WriteCSV writes the table with a header row.
func WriteCSV(path string, df dataframe.DataFrame) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer file.Close()

	if err := df.WriteCSV(file); err != nil {
		return fmt.Errorf("write CSV: %w", err)
	}
	return file.Close()
}
