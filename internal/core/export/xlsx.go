package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sociotyper/sociotyper/internal/core/model"
)

const xlsxSheet = "Triplets"

// ToXLSX serializes triplets as a single-sheet spreadsheet with the same
// columns as the CSV export.
func ToXLSX(triplets []model.Triplet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, name := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, cell, name); err != nil {
			return nil, fmt.Errorf("failed to write header cell %s: %w", cell, err)
		}
	}

	for i, t := range triplets {
		values := []interface{}{t.ID, t.Role, t.Practice, t.Counterrole, t.Context, t.Confidence, string(t.Validated)}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
