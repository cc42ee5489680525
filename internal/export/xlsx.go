package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/roach88/rollcall/internal/model"
)

// DailySheet is the worksheet name used by WriteDailyXLSX.
const DailySheet = "Daily Attendance"

// WriteDailyXLSX writes the daily report of view to w as a single-sheet workbook.
// Columns and values are the same as WriteDailyCSV; a summary row follows the entries.
func WriteDailyXLSX(w io.Writer, view model.DailyView) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", DailySheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	rows := append([][]string{DailyHeader}, DailyRows(view)...)
	rows = append(rows, nil, []string{
		"Date", view.Date,
		"Present", fmt.Sprint(view.Present),
		"Checked In", fmt.Sprint(view.Partial),
		"Absent", fmt.Sprint(view.Absent),
	})

	for i, row := range rows {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(DailySheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(DailySheet, "A", "A", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
