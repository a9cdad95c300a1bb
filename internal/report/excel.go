package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/objectifs/objectifs/internal/model"
)

const summarySheet = "Summary"

// ExcelRenderer writes a workbook with a summary sheet and one sheet per
// category holding a day-by-day grid for the period.
type ExcelRenderer struct{}

func (ExcelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (ExcelRenderer) Extension() string { return "xlsx" }

func (ExcelRenderer) Render(w io.Writer, doc *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeSummary(f, doc, headerStyle); err != nil {
		return err
	}

	days := doc.Window.Days()
	// Oldest first reads left to right.
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}

	for _, section := range doc.Sections {
		if err := writeSection(f, section, days, headerStyle); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, doc *Document, headerStyle int) error {
	rows := [][]any{
		{"Category", "Objectives", "Tracked days", "Completion rate"},
	}
	for _, section := range doc.Sections {
		rows = append(rows, []any{
			section.Title,
			len(section.Rows),
			section.Rate.Tracked,
			doc.Percent(section.Rate.Percent()),
		})
	}
	rows = append(rows,
		[]any{},
		[]any{"Total", doc.Summary.TotalObjectives, doc.Summary.Rate.Tracked, doc.Percent(doc.Summary.Rate.Percent())},
		[]any{"Period", string(doc.Period), string(doc.Window.Start), string(doc.Window.End)},
	)

	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "D", 18); err != nil {
		return err
	}
	return f.SetCellStyle(summarySheet, "A1", "D1", headerStyle)
}

func writeSection(f *excelize.File, section Section, days []model.Date, headerStyle int) error {
	sheet := sheetName(section.Title)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := []any{"Name", "Type", "Frequency", "Target", "Description"}
	for _, d := range days {
		header = append(header, d.Time().Format("2 Jan"))
	}
	rows := [][]any{header}

	for _, row := range section.Rows {
		line := []any{row.Name, row.TrackingLabel, row.Frequency, row.Target, row.Description}
		for _, d := range days {
			if e, ok := row.Entry(d); ok {
				line = append(line, e.Value)
			} else {
				line = append(line, "")
			}
		}
		rows = append(rows, line)
	}

	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "D", 15); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "E", "E", 40); err != nil {
		return err
	}
	if len(days) > 0 {
		if err := f.SetColWidth(sheet, "F", lastCol, 14); err != nil {
			return err
		}
	}
	return f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// sheetName trims to Excel's 31 character limit.
func sheetName(title string) string {
	if len(title) > 31 {
		return title[:31]
	}
	return title
}
