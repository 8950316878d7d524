package ux

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSXFormatter writes tabular results to a spreadsheet at opts.Path and prints
// the path to the writer.
type XLSXFormatter struct {
	opts *FormatterOptions
}

// Format writes data as a workbook with one sheet.
func (f *XLSXFormatter) Format(data interface{}) error {
	tab, ok := data.(Tabular)
	if !ok {
		return fmt.Errorf("xlsx output is only available for list commands")
	}
	if err := WriteWorkbook(f.opts.Path, sheetName(tab), tab); err != nil {
		return err
	}
	_, err := fmt.Fprintf(f.opts.Writer, "Wrote %d rows to %s\n", len(tab.TableRows()), f.opts.Path)
	return err
}

func sheetName(tab Tabular) string {
	if t, ok := tab.(*Table); ok && t.Title != "" {
		name := t.Title
		// Sheet names are limited to 31 characters.
		if len(name) > 31 {
			name = name[:31]
		}
		return name
	}
	return defaultSheet
}

// WriteWorkbook saves tab as the only sheet of a new workbook at path.
func WriteWorkbook(path, sheet string, tab Tabular) (err error) {
	file := excelize.NewFile()
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if sheet != defaultSheet {
		if err := file.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("name sheet: %w", err)
		}
	}

	header := make([]interface{}, 0, len(tab.TableHeaders()))
	for _, h := range tab.TableHeaders() {
		header = append(header, h)
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if len(header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		if err := file.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	for i, row := range tab.TableRows() {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := file.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}
