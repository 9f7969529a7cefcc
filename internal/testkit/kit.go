// Package testkit provides fixtures shared by tests across packages: the
// reference scenario with its hand-checked numbers, and writers for scenario
// workbooks in xlsx and csv form.
package testkit

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"trialsize/domain/samplesize"
)

// Expected holds hand-checked numbers for one method
type Expected struct {
	Initial          int
	Adjusted         int
	PerGroupAdjusted int
}

// ReferenceScenario is the calculator's default study design with the
// integer chain each method must reproduce exactly
var ReferenceScenario = struct {
	Parameters samplesize.ParameterSet
	Expected   map[samplesize.Method]Expected
}{
	Parameters: samplesize.DefaultParameters(),
	Expected: map[samplesize.Method]Expected{
		samplesize.MethodDoi:     {Initial: 113, Adjusted: 197, PerGroupAdjusted: 99},
		samplesize.MethodIto:     {Initial: 98, Adjusted: 171, PerGroupAdjusted: 86},
		samplesize.MethodAndrews: {Initial: 9, Adjusted: 17, PerGroupAdjusted: 9},
	},
}

// Sheet is a header row plus data rows
type Sheet struct {
	Headers []string
	Rows    [][]string
}

// SensitivitySheet varies dropout and interim around the defaults; the last
// row is deliberately invalid
func SensitivitySheet() Sheet {
	return Sheet{
		Headers: []string{"scenario", "Dropout Rate (%)", "interim", "designEffect"},
		Rows: [][]string{
			{"baseline", "20", "true", "1.2"},
			{"no-dropout", "0", "true", "1.2"},
			{"", "30", "false", "1"},
			{"impossible", "100", "true", "1.2"},
		},
	}
}

// WriteWorkbook writes sheet to path as an xlsx file on the named sheet
func WriteWorkbook(path, sheetName string, sheet Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName != "Sheet1" {
		if _, err := f.NewSheet(sheetName); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheetName, err)
		}
	}

	if err := f.SetSheetRow(sheetName, "A1", &sheet.Headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f.SaveAs(path)
}

// WriteCSV writes sheet to path as a csv file
func WriteCSV(path string, sheet Sheet) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(sheet.Headers); err != nil {
		return err
	}
	if err := w.WriteAll(sheet.Rows); err != nil {
		return err
	}
	return w.Error()
}
