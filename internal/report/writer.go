// Package report renders the aggregated summary and QA workbook.
package report

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/rcwtools/paintsum/internal/model"
)

const (
	summarySheet = "Summary"
	qaSheet      = "QA Report"

	headerRow   = 3
	dataStart   = 4
	firstColumn = 2 // data table starts at column B

	laborRate    = 0.43
	materialRate = 0.28

	// accountingFormat matches the accounting format billing reviews it
	// against expect.
	accountingFormat = `_($* #,##0.00_);_($* (#,##0.00);_($* "-"??_);_(@_)`
)

// Input carries everything the workbook needs.
type Input struct {
	Meta    model.ProjectMeta
	Headers []string
	Rows    []model.SummaryRow
	QA      model.QAReport
}

// Write builds the summary workbook and saves it to path.
func Write(path string, in Input) error {
	f, err := Build(in)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close workbook", "error", closeErr)
		}
	}()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("report written", "path", path, "rows", len(in.Rows), "categories", len(in.Headers))
	return nil
}

// Build renders the workbook in memory.
func Build(in Input) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := writeSummary(f, in); err != nil {
		return nil, err
	}
	if err := writeQAReport(f, in.QA); err != nil {
		return nil, err
	}
	return f, nil
}

type styles struct {
	header      int
	totalHeader int
	accounting  int
	boldAccount int
	title       int
	bold        int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error

	border := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true, Vertical: "center"},
	})
	if err != nil {
		return s, err
	}

	s.totalHeader, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true, Vertical: "center"},
	})
	if err != nil {
		return s, err
	}

	fmtAccounting := accountingFormat
	s.accounting, err = f.NewStyle(&excelize.Style{CustomNumFmt: &fmtAccounting})
	if err != nil {
		return s, err
	}

	s.boldAccount, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &fmtAccounting,
	})
	if err != nil {
		return s, err
	}

	s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return s, err
	}

	s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	return s, err
}

func writeSummary(f *excelize.File, in Input) error {
	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("failed to create styles: %w", err)
	}

	if err := writeSummaryTitle(f, st, in.Meta); err != nil {
		return err
	}

	// Header row: LOT, PLAN, one column per category, Total.
	columns := append([]string{"LOT", "PLAN"}, in.Headers...)
	columns = append(columns, "Total")

	for i, name := range columns {
		cell, err := excelize.CoordinatesToCellName(firstColumn+i, headerRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, cell, name); err != nil {
			return err
		}
		style := st.header
		if name == "Total" {
			style = st.totalHeader
		}
		if err := f.SetCellStyle(summarySheet, cell, cell, style); err != nil {
			return err
		}
	}

	firstAmountCol := firstColumn + 2
	totalCol := firstColumn + len(columns) - 1

	for i, row := range in.Rows {
		rowNum := dataStart + i

		if err := f.SetCellValue(summarySheet, cellRef(1, rowNum), i+1); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, cellRef(firstColumn, rowNum), row.LotBlock); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, cellRef(firstColumn+1, rowNum), row.Plan); err != nil {
			return err
		}

		for j, header := range in.Headers {
			col := firstAmountCol + j
			if amount, ok := row.Amounts[header]; ok && amount != 0 {
				if err := f.SetCellValue(summarySheet, cellRef(col, rowNum), amount); err != nil {
					return err
				}
			}
		}

		// Row total sums the category cells so manual edits stay honest.
		formula := fmt.Sprintf("SUM(%s:%s)", cellRef(firstAmountCol, rowNum), cellRef(totalCol-1, rowNum))
		if err := f.SetCellFormula(summarySheet, cellRef(totalCol, rowNum), formula); err != nil {
			return err
		}

		if err := f.SetCellStyle(summarySheet, cellRef(firstAmountCol, rowNum), cellRef(totalCol, rowNum), st.accounting); err != nil {
			return err
		}
	}

	return writeSummaryFooter(f, st, len(in.Rows), firstAmountCol, totalCol)
}

func writeSummaryTitle(f *excelize.File, st styles, meta model.ProjectMeta) error {
	if meta.ProjectName != "" {
		if err := f.SetCellValue(summarySheet, "B1", "Project Name: "+meta.ProjectName); err != nil {
			return err
		}
		if err := f.MergeCell(summarySheet, "B1", "D1"); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, "B1", "B1", st.title); err != nil {
			return err
		}
	}
	if meta.Phase != "" {
		if err := f.SetCellValue(summarySheet, "G1", "Phase "+meta.Phase); err != nil {
			return err
		}
	}
	if meta.HouseString != "" {
		if err := f.SetCellValue(summarySheet, "H1", meta.HouseString); err != nil {
			return err
		}
	}
	return f.SetCellValue(summarySheet, "I1", "Job #:")
}

func writeSummaryFooter(f *excelize.File, st styles, rowCount, firstAmountCol, totalCol int) error {
	grandRow := dataStart + rowCount

	if err := f.SetCellValue(summarySheet, cellRef(firstColumn, grandRow), "GRAND TOTAL"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, cellRef(firstColumn, grandRow), cellRef(firstColumn, grandRow), st.bold); err != nil {
		return err
	}

	lastDataRow := grandRow - 1
	for col := firstAmountCol; col <= totalCol; col++ {
		if rowCount > 0 {
			formula := fmt.Sprintf("SUM(%s:%s)", cellRef(col, dataStart), cellRef(col, lastDataRow))
			if err := f.SetCellFormula(summarySheet, cellRef(col, grandRow), formula); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(summarySheet, cellRef(col, grandRow), cellRef(col, grandRow), st.boldAccount); err != nil {
			return err
		}
	}

	grandTotalCell := cellRef(totalCol, grandRow)

	// Labor and material splits off the grand total.
	splits := []struct {
		label string
		rate  float64
	}{
		{"LABOR 43%", laborRate},
		{"MATERIAL 28%", materialRate},
	}
	for i, split := range splits {
		rowNum := grandRow + 1 + i
		if err := f.SetCellValue(summarySheet, cellRef(firstColumn, rowNum), split.label); err != nil {
			return err
		}
		formula := fmt.Sprintf("%s*%g", grandTotalCell, split.rate)
		if err := f.SetCellFormula(summarySheet, cellRef(totalCol, rowNum), formula); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, cellRef(totalCol, rowNum), cellRef(totalCol, rowNum), st.boldAccount); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 5); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "C", 10); err != nil {
		return err
	}
	lastColName, err := excelize.ColumnNumberToName(totalCol)
	if err != nil {
		return err
	}
	firstAmountName, err := excelize.ColumnNumberToName(firstAmountCol)
	if err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, firstAmountName, lastColName, 16)
}

func cellRef(col, row int) string {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		// Coordinates are computed from loop indices and cannot be out
		// of range.
		panic(err)
	}
	return cell
}
