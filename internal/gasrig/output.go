package gasrig

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const outputSheet = "GasAndRig"

// BuildOutputWorkbook renders the converted charges as an xlsx with a
// summary block on top: total hours, total dollars, then one row per
// job.
func BuildOutputWorkbook(costs []JobCost) ([]byte, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), outputSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	var totalHours, totalDollars float64
	for _, c := range costs {
		totalHours += c.Hours
		totalDollars += c.Dollars
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	hoursFmt := "#,##0.00"
	dollarsFmt := `"$"#,##0.00`
	hoursValueStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 12},
		CustomNumFmt: &hoursFmt,
	})
	if err != nil {
		return nil, err
	}
	dollarsValueStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 12},
		CustomNumFmt: &dollarsFmt,
	})
	if err != nil {
		return nil, err
	}
	hoursCellStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &hoursFmt})
	if err != nil {
		return nil, err
	}
	dollarsCellStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dollarsFmt})
	if err != nil {
		return nil, err
	}

	set := func(cell string, value interface{}) error {
		return f.SetCellValue(outputSheet, cell, value)
	}

	if err := set("A1", "SUMMARY"); err != nil {
		return nil, err
	}
	if err := set("A2", "Total Hours:"); err != nil {
		return nil, err
	}
	if err := set("B2", round2(totalHours)); err != nil {
		return nil, err
	}
	if err := set("A3", "Total Dollars:"); err != nil {
		return nil, err
	}
	if err := set("B3", round2(totalDollars)); err != nil {
		return nil, err
	}

	if err := set("A5", "JobNumber"); err != nil {
		return nil, err
	}
	if err := set("B5", "Dollars"); err != nil {
		return nil, err
	}
	if err := set("C5", "Hours"); err != nil {
		return nil, err
	}

	for i, c := range costs {
		rowNum := 6 + i
		jobNumber, convErr := strconv.Atoi(c.JobNumber)
		if convErr != nil {
			return nil, fmt.Errorf("invalid job number %q: %w", c.JobNumber, convErr)
		}
		if err := set(fmt.Sprintf("A%d", rowNum), jobNumber); err != nil {
			return nil, err
		}
		if err := set(fmt.Sprintf("B%d", rowNum), c.Dollars); err != nil {
			return nil, err
		}
		if err := set(fmt.Sprintf("C%d", rowNum), c.Hours); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(outputSheet, fmt.Sprintf("B%d", rowNum), fmt.Sprintf("B%d", rowNum), dollarsCellStyle); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(outputSheet, fmt.Sprintf("C%d", rowNum), fmt.Sprintf("C%d", rowNum), hoursCellStyle); err != nil {
			return nil, err
		}
	}

	if err := f.SetCellStyle(outputSheet, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(outputSheet, "A2", "A3", boldStyle); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(outputSheet, "B2", "B2", hoursValueStyle); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(outputSheet, "B3", "B3", dollarsValueStyle); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(outputSheet, "A5", "C5", boldStyle); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(outputSheet, "A", "A", 15); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(outputSheet, "B", "C", 12); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
