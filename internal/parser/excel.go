// Package parser reads painter scheduled-task Excel exports. Vendor
// layouts vary, so the header row is located by content rather than
// position and columns are mapped by fuzzy header names.
package parser

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rcwtools/paintsum/internal/common"
	"github.com/rcwtools/paintsum/internal/model"
)

const (
	// maxHeaderSearchRows bounds the scan for the header row; vendor
	// exports put metadata blocks above it but never this deep.
	maxHeaderSearchRows = 50

	// maxConsecutiveBlanks ends the data region; exports often carry
	// stray formatting rows far below the real data.
	maxConsecutiveBlanks = 30
)

// requiredHeaders must all appear (as substrings) in a row for it to
// qualify as the header row.
var requiredHeaders = []string{"lot/block", "plan", "task", "task start date"}

// ParseWorkbook parses a scheduled-tasks export. It returns the parsed
// data rows, parsing counters, and project metadata for the report
// header.
func ParseWorkbook(path string) ([]model.ParsedRow, model.QAMeta, model.ProjectMeta, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, model.QAMeta{}, model.ProjectMeta{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close workbook", "error", closeErr)
		}
	}()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, model.QAMeta{}, model.ProjectMeta{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	meta := extractProjectMeta(f, sheet)

	headerIdx, columnMap := findHeaderRow(rows)
	if headerIdx < 0 {
		return nil, model.QAMeta{}, meta, common.ErrHeaderRowNotFound
	}

	var parsed []model.ParsedRow
	var qa model.QAMeta
	consecutiveBlanks := 0

	for _, row := range rows[headerIdx+1:] {
		qa.TotalRowsSeen++

		if isRowBlank(row) {
			consecutiveBlanks++
			if consecutiveBlanks >= maxConsecutiveBlanks {
				break
			}
			continue
		}
		consecutiveBlanks = 0

		pr := parseRow(row, columnMap)
		if pr.LotBlock == "" || pr.TaskText == "" {
			qa.RowsSkippedMissingFields++
			continue
		}

		parsed = append(parsed, pr)
		qa.RowsParsed++
	}

	if qa.RowsParsed == 0 {
		return nil, qa, meta, common.ErrNoDataRows
	}

	slog.Info("workbook parsed",
		"sheet", sheet,
		"rows_seen", qa.TotalRowsSeen,
		"rows_parsed", qa.RowsParsed,
		"rows_skipped", qa.RowsSkippedMissingFields)

	return parsed, qa, meta, nil
}

// findHeaderRow scans for the first row containing every required
// header. Returns -1 when none qualifies.
func findHeaderRow(rows [][]string) (int, map[string]int) {
	limit := len(rows)
	if limit > maxHeaderSearchRows {
		limit = maxHeaderSearchRows
	}

	for idx := 0; idx < limit; idx++ {
		lowered := make([]string, len(rows[idx]))
		for i, cell := range rows[idx] {
			lowered[i] = strings.ToLower(strings.TrimSpace(cell))
		}

		found := 0
		for _, header := range requiredHeaders {
			for _, cell := range lowered {
				if strings.Contains(cell, header) {
					found++
					break
				}
			}
		}

		if found == len(requiredHeaders) {
			return idx, buildColumnMap(rows[idx])
		}
	}

	return -1, nil
}

// buildColumnMap maps vendor header names to standardized field names.
func buildColumnMap(headerRow []string) map[string]int {
	columnMap := make(map[string]int)

	for idx, header := range headerRow {
		h := strings.ToLower(strings.TrimSpace(header))
		switch {
		case h == "":
			continue
		case strings.Contains(h, "lot") && strings.Contains(h, "block"):
			columnMap["lot_block"] = idx
		case strings.Contains(h, "elevation"):
			columnMap["elevation"] = idx
		case strings.Contains(h, "swing"):
			columnMap["swing"] = idx
		case strings.Contains(h, "plan"):
			columnMap["plan"] = idx
		case strings.Contains(h, "task start date"):
			columnMap["task_start_date"] = idx
		case strings.Contains(h, "task") && !strings.Contains(h, "date"):
			columnMap["task_text"] = idx
		case strings.Contains(h, "subtotal"):
			columnMap["subtotal"] = idx
		case strings.Contains(h, "tax"):
			columnMap["tax"] = idx
		case strings.Contains(h, "total"):
			columnMap["total"] = idx
		}
	}

	return columnMap
}

func isRowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string, columnMap map[string]int) model.ParsedRow {
	get := func(key string) string {
		idx, ok := columnMap[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	task := get("task_text")

	return model.ParsedRow{
		LotBlock:      get("lot_block"),
		Plan:          get("plan"),
		Elevation:     get("elevation"),
		Swing:         get("swing"),
		TaskStartDate: parseDate(get("task_start_date")),
		TaskText:      task,
		TaskTextRaw:   task,
		Subtotal:      parseMoney(get("subtotal")),
		Tax:           parseMoney(get("tax")),
		Total:         parseMoney(get("total")),
	}
}

// dateFormats covers the formats vendor exports and excelize cell
// formatting produce.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"01-02-06",
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return &t
		}
	}
	return nil
}

func parseMoney(value string) *float64 {
	if value == "" {
		return nil
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(value)

	// Accounting exports render negatives as (1,200.00).
	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}
	if cleaned == "" {
		return nil
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	if negative {
		f = -f
	}
	return &f
}
