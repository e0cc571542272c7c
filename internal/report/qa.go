package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rcwtools/paintsum/internal/model"
)

const autoCreatedMarker = "[AUTO-CREATED]"

// writeQAReport renders the review sheet billers check before trusting
// the summary: parse counters, per-category row counts, categories the
// run invented, and anything that looked wrong.
func writeQAReport(f *excelize.File, qa model.QAReport) error {
	if _, err := f.NewSheet(qaSheet); err != nil {
		return fmt.Errorf("failed to create QA sheet: %w", err)
	}

	sectionStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return err
	}

	row := 1
	section := func(title string) error {
		cell := cellRef(1, row)
		if err := f.SetCellValue(qaSheet, cell, title); err != nil {
			return err
		}
		if err := f.SetCellStyle(qaSheet, cell, cell, sectionStyle); err != nil {
			return err
		}
		row++
		return nil
	}
	line := func(values ...interface{}) error {
		for i, v := range values {
			if err := f.SetCellValue(qaSheet, cellRef(1+i, row), v); err != nil {
				return err
			}
		}
		row++
		return nil
	}

	if err := section("Parse Statistics"); err != nil {
		return err
	}
	if err := line("Rows seen", qa.ParseMeta.TotalRowsSeen); err != nil {
		return err
	}
	if err := line("Rows parsed", qa.ParseMeta.RowsParsed); err != nil {
		return err
	}
	if err := line("Rows skipped (missing fields)", qa.ParseMeta.RowsSkippedMissingFields); err != nil {
		return err
	}
	row++

	if err := section("Rows per Category"); err != nil {
		return err
	}
	created := make(map[string]bool, len(qa.UnmappedExamples))
	for _, ex := range qa.UnmappedExamples {
		if strings.HasPrefix(ex.TaskText, autoCreatedMarker+" ") {
			created[strings.TrimPrefix(ex.TaskText, autoCreatedMarker+" ")] = true
		}
	}
	for _, name := range sortedKeys(qa.CountsPerBucket) {
		label := name
		if created[name] {
			label = name + " " + autoCreatedMarker
		}
		if err := line(label, qa.CountsPerBucket[name]); err != nil {
			return err
		}
	}
	row++

	if len(qa.UnmappedExamples) > 0 {
		if err := section("Unmapped / Auto-Created Review"); err != nil {
			return err
		}
		if err := line("Task", "Count", "Examples"); err != nil {
			return err
		}
		for _, ex := range qa.UnmappedExamples {
			if err := line(ex.TaskText, ex.Count, strings.Join(ex.Examples, " | ")); err != nil {
				return err
			}
		}
		row++
	}

	if len(qa.SuspiciousTotals) > 0 {
		if err := section("Suspicious Totals"); err != nil {
			return err
		}
		if err := line("Lot", "Plan", "Total", "Reason"); err != nil {
			return err
		}
		for _, s := range qa.SuspiciousTotals {
			if err := line(s.LotBlock, s.Plan, s.Total, s.Reason); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(qaSheet, "A", "A", 45); err != nil {
		return err
	}
	return f.SetColWidth(qaSheet, "B", "C", 20)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
