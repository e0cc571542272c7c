// Package gasrig converts crew hours-worked workbooks into per-job gas
// and rig dollar charges.
package gasrig

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultRate is the gas and rig charge per crew hour.
const DefaultRate = 0.75

// jobNumberRe matches the four-digit job number at the start of a
// location cell.
var jobNumberRe = regexp.MustCompile(`^\s*(\d{4})\b`)

// JobCost is one job's converted charge.
type JobCost struct {
	JobNumber string
	Hours     float64
	Dollars   float64
}

// ComputeJobCosts reads the first sheet of an hours-worked workbook and
// totals hours per job, converted to dollars at rate.
//
// Two vendor layouts exist: the standard one puts the job number in
// column B and the employee name in D; the other puts them in A and C.
// Hours are in column L with M as a fallback. Subtotal rows labeled
// "Location Total" are preferred; when a sheet has none, individual
// employee rows are summed instead.
func ComputeJobCosts(r io.Reader, rate float64) ([]JobCost, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close workbook", "error", closeErr)
		}
	}()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	locationCol, employeeCol := detectLayout(rows)

	totals := subtotalPass(rows, locationCol, employeeCol)
	if len(totals) == 0 {
		totals = employeeRowPass(rows, locationCol)
	}

	costs := make([]JobCost, 0, len(totals))
	for job, hours := range totals {
		costs = append(costs, JobCost{
			JobNumber: job,
			Hours:     round2(hours),
			Dollars:   round2(hours * rate),
		})
	}
	sort.Slice(costs, func(i, j int) bool {
		a, _ := strconv.Atoi(costs[i].JobNumber)
		b, _ := strconv.Atoi(costs[j].JobNumber)
		return a < b
	})

	slog.Info("gas and rig conversion complete", "jobs", len(costs), "rate", rate)
	return costs, nil
}

// detectLayout returns 0-based location and employee column indexes.
// A job number anywhere in column A within the first 50 rows means the
// A/C layout; otherwise the standard B/D layout.
func detectLayout(rows [][]string) (int, int) {
	limit := len(rows)
	if limit > 50 {
		limit = 50
	}
	for i := 0; i < limit; i++ {
		if len(rows[i]) > 0 && jobNumberRe.MatchString(rows[i][0]) {
			return 0, 2
		}
	}
	return 1, 3
}

// subtotalPass totals hours from "Location Total" rows, attributing
// each to the most recently seen job number.
func subtotalPass(rows [][]string, locationCol, employeeCol int) map[string]float64 {
	totals := make(map[string]float64)
	currentJob := ""

	for _, row := range rows {
		if m := jobNumberRe.FindStringSubmatch(cell(row, locationCol)); m != nil {
			currentJob = m[1]
		}

		if !isSubtotalRow(row, employeeCol) || currentJob == "" {
			continue
		}

		hours := rowHours(row)
		if hours <= 0 {
			continue
		}
		totals[currentJob] += hours
	}

	return totals
}

// employeeRowPass sums hours from every row carrying a job number.
func employeeRowPass(rows [][]string, locationCol int) map[string]float64 {
	totals := make(map[string]float64)

	for _, row := range rows {
		m := jobNumberRe.FindStringSubmatch(cell(row, locationCol))
		if m == nil {
			continue
		}
		hours := rowHours(row)
		if hours <= 0 {
			continue
		}
		totals[m[1]] += hours
	}

	return totals
}

func isSubtotalRow(row []string, employeeCol int) bool {
	emp := strings.ToLower(cell(row, employeeCol))
	if strings.Contains(emp, "location") && strings.Contains(emp, "total") {
		return true
	}

	rowText := strings.ToLower(strings.Join(row, " "))
	return strings.Contains(rowText, "location") && strings.Contains(rowText, "total")
}

// rowHours prefers column L, falling back to M when L is zero or
// unparsable.
func rowHours(row []string) float64 {
	if h := toFloat(cell(row, 11)); h > 0 {
		return h
	}
	return toFloat(cell(row, 12))
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func toFloat(s string) float64 {
	if s == "" || s == "-" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
