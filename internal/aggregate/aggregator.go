// Package aggregate groups classified task rows by house and rolls
// their dollar amounts up into per-category summary rows.
package aggregate

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/rcwtools/paintsum/internal/category"
	"github.com/rcwtools/paintsum/internal/model"
	"github.com/rcwtools/paintsum/internal/signal"
)

// suspiciousTotalThreshold flags house totals above this amount for
// review.
const suspiciousTotalThreshold = 100000

// unmappedBucket collects rows with no task text. Their dollar amounts
// go into an explicit column rather than disappearing.
const unmappedBucket = "UNMAPPED"

// topUnmappedExamples caps the QA report's frequency-ordered example list.
const topUnmappedExamples = 30

// Result is the output of one aggregation run: summary rows in input
// appearance order, the organized category header list the spreadsheet
// writer lays columns out from, and the QA report.
type Result struct {
	Report  model.QAReport
	Rows    []model.SummaryRow
	Headers []string
}

// Aggregator aggregates parsed rows using one CategoryMapper per run.
// Construct one Aggregator per input file; it holds no state between
// runs beyond its immutable configuration.
type Aggregator struct {
	cfg             signal.Config
	templateHeaders []string
}

// New creates an aggregator. templateHeaders may be nil, in which case
// the default category set seeds the mapper.
func New(templateHeaders []string, cfg signal.Config) *Aggregator {
	return &Aggregator{cfg: cfg, templateHeaders: templateHeaders}
}

type groupKey struct {
	lot  string
	plan string
}

// Aggregate classifies every row, accumulates amounts per
// (house, category), and builds the summary and QA report. Duplicate
// occurrences of a category within one house stay distinct numbered
// columns; they are never silently summed.
func (a *Aggregator) Aggregate(rows []model.ParsedRow, qaMeta model.QAMeta) Result {
	mapper := category.NewMapper(a.templateHeaders, a.cfg)

	amounts := make(map[groupKey]map[string][]float64)
	var groupOrder []groupKey
	counts := make(map[string]int)

	record := func(key groupKey, cat string, amount float64) {
		if _, seen := amounts[key]; !seen {
			amounts[key] = make(map[string][]float64)
			groupOrder = append(groupOrder, key)
		}
		amounts[key][cat] = append(amounts[key][cat], amount)
	}

	unmappedDollars := false

	for i := range rows {
		row := &rows[i]
		key := groupKey{
			lot:  CleanLotNumber(row.LotBlock),
			plan: CombinePlanElevation(row.Plan, row.Elevation),
		}

		task := row.TaskTextRaw
		if task == "" {
			task = row.TaskText
		}

		if strings.TrimSpace(task) == "" {
			counts[unmappedBucket]++
			// A blank task with real money attached still has to land
			// somewhere the report shows.
			if amount := row.Amount(); amount != 0 {
				record(key, unmappedBucket, amount)
				unmappedDollars = true
			}
			continue
		}

		res := mapper.MapTask(task)
		counts[res.CategoryDisplay]++
		if res.Reason == "reused_created_category" {
			mapper.AddExampleToCreatedCategory(res.CategoryDisplay, task)
		}

		record(key, res.CategoryDisplay, row.Amount())
	}

	headers := a.finalHeaders(mapper, amounts, unmappedDollars)

	summaryRows, suspicious := buildSummaryRows(groupOrder, amounts, headers)

	report := model.QAReport{
		CountsPerBucket:  counts,
		UnmappedExamples: createdCategoryExamples(mapper, counts),
		SuspiciousTotals: suspicious,
		ParseMeta:        qaMeta,
	}

	slog.Info("aggregation complete",
		"groups", len(summaryRows),
		"categories", len(headers),
		"auto_created", len(mapper.CreatedCategories()))

	return Result{Rows: summaryRows, Headers: headers, Report: report}
}

// finalHeaders keeps only categories that received at least one row,
// organizes UA variants next to their bases, and expands categories
// with duplicate occurrences into numbered variants sized to the
// maximum occurrence count seen across all houses.
func (a *Aggregator) finalHeaders(mapper *category.Mapper, amounts map[groupKey]map[string][]float64, unmappedDollars bool) []string {
	maxOccurrences := make(map[string]int)
	for _, cats := range amounts {
		for cat, vals := range cats {
			if len(vals) > maxOccurrences[cat] {
				maxOccurrences[cat] = len(vals)
			}
		}
	}

	var active []string
	for _, h := range mapper.CategoryHeaders() {
		if maxOccurrences[h] > 0 {
			active = append(active, h)
		}
	}

	organized := category.OrganizeHeaders(active)
	if unmappedDollars {
		organized = append(organized, unmappedBucket)
	}

	var expanded []string
	for _, h := range organized {
		expanded = append(expanded, h)
		for n := 2; n <= maxOccurrences[h]; n++ {
			expanded = append(expanded, occurrenceHeader(h, n))
		}
	}
	return expanded
}

func occurrenceHeader(header string, n int) string {
	return fmt.Sprintf("%s (%d)", header, n)
}

// buildSummaryRows emits one row per house, in first-appearance order,
// spreading duplicate category occurrences across their numbered
// headers. Totals are checked against the suspicious thresholds.
func buildSummaryRows(groupOrder []groupKey, amounts map[groupKey]map[string][]float64, headers []string) ([]model.SummaryRow, []model.SuspiciousTotal) {
	summaryRows := make([]model.SummaryRow, 0, len(groupOrder))
	var suspicious []model.SuspiciousTotal

	for _, key := range groupOrder {
		rowAmounts := make(map[string]float64, len(headers))
		total := 0.0

		for cat, vals := range amounts[key] {
			for i, v := range vals {
				header := cat
				if i > 0 {
					header = occurrenceHeader(cat, i+1)
				}
				rowAmounts[header] = v
				total += v
			}
		}

		switch {
		case total < 0:
			suspicious = append(suspicious, model.SuspiciousTotal{
				LotBlock: key.lot, Plan: key.plan, Total: total,
				Reason: "Negative total",
			})
		case total > suspiciousTotalThreshold:
			suspicious = append(suspicious, model.SuspiciousTotal{
				LotBlock: key.lot, Plan: key.plan, Total: total,
				Reason: "Unusually high total (> $100k)",
			})
		}

		summaryRows = append(summaryRows, model.SummaryRow{
			LotBlock: key.lot,
			Plan:     key.plan,
			Amounts:  rowAmounts,
			Total:    total,
		})
	}

	return summaryRows, suspicious
}

// createdCategoryExamples converts the mapper's audit log into the QA
// report's frequency-ordered example list. Auto-created entries carry a
// marker prefix so the report writer can group them.
func createdCategoryExamples(mapper *category.Mapper, counts map[string]int) []model.UnmappedExample {
	created := mapper.CreatedCategories()
	examples := make([]model.UnmappedExample, 0, len(created))
	for _, c := range created {
		examples = append(examples, model.UnmappedExample{
			TaskText: "[AUTO-CREATED] " + c.Header,
			Count:    counts[c.Header],
			Examples: c.ExampleTasks,
		})
	}

	sort.SliceStable(examples, func(i, j int) bool {
		return examples[i].Count > examples[j].Count
	})

	if len(examples) > topUnmappedExamples {
		examples = examples[:topUnmappedExamples]
	}
	return examples
}
