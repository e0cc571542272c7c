package aggregate

import (
	"testing"

	"github.com/rcwtools/paintsum/internal/model"
	"github.com/rcwtools/paintsum/internal/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func row(lot, plan, elevation, task string, total float64) model.ParsedRow {
	return model.ParsedRow{
		LotBlock:  lot,
		Plan:      plan,
		Elevation: elevation,
		TaskText:  task,
		Total:     floatPtr(total),
	}
}

func newTestAggregator(template []string) *Aggregator {
	return New(template, signal.DefaultConfig())
}

func TestCleanLotNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0044/", "44"},
		{"0143/", "143"},
		{"0000", "0"},
		{"101", "101"},
		{"", ""},
		{"07 ", "7"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanLotNumber(tt.input), "CleanLotNumber(%q)", tt.input)
	}
}

func TestCombinePlanElevation(t *testing.T) {
	tests := []struct {
		plan      string
		elevation string
		want      string
	}{
		{"2", "B", "2B"},
		{"3", "A", "3A"},
		{"1", "", "1"},
		{"2B", "B", "2B"}, // already ends with elevation
		{" 2 ", " B ", "2B"},
		{"", "", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CombinePlanElevation(tt.plan, tt.elevation),
			"CombinePlanElevation(%q, %q)", tt.plan, tt.elevation)
	}
}

func TestAggregate_GroupOrderFollowsInput(t *testing.T) {
	rows := []model.ParsedRow{
		row("0010/", "2", "B", "Painting - Exterior (EXT)", 100),
		row("0020/", "1", "A", "Painting - Exterior (EXT)", 100),
		row("0010/", "2", "B", "Touch up after carpet", 50),
		row("0005/", "3", "", "Painting - Interior (INT)", 100),
	}

	result := newTestAggregator(nil).Aggregate(rows, model.QAMeta{})

	require.Len(t, result.Rows, 3)
	assert.Equal(t, "10", result.Rows[0].LotBlock)
	assert.Equal(t, "20", result.Rows[1].LotBlock)
	assert.Equal(t, "5", result.Rows[2].LotBlock)
	assert.Equal(t, "2B", result.Rows[0].Plan)
}

func TestAggregate_NoDollarsLost(t *testing.T) {
	rows := []model.ParsedRow{
		row("0044/", "2", "B", "Painting - Exterior Prime/Fascia (437220) (EXT) [LS]", 1200.50),
		row("0044/", "2", "B", "Painting - Spray Overhang (EXT) [UA]", 310.25),
		row("0044/", "2", "B", "Touch up after carpet", 75),
	}

	result := newTestAggregator(nil).Aggregate(rows, model.QAMeta{})

	require.Len(t, result.Rows, 1)
	summary := result.Rows[0]

	var sum float64
	for _, v := range summary.Amounts {
		sum += v
	}
	assert.InDelta(t, 1200.50+310.25+75, sum, 0.001)
	assert.InDelta(t, summary.Total, sum, 0.001)
}

func TestAggregate_DuplicateCategoryOccurrences(t *testing.T) {
	rows := []model.ParsedRow{
		row("0044/", "2", "B", "Touch Up A", 100),
		row("0044/", "2", "B", "Touch Up B", 200),
	}

	result := newTestAggregator(nil).Aggregate(rows, model.QAMeta{})

	assert.Contains(t, result.Headers, "TOUCH UP")
	assert.Contains(t, result.Headers, "TOUCH UP (2)")

	require.Len(t, result.Rows, 1)
	summary := result.Rows[0]
	assert.InDelta(t, 100, summary.Amounts["TOUCH UP"], 0.001)
	assert.InDelta(t, 200, summary.Amounts["TOUCH UP (2)"], 0.001)
	assert.GreaterOrEqual(t, summary.Total, 300.0)
}

func TestAggregate_EmptyTaskDollarsRouted(t *testing.T) {
	rows := []model.ParsedRow{
		row("0044/", "2", "B", "", 500),
		row("0044/", "2", "B", "Painting - Exterior (EXT)", 100),
	}

	result := newTestAggregator(nil).Aggregate(rows, model.QAMeta{})

	assert.Equal(t, 1, result.Report.CountsPerBucket["UNMAPPED"])
	assert.Contains(t, result.Headers, "UNMAPPED")

	require.Len(t, result.Rows, 1)
	assert.InDelta(t, 500, result.Rows[0].Amounts["UNMAPPED"], 0.001)
	assert.InDelta(t, 600, result.Rows[0].Total, 0.001)
}

func TestAggregate_EmptyTaskZeroAmountCountedOnly(t *testing.T) {
	rows := []model.ParsedRow{
		{LotBlock: "0044/", Plan: "2", TaskText: ""},
		row("0044/", "2", "", "Painting - Interior (INT)", 100),
	}

	result := newTestAggregator(nil).Aggregate(rows, model.QAMeta{})

	assert.Equal(t, 1, result.Report.CountsPerBucket["UNMAPPED"])
	assert.NotContains(t, result.Headers, "UNMAPPED")
}

func TestAggregate_SuspiciousTotals(t *testing.T) {
	rows := []model.ParsedRow{
		row("0001/", "1", "", "Painting - Exterior (EXT)", 150000),
		row("0002/", "1", "", "Painting - Exterior (EXT)", -40),
		row("0003/", "1", "", "Painting - Exterior (EXT)", 500),
	}

	result := newTestAggregator(nil).Aggregate(rows, model.QAMeta{})

	require.Len(t, result.Report.SuspiciousTotals, 2)

	high := result.Report.SuspiciousTotals[0]
	assert.Equal(t, "1", high.LotBlock)
	assert.Equal(t, "Unusually high total (> $100k)", high.Reason)

	negative := result.Report.SuspiciousTotals[1]
	assert.Equal(t, "2", negative.LotBlock)
	assert.Equal(t, "Negative total", negative.Reason)
}

func TestAggregate_SubtotalFallback(t *testing.T) {
	rows := []model.ParsedRow{
		{
			LotBlock: "0044/",
			Plan:     "2",
			TaskText: "Painting - Exterior (EXT)",
			Subtotal: floatPtr(250),
		},
	}

	result := newTestAggregator(nil).Aggregate(rows, model.QAMeta{})

	require.Len(t, result.Rows, 1)
	assert.InDelta(t, 250, result.Rows[0].Total, 0.001)
}

func TestAggregate_AutoCreatedExamplesInReport(t *testing.T) {
	rows := []model.ParsedRow{
		row("0001/", "1", "", "Painting - Spray Overhang (EXT) [UA]", 100),
		row("0002/", "1", "", "Painting - Spray Overhang (EXT) [UA]", 120),
	}

	result := newTestAggregator([]string{"EXT PRIME", "EXTERIOR", "EXTERIOR UA", "INTERIOR"}).
		Aggregate(rows, model.QAMeta{})

	require.Len(t, result.Report.UnmappedExamples, 1)
	example := result.Report.UnmappedExamples[0]
	assert.Contains(t, example.TaskText, "[AUTO-CREATED]")
	assert.Contains(t, example.TaskText, "SPRAY OVERHANG")
	assert.Equal(t, 2, example.Count)
	assert.Len(t, example.Examples, 2)
}

func TestAggregate_ParseMetaPassthrough(t *testing.T) {
	meta := model.QAMeta{TotalRowsSeen: 120, RowsParsed: 100, RowsSkippedMissingFields: 20}

	result := newTestAggregator(nil).Aggregate(nil, meta)

	assert.Equal(t, meta, result.Report.ParseMeta)
	assert.Empty(t, result.Rows)
}

func TestAggregate_OnlyActiveCategoriesInHeaders(t *testing.T) {
	rows := []model.ParsedRow{
		row("0001/", "1", "", "Painting - Exterior (EXT)", 100),
	}

	result := newTestAggregator(nil).Aggregate(rows, model.QAMeta{})

	assert.Equal(t, []string{"EXTERIOR"}, result.Headers)
}
