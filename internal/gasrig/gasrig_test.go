package gasrig

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildHoursWorkbook writes rows starting at A1 and returns the
// serialized xlsx.
func buildHoursWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())
	return bytes.NewReader(buf.Bytes())
}

// hoursRow builds a standard-layout row: location in B, employee in D,
// hours in L.
func hoursRow(location, employee string, hours float64) []interface{} {
	row := make([]interface{}, 12)
	row[1] = location
	row[3] = employee
	row[11] = hours
	return row
}

func TestComputeJobCosts_LocationTotals(t *testing.T) {
	r := buildHoursWorkbook(t, [][]interface{}{
		hoursRow("1234 Sunrise Ridge", "Alice", 8),
		hoursRow("", "Bob", 6),
		hoursRow("", "Location Total", 14),
		hoursRow("5678 Canyon Gate", "Carol", 10),
		hoursRow("", "Location Total", 10),
	})

	costs, err := ComputeJobCosts(r, DefaultRate)
	require.NoError(t, err)

	// Subtotal rows win; employee rows are ignored.
	require.Len(t, costs, 2)
	assert.Equal(t, JobCost{JobNumber: "1234", Hours: 14, Dollars: 10.5}, costs[0])
	assert.Equal(t, JobCost{JobNumber: "5678", Hours: 10, Dollars: 7.5}, costs[1])
}

func TestComputeJobCosts_FallbackSumsEmployeeRows(t *testing.T) {
	r := buildHoursWorkbook(t, [][]interface{}{
		hoursRow("1234 Sunrise Ridge", "Alice", 8),
		hoursRow("1234 Sunrise Ridge", "Bob", 4.5),
		hoursRow("5678 Canyon Gate", "Carol", 10),
		hoursRow("not a job", "Dave", 3),
	})

	costs, err := ComputeJobCosts(r, DefaultRate)
	require.NoError(t, err)

	require.Len(t, costs, 2)
	assert.Equal(t, JobCost{JobNumber: "1234", Hours: 12.5, Dollars: 9.38}, costs[0])
	assert.Equal(t, JobCost{JobNumber: "5678", Hours: 10, Dollars: 7.5}, costs[1])
}

func TestComputeJobCosts_JobInColumnA(t *testing.T) {
	rows := [][]interface{}{
		make([]interface{}, 12),
	}
	rows[0][0] = "1234 Sunrise Ridge"
	rows[0][2] = "Alice"
	rows[0][11] = 8.0

	costs, err := ComputeJobCosts(buildHoursWorkbook(t, rows), DefaultRate)
	require.NoError(t, err)

	require.Len(t, costs, 1)
	assert.Equal(t, "1234", costs[0].JobNumber)
	assert.InDelta(t, 8, costs[0].Hours, 0.001)
}

func TestComputeJobCosts_HoursFallbackToColumnM(t *testing.T) {
	row := make([]interface{}, 13)
	row[1] = "1234 Sunrise Ridge"
	row[3] = "Alice"
	row[12] = 6.0 // column M only

	costs, err := ComputeJobCosts(buildHoursWorkbook(t, [][]interface{}{row}), DefaultRate)
	require.NoError(t, err)

	require.Len(t, costs, 1)
	assert.InDelta(t, 6, costs[0].Hours, 0.001)
	assert.InDelta(t, 4.5, costs[0].Dollars, 0.001)
}

func TestComputeJobCosts_SortedByJobNumber(t *testing.T) {
	r := buildHoursWorkbook(t, [][]interface{}{
		hoursRow("9999 Last", "Alice", 1),
		hoursRow("1000 First", "Bob", 1),
		hoursRow("5000 Middle", "Carol", 1),
	})

	costs, err := ComputeJobCosts(r, DefaultRate)
	require.NoError(t, err)

	require.Len(t, costs, 3)
	assert.Equal(t, "1000", costs[0].JobNumber)
	assert.Equal(t, "5000", costs[1].JobNumber)
	assert.Equal(t, "9999", costs[2].JobNumber)
}

func TestBuildOutputWorkbook(t *testing.T) {
	data, err := BuildOutputWorkbook([]JobCost{
		{JobNumber: "1234", Hours: 14, Dollars: 10.5},
		{JobNumber: "5678", Hours: 10, Dollars: 7.5},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	get := func(cell string) string {
		v, cellErr := f.GetCellValue(outputSheet, cell)
		require.NoError(t, cellErr)
		return v
	}

	assert.Equal(t, "SUMMARY", get("A1"))
	assert.Equal(t, "Total Hours:", get("A2"))
	assert.Equal(t, "Total Dollars:", get("A3"))
	assert.Equal(t, "JobNumber", get("A5"))

	// Data starts at row 6: job, dollars, hours.
	assert.Equal(t, "1234", get("A6"))
	assert.Equal(t, "5678", get("A7"))
}
