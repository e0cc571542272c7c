package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/rcwtools/paintsum/internal/aggregate"
	"github.com/rcwtools/paintsum/internal/category"
	"github.com/rcwtools/paintsum/internal/cli"
	"github.com/rcwtools/paintsum/internal/common"
	"github.com/rcwtools/paintsum/internal/model"
	"github.com/rcwtools/paintsum/internal/parser"
	"github.com/rcwtools/paintsum/internal/report"
	"github.com/rcwtools/paintsum/internal/signal"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <export.xlsx>",
		Short: "Classify and summarize a scheduled-tasks export locally",
		Args:  cobra.ExactArgs(1),
		RunE:  runProcess,
	}

	cmd.Flags().StringP("output", "o", "", "output workbook path (default: <input>-summary.xlsx)")
	cmd.Flags().Bool("legacy", false, "classify into the fixed legacy buckets and print counts only")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	bar := progressbar.Default(3, "processing")

	rows, qaMeta, meta, err := parser.ParseWorkbook(inputPath)
	if err != nil {
		return common.NewUserError("could not read "+inputPath, err)
	}
	_ = bar.Add(1)

	fmt.Println(cli.FormatTitle("Processing " + filepath.Base(inputPath)))
	fmt.Println(cli.FormatStat("Rows parsed", qaMeta.RowsParsed))
	if qaMeta.RowsSkippedMissingFields > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d rows skipped (missing lot or task)", qaMeta.RowsSkippedMissingFields)))
	}

	legacy, _ := cmd.Flags().GetBool("legacy")
	if legacy {
		return runLegacyClassification(rows)
	}

	result := aggregate.New(category.DefaultCategories, signal.DefaultConfig()).Aggregate(rows, qaMeta)
	_ = bar.Add(1)

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "-summary.xlsx"
	}

	if err := report.Write(outputPath, report.Input{
		Meta:    meta,
		Headers: result.Headers,
		Rows:    result.Rows,
		QA:      result.Report,
	}); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	_ = bar.Add(1)

	printQASummary(result)
	fmt.Println(cli.FormatSuccess("Summary written to " + outputPath))
	return nil
}

func printQASummary(result aggregate.Result) {
	fmt.Println(cli.FormatTitle("QA Summary"))
	fmt.Println(cli.FormatStat("Houses", len(result.Rows)))
	fmt.Println(cli.FormatStat("Categories", len(result.Headers)))

	for _, name := range sortedBuckets(result.Report.CountsPerBucket) {
		fmt.Println(cli.FormatStat(name, result.Report.CountsPerBucket[name]))
	}

	for _, ex := range result.Report.UnmappedExamples {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%s (%d rows)", ex.TaskText, ex.Count)))
	}
	for _, s := range result.Report.SuspiciousTotals {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("lot %s plan %s: total %.2f (%s)", s.LotBlock, s.Plan, s.Total, s.Reason)))
	}
}

// runLegacyClassification prints fixed-bucket counts the way the old
// classifier reported them, for comparing runs during cutover.
func runLegacyClassification(rows []model.ParsedRow) error {
	classifier := category.NewLegacyClassifier(signal.DefaultConfig())

	counts := make(map[string]int)
	for _, row := range rows {
		bucket, _ := classifier.Classify(row.TaskText)
		counts[bucket]++
	}

	fmt.Println(cli.FormatTitle("Legacy Bucket Counts"))
	for _, name := range sortedBuckets(counts) {
		fmt.Println(cli.FormatStat(name, counts[name]))
	}
	return nil
}

func sortedBuckets(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
