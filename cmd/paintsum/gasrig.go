package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcwtools/paintsum/internal/cli"
	"github.com/rcwtools/paintsum/internal/common"
	"github.com/rcwtools/paintsum/internal/gasrig"
)

func gasrigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gasrig <hours.xlsx>",
		Short: "Convert an hours-worked export into per-job gas and rig charges",
		Args:  cobra.ExactArgs(1),
		RunE:  runGasrig,
	}

	cmd.Flags().StringP("output", "o", "", "output workbook path (default: <input>-gasrig.xlsx)")
	cmd.Flags().Float64("rate", gasrig.DefaultRate, "dollars per crew hour")

	return cmd
}

func runGasrig(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if !strings.HasSuffix(strings.ToLower(inputPath), ".xlsx") {
		return fmt.Errorf("%w: %s must be an .xlsx file", common.ErrUnsupportedFormat, inputPath)
	}

	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", inputPath, err)
	}
	defer func() {
		_ = input.Close()
	}()

	rate, _ := cmd.Flags().GetFloat64("rate")
	costs, err := gasrig.ComputeJobCosts(input, rate)
	if err != nil {
		return fmt.Errorf("failed to process %s: %w", inputPath, err)
	}
	if len(costs) == 0 {
		return fmt.Errorf("no job data found in %s: rows must start with a 4-digit job number", inputPath)
	}

	output, err := gasrig.BuildOutputWorkbook(costs)
	if err != nil {
		return fmt.Errorf("failed to build output workbook: %w", err)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "-gasrig.xlsx"
	}
	if err := os.WriteFile(outputPath, output, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	var totalHours, totalDollars float64
	for _, c := range costs {
		totalHours += c.Hours
		totalDollars += c.Dollars
	}

	fmt.Println(cli.FormatTitle("Gas & Rig"))
	fmt.Println(cli.FormatStat("Jobs", len(costs)))
	fmt.Println(cli.FormatStat("Total hours", fmt.Sprintf("%.2f", totalHours)))
	fmt.Println(cli.FormatStat("Total dollars", fmt.Sprintf("$%.2f", totalDollars)))
	fmt.Println(cli.FormatSuccess("Output written to " + outputPath))
	return nil
}
