package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/marinesurvey/csm-extractor/cmd/csm-extractor/ui"
	"github.com/marinesurvey/csm-extractor/pkg/extractor"
)

var runSource string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process a single survey report",
	Long:  "Process one survey report PDF, given as a local path or an HTTPS URL.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runSource, "source", "s", "", "PDF path or URL (required)")
	runCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	ui.InitUI(noColor, verbose)
	ui.Section("Survey Extraction")
	ui.Info("Source: %s", runSource)

	client, err := newClient()
	if err != nil {
		return err
	}

	spin := ui.NewSpinner("Processing survey report...")
	spin.Start()
	start := time.Now()

	result, err := client.Process(ctx, runSource)
	spin.Stop()

	if err != nil {
		return fmt.Errorf("processing failed at stage %q: %w", stageName(result), err)
	}

	if result.Stage == extractor.StageAborted {
		ui.Warning("No planned machinery survey section found in this report")
		return nil
	}

	ui.Success("Extraction completed")
	ui.Newline()
	ui.Table([]string{"Metric", "Value"}, [][]string{
		{"Output File", result.OutputPath},
		{"Document Pages", strconv.Itoa(result.TotalPages)},
		{"Survey Pages", strconv.Itoa(result.SelectedPages)},
		{"Survey Items", strconv.Itoa(result.ItemCount)},
		{"Duration", ui.FormatDuration(time.Since(start))},
	})
	return nil
}

func stageName(result *extractor.Result) string {
	if result == nil {
		return "startup"
	}
	return string(result.Stage)
}
