package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/marinesurvey/csm-extractor/cmd/csm-extractor/ui"
	"github.com/marinesurvey/csm-extractor/internal/manifest"
	"github.com/marinesurvey/csm-extractor/pkg/extractor"
)

var batchManifestPath string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process every report listed in an Excel work list",
	Long: `Read a work list workbook with vesselName and linkForSyia columns and
process each report in turn. Outputs are named after the sanitized vessel
name. A failing report is recorded and skipped.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchManifestPath, "manifest", "m", "", "Excel work list path (required)")
	batchCmd.MarkFlagRequired("manifest")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 6*time.Hour)
	defer cancel()

	ui.InitUI(noColor, verbose)
	ui.Section("Batch Survey Extraction")

	entries, err := manifest.Load(batchManifestPath)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	if len(entries) == 0 {
		ui.Warning("Work list contains no usable rows")
		return nil
	}
	ui.Info("Work list: %s (%d vessels)", batchManifestPath, len(entries))

	client, err := newClient()
	if err != nil {
		return err
	}

	docs := make([]extractor.Document, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, extractor.Document{
			Source: e.ReportURL,
			Name:   manifest.SanitizeName(e.VesselName),
		})
	}

	bar := ui.NewProgressBar(int64(len(docs)), "Processing reports")
	done := 0
	summary, err := client.ProcessBatch(ctx, docs, func(item extractor.BatchItem) {
		done++
		bar.Set(int64(done))
		if item.Result != nil {
			ui.Verbose("%s: %s", item.Source, item.Result.Stage)
		}
	})
	bar.Finish()

	ui.Newline()
	ui.Section("Batch Summary")
	ui.Table([]string{"Outcome", "Count"}, [][]string{
		{"Succeeded", strconv.Itoa(summary.Succeeded)},
		{"No CSM section", strconv.Itoa(summary.Aborted)},
		{"Failed", strconv.Itoa(summary.Failed)},
	})

	for _, item := range summary.Items {
		if item.Err != nil {
			ui.Error("%s: %v", item.Source, item.Err)
		}
	}
	return err
}
