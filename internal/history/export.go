package history

import (
	"errors"
	"fmt"

	"github.com/huangsam/stackscan/internal/contract"
	"github.com/huangsam/stackscan/internal/parquet"
)

// ExecuteExport writes every recorded run and extension row to two Parquet
// files derived from outputFile.
func ExecuteExport(store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total extension records: %d\n", status.TableSizes[extensionStatsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	stats, err := store.GetAllExtensionStats()
	if err != nil {
		return fmt.Errorf("failed to retrieve extension stats: %w", err)
	}

	runRows := parquet.RunRowsFromRecords(runs)
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runRows), runsFile)

	statRows := parquet.ExtensionRowsFromRecords(stats)
	statsFile := outputFile + ".extension_stats.parquet"
	if err := parquet.WriteExtensionStatsParquet(statRows, statsFile); err != nil {
		return fmt.Errorf("failed to write extension stats: %w", err)
	}
	fmt.Printf("Exported %d extension records to: %s\n", len(statRows), statsFile)
	return nil
}
