// internal/cli/datasets.go
package arcx

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcx/internal/dataset"
	"arcx/internal/puzzle"
	"arcx/internal/store"
)

// datasetsCmd groups local ARC dataset operations.
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Work with local ARC dataset directories",
}

// datasetsScanCmd loads every configured dataset directory into the local
// snapshot store so browse/cards work offline and the fixture server has
// puzzles to serve.
var datasetsScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan configured dataset directories into the snapshot store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if len(cfg.DatasetDirs) == 0 {
			return fmt.Errorf("no datasetDirs configured in %s", cfg.ConfigPath)
		}

		s, err := store.Open(cfg.CacheFilePath())
		if err != nil {
			return err
		}
		defer s.Close()

		total := 0
		for tag, dir := range cfg.DatasetDirs {
			source := puzzle.Source(tag)
			if tag == "" {
				source = dataset.SourceForDir(dir)
			}
			records, err := dataset.LoadDir(dir, source)
			if err != nil {
				Alert("scan of %s failed: %v", dir, err)
				return err
			}
			if err := s.SavePuzzles(records); err != nil {
				return err
			}
			fmt.Printf("%-12s %4d puzzles from %s\n", source, len(records), dir)
			total += len(records)
		}

		Successf("%d puzzles cached in %s", total, s.Path())
		return nil
	},
}

func init() {
	datasetsCmd.AddCommand(datasetsScanCmd)
	rootCmd.AddCommand(datasetsCmd)
}
