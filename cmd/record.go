package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/chatpulse/internal/config"
	"github.com/theirongolddev/chatpulse/internal/panel"
	"github.com/theirongolddev/chatpulse/internal/source"
	"github.com/theirongolddev/chatpulse/internal/store"

	"github.com/spf13/cobra"
)

var flagRecordForce bool

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Store the current metrics as a history snapshot",
	RunE:  runRecord,
}

func init() {
	recordCmd.Flags().BoolVar(&flagRecordForce, "force", false, "Record even if unchanged since the last snapshot")
	rootCmd.AddCommand(recordCmd)
}

func runRecord(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snap, err := source.LoadSnapshot(inputPath(cfg))
	if err != nil {
		return err
	}

	h, err := store.Open(config.HistoryPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	if !flagRecordForce {
		latest, err := h.Latest()
		switch {
		case err == nil && latest.Metrics.Equal(snap.Metrics):
			fmt.Printf("  Unchanged since snapshot #%d, nothing recorded\n", latest.ID)
			return nil
		case err != nil && !errors.Is(err, store.ErrNoSnapshots):
			return err
		}
	}

	id, err := h.Record(snap)
	if err != nil {
		return err
	}
	pruned, err := h.Prune(cfg.History.Keep)
	if err != nil {
		return err
	}
	log.WithFields(map[string]any{"id": id, "pruned": pruned}).Debug("recorded snapshot")

	tier := panel.Classify(snap.Metrics.AverageResponseTime)
	fmt.Printf("  Recorded snapshot #%d (%s, tier %s)\n", id, snap.Source, tier)
	return nil
}
