package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/chatpulse/internal/cli"
	"github.com/theirongolddev/chatpulse/internal/config"
	"github.com/theirongolddev/chatpulse/internal/panel"
	"github.com/theirongolddev/chatpulse/internal/store"
	"github.com/theirongolddev/chatpulse/internal/tui/components"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded metric snapshots",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of snapshots to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := cfg.PanelOptions()
	labels := panel.LabelsFor(opts.Language)

	dbPath := config.HistoryPath(cfg)
	h, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	snaps, err := h.List(flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("\n  No snapshots recorded yet.")
		fmt.Println("  Run `chatpulse record` or start the daemon.")
		return nil
	}
	total, err := h.Count()
	if err != nil {
		return err
	}

	now := time.Now()
	rows := make([][]string, 0, len(snaps))
	minutes := make([]float64, len(snaps))
	for i, s := range snaps {
		m := s.Metrics
		minutes[len(snaps)-1-i] = m.AverageResponseTime
		rows = append(rows, []string{
			fmt.Sprintf("#%d", s.ID),
			cli.FormatAge(s.CapturedAt, now),
			panel.FormatCount(m.TotalMessages, opts.NumberLocale),
			cli.FormatMinutes(m.AverageResponseTime),
			panel.FormatCount(m.ResolvedChats, opts.NumberLocale),
			fmt.Sprintf("%d", m.ActiveAdmins),
			cli.FormatOptionalPercent(m.CustomerSatisfaction),
			labels.Tiers[panel.Classify(m.AverageResponseTime)],
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HISTORY  %d of %d snapshots", len(snaps), total)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Captured", "Messages", "Resp", "Resolved", "Admins", "CSAT", "Tier"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Printf("  Response trend: %s\n", components.ResponseSparkline(minutes))

	if fi, err := os.Stat(dbPath); err == nil {
		fmt.Printf("  Database: %s (%s)\n", dbPath, cli.FormatBytes(fi.Size()))
	}
	return nil
}
