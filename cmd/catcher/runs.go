package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pose-catcher/internal/platform/tui"
	"github.com/vovakirdan/pose-catcher/internal/storage"
)

var (
	flagRunsPlain bool
	flagRunsTop   bool
	flagRunsLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse journaled runs",
	Long: `Show the runs recorded in the journal.

Opens an interactive browser where Enter replays the selected run and
checks it reproduces the recorded score. Use --plain for a text listing.

Examples:
  catcher runs
  catcher runs --plain --top --limit 5`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print a text listing instead of the browser")
	runsCmd.Flags().BoolVar(&flagRunsTop, "top", false, "List best runs instead of most recent (with --plain)")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to list (with --plain)")
}

func runRuns(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open run journal: %w", err)
	}
	defer store.Close()

	if !flagRunsPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunRunsBrowser(store, cfg, width, height)
	}

	var runs []storage.Run
	if flagRunsTop {
		runs, err = store.TopRuns(flagRunsLimit)
	} else {
		runs, err = store.Runs(flagRunsLimit)
	}
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'catcher play' to record the first run!")
		return nil
	}

	fmt.Printf("  %-8s  %-7s  %-8s  %-6s  %s\n", "Run", "Score", "End", "Source", "Date")
	fmt.Printf("  %-8s  %-7s  %-8s  %-6s  %s\n", "---", "-----", "---", "------", "----")
	for _, r := range runs {
		source := r.PoseSource
		if source == "" {
			source = "keys"
		}
		fmt.Printf("  %-8s  %-7d  %-8s  %-6s  %s\n",
			shortID(r.ID), r.FinalScore, r.EndReason, source, r.StartedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
