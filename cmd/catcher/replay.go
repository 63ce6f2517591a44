package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/journal"
	"github.com/vovakirdan/pose-catcher/internal/storage"
)

var flagReplayAll bool

var replayCmd = &cobra.Command{
	Use:   "replay [run-id]",
	Short: "Re-simulate a journaled run",
	Long: `Replay a journaled run on virtual time and check that it reproduces the
recorded score, end reason and tick count. The run can be named by a
unique prefix of its ID.

Examples:
  catcher replay 3f2a91
  catcher replay --all`,
	Args: func(cmd *cobra.Command, args []string) error {
		if flagReplayAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayAll, "all", false, "Replay every run in the journal")
}

func runReplay(_ *cobra.Command, args []string) error {
	fallback, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, "replay")
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open run journal: %w", err)
	}
	defer store.Close()

	var runs []storage.Run
	if flagReplayAll {
		runs, err = store.Runs(math.MaxInt32)
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}
	} else {
		run, runErr := store.Run(args[0])
		if runErr != nil {
			return runErr
		}
		runs = []storage.Run{run}
	}

	failed := 0
	for _, run := range runs {
		if err := replayOne(store, run, fallback, logger); err != nil {
			failed++
			fmt.Printf("✗ %s  %v\n", shortID(run.ID), err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d runs did not replay", failed, len(runs))
	}
	return nil
}

func replayOne(store *storage.Store, run storage.Run, fallback config.Config, logger *log.Logger) error {
	entries, err := store.RunEntries(run.ID)
	if err != nil {
		return err
	}
	cfg, err := journal.RunConfig(run, fallback)
	if err != nil {
		return err
	}

	logger.Debug("replaying", "run", run.ID, "seed", run.Seed, "entries", len(entries))
	res, err := journal.Replay(cfg, run, entries)
	if err != nil && !errors.Is(err, journal.ErrReplayMismatch) {
		return err
	}
	if err != nil {
		return fmt.Errorf("diverged: replay scored %d (%s) at tick %d, recorded %d (%s) at tick %d",
			res.Score, res.Reason, res.Ticks, run.FinalScore, run.EndReason, run.Ticks)
	}

	fmt.Printf("✓ %s  score %d, %s after %s (%d inputs)\n",
		shortID(run.ID), res.Score, res.Reason, ticksToTime(res.Ticks), res.Events)
	return nil
}

// ticksToTime formats a tick count at the nominal 60 ticks per second.
func ticksToTime(ticks uint64) string {
	secs := ticks / 60
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
