package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pose-catcher/internal/core"
	"github.com/vovakirdan/pose-catcher/internal/platform/tui"
	"github.com/vovakirdan/pose-catcher/internal/pose/feed"
	"github.com/vovakirdan/pose-catcher/internal/registry"
	"github.com/vovakirdan/pose-catcher/internal/storage"
)

var (
	flagPoseSource string
	flagPoseAddr   string
	flagPoseFile   string
	flagPoseRate   int
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round of catcher.

Controls:
  Left/H/A       - Move basket one lane left
  Right/L/D      - Move basket one lane right
  Up/Down/Space  - Center the basket
  Ctrl+S         - Save a screenshot
  R              - Restart (after game over)
  Q/Esc/Ctrl+C   - Quit

A key press takes priority over the pose feed for three seconds.

Pose sources:
  none   - Keyboard only
  ws     - Listen for a classifier on ws://<pose-addr>/pose
  jsonl  - Read frames from --pose-file (- for stdin)
  sim    - Seeded synthetic classifier

Difficulty options:
  easy   - Slower cadence, longer keyboard priority
  normal - Defaults from the config file
  hard   - Faster cadence and speed ramp
  fixed  - No cadence ramp

Examples:
  catcher play
  catcher play --difficulty hard
  catcher play --pose-source sim --seed 42
  catcher play --pose-source ws --pose-addr 0.0.0.0:8765
  classifier | catcher play --pose-source jsonl --pose-file -`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPoseSource, "pose-source", "none", "Pose source: none, or see 'catcher sources'")
	playCmd.Flags().StringVar(&flagPoseAddr, "pose-addr", feed.DefaultAddr, "Listen address for the ws source")
	playCmd.Flags().StringVar(&flagPoseFile, "pose-file", "", "Frames file for the jsonl source (- for stdin)")
	playCmd.Flags().IntVar(&flagPoseRate, "pose-rate", feed.DefaultRate, "Frames per second for jsonl and sim (negative: unpaced)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the screen is taken by the game)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := playLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Preset: preset,
		Logger: logger,
	}

	if flagPoseSource != "" && flagPoseSource != "none" {
		if !registry.Exists(flagPoseSource) {
			return fmt.Errorf("unknown pose source %q (run 'catcher sources')", flagPoseSource)
		}
		poseFeed, feedErr := registry.Create(flagPoseSource, registry.Options{
			Addr:   flagPoseAddr,
			Path:   flagPoseFile,
			Seed:   flagSeed,
			Rate:   flagPoseRate,
			Labels: []string{cfg.Input.Labels.Left, cfg.Input.Labels.Center, cfg.Input.Labels.Right},
			Logger: logger.WithPrefix("pose"),
		})
		if feedErr != nil {
			return feedErr
		}
		opts.Feed = poseFeed
		opts.FeedName = flagPoseSource
		opts.InputTTY = flagPoseFile == "-"
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
		opts.Store = store
	}

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// playLogger logs to --log-file, or nowhere: the alt screen owns the terminal.
func playLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		logger, err := newLogger(io.Discard, "catcher")
		return logger, func() {}, err
	}

	path := expandPath(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := newLogger(f, "catcher")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}
