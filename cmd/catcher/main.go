// catcher is a terminal fruit-catching game steered by body pose.
//
// Usage:
//
//	catcher play             - Play with the keyboard and an optional pose feed
//	catcher serve            - Start SSH server for remote keyboard play
//	catcher runs             - Browse journaled runs
//	catcher replay <run>     - Re-simulate a journaled run and check its outcome
//	catcher sources          - List available pose sources
//	catcher config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set journal path (default: ~/.catcher/journal.db)
//	--config <path>       - Use a custom game config YAML
//	--difficulty <preset> - Apply a difficulty preset
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pose-catcher/internal/config"

	// Import pose feeds to register them
	_ "github.com/vovakirdan/pose-catcher/internal/pose/feed"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catcher",
	Short: "Catcher - catch falling fruit by leaning left and right",
	Long: `Catcher is a terminal game: fruit falls down three lanes and you move
a basket to catch it. Steer with the arrow keys or with a pose classifier
that reports Left/Center/Right. Catch a bomb and the round is over.

Every round is journaled and can be replayed deterministically.

Available commands:
  play     - Play a round
  serve    - Start SSH server for remote play
  runs     - Browse journaled runs
  replay   - Verify a journaled run by replaying it
  sources  - Show available pose sources
  config   - Print the effective configuration

Examples:
  catcher play
  catcher play --pose-source sim
  catcher play --pose-source ws --pose-addr :8765
  catcher serve --ssh :2222
  catcher replay 3f2a`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.catcher/journal.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the game config and applies the difficulty preset.
func loadConfig() (config.Config, string, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, "", fmt.Errorf("load config: %w", err)
	}

	preset := config.ParsePreset(flagDifficulty)
	if flagDifficulty != "" && preset == "" {
		return cfg, "", fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, "", err
	}
	return cfg, string(preset), nil
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
