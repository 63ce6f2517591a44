package feed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pose-catcher/internal/registry"
)

const maxLineSize = 1 << 20

func init() {
	registry.Register("jsonl", "JSON-lines file or stdin, one frame per line, paced at --pose-rate",
		func(opts registry.Options) (registry.Feed, error) {
			if opts.Input == nil && opts.Path == "" {
				return nil, fmt.Errorf("no input file (use --pose-file, - for stdin)")
			}
			return NewJSONLines(opts.Input, opts.Path, opts.Rate, opts.Logger), nil
		})
}

// JSONLines replays classifier frames from a line-oriented stream. Blank
// lines and lines starting with # are skipped; malformed lines are counted
// and dropped.
type JSONLines struct {
	r      io.Reader
	path   string
	rate   int
	logger *log.Logger
}

// NewJSONLines creates a feed reading from r, or from path when r is nil.
// A rate of 0 or less uses DefaultRate; a negative rate disables pacing.
func NewJSONLines(r io.Reader, path string, rate int, logger *log.Logger) *JSONLines {
	return &JSONLines{r: r, path: path, rate: rate, logger: logger}
}

// Run delivers every frame, then returns. Returns early when ctx is done.
func (j *JSONLines) Run(ctx context.Context, deliver registry.Deliver) error {
	r := j.r
	if r == nil {
		if j.path == "-" {
			r = os.Stdin
		} else {
			f, err := os.Open(j.path)
			if err != nil {
				return fmt.Errorf("feed: open %s: %w", j.path, err)
			}
			defer f.Close()
			r = f
		}
	}

	var tick <-chan time.Time
	if j.rate >= 0 {
		ticker := time.NewTicker(frameInterval(j.rate))
		defer ticker.Stop()
		tick = ticker.C
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)

	line, frames, dropped := 0, 0, 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		samples, err := DecodeJSON([]byte(text))
		if err != nil {
			dropped++
			j.logger.Debug("dropping line", "line", line, "error", err)
			continue
		}

		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
		if ctx.Err() != nil {
			return nil
		}
		frames++
		deliver(samples)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("feed: read line %d: %w", line+1, err)
	}

	j.logger.Info("pose file exhausted", "frames", frames, "dropped", dropped)
	return nil
}
