// Package registry provides a global registry for pose feed factories.
// Feeds register themselves in init() functions, allowing the CLI to
// discover and instantiate pose sources without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pose-catcher/internal/pose"
)

// Deliver receives one classifier frame. Feeds call it from their own
// goroutine; the receiver is responsible for handing it to the game loop.
type Deliver func(samples []pose.Sample)

// Feed is a source of classifier frames.
// Run blocks until ctx is cancelled or the source is exhausted.
type Feed interface {
	Run(ctx context.Context, deliver Deliver) error
}

// Options configure a feed at creation time. Each feed reads the fields it
// needs and ignores the rest.
type Options struct {
	Addr   string    // Listen address for network feeds
	Path   string    // Input file; "-" means stdin
	Input  io.Reader // Overrides Path when set
	Seed   int64
	Rate   int      // Frames per second for generated feeds
	Labels []string // Class labels in lane order: left, center, right
	Logger *log.Logger
}

// Info contains metadata about a registered feed.
type Info struct {
	ID          string
	Description string
}

// Factory creates a new feed from options.
type Factory func(opts Options) (Feed, error)

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a feed factory to the registry.
// Typically called from a feed's init() function.
// Panics if a feed with the same ID is already registered.
func Register(id, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: feed %q already registered", id))
	}

	factories[id] = f
	descriptions[id] = description
}

// List returns information about all registered feeds, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:          id,
			Description: descriptions[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a feed by its ID.
// Returns an error if the ID is not registered or the factory rejects opts.
func Create(id string, opts Options) (Feed, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown pose source %q", id)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	feed, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: %s: %w", id, err)
	}
	return feed, nil
}

// Exists checks if a feed with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
