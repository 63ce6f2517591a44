package core

// RuntimeConfig holds the per-process knobs of a play session: terminal
// size, frame rate and seed. Game rules live in config.Config.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in columns
	ScreenH  int   // Terminal height in rows
	TickRate int   // Frames per second
	Seed     int64 // 0 picks a seed from the wall clock
}

// Default terminal size and frame rate.
const (
	DefaultScreenW  = 80
	DefaultScreenH  = 24
	DefaultTickRate = 60
)

// Normalized fills unset or invalid fields with defaults.
func (r RuntimeConfig) Normalized() RuntimeConfig {
	if r.ScreenW <= 0 {
		r.ScreenW = DefaultScreenW
	}
	if r.ScreenH <= 0 {
		r.ScreenH = DefaultScreenH
	}
	if r.TickRate <= 0 {
		r.TickRate = DefaultTickRate
	}
	return r
}
