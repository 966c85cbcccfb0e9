package crosscheck

import (
	"time"
)

// Config controls a differential run.
type Config struct {
	// Trials is the number of random inputs each property is checked on.
	Trials int

	// NumWorkers controls parallelization (0 = auto-detect)
	NumWorkers int

	// Seed makes a run reproducible. Trial i of a run always draws its
	// inputs from Seed+i, whatever worker picks it up.
	Seed int64

	// ProgressInterval is how often progress is logged (0 disables it).
	ProgressInterval time.Duration

	// MaxFailures stops the run once that many mismatches were recorded
	// (0 = never stop early).
	MaxFailures int
}

// DefaultConfig returns a configuration suitable for a quick local run.
func DefaultConfig() Config {
	return Config{
		Trials:           1000,
		NumWorkers:       0, // Auto-detect
		Seed:             1,
		ProgressInterval: 5 * time.Second,
		MaxFailures:      10,
	}
}

// WithTrials returns a copy of c with Trials set.
func (c Config) WithTrials(n int) Config {
	c.Trials = n
	return c
}

// WithNumWorkers returns a copy of c with NumWorkers set.
func (c Config) WithNumWorkers(n int) Config {
	c.NumWorkers = n
	return c
}

// WithSeed returns a copy of c with Seed set.
func (c Config) WithSeed(seed int64) Config {
	c.Seed = seed
	return c
}

// WithProgressInterval returns a copy of c with ProgressInterval set.
func (c Config) WithProgressInterval(d time.Duration) Config {
	c.ProgressInterval = d
	return c
}

// WithMaxFailures returns a copy of c with MaxFailures set.
func (c Config) WithMaxFailures(n int) Config {
	c.MaxFailures = n
	return c
}
