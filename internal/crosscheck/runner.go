// Package crosscheck runs randomized differential tests of the edcurve
// packages against independent implementations: filippo.io/edwards25519 for
// field, scalar and Edwards operations, golang.org/x/crypto/curve25519 for
// X25519, and github.com/holiman/uint256 for plain modular arithmetic.
package crosscheck

import (
	"context"
	"hash/fnv"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrMismatch is wrapped by the error Run returns when any property failed.
var ErrMismatch = errors.New("crosscheck: implementations disagree")

// Failure records one property that did not hold.
type Failure struct {
	Property string
	Trial    int
	Seed     int64
	Err      error
}

// Report summarizes a run.
type Report struct {
	Trials   int64
	Checks   int64
	Failures []Failure
	Elapsed  time.Duration
}

// Runner checks a set of properties on random inputs in parallel.
type Runner struct {
	config     Config
	properties []Property
	logger     *zap.Logger
}

// NewRunner creates a runner with default settings.
func NewRunner() *Runner {
	return &Runner{
		config:     DefaultConfig(),
		properties: DefaultProperties(),
		logger:     zap.NewNop(),
	}
}

// WithConfig sets the run configuration.
func (r *Runner) WithConfig(config Config) *Runner {
	r.config = config
	return r
}

// WithProperties sets the properties to check.
func (r *Runner) WithProperties(properties []Property) *Runner {
	r.properties = properties
	return r
}

// WithLogger sets the logger for progress and failures.
func (r *Runner) WithLogger(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.logger = logger
	return r
}

// Run checks every property on Config.Trials random inputs. The returned
// Report is always non-nil. The error wraps ErrMismatch if a property failed,
// or is the context error if ctx ended first.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	cfg := r.config
	numWorkers := cfg.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	r.logger.Info("starting differential run",
		zap.Int("trials", cfg.Trials),
		zap.Int("properties", len(r.properties)),
		zap.Int("workers", numWorkers),
		zap.Int64("seed", cfg.Seed))

	start := time.Now()
	var (
		trials, checks int64
		mu             sync.Mutex
		failures       []Failure
		stopped        int32
	)
	report := func() *Report {
		mu.Lock()
		defer mu.Unlock()
		return &Report{
			Trials:   atomic.LoadInt64(&trials),
			Checks:   atomic.LoadInt64(&checks),
			Failures: append([]Failure(nil), failures...),
			Elapsed:  time.Since(start),
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	work := make(chan int, numWorkers*4)

	g.Go(func() error {
		defer close(work)
		for i := 0; i < cfg.Trials; i++ {
			if atomic.LoadInt32(&stopped) == 1 {
				return nil
			}
			select {
			case <-gctx.Done():
				return gctx.Err()
			case work <- i:
			}
		}
		return nil
	})

	progressDone := make(chan struct{})
	if cfg.ProgressInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.ProgressInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return
				case <-progressDone:
					return
				case <-ticker.C:
					r.logger.Info("progress",
						zap.Int64("trials", atomic.LoadInt64(&trials)),
						zap.Int("of", cfg.Trials),
						zap.Int64("checks", atomic.LoadInt64(&checks)))
				}
			}
		}()
	}

	for w := 0; w < numWorkers; w++ {
		g.Go(func() error {
			for trial := range work {
				if atomic.LoadInt32(&stopped) == 1 {
					continue
				}
				seed := cfg.Seed + int64(trial)
				for _, p := range r.properties {
					if err := gctx.Err(); err != nil {
						return err
					}
					// Each property draws from its own stream.
					err := p.Check(rand.New(rand.NewSource(propertySeed(seed, p.Name))))
					atomic.AddInt64(&checks, 1)
					if err == nil {
						continue
					}

					r.logger.Error("property failed",
						zap.String("property", p.Name),
						zap.Int("trial", trial),
						zap.Int64("seed", seed),
						zap.Error(err))
					mu.Lock()
					failures = append(failures, Failure{Property: p.Name, Trial: trial, Seed: seed, Err: err})
					if cfg.MaxFailures > 0 && len(failures) >= cfg.MaxFailures {
						atomic.StoreInt32(&stopped, 1)
					}
					mu.Unlock()
				}
				atomic.AddInt64(&trials, 1)
			}
			return nil
		})
	}

	err := g.Wait()
	close(progressDone)

	rep := report()
	if err != nil {
		return rep, errors.Wrap(err, "differential run interrupted")
	}
	if len(rep.Failures) > 0 {
		return rep, errors.Wrapf(ErrMismatch, "%d failures in %d checks", len(rep.Failures), rep.Checks)
	}
	r.logger.Info("differential run passed",
		zap.Int64("trials", rep.Trials),
		zap.Int64("checks", rep.Checks),
		zap.Duration("elapsed", rep.Elapsed))
	return rep, nil
}

// propertySeed derives the seed of one property's input stream from the
// trial seed and the property name.
func propertySeed(seed int64, name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return seed ^ int64(h.Sum64())
}
