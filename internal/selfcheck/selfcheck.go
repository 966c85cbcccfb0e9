// Package selfcheck verifies the algebraic relations between the curve
// constants and the precomputed tables the engine relies on.
//
// A failed check means a constant was mistyped or a table is corrupt. Such a
// defect cannot be detected by the arithmetic itself, so these checks run
// from the test suite and from the edcurve selfcheck command.
package selfcheck

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Check is a single named relation.
type Check struct {
	Name string
	// Priority orders the run; lower runs first. Checks that later ones
	// depend on (field constants before points, points before tables) get
	// lower values.
	Priority int
	Run      func() error
}

// Result is the outcome of one Check.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// ErrCheckFailed is wrapped by the error Checker.Run returns when at least
// one check failed.
var ErrCheckFailed = errors.New("selfcheck: check failed")

// Checker runs a list of checks in priority order.
type Checker struct {
	checks   []Check
	failFast bool
	logger   *zap.Logger
}

// NewChecker returns a Checker over DefaultChecks that runs every check and
// logs nothing.
func NewChecker() *Checker {
	return &Checker{
		checks: DefaultChecks(),
		logger: zap.NewNop(),
	}
}

// WithLogger sets the logger used to report each result.
func (c *Checker) WithLogger(logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
	return c
}

// WithChecks replaces the checks to run.
func (c *Checker) WithChecks(checks []Check) *Checker {
	c.checks = checks
	return c
}

// WithFailFast stops the run at the first failing check.
func (c *Checker) WithFailFast(failFast bool) *Checker {
	c.failFast = failFast
	return c
}

// Run executes the checks and returns one Result per check that ran. The
// error is non-nil if any check failed or ctx was cancelled.
func (c *Checker) Run(ctx context.Context) ([]Result, error) {
	checks := append([]Check(nil), c.checks...)
	sort.SliceStable(checks, func(i, j int) bool {
		return checks[i].Priority < checks[j].Priority
	})

	c.logger.Info("running self-checks", zap.Int("count", len(checks)))

	results := make([]Result, 0, len(checks))
	var failed []string
	for _, check := range checks {
		select {
		case <-ctx.Done():
			return results, errors.Wrap(ctx.Err(), "selfcheck interrupted")
		default:
		}

		start := time.Now()
		err := check.Run()
		res := Result{Name: check.Name, Err: err, Duration: time.Since(start)}
		results = append(results, res)

		if err != nil {
			c.logger.Error("check failed", zap.String("check", check.Name), zap.Error(err))
			failed = append(failed, check.Name)
			if c.failFast {
				break
			}
			continue
		}
		c.logger.Debug("check passed", zap.String("check", check.Name), zap.Duration("took", res.Duration))
	}

	if len(failed) > 0 {
		return results, errors.Wrapf(ErrCheckFailed, "%d of %d failed: %v", len(failed), len(checks), failed)
	}
	c.logger.Info("all self-checks passed", zap.Int("count", len(results)))
	return results, nil
}
