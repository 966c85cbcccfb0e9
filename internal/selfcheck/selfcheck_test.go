package selfcheck

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultChecksPass(t *testing.T) {
	results, err := NewChecker().Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, len(DefaultChecks()))
	for _, r := range results {
		require.NoError(t, r.Err, r.Name)
	}
}

func TestDefaultChecksUniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range DefaultChecks() {
		require.False(t, seen[c.Name], "duplicate check %q", c.Name)
		seen[c.Name] = true
		require.NotNil(t, c.Run, c.Name)
	}
}

func TestRunOrdersByPriority(t *testing.T) {
	var order []string
	record := func(name string) func() error {
		return func() error {
			order = append(order, name)
			return nil
		}
	}
	checks := []Check{
		{Name: "late", Priority: 3, Run: record("late")},
		{Name: "early", Priority: 1, Run: record("early")},
		{Name: "middle-a", Priority: 2, Run: record("middle-a")},
		{Name: "middle-b", Priority: 2, Run: record("middle-b")},
	}

	_, err := NewChecker().WithChecks(checks).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"early", "middle-a", "middle-b", "late"}, order)
}

func TestRunReportsFailures(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	boom := errors.New("boom")
	checks := []Check{
		{Name: "ok", Priority: 1, Run: func() error { return nil }},
		{Name: "bad", Priority: 2, Run: func() error { return boom }},
		{Name: "after", Priority: 3, Run: func() error { return nil }},
	}

	results, err := NewChecker().WithChecks(checks).WithLogger(zap.New(core)).Run(context.Background())
	require.True(t, errors.Is(err, ErrCheckFailed))
	require.Contains(t, err.Error(), "bad")
	require.Len(t, results, 3)
	require.Equal(t, boom, results[1].Err)

	failed := logs.FilterMessage("check failed").All()
	require.Len(t, failed, 1)
	require.Equal(t, "bad", failed[0].ContextMap()["check"])
}

func TestRunFailFast(t *testing.T) {
	ran := false
	checks := []Check{
		{Name: "bad", Priority: 1, Run: func() error { return errors.New("boom") }},
		{Name: "after", Priority: 2, Run: func() error { ran = true; return nil }},
	}

	results, err := NewChecker().WithChecks(checks).WithFailFast(true).Run(context.Background())
	require.Error(t, err)
	require.Len(t, results, 1)
	require.False(t, ran)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewChecker().Run(ctx)
	require.True(t, errors.Is(err, context.Canceled))
	require.Empty(t, results)
}

func TestLittleEndianHelpers(t *testing.T) {
	for _, c := range DefaultChecks()[:2] {
		require.NoError(t, c.Run(), c.Name)
	}
	b := make([]byte, 32)
	b[0], b[31] = 0x01, 0x80
	require.Equal(t, b, littleEndian(fromLittleEndian(b)))
}
