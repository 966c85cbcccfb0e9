package curveerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindsSurviveWrapping(t *testing.T) {
	err := Decodef("input is %d bytes, want 32", 31)
	require.True(t, errors.Is(err, ErrDecode))
	require.False(t, errors.Is(err, ErrInvalidPoint))
	require.Contains(t, err.Error(), "31 bytes")

	err = InvalidPoint("not on curve")
	require.True(t, errors.Is(err, ErrInvalidPoint))
	require.False(t, errors.Is(err, ErrDecode))

	require.True(t, errors.Is(Decode("y >= p"), ErrDecode))
}
