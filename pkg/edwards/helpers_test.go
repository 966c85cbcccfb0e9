package edwards

import (
	"math/rand"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/edcurve/pkg/scalar"
)

func randScalar(t *testing.T, rng *rand.Rand) *scalar.Scalar {
	t.Helper()
	var buf [64]byte
	rng.Read(buf[:])
	s, err := scalar.NewScalar().SetUniformBytes(buf[:])
	require.NoError(t, err)
	return s
}

// randPoint returns a random multiple of B, plus a torsion component when
// mixed is set.
func randPoint(t *testing.T, rng *rand.Rand, mixed bool) *ExtendedPoint {
	t.Helper()
	p := new(ExtendedPoint).ScalarBaseMult(randScalar(t, rng))
	if mixed {
		p.Add(p, &eightTorsion[rng.Intn(8)])
	}
	return p
}

func scalarFromUint(t *testing.T, k uint64) *scalar.Scalar {
	t.Helper()
	var b [32]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(k >> (8 * i))
	}
	s, err := scalar.FromBytes(b[:], false)
	require.NoError(t, err)
	return s
}

// naiveMult is double-and-add over the bits of x, used as an independent
// reference inside this package.
func naiveMult(x *scalar.Scalar, p *ExtendedPoint) *ExtendedPoint {
	acc := NewIdentityPoint()
	b := x.Bytes()
	for i := 255; i >= 0; i-- {
		acc.Double(acc)
		if (b[i/8]>>(i%8))&1 == 1 {
			acc.Add(acc, p)
		}
	}
	return acc
}

func toFilo(t *testing.T, p *ExtendedPoint) *edwards25519.Point {
	t.Helper()
	q, err := new(edwards25519.Point).SetBytes(p.Bytes())
	require.NoError(t, err)
	return q
}

func filoScalar(t *testing.T, s *scalar.Scalar) *edwards25519.Scalar {
	t.Helper()
	fs, err := edwards25519.NewScalar().SetCanonicalBytes(s.Bytes())
	require.NoError(t, err)
	return fs
}

func requirePointEqual(t *testing.T, want, got *ExtendedPoint, msgAndArgs ...interface{}) {
	t.Helper()
	require.Equal(t, want.Compress().String(), got.Compress().String(), msgAndArgs...)
	require.Equal(t, 1, want.Equal(got), msgAndArgs...)
}
