package edwards

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/curve25519"

	"github.com/mahdiidarabi/edcurve/internal/testvectors"
	"github.com/mahdiidarabi/edcurve/pkg/curveerr"
)

func TestX25519Vectors(t *testing.T) {
	vectors, err := testvectors.Load()
	require.NoError(t, err)
	require.NotEmpty(t, vectors.X25519)

	for _, v := range vectors.X25519 {
		k, err := testvectors.Hex32(v.Scalar)
		require.NoError(t, err)
		u, err := testvectors.Hex32(v.U)
		require.NoError(t, err)

		got := MontgomeryPoint(u).MulClamped(&k)
		require.Equal(t, v.Output, got.String())

		want, err := curve25519.X25519(k[:], u[:])
		require.NoError(t, err)
		require.Equal(t, want, got[:])
	}
}

func TestMontgomeryMulAgainstXCrypto(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		var k, u [32]byte
		rng.Read(k[:])
		rng.Read(u[:])

		got := MontgomeryPoint(u).MulClamped(&k)
		want, err := curve25519.X25519(k[:], u[:])
		if err != nil {
			// x/crypto refuses all-zero outputs; ours returns them.
			require.Equal(t, MontgomeryPoint{}, got)
			continue
		}
		require.Equal(t, want, got[:])
	}
}

func TestToMontgomery(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	var base [32]byte
	copy(base[:], curve25519.Basepoint)
	require.Equal(t, MontgomeryPoint(base), NewGeneratorPoint().ToMontgomery())

	for i := 0; i < 20; i++ {
		s := randScalar(t, rng)
		var k [32]byte
		copy(k[:], s.Bytes())

		// u(k*B) computed on Edwards and by the x-only ladder agree.
		P := new(ExtendedPoint).ScalarBaseMult(s)
		require.Equal(t, MontgomeryPoint(base).Mul(&k), P.ToMontgomery())

		// And for a point with torsion, the ladder ScalarMult path too.
		Q := randPoint(t, rng, true)
		var R ExtendedPoint
		R.ScalarMult(s, Q)
		require.Equal(t, Q.ToMontgomery().Mul(&k), R.ToMontgomery())
	}

	require.Equal(t, MontgomeryPoint{}, NewIdentityPoint().ToMontgomery())
}

func TestToEdwards(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		P := randPoint(t, rng, true)
		u := P.ToMontgomery()

		sign := int(P.Compress()[31] >> 7)
		Q, err := u.ToEdwards(sign)
		require.NoError(t, err)
		requirePointEqual(t, P, Q)

		R, err := u.ToEdwards(1 - sign)
		require.NoError(t, err)
		var negP ExtendedPoint
		requirePointEqual(t, negP.Negate(P), R)
	}

	// u = -1 has no Edwards image.
	minusOne := MontgomeryPoint{0xec, 31: 0x7f}
	for i := 1; i < 31; i++ {
		minusOne[i] = 0xff
	}
	_, err := minusOne.ToEdwards(0)
	require.ErrorIs(t, err, curveerr.ErrDecode)
}

func TestMontgomeryLadderSmallOrder(t *testing.T) {
	// u = 0 is the point of order 2; every multiple has u = 0.
	var k [32]byte
	k[0] = 3
	require.Equal(t, MontgomeryPoint{}, MontgomeryPoint{}.Mul(&k))

	// u = 1 has order 4: 2*P is (0, 0) and 4*P is at infinity.
	one := MontgomeryPoint{1}
	k[0] = 2
	require.Equal(t, MontgomeryPoint{}, one.Mul(&k))
	k[0] = 5
	require.Equal(t, one, one.Mul(&k))
}
