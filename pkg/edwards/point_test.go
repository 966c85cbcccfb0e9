package edwards

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/edcurve/internal/testvectors"
	"github.com/mahdiidarabi/edcurve/pkg/curveerr"
	"github.com/mahdiidarabi/edcurve/pkg/field"
)

var bigP = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))

func limbsToBig(v *field.Element) *big.Int {
	r := new(big.Int)
	for i := 4; i >= 0; i-- {
		r.Lsh(r, 51)
		r.Add(r, new(big.Int).SetUint64(v[i]))
	}
	return r
}

func TestD2IsTwiceD(t *testing.T) {
	// Straight from the limb literals, with no field code involved.
	dv := limbsToBig(d)
	d2v := limbsToBig(d2)
	want := new(big.Int).Lsh(dv, 1)
	want.Mod(want, bigP)
	require.Zero(t, want.Cmp(d2v))

	// And d = -121665/121666.
	num := big.NewInt(-121665)
	den := new(big.Int).ModInverse(big.NewInt(121666), bigP)
	num.Mul(num, den).Mod(num, bigP)
	require.Zero(t, num.Cmp(dv))
}

func TestCurveConstants(t *testing.T) {
	var r, minusOne field.Element
	minusOne.Negate(one)

	require.Equal(t, 1, r.Square(sqrtM1).Equal(&minusOne))

	// sqrt(a*d - 1)^2 = -d - 1
	var want field.Element
	want.Subtract(&minusOne, d)
	require.Equal(t, 1, r.Square(sqrtADMinusOne).Equal(&want))

	// (1/sqrt(a - d))^2 * (a - d) = 1
	var aMinusD field.Element
	aMinusD.Subtract(&minusOne, d)
	r.Square(invSqrtAMinusD)
	require.Equal(t, 1, r.Multiply(&r, &aMinusD).Equal(one))

	// sqrt(-(A+2))^2 = -(A+2)
	var aPlus2 field.Element
	aPlus2.Add(montgomeryA, new(field.Element).Mult32(one, 2))
	want.Negate(&aPlus2)
	require.Equal(t, 1, r.Square(sqrtMinusAPlus2).Equal(&want))

	// (A+2)/4 * 4 = A+2
	require.Equal(t, 1, r.Mult32(aPlus2Over4, 4).Equal(&aPlus2))

	// The accessors hand out copies.
	c := EdwardsD()
	c.Zero()
	require.Equal(t, 0, d.IsZero())
	require.Equal(t, 1, SqrtM1().Equal(field.SqrtM1()))
}

func TestBasepoint(t *testing.T) {
	B := NewGeneratorPoint()
	require.Equal(t, 1, B.IsValid())
	require.Equal(t, "5866666666666666666666666666666666666666666666666666666666666666", B.Compress().String())

	// Compress then decompress reproduces B up to projective equivalence.
	c := B.Compress()
	P, err := c.Decompress()
	require.NoError(t, err)
	require.Equal(t, 1, P.Equal(B))

	X, Y, Z, T := P.ExtendedCoordinates()
	require.Equal(t, 1, X.Equal(&basepoint.x))
	require.Equal(t, 1, Y.Equal(&basepoint.y))
	require.Equal(t, 1, Z.Equal(&basepoint.z))
	require.Equal(t, 1, T.Equal(&basepoint.t))
}

func TestGroupLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	id := NewIdentityPoint()
	for i := 0; i < 30; i++ {
		P := randPoint(t, rng, i%2 == 1)
		Q := randPoint(t, rng, i%3 == 1)
		R := randPoint(t, rng, false)

		var a, b ExtendedPoint
		requirePointEqual(t, a.Double(P), b.Add(P, P))
		requirePointEqual(t, P, a.Add(P, id))
		requirePointEqual(t, P, a.Add(id, P))
		requirePointEqual(t, P, a.Negate(b.Negate(P)))
		requirePointEqual(t, a.Add(P, Q), b.Add(Q, P))

		a.Add(&a, R)
		b.Add(Q, R)
		b.Add(P, &b)
		requirePointEqual(t, &a, &b)

		require.Equal(t, 1, a.Subtract(P, P).IsIdentity())
		requirePointEqual(t, a.Subtract(P, Q), b.Add(P, b.Negate(Q)))
		require.Equal(t, 1, a.Add(P, b.Negate(P)).IsIdentity())
		require.Equal(t, 1, a.IsValid())
	}
}

func TestEqualProjective(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	P := randPoint(t, rng, true)

	// Scale all coordinates by a random nonzero lambda.
	lambda := new(field.Element).Mult32(one, 12345)
	var Q ExtendedPoint
	Q.x.Multiply(&P.x, lambda)
	Q.y.Multiply(&P.y, lambda)
	Q.z.Multiply(&P.z, lambda)
	Q.t.Multiply(&P.t, lambda)

	require.Equal(t, 1, Q.IsValid())
	require.Equal(t, 1, P.Equal(&Q))
	require.Equal(t, 1, Q.Equal(P))
	require.Equal(t, P.Compress(), Q.Compress())

	var R ExtendedPoint
	R.Negate(P)
	require.Equal(t, 0, P.Equal(&R))
}

func TestSetExtendedCoordinates(t *testing.T) {
	B := NewGeneratorPoint()
	X, Y, Z, T := B.ExtendedCoordinates()

	P, err := new(ExtendedPoint).SetExtendedCoordinates(X, Y, Z, T)
	require.NoError(t, err)
	require.Equal(t, 1, P.Equal(B))

	// Wrong T.
	_, err = new(ExtendedPoint).SetExtendedCoordinates(X, Y, Z, new(field.Element).Zero())
	require.ErrorIs(t, err, curveerr.ErrInvalidPoint)

	// Off the curve.
	_, err = new(ExtendedPoint).SetExtendedCoordinates(X, X, Z, new(field.Element).Square(X))
	require.ErrorIs(t, err, curveerr.ErrInvalidPoint)

	// Z = 0.
	zero := new(field.Element).Zero()
	_, err = new(ExtendedPoint).SetExtendedCoordinates(zero, zero, zero, zero)
	require.ErrorIs(t, err, curveerr.ErrInvalidPoint)
}

func TestCompressRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		P := randPoint(t, rng, true)
		enc := P.Bytes()

		Q, err := new(ExtendedPoint).SetBytes(enc)
		require.NoError(t, err)
		require.Equal(t, 1, Q.Equal(P))
		require.Equal(t, enc, Q.Bytes())

		// The Filippo decoder agrees on the encoding.
		require.Equal(t, enc, toFilo(t, P).Bytes())
	}
}

func TestDecompressWrongSign(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 20; i++ {
		P := randPoint(t, rng, false)
		c := P.Compress()
		c[31] ^= 0x80

		Q, err := c.Decompress()
		require.NoError(t, err)
		require.Equal(t, 1, Q.IsValid())

		var negP ExtendedPoint
		negP.Negate(P)
		require.Equal(t, 1, Q.Equal(&negP))
		require.Equal(t, 0, Q.Equal(P))
	}
}

func TestDecompressRejects(t *testing.T) {
	vectors, err := testvectors.Load()
	require.NoError(t, err)
	require.NotEmpty(t, vectors.InvalidEncodings)

	for _, v := range vectors.InvalidEncodings {
		c, err := testvectors.Hex32(v.Encoding)
		require.NoError(t, err)

		_, err = CompressedPoint(c).Decompress()
		switch v.Error {
		case "decode":
			require.ErrorIs(t, err, curveerr.ErrDecode, v.Name)
		case "invalid":
			require.ErrorIs(t, err, curveerr.ErrInvalidPoint, v.Name)
		default:
			t.Fatalf("unknown error kind %q", v.Error)
		}
	}

	_, err = new(ExtendedPoint).SetBytes(make([]byte, 31))
	require.ErrorIs(t, err, curveerr.ErrDecode)
}

func TestDecompressNonSquareRandom(t *testing.T) {
	// About half of all y have no x; each rejection must be a decode error
	// and each success a valid point that re-encodes identically.
	rng := rand.New(rand.NewSource(5))
	rejected := 0
	for i := 0; i < 200; i++ {
		var c CompressedPoint
		rng.Read(c[:])
		c[31] &= 0x7f
		P, err := c.Decompress()
		if err != nil {
			require.ErrorIs(t, err, curveerr.ErrDecode)
			rejected++
			continue
		}
		require.Equal(t, 1, P.IsValid())
		require.Equal(t, c, P.Compress())
	}
	require.Greater(t, rejected, 50)
	require.Less(t, rejected, 150)
}
