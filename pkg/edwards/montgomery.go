package edwards

import (
	"encoding/hex"

	"github.com/mahdiidarabi/edcurve/pkg/curveerr"
	"github.com/mahdiidarabi/edcurve/pkg/field"
	"github.com/mahdiidarabi/edcurve/pkg/scalar"
)

// MontgomeryPoint is the u coordinate of a point on the birationally
// equivalent curve v^2 = u^3 + A*u^2 + u, as 32 little-endian bytes. It is
// the X25519 public key format.
type MontgomeryPoint [32]byte

// String returns the hex encoding of m.
func (m MontgomeryPoint) String() string {
	return hex.EncodeToString(m[:])
}

// ToMontgomery returns the u coordinate of the Montgomery form of v,
// u = (1 + y) / (1 - y). The identity maps to u = 0.
func (v *ExtendedPoint) ToMontgomery() MontgomeryPoint {
	var n, dn, u field.Element
	n.Add(&v.z, &v.y)
	dn.Subtract(&v.z, &v.y)
	u.Multiply(&n, dn.Invert(&dn))

	var out MontgomeryPoint
	copy(out[:], u.Bytes())
	return out
}

// ToEdwards returns the Edwards point with y = (u - 1) / (u + 1) and the
// sign of x given by sign, which must be 0 or 1.
//
// The u = -1 point has no Edwards image, and a u on the quadratic twist has
// no point with that y; both are decode errors.
func (m MontgomeryPoint) ToEdwards(sign int) (*ExtendedPoint, error) {
	u, err := new(field.Element).SetBytes(m[:])
	if err != nil {
		return nil, err
	}

	var n, dn, y field.Element
	n.Subtract(u, one)
	dn.Add(u, one)
	if dn.IsZero() == 1 {
		return nil, curveerr.Decode("u = -1 has no Edwards image")
	}
	y.Multiply(&n, dn.Invert(&dn))

	var c CompressedPoint
	copy(c[:], y.Bytes())
	c[31] |= byte(sign&1) << 7
	return c.Decompress()
}

// Mul returns the u coordinate of k*P for the point P with u coordinate m.
// All 255 low bits of k are used as given, without clamping or reduction;
// bit 255 is ignored, as is the top bit of m. The result for u = 0 or for
// k*P at infinity is 0.
func (m MontgomeryPoint) Mul(k *[32]byte) MontgomeryPoint {
	u, _ := new(field.Element).SetBytes(m[:])

	var x2, z2, x3, z3 field.Element
	montgomeryLadder(&x2, &z2, &x3, &z3, u, k)

	var out MontgomeryPoint
	copy(out[:], x2.Multiply(&x2, z2.Invert(&z2)).Bytes())
	return out
}

// MulClamped applies RFC 7748 clamping to k and returns Mul(k), which is
// exactly X25519(k, m).
func (m MontgomeryPoint) MulClamped(k *[32]byte) MontgomeryPoint {
	clamped := *k
	scalar.Clamp(&clamped)
	return m.Mul(&clamped)
}

// montgomeryLadder runs the RFC 7748 x-only ladder over bits 254..0 of k.
// With u the affine coordinate of P it leaves (x2:z2) = k*P and
// (x3:z3) = (k+1)*P.
func montgomeryLadder(x2, z2, x3, z3, u *field.Element, k *[32]byte) {
	var t0, t1 field.Element

	x1 := new(field.Element).Set(u)
	x2.One()
	z2.Zero()
	x3.Set(u)
	z3.One()

	swap := 0
	for pos := 254; pos >= 0; pos-- {
		b := int(k[pos/8]>>uint(pos&7)) & 1
		swap ^= b
		x2.Swap(x3, swap)
		z2.Swap(z3, swap)
		swap = b

		t0.Subtract(x3, z3)
		t1.Subtract(x2, z2)
		x2.Add(x2, z2)
		z2.Add(x3, z3)
		z3.Multiply(&t0, x2)
		z2.Multiply(z2, &t1)
		t0.Square(&t1)
		t1.Square(x2)
		x3.Add(z3, z2)
		z2.Subtract(z3, z2)
		x2.Multiply(&t1, &t0)
		t1.Subtract(&t1, &t0)
		z2.Square(z2)
		z3.Mult32(&t1, aPlus2Over4Int)
		x3.Square(x3)
		t0.Add(&t0, z3)
		z3.Multiply(x1, z2)
		z2.Multiply(&t1, &t0)
	}

	x2.Swap(x3, swap)
	z2.Swap(z3, swap)
}

// ScalarMult sets v = x * q, and returns v.
//
// It maps q to the Montgomery curve, runs the constant-time ladder, and
// lifts k*q back to a full Edwards point: the y coordinate comes from the
// Okeya-Sakurai recovery using (k+1)*q, and the cases the formulas cannot
// express (results at infinity or of order 2, q of order 1 or 2) are
// patched with constant-time selects.
func (v *ExtendedPoint) ScalarMult(x *scalar.Scalar, q *ExtendedPoint) *ExtendedPoint {
	var k [32]byte
	copy(k[:], x.Bytes())

	// Montgomery coordinates of q: u = (Z+Y)/(Z-Y), w = c*u/x with
	// c = sqrt(-(A+2)). Both share the denominator (Z-Y)*X, which is zero
	// only for the identity and (0, -1).
	var zPlusY, den, denInv, u, w field.Element
	zPlusY.Add(&q.z, &q.y)
	den.Subtract(&q.z, &q.y)
	den.Multiply(&den, &q.x)
	denInv.Invert(&den)
	u.Multiply(&zPlusY, &q.x)
	u.Multiply(&u, &denInv)
	w.Multiply(&zPlusY, &q.z)
	w.Multiply(&w, sqrtMinusAPlus2)
	w.Multiply(&w, &denInv)

	var x1, z1, x2, z2 field.Element
	montgomeryLadder(&x1, &z1, &x2, &z2, &u, &k)

	// Okeya-Sakurai, projectively:
	//   X' = 2w * Z1 * Z2 * X1
	//   Y' = Z2 * ((X1 + u*Z1 + 2A*Z1)(u*X1 + Z1) - 2A*Z1^2) - (X1 - u*Z1)^2 * X2
	//   Z' = 2w * Z1 * Z2 * Z1
	var uz1, twoAZ1, s, t, r, yr field.Element
	uz1.Multiply(&u, &z1)
	twoAZ1.Mult32(&z1, twoMontgomeryAInt)

	s.Add(&x1, &uz1)
	s.Add(&s, &twoAZ1)
	t.Multiply(&u, &x1)
	t.Add(&t, &z1)
	s.Multiply(&s, &t)
	t.Multiply(&twoAZ1, &z1)
	s.Subtract(&s, &t)
	s.Multiply(&s, &z2)

	r.Subtract(&x1, &uz1)
	r.Square(&r)
	r.Multiply(&r, &x2)
	yr.Subtract(&s, &r)

	var m, xr, zr field.Element
	m.Multiply(&w, &z1)
	m.Multiply(&m, &z2)
	m.Add(&m, &m)
	xr.Multiply(&m, &x1)
	zr.Multiply(&m, &z1)

	// Back to Edwards: x = c*u/w and y = (u-1)/(u+1) give, in extended
	// coordinates,
	//   (c*X'*(X'+Z') : Y'*(X'-Z') : Y'*(X'+Z') : c*X'*(X'-Z'))
	var sum, diff, cx field.Element
	sum.Add(&xr, &zr)
	diff.Subtract(&xr, &zr)
	cx.Multiply(&xr, sqrtMinusAPlus2)

	var res ExtendedPoint
	res.x.Multiply(&cx, &sum)
	res.y.Multiply(&yr, &diff)
	res.z.Multiply(&yr, &sum)
	res.t.Multiply(&cx, &diff)

	// Exceptional cases, later ones take precedence.
	var negQ, minusOne ExtendedPoint
	negQ.Negate(q)
	minusOne.Set(&eightTorsion[4])
	identity := NewIdentityPoint()

	// (k+1)*q at infinity: k*q = -q.
	res.Select(&negQ, &res, z2.IsZero())
	// k*q at infinity.
	res.Select(identity, &res, z1.IsZero())
	// k*q = (0, -1), the Montgomery point u = 0.
	res.Select(&minusOne, &res, x1.IsZero()&(1^z1.IsZero()))

	// q = (0, -1): the ladder saw u = 0 and lost track of it.
	var negZ field.Element
	negZ.Negate(&q.z)
	qIsMinusOne := q.x.IsZero() & q.y.Equal(&negZ)
	odd := int(k[0] & 1)
	var torsionRes ExtendedPoint
	torsionRes.Select(&minusOne, identity, odd)
	res.Select(&torsionRes, &res, qIsMinusOne)

	// q = identity.
	res.Select(identity, &res, q.IsIdentity())

	return v.Set(&res)
}
