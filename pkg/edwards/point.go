package edwards

import (
	"github.com/mahdiidarabi/edcurve/pkg/curveerr"
	"github.com/mahdiidarabi/edcurve/pkg/field"
)

// ExtendedPoint is a point on the curve in extended coordinates.
//
// The zero value is NOT valid and may only be used as a receiver. Like the
// field and scalar types, methods set the receiver, return it, and accept
// aliased arguments.
type ExtendedPoint struct {
	x, y, z, t field.Element

	// Make ExtendedPoint uncomparable, since == on the coordinates is not
	// point equality.
	_ incomparable
}

type incomparable [0]func()

// NewIdentityPoint returns a new ExtendedPoint set to the identity (0, 1).
func NewIdentityPoint() *ExtendedPoint {
	return new(ExtendedPoint).Identity()
}

// NewGeneratorPoint returns a new ExtendedPoint set to the basepoint B.
func NewGeneratorPoint() *ExtendedPoint {
	return new(ExtendedPoint).Set(basepoint)
}

// Identity sets v to the identity, and returns v.
func (v *ExtendedPoint) Identity() *ExtendedPoint {
	v.x.Zero()
	v.y.One()
	v.z.One()
	v.t.Zero()
	return v
}

// Set sets v = u, and returns v.
func (v *ExtendedPoint) Set(u *ExtendedPoint) *ExtendedPoint {
	*v = *u
	return v
}

// ExtendedCoordinates returns v in extended coordinates (X:Y:Z:T).
func (v *ExtendedPoint) ExtendedCoordinates() (X, Y, Z, T *field.Element) {
	X = new(field.Element).Set(&v.x)
	Y = new(field.Element).Set(&v.y)
	Z = new(field.Element).Set(&v.z)
	T = new(field.Element).Set(&v.t)
	return
}

// SetExtendedCoordinates sets v = (X:Y:Z:T), and returns v. If the
// coordinates do not describe a point on the curve with X*Y = Z*T, it
// returns an invalid point error and leaves v unchanged.
func (v *ExtendedPoint) SetExtendedCoordinates(X, Y, Z, T *field.Element) (*ExtendedPoint, error) {
	var p ExtendedPoint
	p.x.Set(X)
	p.y.Set(Y)
	p.z.Set(Z)
	p.t.Set(T)
	if p.IsValid() != 1 {
		return nil, curveerr.InvalidPoint("coordinates are not a curve point")
	}
	return v.Set(&p), nil
}

// IsValid returns 1 if v is on the curve with a well-formed extended
// representation: Z != 0, X*Y = Z*T and
// (-X^2 + Y^2)*Z^2 = Z^4 + d*X^2*Y^2. It returns 0 otherwise.
func (v *ExtendedPoint) IsValid() int {
	var xx, yy, zz, zzzz, lhs, rhs, xy, zt field.Element
	xx.Square(&v.x)
	yy.Square(&v.y)
	zz.Square(&v.z)
	zzzz.Square(&zz)

	lhs.Subtract(&yy, &xx)
	lhs.Multiply(&lhs, &zz)

	rhs.Multiply(&xx, &yy)
	rhs.Multiply(&rhs, d)
	rhs.Add(&rhs, &zzzz)

	xy.Multiply(&v.x, &v.y)
	zt.Multiply(&v.z, &v.t)

	return lhs.Equal(&rhs) & xy.Equal(&zt) & (1 ^ v.z.IsZero())
}

// Add sets v = p + q, and returns v.
func (v *ExtendedPoint) Add(p, q *ExtendedPoint) *ExtendedPoint {
	var qn projectiveNiels
	var r completedPoint
	qn.fromExtended(q)
	r.add(p, &qn)
	return v.fromCompleted(&r)
}

// Subtract sets v = p - q, and returns v.
func (v *ExtendedPoint) Subtract(p, q *ExtendedPoint) *ExtendedPoint {
	var qn projectiveNiels
	var r completedPoint
	qn.fromExtended(q)
	r.sub(p, &qn)
	return v.fromCompleted(&r)
}

// Double sets v = 2 * p, and returns v.
func (v *ExtendedPoint) Double(p *ExtendedPoint) *ExtendedPoint {
	var pp projectivePoint
	var r completedPoint
	pp.fromExtended(p)
	r.double(&pp)
	return v.fromCompleted(&r)
}

// Negate sets v = -p, and returns v.
func (v *ExtendedPoint) Negate(p *ExtendedPoint) *ExtendedPoint {
	v.x.Negate(&p.x)
	v.y.Set(&p.y)
	v.z.Set(&p.z)
	v.t.Negate(&p.t)
	return v
}

// Equal returns 1 if v and u are the same point, and 0 otherwise. It
// compares the projective ratios X/Z and Y/Z.
func (v *ExtendedPoint) Equal(u *ExtendedPoint) int {
	var t1, t2, t3, t4 field.Element
	t1.Multiply(&v.x, &u.z)
	t2.Multiply(&u.x, &v.z)
	t3.Multiply(&v.y, &u.z)
	t4.Multiply(&u.y, &v.z)
	return t1.Equal(&t2) & t3.Equal(&t4)
}

// IsIdentity returns 1 if v is the identity, and 0 otherwise.
func (v *ExtendedPoint) IsIdentity() int {
	return v.x.IsZero() & v.y.Equal(&v.z)
}

// Select sets v to a if cond == 1 and to b if cond == 0, and returns v.
func (v *ExtendedPoint) Select(a, b *ExtendedPoint, cond int) *ExtendedPoint {
	v.x.Select(&a.x, &b.x, cond)
	v.y.Select(&a.y, &b.y, cond)
	v.z.Select(&a.z, &b.z, cond)
	v.t.Select(&a.t, &b.t, cond)
	return v
}
