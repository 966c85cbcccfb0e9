package edwards

import (
	"crypto/subtle"

	"github.com/mahdiidarabi/edcurve/pkg/field"
)

// Intermediate point models. None of them leave the package.
//
// completedPoint is ((X:Z), (Y:T)) with x = X/Z and y = Y/T, the output of
// the addition and doubling formulas. projectivePoint is (X:Y:Z), enough to
// double. projectiveNiels and affineNiels cache (Y+X, Y-X, 2d*T) for points
// that are added repeatedly, with and without a Z coordinate.

type completedPoint struct {
	X, Y, Z, T field.Element
}

type projectivePoint struct {
	X, Y, Z field.Element
}

type projectiveNiels struct {
	YplusX, YminusX, Z, T2d field.Element
}

type affineNiels struct {
	YplusX, YminusX, T2d field.Element
}

// Conversions.

func (v *ExtendedPoint) fromCompleted(p *completedPoint) *ExtendedPoint {
	v.x.Multiply(&p.X, &p.T)
	v.y.Multiply(&p.Y, &p.Z)
	v.z.Multiply(&p.Z, &p.T)
	v.t.Multiply(&p.X, &p.Y)
	return v
}

func (v *ExtendedPoint) fromProjective(p *projectivePoint) *ExtendedPoint {
	v.x.Multiply(&p.X, &p.Z)
	v.y.Multiply(&p.Y, &p.Z)
	v.z.Square(&p.Z)
	v.t.Multiply(&p.X, &p.Y)
	return v
}

func (v *projectivePoint) identity() *projectivePoint {
	v.X.Zero()
	v.Y.One()
	v.Z.One()
	return v
}

func (v *projectivePoint) fromCompleted(p *completedPoint) *projectivePoint {
	v.X.Multiply(&p.X, &p.T)
	v.Y.Multiply(&p.Y, &p.Z)
	v.Z.Multiply(&p.Z, &p.T)
	return v
}

func (v *projectivePoint) fromExtended(p *ExtendedPoint) *projectivePoint {
	v.X.Set(&p.x)
	v.Y.Set(&p.y)
	v.Z.Set(&p.z)
	return v
}

func (v *projectiveNiels) fromExtended(p *ExtendedPoint) *projectiveNiels {
	v.YplusX.Add(&p.y, &p.x)
	v.YminusX.Subtract(&p.y, &p.x)
	v.Z.Set(&p.z)
	v.T2d.Multiply(&p.t, d2)
	return v
}

func (v *affineNiels) identity() *affineNiels {
	v.YplusX.One()
	v.YminusX.One()
	v.T2d.Zero()
	return v
}

// fromExtended normalizes p to Z = 1. It costs an inversion, so it is only
// used while building tables.
func (v *affineNiels) fromExtended(p *ExtendedPoint) *affineNiels {
	var zInv, x, y field.Element
	zInv.Invert(&p.z)
	x.Multiply(&p.x, &zInv)
	y.Multiply(&p.y, &zInv)

	v.YplusX.Add(&y, &x)
	v.YminusX.Subtract(&y, &x)
	v.T2d.Multiply(&x, &y)
	v.T2d.Multiply(&v.T2d, d2)
	return v
}

// Group law. With a = -1 and k = 2d these are the complete formulas of
// Hisil, Wong, Carter and Dawson, "Twisted Edwards Curves Revisited",
// section 3.1, split so the last multiplications happen in the conversion
// out of completedPoint.

func (v *completedPoint) add(p *ExtendedPoint, q *projectiveNiels) *completedPoint {
	var ypx, ymx, pp, mm, tt2d, zz2 field.Element

	ypx.Add(&p.y, &p.x)
	ymx.Subtract(&p.y, &p.x)

	pp.Multiply(&ypx, &q.YplusX)
	mm.Multiply(&ymx, &q.YminusX)
	tt2d.Multiply(&p.t, &q.T2d)
	zz2.Multiply(&p.z, &q.Z)
	zz2.Add(&zz2, &zz2)

	v.X.Subtract(&pp, &mm)
	v.Y.Add(&pp, &mm)
	v.Z.Add(&zz2, &tt2d)
	v.T.Subtract(&zz2, &tt2d)
	return v
}

func (v *completedPoint) sub(p *ExtendedPoint, q *projectiveNiels) *completedPoint {
	var ypx, ymx, pm, mp, tt2d, zz2 field.Element

	ypx.Add(&p.y, &p.x)
	ymx.Subtract(&p.y, &p.x)

	// -q swaps Y+X with Y-X and negates T.
	pm.Multiply(&ypx, &q.YminusX)
	mp.Multiply(&ymx, &q.YplusX)
	tt2d.Multiply(&p.t, &q.T2d)
	zz2.Multiply(&p.z, &q.Z)
	zz2.Add(&zz2, &zz2)

	v.X.Subtract(&pm, &mp)
	v.Y.Add(&pm, &mp)
	v.Z.Subtract(&zz2, &tt2d)
	v.T.Add(&zz2, &tt2d)
	return v
}

func (v *completedPoint) addAffine(p *ExtendedPoint, q *affineNiels) *completedPoint {
	var ypx, ymx, pp, mm, tt2d, z2 field.Element

	ypx.Add(&p.y, &p.x)
	ymx.Subtract(&p.y, &p.x)

	pp.Multiply(&ypx, &q.YplusX)
	mm.Multiply(&ymx, &q.YminusX)
	tt2d.Multiply(&p.t, &q.T2d)
	z2.Add(&p.z, &p.z)

	v.X.Subtract(&pp, &mm)
	v.Y.Add(&pp, &mm)
	v.Z.Add(&z2, &tt2d)
	v.T.Subtract(&z2, &tt2d)
	return v
}

func (v *completedPoint) subAffine(p *ExtendedPoint, q *affineNiels) *completedPoint {
	var ypx, ymx, pm, mp, tt2d, z2 field.Element

	ypx.Add(&p.y, &p.x)
	ymx.Subtract(&p.y, &p.x)

	pm.Multiply(&ypx, &q.YminusX)
	mp.Multiply(&ymx, &q.YplusX)
	tt2d.Multiply(&p.t, &q.T2d)
	z2.Add(&p.z, &p.z)

	v.X.Subtract(&pm, &mp)
	v.Y.Add(&pm, &mp)
	v.Z.Subtract(&z2, &tt2d)
	v.T.Add(&z2, &tt2d)
	return v
}

// double uses the a = -1 doubling formulas from the same paper, section 3.3.
func (v *completedPoint) double(p *projectivePoint) *completedPoint {
	var xx, yy, zz2, xPlusYSq field.Element

	xx.Square(&p.X)
	yy.Square(&p.Y)
	zz2.Square(&p.Z)
	zz2.Add(&zz2, &zz2)
	xPlusYSq.Add(&p.X, &p.Y)
	xPlusYSq.Square(&xPlusYSq)

	v.Y.Add(&yy, &xx)
	v.Z.Subtract(&yy, &xx)
	v.X.Subtract(&xPlusYSq, &v.Y)
	v.T.Subtract(&zz2, &v.Z)
	return v
}

// Constant-time helpers for table lookups.

func (v *affineNiels) Select(a, b *affineNiels, cond int) *affineNiels {
	v.YplusX.Select(&a.YplusX, &b.YplusX, cond)
	v.YminusX.Select(&a.YminusX, &b.YminusX, cond)
	v.T2d.Select(&a.T2d, &b.T2d, cond)
	return v
}

// CondNeg negates v if cond == 1: Y+X and Y-X trade places and T2d flips
// sign.
func (v *affineNiels) CondNeg(cond int) *affineNiels {
	v.YplusX.Swap(&v.YminusX, cond)
	v.T2d.CondNegate(&v.T2d, cond)
	return v
}

// absDigit splits a signed digit into |x| and a sign bit, without branches.
func absDigit(x int8) (abs uint8, neg int) {
	xmask := x >> 7
	return uint8((x + xmask) ^ xmask), int(xmask & 1)
}

// digitEq returns 1 if a == b, and 0 otherwise.
func digitEq(a uint8, b int) int {
	return subtle.ConstantTimeByteEq(a, uint8(b))
}
