package edwards

import "github.com/mahdiidarabi/edcurve/pkg/scalar"

// EightTorsion returns a copy of the eight-torsion subgroup E[8], ordered so
// that element i is i*P for a fixed point P of order 8. E[4] is the even
// entries, E[2] is entries 0 and 4.
func EightTorsion() [8]*ExtendedPoint {
	var out [8]*ExtendedPoint
	for i := range eightTorsion {
		out[i] = new(ExtendedPoint).Set(&eightTorsion[i])
	}
	return out
}

// MultByCofactor sets v = 8 * p, and returns v.
func (v *ExtendedPoint) MultByCofactor(p *ExtendedPoint) *ExtendedPoint {
	var pp projectivePoint
	var r completedPoint
	pp.fromExtended(p)
	r.double(&pp)
	pp.fromCompleted(&r)
	r.double(&pp)
	pp.fromCompleted(&r)
	r.double(&pp)
	return v.fromCompleted(&r)
}

// IsSmallOrder returns 1 if v is one of the eight points of E[8], and 0
// otherwise. Every entry is compared, whatever v is.
func (v *ExtendedPoint) IsSmallOrder() int {
	found := 0
	for i := range eightTorsion {
		found |= v.Equal(&eightTorsion[i])
	}
	return found
}

// IsTorsionFree returns 1 if v lies in the prime-order subgroup, that is
// l*v is the identity, and 0 otherwise.
func (v *ExtendedPoint) IsTorsionFree() int {
	// l*v = (l-1)*v + v, since l itself reduces to zero as a Scalar.
	var lMinusOne scalar.Scalar
	lMinusOne.Negate(scalar.One())

	var r ExtendedPoint
	r.ScalarMult(&lMinusOne, v)
	r.Add(&r, v)
	return r.IsIdentity()
}
