package edwards

import (
	"sync"

	"github.com/mahdiidarabi/edcurve/pkg/scalar"
)

// BasepointTable is a fixed-base precomputation: row i holds j*256^i*P for
// j = 1..8, so a radix-16 scalar needs 64 constant-time lookups and four
// doublings. It is about 30 KiB and immutable once built.
type BasepointTable struct {
	rows [32]affineLookupTable
}

// NewBasepointTable precomputes the table for the fixed base p.
func NewBasepointTable(p *ExtendedPoint) *BasepointTable {
	t := new(BasepointTable)
	var pp projectivePoint
	var r completedPoint

	acc := new(ExtendedPoint).Set(p)
	for i := range t.rows {
		t.rows[i].fromExtended(acc)
		// acc = 256 * acc
		pp.fromExtended(acc)
		for j := 0; j < 7; j++ {
			r.double(&pp)
			pp.fromCompleted(&r)
		}
		r.double(&pp)
		acc.fromCompleted(&r)
	}
	return t
}

var (
	basepointTableOnce sync.Once
	basepointTablePrec *BasepointTable
)

// EdwardsBasepointTable returns the shared table for the basepoint B. It is
// built on first use.
func EdwardsBasepointTable() *BasepointTable {
	basepointTableOnce.Do(func() {
		basepointTablePrec = NewBasepointTable(basepoint)
	})
	return basepointTablePrec
}

// Mul returns x times the table's base point, in constant time.
func (t *BasepointTable) Mul(x *scalar.Scalar) *ExtendedPoint {
	digits := x.SignedRadix16()

	var multiple affineNiels
	var r completedPoint
	var pp projectivePoint
	v := NewIdentityPoint()

	// x = sum(d[i] * 16^i), with 16^(2k) = 256^k indexing the rows. The
	// odd digits go first, then 16 times that, then the even digits.
	for i := 1; i < 64; i += 2 {
		t.rows[i/2].selectInto(&multiple, digits[i])
		r.addAffine(v, &multiple)
		v.fromCompleted(&r)
	}

	pp.fromExtended(v)
	for i := 0; i < 3; i++ {
		r.double(&pp)
		pp.fromCompleted(&r)
	}
	r.double(&pp)
	v.fromCompleted(&r)

	for i := 0; i < 64; i += 2 {
		t.rows[i/2].selectInto(&multiple, digits[i])
		r.addAffine(v, &multiple)
		v.fromCompleted(&r)
	}
	return v
}

// ScalarBaseMult sets v = x * B, where B is the basepoint, and returns v.
// It runs in constant time.
func (v *ExtendedPoint) ScalarBaseMult(x *scalar.Scalar) *ExtendedPoint {
	return v.Set(EdwardsBasepointTable().Mul(x))
}

var (
	basepointNafTableOnce sync.Once
	basepointNafTablePrec nafLookupTable8
)

func basepointNafTable() *nafLookupTable8 {
	basepointNafTableOnce.Do(func() {
		basepointNafTablePrec.fromExtended(basepoint)
	})
	return &basepointNafTablePrec
}

// VarTimeDoubleScalarBaseMult sets v = a * A + b * B, where B is the
// basepoint, and returns v.
//
// This is Straus' method over width-5 (A) and width-8 (B) NAFs. Its running
// time depends on the inputs, so a, A and b must all be public, as they are
// when checking a signature.
func (v *ExtendedPoint) VarTimeDoubleScalarBaseMult(a *scalar.Scalar, A *ExtendedPoint, b *scalar.Scalar) *ExtendedPoint {
	bTable := basepointNafTable()
	var aTable nafLookupTable5
	aTable.fromExtended(A)

	aNaf := a.NonAdjacentForm(5)
	bNaf := b.NonAdjacentForm(8)

	// Skip the leading zero digits of both expansions.
	i := 255
	for ; i >= 0; i-- {
		if aNaf[i] != 0 || bNaf[i] != 0 {
			break
		}
	}

	var multA projectiveNiels
	var multB affineNiels
	var r completedPoint
	var pp projectivePoint
	pp.identity()

	for ; i >= 0; i-- {
		r.double(&pp)

		// Only fold back to extended coordinates when there is an addition.
		if aNaf[i] != 0 || bNaf[i] != 0 {
			v.fromCompleted(&r)
			if aNaf[i] > 0 {
				aTable.selectInto(&multA, aNaf[i])
				r.add(v, &multA)
			} else if aNaf[i] < 0 {
				aTable.selectInto(&multA, -aNaf[i])
				r.sub(v, &multA)
			}

			if bNaf[i] != 0 && aNaf[i] != 0 {
				v.fromCompleted(&r)
			}
			if bNaf[i] > 0 {
				bTable.selectInto(&multB, bNaf[i])
				r.addAffine(v, &multB)
			} else if bNaf[i] < 0 {
				bTable.selectInto(&multB, -bNaf[i])
				r.subAffine(v, &multB)
			}
		}

		pp.fromCompleted(&r)
	}

	return v.fromProjective(&pp)
}

// VarTimeScalarMult sets v = x * q with a width-5 NAF, and returns v. It
// is faster than ScalarMult but its running time depends on x and q, so
// both must be public.
func (v *ExtendedPoint) VarTimeScalarMult(x *scalar.Scalar, q *ExtendedPoint) *ExtendedPoint {
	var table nafLookupTable5
	table.fromExtended(q)
	naf := x.NonAdjacentForm(5)

	i := 255
	for ; i >= 0 && naf[i] == 0; i-- {
	}

	var mult projectiveNiels
	var r completedPoint
	var pp projectivePoint
	pp.identity()

	for ; i >= 0; i-- {
		r.double(&pp)
		if naf[i] > 0 {
			v.fromCompleted(&r)
			table.selectInto(&mult, naf[i])
			r.add(v, &mult)
		} else if naf[i] < 0 {
			v.fromCompleted(&r)
			table.selectInto(&mult, -naf[i])
			r.sub(v, &mult)
		}
		pp.fromCompleted(&r)
	}

	return v.fromProjective(&pp)
}
