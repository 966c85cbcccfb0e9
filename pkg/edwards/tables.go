package edwards

// Lookup tables of small multiples of a point.
//
// The constant-time tables are scanned in full on every lookup and the
// wanted entry is kept with a masked select, so the memory access pattern
// does not depend on the digit. The NAF tables are indexed directly and are
// only used by the variable-time functions.

// affineLookupTable holds P, 2P, ..., 8P normalized to Z = 1.
type affineLookupTable struct {
	points [8]affineNiels
}

// nafLookupTable5 holds P, 3P, 5P, ..., 15P.
type nafLookupTable5 struct {
	points [8]projectiveNiels
}

// nafLookupTable8 holds P, 3P, 5P, ..., 127P normalized to Z = 1.
type nafLookupTable8 struct {
	points [64]affineNiels
}

func (v *affineLookupTable) fromExtended(q *ExtendedPoint) {
	// v.points[i] = (i+1)*q
	v.points[0].fromExtended(q)
	var tmp completedPoint
	var acc ExtendedPoint
	for i := 0; i < 7; i++ {
		tmp.addAffine(q, &v.points[i])
		v.points[i+1].fromExtended(acc.fromCompleted(&tmp))
	}
}

func (v *nafLookupTable5) fromExtended(q *ExtendedPoint) {
	var q2, acc ExtendedPoint
	q2.Double(q)
	acc.Set(q)
	for i := 0; i < 8; i++ {
		v.points[i].fromExtended(&acc)
		acc.Add(&acc, &q2)
	}
}

func (v *nafLookupTable8) fromExtended(q *ExtendedPoint) {
	var q2, acc ExtendedPoint
	q2.Double(q)
	acc.Set(q)
	for i := 0; i < 64; i++ {
		v.points[i].fromExtended(&acc)
		acc.Add(&acc, &q2)
	}
}

// selectInto sets dest = x*Q for x in [-8, 8].
func (v *affineLookupTable) selectInto(dest *affineNiels, x int8) {
	xabs, neg := absDigit(x)
	dest.identity()
	for j := 1; j <= 8; j++ {
		dest.Select(&v.points[j-1], dest, digitEq(xabs, j))
	}
	dest.CondNeg(neg)
}

// selectInto sets dest = x*Q for odd x in (0, 16).
func (v *nafLookupTable5) selectInto(dest *projectiveNiels, x int8) {
	*dest = v.points[x/2]
}

// selectInto sets dest = x*Q for odd x in (0, 128).
func (v *nafLookupTable8) selectInto(dest *affineNiels, x int8) {
	*dest = v.points[x/2]
}
