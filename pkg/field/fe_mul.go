package field

import (
	"math/bits"

	"github.com/mahdiidarabi/edcurve/internal/uint128"
)

// mul51 returns lo + hi * 2^51 = a * b, with lo masked to 51 bits.
func mul51(a uint64, b uint32) (lo uint64, hi uint64) {
	mh, ml := bits.Mul64(a, uint64(b))
	lo = ml & maskLow51Bits
	hi = (mh << 13) | (ml >> 51)
	return
}

// feMul sets v = a * b.
//
// The schoolbook product has nine coefficients; the four above 2^255 are
// folded into the low five by multiplying the other operand's limb by 19
// before the product is taken. With input limbs below 2^54 every
// accumulator stays below 2^116.
func feMul(v, a, b *Element) {
	a0, a1, a2, a3, a4 := a[0], a[1], a[2], a[3], a[4]
	b0, b1, b2, b3, b4 := b[0], b[1], b[2], b[3], b[4]

	b1_19 := b1 * 19
	b2_19 := b2 * 19
	b3_19 := b3 * 19
	b4_19 := b4 * 19

	r0 := uint128.Mul64(a0, b0)
	r0 = uint128.AddMul64(r0, a1, b4_19)
	r0 = uint128.AddMul64(r0, a2, b3_19)
	r0 = uint128.AddMul64(r0, a3, b2_19)
	r0 = uint128.AddMul64(r0, a4, b1_19)

	r1 := uint128.Mul64(a0, b1)
	r1 = uint128.AddMul64(r1, a1, b0)
	r1 = uint128.AddMul64(r1, a2, b4_19)
	r1 = uint128.AddMul64(r1, a3, b3_19)
	r1 = uint128.AddMul64(r1, a4, b2_19)

	r2 := uint128.Mul64(a0, b2)
	r2 = uint128.AddMul64(r2, a1, b1)
	r2 = uint128.AddMul64(r2, a2, b0)
	r2 = uint128.AddMul64(r2, a3, b4_19)
	r2 = uint128.AddMul64(r2, a4, b3_19)

	r3 := uint128.Mul64(a0, b3)
	r3 = uint128.AddMul64(r3, a1, b2)
	r3 = uint128.AddMul64(r3, a2, b1)
	r3 = uint128.AddMul64(r3, a3, b0)
	r3 = uint128.AddMul64(r3, a4, b4_19)

	r4 := uint128.Mul64(a0, b4)
	r4 = uint128.AddMul64(r4, a1, b3)
	r4 = uint128.AddMul64(r4, a2, b2)
	r4 = uint128.AddMul64(r4, a3, b1)
	r4 = uint128.AddMul64(r4, a4, b0)

	carryWide(v, r0, r1, r2, r3, r4)
}

// feSquare sets v = a * a. It is feMul with the symmetric products merged.
func feSquare(v, a *Element) {
	l0, l1, l2, l3, l4 := a[0], a[1], a[2], a[3], a[4]

	l0_2 := l0 * 2
	l1_2 := l1 * 2

	l1_38 := l1 * 38
	l2_38 := l2 * 38
	l3_38 := l3 * 38

	l3_19 := l3 * 19
	l4_19 := l4 * 19

	// r0 = l0×l0 + 19×(l1×l4 + l2×l3 + l3×l2 + l4×l1) = l0×l0 + 19×2×(l1×l4 + l2×l3)
	r0 := uint128.Mul64(l0, l0)
	r0 = uint128.AddMul64(r0, l1_38, l4)
	r0 = uint128.AddMul64(r0, l2_38, l3)

	// r1 = 2×l0×l1 + 19×2×l2×l4 + 19×l3×l3
	r1 := uint128.Mul64(l0_2, l1)
	r1 = uint128.AddMul64(r1, l2_38, l4)
	r1 = uint128.AddMul64(r1, l3_19, l3)

	// r2 = 2×l0×l2 + l1×l1 + 19×2×l3×l4
	r2 := uint128.Mul64(l0_2, l2)
	r2 = uint128.AddMul64(r2, l1, l1)
	r2 = uint128.AddMul64(r2, l3_38, l4)

	// r3 = 2×l0×l3 + 2×l1×l2 + 19×l4×l4
	r3 := uint128.Mul64(l0_2, l3)
	r3 = uint128.AddMul64(r3, l1_2, l2)
	r3 = uint128.AddMul64(r3, l4_19, l4)

	// r4 = 2×l0×l4 + 2×l1×l3 + l2×l2
	r4 := uint128.Mul64(l0_2, l4)
	r4 = uint128.AddMul64(r4, l1_2, l3)
	r4 = uint128.AddMul64(r4, l2, l2)

	carryWide(v, r0, r1, r2, r3, r4)
}

// carryWide reduces five 128-bit coefficients into a tight element.
func carryWide(v *Element, r0, r1, r2, r3, r4 uint128.Uint128) {
	r1 = r1.Add(r0.ShiftRight(51))
	l0 := r0.Lo & maskLow51Bits
	r2 = r2.Add(r1.ShiftRight(51))
	l1 := r1.Lo & maskLow51Bits
	r3 = r3.Add(r2.ShiftRight(51))
	l2 := r2.Lo & maskLow51Bits
	r4 = r4.Add(r3.ShiftRight(51))
	l3 := r3.Lo & maskLow51Bits
	c4 := r4.ShiftRight(51).Lo
	l4 := r4.Lo & maskLow51Bits

	l0 += c4 * 19
	l1 += l0 >> 51
	l0 &= maskLow51Bits

	*v = Element{l0, l1, l2, l3, l4}
}
