// Package uint128 provides the small 128-bit accumulator used by the field
// and scalar limb arithmetic. Go has no native 128-bit integer, so products of
// two 64-bit limbs are carried as a (Lo, Hi) pair built on math/bits.
package uint128

import "math/bits"

// Uint128 is an unsigned 128-bit value Hi*2^64 + Lo.
type Uint128 struct {
	Lo, Hi uint64
}

// From returns a as a Uint128.
func From(a uint64) Uint128 {
	return Uint128{Lo: a}
}

// Mul64 returns a * b.
func Mul64(a, b uint64) Uint128 {
	hi, lo := bits.Mul64(a, b)
	return Uint128{Lo: lo, Hi: hi}
}

// AddMul64 returns v + a * b.
func AddMul64(v Uint128, a, b uint64) Uint128 {
	hi, lo := bits.Mul64(a, b)
	lo, c := bits.Add64(lo, v.Lo, 0)
	hi, _ = bits.Add64(hi, v.Hi, c)
	return Uint128{Lo: lo, Hi: hi}
}

// Add returns v + w. Overflow past 2^128 is discarded; callers keep their
// sums well below that bound.
func (v Uint128) Add(w Uint128) Uint128 {
	lo, c := bits.Add64(v.Lo, w.Lo, 0)
	hi, _ := bits.Add64(v.Hi, w.Hi, c)
	return Uint128{Lo: lo, Hi: hi}
}

// Add64 returns v + a.
func (v Uint128) Add64(a uint64) Uint128 {
	lo, c := bits.Add64(v.Lo, a, 0)
	return Uint128{Lo: lo, Hi: v.Hi + c}
}

// ShiftRight returns v >> n for 0 < n < 64.
func (v Uint128) ShiftRight(n uint) Uint128 {
	return Uint128{Lo: v.Hi<<(64-n) | v.Lo>>n, Hi: v.Hi >> n}
}
