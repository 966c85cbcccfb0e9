package scalar

import (
	"encoding/binary"

	"github.com/mahdiidarabi/edcurve/internal/uint128"
)

// scalar52 is an integer in radix 2^52, five limbs, used for arithmetic
// modulo l. Values in Montgomery form carry an extra factor R = 2^260.
type scalar52 [5]uint64

const mask52 uint64 = (1 << 52) - 1

var (
	// order is l = 2^252 + 27742317777372353535851937790883648493.
	order = scalar52{0x0002631a5cf5d3ed, 0x000dea2f79cd6581, 0x000000000014def9, 0x0000000000000000, 0x0000100000000000}

	// lFactor is -1/l mod 2^52.
	lFactor uint64 = 0x51da312547e1b

	// montR is R mod l = 2^260 mod l.
	montR = scalar52{0x000f48bd6721e6ed, 0x0003bab5ac67e45a, 0x000fffffeb35e51b, 0x000fffffffffffff, 0x00000fffffffffff}

	// montRR is R^2 mod l.
	montRR = scalar52{0x0009d265e952d13b, 0x000d63c715bea69f, 0x0005be65cb687604, 0x0003dceec73d217f, 0x000009411b7c309a}
)

// unpack reads a 32-byte little-endian integer. The top limb gets 48 bits.
func unpack(b *[32]byte) scalar52 {
	w0 := binary.LittleEndian.Uint64(b[0:8])
	w1 := binary.LittleEndian.Uint64(b[8:16])
	w2 := binary.LittleEndian.Uint64(b[16:24])
	w3 := binary.LittleEndian.Uint64(b[24:32])

	return scalar52{
		w0 & mask52,
		(w0>>52 | w1<<12) & mask52,
		(w1>>40 | w2<<24) & mask52,
		(w2>>28 | w3<<36) & mask52,
		w3 >> 16,
	}
}

// unpackWide splits a 64-byte little-endian integer at bit 260 and
// returns (x mod l).
func unpackWide(b *[64]byte) scalar52 {
	var w [8]uint64
	for i := range w {
		w[i] = binary.LittleEndian.Uint64(b[i*8:])
	}

	lo := scalar52{
		w[0] & mask52,
		(w[0]>>52 | w[1]<<12) & mask52,
		(w[1]>>40 | w[2]<<24) & mask52,
		(w[2]>>28 | w[3]<<36) & mask52,
		(w[3]>>16 | w[4]<<48) & mask52,
	}
	hi := scalar52{
		(w[4] >> 4) & mask52,
		(w[4]>>56 | w[5]<<8) & mask52,
		(w[5]>>44 | w[6]<<20) & mask52,
		(w[6]>>32 | w[7]<<32) & mask52,
		w[7] >> 20,
	}

	// lo*R/R = lo and hi*R^2/R = hi*R = hi*2^260, both mod l.
	lo = montgomeryReduce(mulInternal(&lo, &montR))
	hi = montgomeryReduce(mulInternal(&hi, &montRR))
	return add(&hi, &lo)
}

// pack writes s, which must be fully reduced, as 32 little-endian bytes.
func (s *scalar52) pack(out *[32]byte) {
	binary.LittleEndian.PutUint64(out[0:8], s[0]|s[1]<<52)
	binary.LittleEndian.PutUint64(out[8:16], s[1]>>12|s[2]<<40)
	binary.LittleEndian.PutUint64(out[16:24], s[2]>>24|s[3]<<28)
	binary.LittleEndian.PutUint64(out[24:32], s[3]>>36|s[4]<<16)
}

// sub returns a - b mod l, for a and b in [0, l).
func sub(a, b *scalar52) scalar52 {
	var d scalar52

	borrow := uint64(0)
	for i := range d {
		borrow = a[i] - (b[i] + (borrow >> 63))
		d[i] = borrow & mask52
	}

	// Add l back if the subtraction underflowed.
	underflowMask := ((borrow >> 63) ^ 1) - 1
	carry := uint64(0)
	for i := range d {
		carry = (carry >> 52) + d[i] + (order[i] & underflowMask)
		d[i] = carry & mask52
	}
	return d
}

// add returns a + b mod l, for a and b in [0, l).
func add(a, b *scalar52) scalar52 {
	var s scalar52

	carry := uint64(0)
	for i := range s {
		carry = a[i] + b[i] + (carry >> 52)
		s[i] = carry & mask52
	}
	return sub(&s, &order)
}

// mulInternal returns the nine 128-bit coefficients of the schoolbook a*b.
func mulInternal(a, b *scalar52) [9]uint128.Uint128 {
	var z [9]uint128.Uint128
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			z[i+j] = uint128.AddMul64(z[i+j], a[i], b[j])
		}
	}
	return z
}

// squareInternal is mulInternal(a, a) with the symmetric terms merged.
func squareInternal(a *scalar52) [9]uint128.Uint128 {
	a0, a1, a2, a3, a4 := a[0], a[1], a[2], a[3], a[4]
	aa0, aa1, aa2, aa3 := a0*2, a1*2, a2*2, a3*2

	var z [9]uint128.Uint128
	z[0] = uint128.Mul64(a0, a0)
	z[1] = uint128.Mul64(aa0, a1)
	z[2] = uint128.AddMul64(uint128.Mul64(aa0, a2), a1, a1)
	z[3] = uint128.AddMul64(uint128.Mul64(aa0, a3), aa1, a2)
	z[4] = uint128.AddMul64(uint128.AddMul64(uint128.Mul64(aa0, a4), aa1, a3), a2, a2)
	z[5] = uint128.AddMul64(uint128.Mul64(aa1, a4), aa2, a3)
	z[6] = uint128.AddMul64(uint128.Mul64(aa2, a4), a3, a3)
	z[7] = uint128.Mul64(aa3, a4)
	z[8] = uint128.Mul64(a4, a4)
	return z
}

// montgomeryReduce returns z/R mod l for a 9-limb product z.
func montgomeryReduce(z [9]uint128.Uint128) scalar52 {
	l := &order

	// part1 picks the multiple of l that clears the low 52 bits of sum.
	part1 := func(sum uint128.Uint128) (uint128.Uint128, uint64) {
		p := (sum.Lo * lFactor) & mask52
		return uint128.AddMul64(sum, p, l[0]).ShiftRight(52), p
	}
	part2 := func(sum uint128.Uint128) (uint128.Uint128, uint64) {
		return sum.ShiftRight(52), sum.Lo & mask52
	}

	// l[3] is zero, so its products are omitted.
	carry, n0 := part1(z[0])
	carry, n1 := part1(uint128.AddMul64(carry.Add(z[1]), n0, l[1]))
	carry, n2 := part1(uint128.AddMul64(uint128.AddMul64(carry.Add(z[2]), n0, l[2]), n1, l[1]))
	carry, n3 := part1(uint128.AddMul64(uint128.AddMul64(carry.Add(z[3]), n1, l[2]), n2, l[1]))
	carry, n4 := part1(uint128.AddMul64(uint128.AddMul64(uint128.AddMul64(carry.Add(z[4]), n0, l[4]), n2, l[2]), n3, l[1]))

	carry, r0 := part2(uint128.AddMul64(uint128.AddMul64(uint128.AddMul64(carry.Add(z[5]), n1, l[4]), n3, l[2]), n4, l[1]))
	carry, r1 := part2(uint128.AddMul64(uint128.AddMul64(carry.Add(z[6]), n2, l[4]), n4, l[2]))
	carry, r2 := part2(uint128.AddMul64(carry.Add(z[7]), n3, l[4]))
	carry, r3 := part2(uint128.AddMul64(carry.Add(z[8]), n4, l[4]))
	r4 := carry.Lo

	// The result is below 2l; one conditional subtraction finishes it.
	r := scalar52{r0, r1, r2, r3, r4}
	return sub(&r, l)
}

// mul returns a * b mod l.
func mul(a, b *scalar52) scalar52 {
	ab := montgomeryReduce(mulInternal(a, b))
	return montgomeryReduce(mulInternal(&ab, &montRR))
}

// montMul returns a * b / R mod l.
func montMul(a, b *scalar52) scalar52 {
	return montgomeryReduce(mulInternal(a, b))
}

// montSquare returns a * a / R mod l.
func montSquare(a *scalar52) scalar52 {
	return montgomeryReduce(squareInternal(a))
}

// toMontgomery returns a * R mod l.
func (s *scalar52) toMontgomery() scalar52 {
	return montMul(s, &montRR)
}

// fromMontgomery returns a / R mod l.
func (s *scalar52) fromMontgomery() scalar52 {
	var z [9]uint128.Uint128
	for i := range s {
		z[i] = uint128.From(s[i])
	}
	return montgomeryReduce(z)
}
