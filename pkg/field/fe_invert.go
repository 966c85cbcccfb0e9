package field

// sqrtM1 is 2^((p-1)/4), a square root of -1 in the field.
var sqrtM1 = &Element{1718705420411056, 234908883556509,
	2233514472574048, 2117202627021982, 765476049583133}

// SqrtM1 returns a copy of the square root of -1 used by SqrtRatio.
func SqrtM1() *Element {
	return new(Element).Set(sqrtM1)
}

// squareN returns x^(2^n) in v.
func (v *Element) squareN(x *Element, n int) *Element {
	v.Square(x)
	for i := 1; i < n; i++ {
		v.Square(v)
	}
	return v
}

// pow2250 sets t = z^(2^250 - 1) and z11 = z^11, the common prefix of the
// Invert and Pow22523 chains.
func pow2250(t, z11, z *Element) {
	var z2, z9, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0 Element

	z2.Square(z)                   // 2
	t.squareN(&z2, 2)              // 8
	z9.Multiply(t, z)              // 9
	z11.Multiply(&z9, &z2)         // 11
	t.Square(z11)                  // 22
	z2_5_0.Multiply(t, &z9)        // 2^5 - 2^0 = 31
	t.squareN(&z2_5_0, 5)          // 2^10 - 2^5
	z2_10_0.Multiply(t, &z2_5_0)
	t.squareN(&z2_10_0, 10)        // 2^20 - 2^10
	z2_20_0.Multiply(t, &z2_10_0)
	t.squareN(&z2_20_0, 20)        // 2^40 - 2^20
	t.Multiply(t, &z2_20_0)        // 2^40 - 2^0
	t.squareN(t, 10)               // 2^50 - 2^10
	z2_50_0.Multiply(t, &z2_10_0)
	t.squareN(&z2_50_0, 50)        // 2^100 - 2^50
	z2_100_0.Multiply(t, &z2_50_0)
	t.squareN(&z2_100_0, 100)      // 2^200 - 2^100
	t.Multiply(t, &z2_100_0)       // 2^200 - 2^0
	t.squareN(t, 50)               // 2^250 - 2^50
	t.Multiply(t, &z2_50_0)        // 2^250 - 2^0
}

// Invert sets v = 1/z mod p, and returns v.
//
// The exponent is p - 2, evaluated with a fixed chain of 254 squarings and
// 11 multiplications. Invert(0) is 0.
func (v *Element) Invert(z *Element) *Element {
	var t, z11 Element
	pow2250(&t, &z11, z)
	t.squareN(&t, 5)            // 2^255 - 2^5
	return v.Multiply(&t, &z11) // 2^255 - 21
}

// Pow22523 sets v = z^((p-5)/8) = z^(2^252 - 3), and returns v.
func (v *Element) Pow22523(z *Element) *Element {
	var t, z11 Element
	pow2250(&t, &z11, z)
	t.squareN(&t, 2)         // 2^252 - 2^2
	return v.Multiply(&t, z) // 2^252 - 3
}

// SqrtRatio sets r to the non-negative square root of the ratio of u and v.
//
// If u/v is square, SqrtRatio returns r and 1. If u/v is not square, it sets
// r to sqrt(i * u/v) where i = sqrt(-1), and returns r and 0. If u is zero
// the result is (0, 1), and if v is zero and u is not, (0, 0).
func (r *Element) SqrtRatio(u, v *Element) (*Element, int) {
	var a, b Element

	// r = (u * v3) * (u * v7)^((p-5)/8)
	v2 := a.Square(v)
	uv3 := b.Multiply(u, b.Multiply(v2, v))
	uv7 := a.Multiply(uv3, a.Square(v2))
	rr := new(Element).Multiply(uv3, new(Element).Pow22523(uv7))

	check := a.Multiply(v, a.Square(rr)) // check = v * r^2

	uNeg := b.Negate(u)
	correctSignSqrt := check.Equal(u)
	flippedSignSqrt := check.Equal(uNeg)
	flippedSignSqrtI := check.Equal(uNeg.Multiply(uNeg, sqrtM1))

	rPrime := b.Multiply(rr, sqrtM1) // r_prime = SQRT_M1 * r
	// r = CT_SELECT(r_prime IF flipped_sign_sqrt | flipped_sign_sqrt_i ELSE r)
	rr.Select(rPrime, rr, flippedSignSqrt|flippedSignSqrtI)

	r.Absolute(rr)                              // Choose the nonnegative square root.
	return r, correctSignSqrt | flippedSignSqrt
}
