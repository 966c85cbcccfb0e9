// Package field implements constant-time arithmetic modulo p = 2^255-19.
//
// An Element is five unsigned 51-bit limbs, l[0] + l[1]*2^51 + ... +
// l[4]*2^204, and the representation is redundant: limbs may exceed 51 bits
// and the value they denote may be >= p. Only Bytes, Equal, IsZero and
// IsNegative look at the canonical value, and they fully reduce first.
//
// Lazy reduction contract. Every operation except Add returns a "tight"
// element whose limbs are below 2^51 + 2^18. Add only sums limbs. Multiply,
// Square, Subtract and Negate accept limbs below 2^54, which leaves room for
// the sum of at most seven tight elements (six chained Adds) before one of
// those operations must run.
//
// No function in this package branches on, or indexes memory by, the value
// of an Element.
package field

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/mahdiidarabi/edcurve/pkg/curveerr"
)

// Element is an element of GF(2^255-19). The zero value is a valid zero.
//
// Methods follow math/big: the receiver is set to the result and returned,
// and arguments may alias the receiver.
type Element [5]uint64

const maskLow51Bits uint64 = (1 << 51) - 1

var (
	feZero = &Element{0, 0, 0, 0, 0}
	feOne  = &Element{1, 0, 0, 0, 0}
)

// Zero sets v = 0, and returns v.
func (v *Element) Zero() *Element {
	*v = *feZero
	return v
}

// One sets v = 1, and returns v.
func (v *Element) One() *Element {
	*v = *feOne
	return v
}

// Set sets v = a, and returns v.
func (v *Element) Set(a *Element) *Element {
	*v = *a
	return v
}

// carryPropagate brings the limbs of v below 2^51 + 2^18 by moving the bits
// above 2^51 of each limb into the next one, and folding the excess of the
// top limb back into l[0] times 19 (2^255 = 19 mod p).
func (v *Element) carryPropagate() *Element {
	c0 := v[0] >> 51
	c1 := v[1] >> 51
	c2 := v[2] >> 51
	c3 := v[3] >> 51
	c4 := v[4] >> 51

	v[0] = v[0]&maskLow51Bits + c4*19
	v[1] = v[1]&maskLow51Bits + c0
	v[2] = v[2]&maskLow51Bits + c1
	v[3] = v[3]&maskLow51Bits + c2
	v[4] = v[4]&maskLow51Bits + c3
	return v
}

// reduce fully reduces v modulo p, leaving the canonical limbs.
func (v *Element) reduce() *Element {
	v.carryPropagate()

	// After the light reduction v < 2^255 + 2^13 * 19, so v >= p iff
	// v + 19 >= 2^255, which the carry c of the chain below detects.
	c := (v[0] + 19) >> 51
	c = (v[1] + c) >> 51
	c = (v[2] + c) >> 51
	c = (v[3] + c) >> 51
	c = (v[4] + c) >> 51

	// If v < p, c = 0 and this is a no-op. Otherwise it computes v - p
	// as v + 19 - 2^255, dropping the 2^255 with the final mask.
	v[0] += 19 * c

	v[1] += v[0] >> 51
	v[0] &= maskLow51Bits
	v[2] += v[1] >> 51
	v[1] &= maskLow51Bits
	v[3] += v[2] >> 51
	v[2] &= maskLow51Bits
	v[4] += v[3] >> 51
	v[3] &= maskLow51Bits
	v[4] &= maskLow51Bits
	return v
}

// Add sets v = a + b, and returns v. The result is not carried; see the
// package documentation for how many Adds may be chained.
func (v *Element) Add(a, b *Element) *Element {
	v[0] = a[0] + b[0]
	v[1] = a[1] + b[1]
	v[2] = a[2] + b[2]
	v[3] = a[3] + b[3]
	v[4] = a[4] + b[4]
	return v
}

// 16*p, limb by limb. Adding it before subtracting keeps every limb
// positive for any subtrahend with limbs below 2^54.
const (
	sixteenP0    = 16 * (maskLow51Bits - 18)
	sixteenPRest = 16 * maskLow51Bits
)

// Subtract sets v = a - b, and returns v.
func (v *Element) Subtract(a, b *Element) *Element {
	v[0] = (a[0] + sixteenP0) - b[0]
	v[1] = (a[1] + sixteenPRest) - b[1]
	v[2] = (a[2] + sixteenPRest) - b[2]
	v[3] = (a[3] + sixteenPRest) - b[3]
	v[4] = (a[4] + sixteenPRest) - b[4]
	return v.carryPropagate()
}

// Negate sets v = -a, and returns v.
func (v *Element) Negate(a *Element) *Element {
	return v.Subtract(feZero, a)
}

// Multiply sets v = x * y, and returns v.
func (v *Element) Multiply(x, y *Element) *Element {
	feMul(v, x, y)
	return v
}

// Square sets v = x * x, and returns v.
func (v *Element) Square(x *Element) *Element {
	feSquare(v, x)
	return v
}

// Mult32 sets v = x * y, and returns v.
func (v *Element) Mult32(x *Element, y uint32) *Element {
	x0lo, x0hi := mul51(x[0], y)
	x1lo, x1hi := mul51(x[1], y)
	x2lo, x2hi := mul51(x[2], y)
	x3lo, x3hi := mul51(x[3], y)
	x4lo, x4hi := mul51(x[4], y)
	v[0] = x0lo + 19*x4hi
	v[1] = x1lo + x0hi
	v[2] = x2lo + x1hi
	v[3] = x3lo + x2hi
	v[4] = x4lo + x3hi
	return v.carryPropagate()
}

// SetBytes sets v to x, a 32-byte little-endian encoding, and returns v.
//
// Following RFC 7748 the most significant bit is ignored and values in
// [p, 2^255) are accepted and reduced. Use SetCanonicalBytes to reject
// them instead.
func (v *Element) SetBytes(x []byte) (*Element, error) {
	if len(x) != 32 {
		return nil, curveerr.Decodef("field element input is %d bytes, want 32", len(x))
	}

	w0 := binary.LittleEndian.Uint64(x[0:8])
	w1 := binary.LittleEndian.Uint64(x[8:16])
	w2 := binary.LittleEndian.Uint64(x[16:24])
	w3 := binary.LittleEndian.Uint64(x[24:32])

	v[0] = w0 & maskLow51Bits
	v[1] = (w0>>51 | w1<<13) & maskLow51Bits
	v[2] = (w1>>38 | w2<<26) & maskLow51Bits
	v[3] = (w2>>25 | w3<<39) & maskLow51Bits
	v[4] = (w3 >> 12) & maskLow51Bits
	return v, nil
}

// SetCanonicalBytes is like SetBytes, but rejects any encoding other than
// the canonical one: the top bit must be clear and the value below p.
func (v *Element) SetCanonicalBytes(x []byte) (*Element, error) {
	var t Element
	if _, err := t.SetBytes(x); err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(t.Bytes(), x) != 1 {
		return nil, curveerr.Decode("non-canonical field element encoding")
	}
	return v.Set(&t), nil
}

// Bytes returns the canonical 32-byte little-endian encoding of v.
func (v *Element) Bytes() []byte {
	var out [32]byte
	return v.bytes(&out)
}

func (v *Element) bytes(out *[32]byte) []byte {
	t := *v
	t.reduce()

	binary.LittleEndian.PutUint64(out[0:8], t[0]|t[1]<<51)
	binary.LittleEndian.PutUint64(out[8:16], t[1]>>13|t[2]<<38)
	binary.LittleEndian.PutUint64(out[16:24], t[2]>>26|t[3]<<25)
	binary.LittleEndian.PutUint64(out[24:32], t[3]>>39|t[4]<<12)
	return out[:]
}

// Equal returns 1 if v and u are equal, and 0 otherwise.
func (v *Element) Equal(u *Element) int {
	var a, b [32]byte
	return subtle.ConstantTimeCompare(v.bytes(&a), u.bytes(&b))
}

// IsZero returns 1 if v == 0, and 0 otherwise.
func (v *Element) IsZero() int {
	return v.Equal(feZero)
}

// IsNegative returns 1 if v is negative, and 0 otherwise. An element is
// negative when the least significant bit of its canonical encoding is set.
func (v *Element) IsNegative() int {
	var buf [32]byte
	return int(v.bytes(&buf)[0] & 1)
}

// mask64Bits returns all ones if cond is 1, and 0 otherwise.
func mask64Bits(cond int) uint64 { return ^(uint64(cond) - 1) }

// Select sets v to a if cond == 1, and to b if cond == 0.
func (v *Element) Select(a, b *Element, cond int) *Element {
	m := mask64Bits(cond)
	v[0] = (m & a[0]) | (^m & b[0])
	v[1] = (m & a[1]) | (^m & b[1])
	v[2] = (m & a[2]) | (^m & b[2])
	v[3] = (m & a[3]) | (^m & b[3])
	v[4] = (m & a[4]) | (^m & b[4])
	return v
}

// Swap swaps v and u if cond == 1 or leaves them unchanged if cond == 0.
func (v *Element) Swap(u *Element, cond int) {
	m := mask64Bits(cond)
	for i := range v {
		t := m & (v[i] ^ u[i])
		v[i] ^= t
		u[i] ^= t
	}
}

// CondNegate sets v to -u if cond == 1, and to u if cond == 0.
func (v *Element) CondNegate(u *Element, cond int) *Element {
	var neg Element
	neg.Negate(u)
	return v.Select(&neg, u, cond)
}

// Absolute sets v to |u|, and returns v.
func (v *Element) Absolute(u *Element) *Element {
	return v.CondNegate(u, u.IsNegative())
}
