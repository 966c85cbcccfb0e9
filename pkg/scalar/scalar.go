// Package scalar implements arithmetic modulo the order of the Ed25519
// prime-order subgroup,
//
//	l = 2^252 + 27742317777372353535851937790883648493.
//
// A Scalar always holds its canonical value in [0, l). Arithmetic runs on a
// radix 2^52 Montgomery representation and does not branch on secret values.
package scalar

import (
	"crypto/subtle"

	"github.com/mahdiidarabi/edcurve/pkg/curveerr"
)

// Scalar is an integer modulo l. The zero value is a valid zero.
//
// Like field.Element, methods set the receiver to the result, return it,
// and allow arguments to alias the receiver.
type Scalar struct {
	s [32]byte
}

// orderBytes is l in little-endian order.
var orderBytes = [32]byte{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

// NewScalar returns a new zero Scalar.
func NewScalar() *Scalar {
	return &Scalar{}
}

// One returns a new Scalar set to 1.
func One() *Scalar {
	return &Scalar{s: [32]byte{1}}
}

// Order returns the little-endian encoding of l.
func Order() []byte {
	out := orderBytes
	return out[:]
}

// FromBytes decodes a 32-byte little-endian integer. With reduce set any
// 256-bit value is accepted and reduced modulo l; without it values >= l
// are rejected with a decode error.
func FromBytes(b []byte, reduce bool) (*Scalar, error) {
	s := NewScalar()
	if reduce {
		return s.SetBytesModOrder(b)
	}
	return s.SetCanonicalBytes(b)
}

// IsCanonical reports whether b is a 32-byte encoding of a value below l.
// The comparison is variable time in the position of the first differing
// byte, which is fine for the public encodings it is used on.
func IsCanonical(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	// Encodings with any of the top three bits set are above 2^253.
	if b[31]&0xe0 != 0 {
		return false
	}
	for i := 31; i >= 0; i-- {
		switch {
		case b[i] < orderBytes[i]:
			return true
		case b[i] > orderBytes[i]:
			return false
		}
	}
	// b == l
	return false
}

// SetCanonicalBytes sets s = x, where x is the 32-byte little-endian
// encoding of a value below l, and returns s. Any other input is a decode
// error and leaves s unchanged.
func (s *Scalar) SetCanonicalBytes(x []byte) (*Scalar, error) {
	if len(x) != 32 {
		return nil, curveerr.Decodef("scalar input is %d bytes, want 32", len(x))
	}
	if !IsCanonical(x) {
		return nil, curveerr.Decode("non-canonical scalar encoding")
	}
	copy(s.s[:], x)
	return s, nil
}

// SetBytesModOrder sets s = x mod l, where x is a 32-byte little-endian
// integer, and returns s.
func (s *Scalar) SetBytesModOrder(x []byte) (*Scalar, error) {
	if len(x) != 32 {
		return nil, curveerr.Decodef("scalar input is %d bytes, want 32", len(x))
	}
	var b [32]byte
	copy(b[:], x)
	u := unpack(&b)
	r := montMul(&u, &montR)
	r.pack(&s.s)
	return s, nil
}

// SetUniformBytes sets s = x mod l, where x is a 64-byte little-endian
// integer such as the output of SHA-512, and returns s.
func (s *Scalar) SetUniformBytes(x []byte) (*Scalar, error) {
	if len(x) != 64 {
		return nil, curveerr.Decodef("scalar wide input is %d bytes, want 64", len(x))
	}
	var b [64]byte
	copy(b[:], x)
	r := unpackWide(&b)
	r.pack(&s.s)
	return s, nil
}

// SetBytesWithClamping applies the RFC 8032 / RFC 7748 clamping to the
// 32-byte x, sets s to the result reduced modulo l, and returns s.
//
// The reduction is what makes the result usable as a Scalar; callers that
// need the exact clamped integer, such as X25519, must keep the bytes.
func (s *Scalar) SetBytesWithClamping(x []byte) (*Scalar, error) {
	if len(x) != 32 {
		return nil, curveerr.Decodef("scalar input is %d bytes, want 32", len(x))
	}
	var b [32]byte
	copy(b[:], x)
	Clamp(&b)
	return s.SetBytesModOrder(b[:])
}

// Clamp clears the three low bits and the top bit of b and sets bit 254.
func Clamp(b *[32]byte) {
	b[0] &= 248
	b[31] &= 127
	b[31] |= 64
}

// Set sets s = x, and returns s.
func (s *Scalar) Set(x *Scalar) *Scalar {
	*s = *x
	return s
}

// Bytes returns the canonical 32-byte little-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	out := s.s
	return out[:]
}

// Equal returns 1 if s and t are equal, and 0 otherwise.
func (s *Scalar) Equal(t *Scalar) int {
	return subtle.ConstantTimeCompare(s.s[:], t.s[:])
}

// IsZero returns 1 if s is zero, and 0 otherwise.
func (s *Scalar) IsZero() int {
	var zero [32]byte
	return subtle.ConstantTimeCompare(s.s[:], zero[:])
}

// Add sets s = x + y mod l, and returns s.
func (s *Scalar) Add(x, y *Scalar) *Scalar {
	a, b := unpack(&x.s), unpack(&y.s)
	r := add(&a, &b)
	r.pack(&s.s)
	return s
}

// Subtract sets s = x - y mod l, and returns s.
func (s *Scalar) Subtract(x, y *Scalar) *Scalar {
	a, b := unpack(&x.s), unpack(&y.s)
	r := sub(&a, &b)
	r.pack(&s.s)
	return s
}

// Negate sets s = -x mod l, and returns s.
func (s *Scalar) Negate(x *Scalar) *Scalar {
	var zero scalar52
	a := unpack(&x.s)
	r := sub(&zero, &a)
	r.pack(&s.s)
	return s
}

// Multiply sets s = x * y mod l, and returns s.
func (s *Scalar) Multiply(x, y *Scalar) *Scalar {
	a, b := unpack(&x.s), unpack(&y.s)
	r := mul(&a, &b)
	r.pack(&s.s)
	return s
}

// MultiplyAdd sets s = x * y + z mod l, and returns s.
func (s *Scalar) MultiplyAdd(x, y, z *Scalar) *Scalar {
	a, b, c := unpack(&x.s), unpack(&y.s), unpack(&z.s)
	ab := mul(&a, &b)
	r := add(&ab, &c)
	r.pack(&s.s)
	return s
}

// lMinus2 is l - 2 in little-endian order, the inversion exponent.
var lMinus2 = [32]byte{
	0xeb, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

// Invert sets s = 1/x mod l, and returns s. Invert(0) is 0.
//
// The power x^(l-2) walks the bits of the public exponent, so the sequence
// of squarings and multiplications never depends on x.
func (s *Scalar) Invert(x *Scalar) *Scalar {
	a := unpack(&x.s)
	base := a.toMontgomery()
	acc := montR // 1 in Montgomery form

	for i := 252; i >= 0; i-- {
		acc = montSquare(&acc)
		if (lMinus2[i/8]>>(i%8))&1 == 1 {
			acc = montMul(&acc, &base)
		}
	}
	r := acc.fromMontgomery()
	r.pack(&s.s)
	return s
}
