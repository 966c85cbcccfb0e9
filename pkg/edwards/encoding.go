package edwards

import (
	"encoding/hex"

	"github.com/mahdiidarabi/edcurve/pkg/curveerr"
	"github.com/mahdiidarabi/edcurve/pkg/field"
)

// CompressedPoint is the 32-byte RFC 8032 encoding of a point: the
// little-endian y coordinate with the sign of x in the top bit.
type CompressedPoint [32]byte

// String returns the hex encoding of c.
func (c CompressedPoint) String() string {
	return hex.EncodeToString(c[:])
}

// Compress returns the canonical encoding of v.
func (v *ExtendedPoint) Compress() CompressedPoint {
	var zInv, x, y field.Element
	zInv.Invert(&v.z)
	x.Multiply(&v.x, &zInv)
	y.Multiply(&v.y, &zInv)

	var out CompressedPoint
	copy(out[:], y.Bytes())
	out[31] |= byte(x.IsNegative() << 7)
	return out
}

// Bytes returns the canonical 32-byte encoding of v.
func (v *ExtendedPoint) Bytes() []byte {
	c := v.Compress()
	return c[:]
}

// SetBytes sets v to the point encoded by x, and returns v. See
// CompressedPoint.Decompress for the accepted encodings. On error v is
// unchanged.
func (v *ExtendedPoint) SetBytes(x []byte) (*ExtendedPoint, error) {
	if len(x) != 32 {
		return nil, curveerr.Decodef("point encoding is %d bytes, want 32", len(x))
	}
	var c CompressedPoint
	copy(c[:], x)
	p, err := c.Decompress()
	if err != nil {
		return nil, err
	}
	return v.Set(p), nil
}

// Decompress decodes c following RFC 8032, section 5.1.3.
//
// Only canonical encodings are accepted: y must be below p, and the
// encoding of a point with x = 0 must have the sign bit clear. A y for
// which no x exists, or either kind of non-canonical input, is a decode
// error.
func (c CompressedPoint) Decompress() (*ExtendedPoint, error) {
	sign := int(c[31] >> 7)

	yBytes := c
	yBytes[31] &= 0x7f
	y, err := new(field.Element).SetCanonicalBytes(yBytes[:])
	if err != nil {
		return nil, curveerr.Decode("y coordinate is not canonical")
	}

	// -x^2 + y^2 = 1 + d*x^2*y^2
	// x^2 = (y^2 - 1) / (d*y^2 + 1)
	var yy, u, w field.Element
	yy.Square(y)
	u.Subtract(&yy, one)
	w.Multiply(&yy, d)
	w.Add(&w, one)

	x, wasSquare := new(field.Element).SqrtRatio(&u, &w)
	if wasSquare == 0 {
		return nil, curveerr.Decode("no square root for x")
	}
	if x.IsZero() == 1 && sign == 1 {
		return nil, curveerr.Decode("sign bit set for x = 0")
	}

	// SqrtRatio returns the non-negative root, so the sign bit alone says
	// whether to negate.
	x.CondNegate(x, sign)

	var p ExtendedPoint
	p.x.Set(x)
	p.y.Set(y)
	p.z.One()
	p.t.Multiply(x, y)

	if p.IsValid() != 1 {
		return nil, curveerr.InvalidPoint("decompressed point is not on the curve")
	}
	return &p, nil
}
