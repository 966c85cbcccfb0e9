// Package edwards implements the group of the twisted Edwards curve
//
//	-x^2 + y^2 = 1 + d*x^2*y^2,  d = -121665/121666
//
// over GF(2^255-19), the curve behind Ed25519, together with the scalar
// multiplication engines that signing and verification code build on.
//
// Points are kept in extended coordinates (X:Y:Z:T) with x = X/Z, y = Y/Z
// and X*Y = Z*T. All operations use the complete addition law, so no input
// needs special casing.
//
// Basic Usage:
//
//	k, _ := scalar.NewScalar().SetBytesWithClamping(h[:32])
//	A := new(edwards.ExtendedPoint).ScalarBaseMult(k)
//	pub := A.Compress()
//
//	P, err := pub.Decompress()
//	if err != nil {
//		// errors.Is(err, curveerr.ErrDecode) or curveerr.ErrInvalidPoint
//	}
//	Q := new(edwards.ExtendedPoint).ScalarMult(k, P)
//
// Constant time:
//
// ScalarMult (Montgomery ladder) and ScalarBaseMult (radix-16 table with an
// oblivious lookup) run in time independent of the scalar and the point.
// Functions with a VarTime prefix do not, and must only see public inputs,
// such as the values checked during signature verification.
package edwards
