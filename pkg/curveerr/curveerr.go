// Package curveerr defines the error kinds returned by the decode paths of the
// field, scalar and edwards packages.
//
// Every decode failure wraps one of the sentinels below, so callers can branch
// on the kind without parsing messages:
//
//	p, err := new(edwards.ExtendedPoint).SetBytes(buf)
//	if errors.Is(err, curveerr.ErrDecode) {
//		// malformed or non-canonical encoding
//	}
//
// Arithmetic never fails: inverting zero, or asking for the square root of a
// non-square, produce defined values instead of errors.
package curveerr

import "github.com/pkg/errors"

var (
	// ErrDecode reports a malformed or non-canonical byte encoding, a
	// compressed point whose y-coordinate has no matching x, or a sign bit
	// that cannot be honored after root selection.
	ErrDecode = errors.New("edcurve: decode error")

	// ErrInvalidPoint reports coordinates that do not describe a point on the
	// curve, or a point that fails a required subgroup check.
	ErrInvalidPoint = errors.New("edcurve: invalid point")
)

// Decode returns ErrDecode annotated with reason.
func Decode(reason string) error {
	return errors.Wrap(ErrDecode, reason)
}

// Decodef returns ErrDecode annotated with a formatted reason.
func Decodef(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDecode, format, args...)
}

// InvalidPoint returns ErrInvalidPoint annotated with reason.
func InvalidPoint(reason string) error {
	return errors.Wrap(ErrInvalidPoint, reason)
}
