package crosscheck

import (
	"bytes"
	"math/rand"

	"filippo.io/edwards25519"
	filofield "filippo.io/edwards25519/field"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"golang.org/x/crypto/curve25519"

	"github.com/mahdiidarabi/edcurve/pkg/edwards"
	"github.com/mahdiidarabi/edcurve/pkg/field"
	"github.com/mahdiidarabi/edcurve/pkg/scalar"
)

// Property is a relation between this module and a reference implementation
// that must hold for every random input.
type Property struct {
	Name  string
	Check func(rng *rand.Rand) error
}

// DefaultProperties returns the built-in properties.
func DefaultProperties() []Property {
	return []Property{
		{Name: "field_arithmetic", Check: checkFieldArithmetic},
		{Name: "scalar_arithmetic", Check: checkScalarArithmetic},
		{Name: "scalar_base_mult", Check: checkScalarBaseMult},
		{Name: "scalar_mult", Check: checkScalarMult},
		{Name: "double_base_mult", Check: checkDoubleBaseMult},
		{Name: "decompress", Check: checkDecompress},
		{Name: "montgomery", Check: checkMontgomery},
		{Name: "torsion", Check: checkTorsion},
	}
}

// PropertyNames returns the names of the built-in properties.
func PropertyNames() []string {
	var names []string
	for _, p := range DefaultProperties() {
		names = append(names, p.Name)
	}
	return names
}

// SelectProperties returns the built-in properties with the given names, in
// the order given.
func SelectProperties(names []string) ([]Property, error) {
	byName := make(map[string]Property)
	for _, p := range DefaultProperties() {
		byName[p.Name] = p
	}
	var out []Property
	for _, n := range names {
		p, ok := byName[n]
		if !ok {
			return nil, errors.Errorf("unknown property %q (known: %v)", n, PropertyNames())
		}
		out = append(out, p)
	}
	return out, nil
}

func randBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	rng.Read(b)
	return b
}

// randScalars returns the same uniformly random scalar in both
// implementations.
func randScalars(rng *rand.Rand) (*scalar.Scalar, *edwards25519.Scalar, error) {
	wide := randBytes(rng, 64)
	s, err := scalar.NewScalar().SetUniformBytes(wide)
	if err != nil {
		return nil, nil, err
	}
	ref, err := edwards25519.NewScalar().SetUniformBytes(wide)
	if err != nil {
		return nil, nil, err
	}
	if !bytes.Equal(s.Bytes(), ref.Bytes()) {
		return nil, nil, errors.Errorf("wide reduction of %x: got %x, want %x", wide, s.Bytes(), ref.Bytes())
	}
	return s, ref, nil
}

// randPoints returns the same random point in both implementations. With
// mixed set it carries a random torsion component.
func randPoints(rng *rand.Rand, mixed bool) (*edwards.ExtendedPoint, *edwards25519.Point, error) {
	s, _, err := randScalars(rng)
	if err != nil {
		return nil, nil, err
	}
	p := new(edwards.ExtendedPoint).ScalarBaseMult(s)
	if mixed {
		p.Add(p, edwards.EightTorsion()[rng.Intn(8)])
	}
	ref, err := new(edwards25519.Point).SetBytes(p.Bytes())
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reference rejected %x", p.Bytes())
	}
	return p, ref, nil
}

func comparePoints(op string, got *edwards.ExtendedPoint, want *edwards25519.Point) error {
	if !bytes.Equal(got.Bytes(), want.Bytes()) {
		return errors.Errorf("%s: got %x, want %x", op, got.Bytes(), want.Bytes())
	}
	return nil
}

func compareBytes(op string, got, want []byte) error {
	if !bytes.Equal(got, want) {
		return errors.Errorf("%s: got %x, want %x", op, got, want)
	}
	return nil
}

func checkFieldArithmetic(rng *rand.Rand) error {
	ab, bb := randBytes(rng, 32), randBytes(rng, 32)
	var a, b, r field.Element
	if _, err := a.SetBytes(ab); err != nil {
		return err
	}
	if _, err := b.SetBytes(bb); err != nil {
		return err
	}
	var fa, fb, fr filofield.Element
	if _, err := fa.SetBytes(ab); err != nil {
		return err
	}
	if _, err := fb.SetBytes(bb); err != nil {
		return err
	}

	if err := compareBytes("decode", a.Bytes(), fa.Bytes()); err != nil {
		return err
	}
	if err := compareBytes("a*b", r.Multiply(&a, &b).Bytes(), fr.Multiply(&fa, &fb).Bytes()); err != nil {
		return err
	}
	if err := compareBytes("(a+b)^2", r.Square(r.Add(&a, &b)).Bytes(), fr.Square(fr.Add(&fa, &fb)).Bytes()); err != nil {
		return err
	}
	if err := compareBytes("a-b", r.Subtract(&a, &b).Bytes(), fr.Subtract(&fa, &fb).Bytes()); err != nil {
		return err
	}
	if err := compareBytes("1/a", r.Invert(&a).Bytes(), fr.Invert(&fa).Bytes()); err != nil {
		return err
	}

	_, wasSquare := r.SqrtRatio(&a, &b)
	_, refSquare := fr.SqrtRatio(&fa, &fb)
	if wasSquare != refSquare {
		return errors.Errorf("sqrt(a/b) square flag: got %d, want %d", wasSquare, refSquare)
	}
	return compareBytes("sqrt(a/b)", r.Bytes(), fr.Bytes())
}

func leToUint256(b []byte) *uint256.Int {
	be := make([]byte, 32)
	for i := range b {
		be[31-i] = b[i]
	}
	return new(uint256.Int).SetBytes32(be)
}

func checkScalarArithmetic(rng *rand.Rand) error {
	x, fx, err := randScalars(rng)
	if err != nil {
		return err
	}
	y, fy, err := randScalars(rng)
	if err != nil {
		return err
	}
	z, fz, err := randScalars(rng)
	if err != nil {
		return err
	}

	var r scalar.Scalar
	fr := edwards25519.NewScalar()
	if err := compareBytes("x*y", r.Multiply(x, y).Bytes(), fr.Multiply(fx, fy).Bytes()); err != nil {
		return err
	}
	if err := compareBytes("x+y", r.Add(x, y).Bytes(), fr.Add(fx, fy).Bytes()); err != nil {
		return err
	}
	if err := compareBytes("x-y", r.Subtract(x, y).Bytes(), fr.Subtract(fx, fy).Bytes()); err != nil {
		return err
	}
	if err := compareBytes("-x", r.Negate(x).Bytes(), fr.Negate(fx).Bytes()); err != nil {
		return err
	}
	if err := compareBytes("x*y+z", r.MultiplyAdd(x, y, z).Bytes(), fr.MultiplyAdd(fx, fy, fz).Bytes()); err != nil {
		return err
	}
	if err := compareBytes("1/x", r.Invert(x).Bytes(), fr.Invert(fx).Bytes()); err != nil {
		return err
	}

	// Second opinion from a plain 256-bit integer implementation.
	l := leToUint256(scalar.Order())
	want := new(uint256.Int).MulMod(leToUint256(x.Bytes()), leToUint256(y.Bytes()), l)
	if got := leToUint256(r.Multiply(x, y).Bytes()); !got.Eq(want) {
		return errors.Errorf("x*y mod l: got %s, want %s", got.Hex(), want.Hex())
	}
	return nil
}

func checkScalarBaseMult(rng *rand.Rand) error {
	s, fs, err := randScalars(rng)
	if err != nil {
		return err
	}
	got := new(edwards.ExtendedPoint).ScalarBaseMult(s)
	return comparePoints("s*B", got, new(edwards25519.Point).ScalarBaseMult(fs))
}

func checkScalarMult(rng *rand.Rand) error {
	s, fs, err := randScalars(rng)
	if err != nil {
		return err
	}
	p, fp, err := randPoints(rng, true)
	if err != nil {
		return err
	}
	want := new(edwards25519.Point).ScalarMult(fs, fp)

	if err := comparePoints("s*P ladder", new(edwards.ExtendedPoint).ScalarMult(s, p), want); err != nil {
		return err
	}
	return comparePoints("s*P vartime", new(edwards.ExtendedPoint).VarTimeScalarMult(s, p), want)
}

func checkDoubleBaseMult(rng *rand.Rand) error {
	a, fa, err := randScalars(rng)
	if err != nil {
		return err
	}
	b, fb, err := randScalars(rng)
	if err != nil {
		return err
	}
	A, fA, err := randPoints(rng, true)
	if err != nil {
		return err
	}
	got := new(edwards.ExtendedPoint).VarTimeDoubleScalarBaseMult(a, A, b)
	return comparePoints("a*A+b*B", got, new(edwards25519.Point).VarTimeDoubleScalarBaseMult(fa, fA, fb))
}

// checkDecompress feeds random encodings to both decoders. Every encoding
// this module accepts must be accepted by the reference and round-trip.
// The reference also accepts non-canonical encodings, which this module
// must reject.
func checkDecompress(rng *rand.Rand) error {
	enc := randBytes(rng, 32)
	// Half of the inputs are valid points, possibly with a flipped sign.
	if rng.Intn(2) == 0 {
		p, _, err := randPoints(rng, rng.Intn(2) == 0)
		if err != nil {
			return err
		}
		enc = p.Bytes()
		enc[31] ^= byte(rng.Intn(2)) << 7
	}

	p, err := new(edwards.ExtendedPoint).SetBytes(enc)
	ref, refErr := new(edwards25519.Point).SetBytes(enc)
	switch {
	case err == nil && refErr != nil:
		return errors.Errorf("decode %x: accepted, reference rejected: %v", enc, refErr)
	case err == nil:
		if err := compareBytes("decode round trip", p.Bytes(), enc); err != nil {
			return err
		}
		return comparePoints("decode", p, ref)
	case refErr == nil && bytes.Equal(ref.Bytes(), enc):
		return errors.Errorf("decode %x: rejected canonical encoding: %v", enc, err)
	}
	return nil
}

func checkMontgomery(rng *rand.Rand) error {
	p, fp, err := randPoints(rng, rng.Intn(2) == 0)
	if err != nil {
		return err
	}
	u := p.ToMontgomery()
	if err := compareBytes("u(P)", u[:], fp.BytesMontgomery()); err != nil {
		return err
	}

	back, err := u.ToEdwards(int(p.Bytes()[31] >> 7))
	if err != nil {
		return errors.Wrapf(err, "lifting u(P) = %s", u)
	}
	if back.Equal(p) != 1 {
		return errors.Errorf("lift of u(P): got %x, want %x", back.Bytes(), p.Bytes())
	}

	// X25519 on a prime-order u never hits the all-zero output.
	q, _, err := randPoints(rng, false)
	if err != nil {
		return err
	}
	var k [32]byte
	rng.Read(k[:])
	qu := q.ToMontgomery()
	want, err := curve25519.X25519(k[:], qu[:])
	if err != nil {
		return errors.Wrap(err, "reference X25519")
	}
	got := qu.MulClamped(&k)
	return compareBytes("X25519", got[:], want)
}

func checkTorsion(rng *rand.Rand) error {
	s, _, err := randScalars(rng)
	if err != nil {
		return err
	}
	i := rng.Intn(8)
	p := new(edwards.ExtendedPoint).ScalarBaseMult(s)
	p.Add(p, edwards.EightTorsion()[i])
	fp, err := new(edwards25519.Point).SetBytes(p.Bytes())
	if err != nil {
		return err
	}

	if err := comparePoints("8*P", new(edwards.ExtendedPoint).MultByCofactor(p), new(edwards25519.Point).MultByCofactor(fp)); err != nil {
		return err
	}
	if got, want := p.IsTorsionFree(), boolToInt(i == 0); got != want {
		return errors.Errorf("torsion free with T[%d]: got %d, want %d", i, got, want)
	}
	if got, want := p.IsSmallOrder(), s.IsZero(); got != want {
		return errors.Errorf("small order: got %d, want %d", got, want)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
