package selfcheck

import (
	"encoding/hex"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/edcurve/pkg/edwards"
	"github.com/mahdiidarabi/edcurve/pkg/field"
	"github.com/mahdiidarabi/edcurve/pkg/scalar"
)

// DefaultChecks returns the built-in checks. The slice is a fresh copy;
// callers may append their own before passing it to WithChecks.
func DefaultChecks() []Check {
	return []Check{
		{Name: "field_prime", Priority: 1, Run: checkFieldPrime},
		{Name: "scalar_order", Priority: 1, Run: checkScalarOrder},
		{Name: "sqrt_m1", Priority: 1, Run: checkSqrtM1},
		{Name: "edwards_d", Priority: 1, Run: checkEdwardsD},
		{Name: "edwards_d2", Priority: 1, Run: checkEdwardsD2},
		{Name: "sqrt_ad_minus_one", Priority: 1, Run: checkSqrtADMinusOne},
		{Name: "inv_sqrt_a_minus_d", Priority: 1, Run: checkInvSqrtAMinusD},
		{Name: "montgomery_a", Priority: 1, Run: checkMontgomeryA},
		{Name: "sqrt_minus_a_plus_2", Priority: 1, Run: checkSqrtMinusAPlus2},
		{Name: "scalar_multiply", Priority: 2, Run: checkScalarMultiply},
		{Name: "basepoint", Priority: 2, Run: checkBasepoint},
		{Name: "basepoint_order", Priority: 3, Run: checkBasepointOrder},
		{Name: "eight_torsion", Priority: 3, Run: checkEightTorsion},
		{Name: "basepoint_montgomery", Priority: 4, Run: checkBasepointMontgomery},
		{Name: "basepoint_table", Priority: 4, Run: checkBasepointTable},
		{Name: "double_base_table", Priority: 4, Run: checkDoubleBaseTable},
	}
}

// BasepointEncoding is the RFC 8032 compressed encoding of B.
const BasepointEncoding = "5866666666666666666666666666666666666666666666666666666666666666"

func fieldEqual(name string, got, want *field.Element) error {
	if got.Equal(want) != 1 {
		return errors.Errorf("%s: got %x, want %x", name, got.Bytes(), want.Bytes())
	}
	return nil
}

func fieldInt(n uint32) *field.Element {
	return new(field.Element).Mult32(new(field.Element).One(), n)
}

// littleEndian returns the 32-byte little-endian encoding of x.
func littleEndian(x *uint256.Int) []byte {
	be := x.Bytes32()
	out := make([]byte, 32)
	for i := range be {
		out[i] = be[31-i]
	}
	return out
}

func fromLittleEndian(b []byte) *uint256.Int {
	be := make([]byte, 32)
	for i := range b {
		be[31-i] = b[i]
	}
	return new(uint256.Int).SetBytes32(be)
}

func checkFieldPrime() error {
	// p = 2^255 - 19
	p := new(uint256.Int).Lsh(uint256.NewInt(1), 255)
	p.Sub(p, uint256.NewInt(19))
	enc := littleEndian(p)

	var v field.Element
	if _, err := v.SetBytes(enc); err != nil {
		return errors.Wrap(err, "decoding p")
	}
	if v.IsZero() != 1 {
		return errors.New("p does not decode to zero")
	}
	if _, err := new(field.Element).SetCanonicalBytes(enc); err == nil {
		return errors.New("p accepted as a canonical encoding")
	}

	pMinusOne := new(uint256.Int).Sub(p, uint256.NewInt(1))
	if _, err := v.SetCanonicalBytes(littleEndian(pMinusOne)); err != nil {
		return errors.Wrap(err, "decoding p-1")
	}
	var minusOne field.Element
	minusOne.Negate(new(field.Element).One())
	return fieldEqual("p-1", &v, &minusOne)
}

func checkScalarOrder() error {
	// l = 2^252 + 27742317777372353535851937790883648493
	l := new(uint256.Int).Lsh(uint256.NewInt(1), 252)
	l.Add(l, uint256.MustFromDecimal("27742317777372353535851937790883648493"))

	if got := fromLittleEndian(scalar.Order()); !got.Eq(l) {
		return errors.Errorf("order: got %s, want %s", got.Hex(), l.Hex())
	}
	if scalar.IsCanonical(scalar.Order()) {
		return errors.New("l reported as canonical")
	}
	lMinusOne := new(uint256.Int).Sub(l, uint256.NewInt(1))
	if !scalar.IsCanonical(littleEndian(lMinusOne)) {
		return errors.New("l-1 reported as non-canonical")
	}
	return nil
}

// checkScalarMultiply runs one Montgomery multiplication against a full-width
// reference, which catches a wrong R, R^2 or -1/l constant.
func checkScalarMultiply() error {
	l := fromLittleEndian(scalar.Order())
	a := uint256.MustFromHex("0xfedcba9876543210fedcba9876543210fedcba9876543210fedcba987654321")
	b := uint256.MustFromHex("0x123456789abcdef0123456789abcdef0123456789abcdef0123456789abcde")
	a.Mod(a, l)
	b.Mod(b, l)
	want := new(uint256.Int).MulMod(a, b, l)

	x, err := scalar.FromBytes(littleEndian(a), false)
	if err != nil {
		return errors.Wrap(err, "decoding a")
	}
	y, err := scalar.FromBytes(littleEndian(b), false)
	if err != nil {
		return errors.Wrap(err, "decoding b")
	}
	got := fromLittleEndian(scalar.NewScalar().Multiply(x, y).Bytes())
	if !got.Eq(want) {
		return errors.Errorf("a*b: got %s, want %s", got.Hex(), want.Hex())
	}

	sum := fromLittleEndian(scalar.NewScalar().Add(x, y).Bytes())
	if want := new(uint256.Int).AddMod(a, b, l); !sum.Eq(want) {
		return errors.Errorf("a+b: got %s, want %s", sum.Hex(), want.Hex())
	}
	return nil
}

func checkSqrtM1() error {
	s := edwards.SqrtM1()
	if err := fieldEqual("edwards vs field sqrt(-1)", s, field.SqrtM1()); err != nil {
		return err
	}
	var sq, minusOne field.Element
	sq.Square(s)
	minusOne.Negate(new(field.Element).One())
	return fieldEqual("sqrt(-1)^2", &sq, &minusOne)
}

func checkEdwardsD() error {
	// d = -121665/121666, so 121666*d = -121665.
	var lhs, rhs field.Element
	lhs.Mult32(edwards.EdwardsD(), 121666)
	rhs.Negate(fieldInt(121665))
	return fieldEqual("121666*d", &lhs, &rhs)
}

func checkEdwardsD2() error {
	d := edwards.EdwardsD()
	var sum field.Element
	sum.Add(d, d)
	return fieldEqual("d+d", &sum, edwards.EdwardsD2())
}

func checkSqrtADMinusOne() error {
	// a = -1, so a*d - 1 = -(d + 1).
	var want, got field.Element
	want.Add(edwards.EdwardsD(), new(field.Element).One())
	want.Negate(&want)
	got.Square(edwards.SqrtADMinusOne())
	return fieldEqual("sqrt(a*d-1)^2", &got, &want)
}

func checkInvSqrtAMinusD() error {
	var aMinusD, got field.Element
	aMinusD.Add(edwards.EdwardsD(), new(field.Element).One())
	aMinusD.Negate(&aMinusD)
	got.Square(edwards.InvSqrtAMinusD())
	got.Multiply(&got, &aMinusD)
	return fieldEqual("(1/sqrt(a-d))^2 * (a-d)", &got, new(field.Element).One())
}

func checkMontgomeryA() error {
	if err := fieldEqual("A", edwards.MontgomeryA(), fieldInt(486662)); err != nil {
		return err
	}
	var got, want field.Element
	got.Mult32(edwards.APlus2Over4(), 4)
	want.Add(edwards.MontgomeryA(), fieldInt(2))
	return fieldEqual("4*(A+2)/4", &got, &want)
}

func checkSqrtMinusAPlus2() error {
	var want, got field.Element
	want.Add(edwards.MontgomeryA(), fieldInt(2))
	want.Negate(&want)
	got.Square(edwards.SqrtMinusAPlus2())
	if err := fieldEqual("sqrt(-(A+2))^2", &got, &want); err != nil {
		return err
	}
	if edwards.SqrtMinusAPlus2().IsNegative() != 0 {
		return errors.New("sqrt(-(A+2)) is not the non-negative root")
	}
	return nil
}

func checkBasepoint() error {
	B := edwards.NewGeneratorPoint()
	X, Y, Z, T := B.ExtendedCoordinates()

	if err := fieldEqual("Z", Z, new(field.Element).One()); err != nil {
		return err
	}
	var xy field.Element
	xy.Multiply(X, Y)
	if err := fieldEqual("X*Y", &xy, T); err != nil {
		return err
	}
	if B.IsValid() != 1 {
		return errors.New("basepoint is not on the curve")
	}

	// y = 4/5
	var y field.Element
	y.Invert(fieldInt(5))
	y.Multiply(&y, fieldInt(4))
	if err := fieldEqual("y", Y, &y); err != nil {
		return err
	}
	if X.IsNegative() != 0 {
		return errors.New("basepoint x is negative")
	}

	if got := hex.EncodeToString(B.Bytes()); got != BasepointEncoding {
		return errors.Errorf("encoding: got %s, want %s", got, BasepointEncoding)
	}
	return nil
}

func checkBasepointOrder() error {
	B := edwards.NewGeneratorPoint()
	if B.IsIdentity() == 1 {
		return errors.New("basepoint is the identity")
	}
	if B.IsSmallOrder() == 1 {
		return errors.New("basepoint has small order")
	}
	if B.IsTorsionFree() != 1 {
		return errors.New("l*B is not the identity")
	}
	return nil
}

func checkEightTorsion() error {
	T := edwards.EightTorsion()
	if T[0].IsIdentity() != 1 {
		return errors.New("T[0] is not the identity")
	}
	for i := range T {
		if T[i].IsValid() != 1 {
			return errors.Errorf("T[%d] is not on the curve", i)
		}
		if T[i].IsSmallOrder() != 1 {
			return errors.Errorf("T[%d] is not reported as small order", i)
		}
		var next edwards.ExtendedPoint
		next.Add(T[i], T[1])
		if next.Equal(T[(i+1)%8]) != 1 {
			return errors.Errorf("T[%d] + T[1] != T[%d]", i, (i+1)%8)
		}
	}
	var p edwards.ExtendedPoint
	if p.Double(T[1]).Double(&p).IsIdentity() == 1 {
		return errors.New("T[1] does not have order 8")
	}
	return nil
}

func checkBasepointMontgomery() error {
	want := edwards.MontgomeryPoint{9}
	if got := edwards.NewGeneratorPoint().ToMontgomery(); got != want {
		return errors.Errorf("u(B): got %s, want %s", got, want)
	}
	return nil
}

// tableScalars exercises the first and last rows of the radix-16 table and
// both signs of every digit.
func tableScalars() ([]*scalar.Scalar, error) {
	var out []*scalar.Scalar
	for _, h := range []string{
		"0000000000000000000000000000000000000000000000000000000000000000",
		"0100000000000000000000000000000000000000000000000000000000000000",
		"0f00000000000000000000000000000000000000000000000000000000000000",
		"8888888888888888888888888888888888888888888888888888888888888808",
		"f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f00f",
	} {
		b, err := hex.DecodeString(h)
		if err != nil {
			return nil, errors.Wrap(err, "table scalar")
		}
		s, err := scalar.FromBytes(b, false)
		if err != nil {
			return nil, errors.Wrapf(err, "table scalar %s", h)
		}
		out = append(out, s)
	}
	// l - 1
	out = append(out, scalar.NewScalar().Negate(scalar.One()))
	return out, nil
}

func checkBasepointTable() error {
	scalars, err := tableScalars()
	if err != nil {
		return err
	}
	B := edwards.NewGeneratorPoint()
	for _, s := range scalars {
		var fixed, ladder, vartime edwards.ExtendedPoint
		fixed.ScalarBaseMult(s)
		ladder.ScalarMult(s, B)
		vartime.VarTimeScalarMult(s, B)
		if fixed.Equal(&ladder) != 1 {
			return errors.Errorf("fixed-base and ladder disagree for %x", s.Bytes())
		}
		if vartime.Equal(&ladder) != 1 {
			return errors.Errorf("variable-time and ladder disagree for %x", s.Bytes())
		}
	}
	return nil
}

func checkDoubleBaseTable() error {
	scalars, err := tableScalars()
	if err != nil {
		return err
	}
	A := edwards.NewGeneratorPoint()
	A.Double(A)
	for i, a := range scalars {
		b := scalars[len(scalars)-1-i]

		var got, aA, bB edwards.ExtendedPoint
		got.VarTimeDoubleScalarBaseMult(a, A, b)
		aA.ScalarMult(a, A)
		bB.ScalarBaseMult(b)
		aA.Add(&aA, &bB)
		if got.Equal(&aA) != 1 {
			return errors.Errorf("a*A + b*B mismatch for a=%x b=%x", a.Bytes(), b.Bytes())
		}
	}
	return nil
}
