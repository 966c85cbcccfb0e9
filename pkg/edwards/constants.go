package edwards

import "github.com/mahdiidarabi/edcurve/pkg/field"

// Curve parameters as radix 2^51 limbs. These are never written after
// package initialization; the exported accessors below hand out copies.
var (
	// d = -121665/121666, the curve constant of -x^2 + y^2 = 1 + d*x^2*y^2.
	d = &field.Element{929955233495203, 466365720129213, 1662059464998953, 2033849074728123, 1442794654840575}

	// d2 = 2*d.
	d2 = &field.Element{1859910466990425, 932731440258426, 1072319116312658, 1815898335770999, 633789495995903}

	// sqrt(a*d - 1) with a = -1.
	sqrtADMinusOne = &field.Element{2241493124984347, 425987919032274, 2207028919301688, 1220490630685848, 974799131293748}

	// 1/sqrt(a - d).
	invSqrtAMinusD = &field.Element{278908739862762, 821645201101625, 8113234426968, 1777959178193151, 2118520810568447}

	// sqrtM1 = sqrt(-1).
	sqrtM1 = &field.Element{1718705420411056, 234908883556509, 2233514472574048, 2117202627021982, 765476049583133}

	// montgomeryA is the A in v^2 = u^3 + A*u^2 + u.
	montgomeryA = &field.Element{486662, 0, 0, 0, 0}

	// aPlus2Over4 = (A+2)/4, the ladder constant a24.
	aPlus2Over4 = &field.Element{121666, 0, 0, 0, 0}

	// sqrtMinusAPlus2 = sqrt(-(A+2)), the scale factor of the birational map
	// between the Edwards and Montgomery models.
	sqrtMinusAPlus2 = &field.Element{1693982333959686, 608509411481997, 2235573344831311, 947681270984193, 266558006233600}
)

// Small constants used directly as multipliers.
const (
	montgomeryAInt    = 486662
	aPlus2Over4Int    = 121666
	twoMontgomeryAInt = 2 * montgomeryAInt
)

// EdwardsD returns a copy of the curve constant d.
func EdwardsD() *field.Element { return new(field.Element).Set(d) }

// EdwardsD2 returns a copy of 2*d.
func EdwardsD2() *field.Element { return new(field.Element).Set(d2) }

// SqrtADMinusOne returns a copy of sqrt(a*d - 1).
func SqrtADMinusOne() *field.Element { return new(field.Element).Set(sqrtADMinusOne) }

// InvSqrtAMinusD returns a copy of 1/sqrt(a - d).
func InvSqrtAMinusD() *field.Element { return new(field.Element).Set(invSqrtAMinusD) }

// SqrtM1 returns a copy of sqrt(-1).
func SqrtM1() *field.Element { return new(field.Element).Set(sqrtM1) }

// MontgomeryA returns a copy of the Montgomery curve coefficient A.
func MontgomeryA() *field.Element { return new(field.Element).Set(montgomeryA) }

// APlus2Over4 returns a copy of (A+2)/4.
func APlus2Over4() *field.Element { return new(field.Element).Set(aPlus2Over4) }

// SqrtMinusAPlus2 returns a copy of sqrt(-(A+2)).
func SqrtMinusAPlus2() *field.Element { return new(field.Element).Set(sqrtMinusAPlus2) }

var (
	one = new(field.Element).One()

	// basepoint is the Ed25519 generator B, with y = 4/5 and x non-negative.
	basepoint = &ExtendedPoint{
		x: field.Element{1738742601995546, 1146398526822698, 2070867633025821, 562264141797630, 587772402128613},
		y: field.Element{1801439850948184, 1351079888211148, 450359962737049, 900719925474099, 1801439850948198},
		z: field.Element{1, 0, 0, 0, 0},
		t: field.Element{1841354044333475, 16398895984059, 755974180946558, 900171276175154, 1821297809914039},
	}

	// eightTorsion[i] is i*P for a fixed point P of order 8.
	eightTorsion = [8]ExtendedPoint{
		{
			x: field.Element{0, 0, 0, 0, 0},
			y: field.Element{1, 0, 0, 0, 0},
			z: field.Element{1, 0, 0, 0, 0},
			t: field.Element{0, 0, 0, 0, 0},
		},
		{
			x: field.Element{358744748052810, 1691584618240980, 977650209285361, 1429865912637724, 560044844278676},
			y: field.Element{84926274344903, 473620666599931, 365590438845504, 1028470286882429, 2146499180330972},
			z: field.Element{1, 0, 0, 0, 0},
			t: field.Element{1448326834587521, 1857896831960481, 1093722731865333, 1677408490711241, 1915505153018406},
		},
		{
			x: field.Element{533094393274173, 2016890930128738, 18285341111199, 134597186663265, 1486323764102114},
			y: field.Element{0, 0, 0, 0, 0},
			z: field.Element{1, 0, 0, 0, 0},
			t: field.Element{0, 0, 0, 0, 0},
		},
		{
			x: field.Element{358744748052810, 1691584618240980, 977650209285361, 1429865912637724, 560044844278676},
			y: field.Element{2166873539340326, 1778179147085316, 1886209374839743, 1223329526802818, 105300633354275},
			z: field.Element{1, 0, 0, 0, 0},
			t: field.Element{803472979097708, 393902981724766, 1158077081819914, 574391322974006, 336294660666841},
		},
		{
			x: field.Element{0, 0, 0, 0, 0},
			y: field.Element{2251799813685228, 2251799813685247, 2251799813685247, 2251799813685247, 2251799813685247},
			z: field.Element{1, 0, 0, 0, 0},
			t: field.Element{0, 0, 0, 0, 0},
		},
		{
			x: field.Element{1893055065632419, 560215195444267, 1274149604399886, 821933901047523, 1691754969406571},
			y: field.Element{2166873539340326, 1778179147085316, 1886209374839743, 1223329526802818, 105300633354275},
			z: field.Element{1, 0, 0, 0, 0},
			t: field.Element{1448326834587521, 1857896831960481, 1093722731865333, 1677408490711241, 1915505153018406},
		},
		{
			x: field.Element{1718705420411056, 234908883556509, 2233514472574048, 2117202627021982, 765476049583133},
			y: field.Element{0, 0, 0, 0, 0},
			z: field.Element{1, 0, 0, 0, 0},
			t: field.Element{0, 0, 0, 0, 0},
		},
		{
			x: field.Element{1893055065632419, 560215195444267, 1274149604399886, 821933901047523, 1691754969406571},
			y: field.Element{84926274344903, 473620666599931, 365590438845504, 1028470286882429, 2146499180330972},
			z: field.Element{1, 0, 0, 0, 0},
			t: field.Element{803472979097708, 393902981724766, 1158077081819914, 574391322974006, 336294660666841},
		},
	}
)
