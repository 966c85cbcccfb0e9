package uint128

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func toBig(v Uint128) *big.Int {
	hi := new(big.Int).SetUint64(v.Hi)
	hi.Lsh(hi, 64)
	return hi.Add(hi, new(big.Int).SetUint64(v.Lo))
}

func TestMulAddShift(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	mask := new(big.Int).Lsh(big.NewInt(1), 128)
	mask.Sub(mask, big.NewInt(1))

	for i := 0; i < 1000; i++ {
		a, b, c := r.Uint64(), r.Uint64(), r.Uint64()

		prod := Mul64(a, b)
		want := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
		require.Zero(t, want.Cmp(toBig(prod)), "Mul64(%x, %x)", a, b)

		acc := AddMul64(From(c), a, b)
		want.Add(want, new(big.Int).SetUint64(c))
		require.Zero(t, want.Cmp(toBig(acc)), "AddMul64")

		sum := acc.Add(prod).Add64(c)
		want.Add(want, toBig(prod))
		want.Add(want, new(big.Int).SetUint64(c))
		want.And(want, mask)
		require.Zero(t, want.Cmp(toBig(sum)), "Add")

		n := uint(1 + r.Intn(63))
		require.Zero(t, new(big.Int).Rsh(want, n).Cmp(toBig(sum.ShiftRight(n))), "ShiftRight(%d)", n)
	}
}
