package scalar

import "encoding/binary"

// SignedRadix16 returns s as 64 signed digits d[i] in [-8, 8) such that
// s = sum(d[i] * 16^i). Since s < 2^253, the last digit is at most 2.
func (s *Scalar) SignedRadix16() [64]int8 {
	var digits [64]int8

	// Split into unsigned nibbles, low first.
	for i := 0; i < 32; i++ {
		digits[2*i] = int8(s.s[i] & 15)
		digits[2*i+1] = int8((s.s[i] >> 4) & 15)
	}

	// Recenter each nibble into [-8, 8), pushing the carry upward.
	for i := 0; i < 63; i++ {
		carry := (digits[i] + 8) >> 4
		digits[i] -= carry << 4
		digits[i+1] += carry
	}
	return digits
}

// NonAdjacentForm returns the width-w NAF of s: signed odd digits of
// absolute value below 2^(w-1) such that s = sum(naf[i] * 2^i) and any w
// consecutive digits have at most one nonzero entry.
//
// The running time depends on s, so it is only for public scalars.
// w must be in [2, 8].
func (s *Scalar) NonAdjacentForm(w uint) [256]int8 {
	if w < 2 || w > 8 {
		panic("edcurve: NAF width out of range")
	}

	var naf [256]int8

	// A fifth zero word lets windows that straddle bit 255 read past the
	// end without a bounds special case.
	var digits [5]uint64
	for i := 0; i < 4; i++ {
		digits[i] = binary.LittleEndian.Uint64(s.s[i*8:])
	}

	width := uint64(1 << w)
	windowMask := width - 1

	pos := uint(0)
	carry := uint64(0)
	for pos < 256 {
		indexU64 := pos / 64
		indexBit := pos % 64
		var bitBuf uint64
		if indexBit < 64-w {
			bitBuf = digits[indexU64] >> indexBit
		} else {
			bitBuf = (digits[indexU64] >> indexBit) | (digits[1+indexU64] << (64 - indexBit))
		}

		window := carry + (bitBuf & windowMask)

		if window&1 == 0 {
			// An even window is a zero digit; the next one starts a bit
			// higher. carry is unchanged.
			pos++
			continue
		}

		if window < width/2 {
			carry = 0
			naf[pos] = int8(window)
		} else {
			carry = 1
			naf[pos] = int8(int64(window) - int64(width))
		}

		pos += w
	}
	return naf
}
