package bitsync

import "github.com/thesyncim/bitsync/types"

// primeTable holds the 32 prime constants used by the dispersion
// multiplier: the first 32 primes at or above 1033, monotonically
// increasing. The exact table is part of the engine's contract and must
// match bit-for-bit across implementations.
var primeTable = [32]uint32{
	1033, 1039, 1049, 1051, 1061, 1063, 1069, 1087, 1091, 1093, 1097, 1103, 1109, 1117, 1123, 1129,
	1151, 1153, 1163, 1171, 1181, 1187, 1193, 1201, 1213, 1217, 1223, 1229, 1231, 1237, 1249, 1259,
}

// multiply is the dispersion multiplier: given two l-bit operands
// (1 <= l <= 32) and a mode, it returns a positive real whose magnitude
// monotonically reflects the operands' bitwise similarity. It never
// returns zero.
func multiply(mode types.MultiplyMode, a, b uint32, l uint32) float32 {
	var sum uint64

	switch mode {
	case types.MultiplyInvXorPrime:
		// The XOR is treated as inverted (count zeros, not ones):
		// zero difference must gain the highest positive value.
		x := a ^ b
		for i := uint32(0); i < l; i++ {
			if x&(1<<i) == 0 {
				sum += uint64(primeTable[i])
			}
		}

	case types.MultiplyDispersedPrime:
		for i := uint32(0); i < l; i++ {
			fallback := uint64(2 * (i + 1))

			va := fallback
			if a&(1<<i) != 0 {
				va = uint64(primeTable[i])
			}
			vb := fallback
			if b&(1<<i) != 0 {
				vb = uint64(primeTable[i])
			}

			sum += va * vb
		}
	}

	if sum == 0 {
		sum = 1 // floor: never return zero
	}
	return float32(sum)
}
