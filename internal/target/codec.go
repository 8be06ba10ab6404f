package target

import "math/big"

// Decode converts a compact ("nBits") representation to a 256-bit target,
// reporting whether the sign bit was set and whether the mantissa/exponent
// combination overflows a 256-bit unsigned value. The format is:
//
//	-------------------------------------------------
//	|   Exponent     |    Sign    |    Mantissa     |
//	-------------------------------------------------
//	| 8 bits [31-24] | 1 bit [23] | 23 bits [22-00] |
//	-------------------------------------------------
//
// N = mantissa * 256^(exponent-3), negated when the sign bit is set.
func Decode(compact uint32) (value *big.Int, negative bool, overflow bool) {
	exponent := compact >> 24
	mantissa := compact & 0x007fffff
	negative = mantissa != 0 && compact&0x00800000 != 0

	overflow = (mantissa != 0 && exponent > 34) ||
		(mantissa > 0xff && exponent > 33) ||
		(mantissa > 0xffff && exponent > 32)

	value = new(big.Int).SetUint64(uint64(mantissa))
	if exponent <= 3 {
		value.Rsh(value, uint(8*(3-exponent)))
	} else {
		value.Lsh(value, uint(8*(exponent-3)))
	}
	return value, negative, overflow
}

// Encode converts a non-negative 256-bit target back to its canonical
// compact representation: the minimum exponent such that the mantissa fits
// in 23 bits with the sign bit clear.
func Encode(value *big.Int) uint32 {
	if value.Sign() == 0 {
		return 0
	}

	bytes := value.Bytes()
	exponent := uint32(len(bytes))

	var mantissa uint32
	switch {
	case len(bytes) >= 3:
		mantissa = uint32(bytes[0])<<16 | uint32(bytes[1])<<8 | uint32(bytes[2])
	case len(bytes) == 2:
		mantissa = (uint32(bytes[0])<<8 | uint32(bytes[1])) << 8
	default:
		mantissa = uint32(bytes[0]) << 16
	}

	// Canonical form: if the mantissa's top bit would be set, it would be
	// read back as negative, so bump the exponent and shift right instead.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	return exponent<<24 | mantissa
}

// Valid reports whether a decoded target satisfies the consensus range
// check: not negative, not zero, not overflowed, and at most powLimit.
func Valid(value *big.Int, negative, overflow bool, powLimit *big.Int) bool {
	if negative || overflow || value.Sign() == 0 {
		return false
	}
	return value.Cmp(powLimit) <= 0
}
