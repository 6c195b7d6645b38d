package runtime

import "math"

// 16-bit floating point codec: 1 sign bit, 5 exponent bits (bias 15),
// 10 mantissa bits.

// EncodeHalf converts a float32 to its half-precision bit pattern.
// Values below the subnormal range flush to signed zero; values above the
// representable range encode as signed infinity; NaN keeps a nonzero mantissa.
func EncodeHalf(f float32) uint16 {
	x := math.Float32bits(f)
	sign := uint16((x >> 16) & 0x8000)
	exponent := int32((x>>23)&0xFF) - 127 + 15
	mantissa := x & 0x007FFFFF

	if exponent <= 0 {
		if exponent < -10 {
			return sign // too small, becomes zero
		}
		mantissa |= 0x00800000 // restore the implicit leading 1
		mantissa >>= uint32(1 - exponent)
		return sign | uint16(mantissa>>13)
	}
	if exponent >= 31 {
		// Only a real NaN keeps its payload; every finite value that lands
		// here saturates to signed infinity.
		if x&0x7FFFFFFF > 0x7F800000 {
			payload := uint16(mantissa >> 13)
			if payload == 0 {
				payload = 0x200
			}
			return sign | 0x7C00 | payload
		}
		return sign | 0x7C00
	}

	return sign | uint16(exponent)<<10 | uint16(mantissa>>13)
}

// DecodeHalf converts a half-precision bit pattern back to float32.
// Subnormal halves are renormalized by shifting the mantissa left while
// decrementing the exponent; the exponent re-biases from 15 to 127.
func DecodeHalf(h uint16) float32 {
	sign := (uint32(h) & 0x8000) << 16
	exponent := int32(h>>10) & 0x1F
	mantissa := uint32(h) & 0x3FF

	if exponent == 0 {
		if mantissa == 0 {
			return math.Float32frombits(sign) // signed zero
		}
		exponent = 1
		for mantissa&0x400 == 0 {
			mantissa <<= 1
			exponent--
		}
		mantissa &= 0x3FF
		exponent += 127 - 15
		return math.Float32frombits(sign | uint32(exponent)<<23 | mantissa<<13)
	}
	if exponent == 31 {
		return math.Float32frombits(sign | 0x7F800000 | mantissa<<13) // inf or NaN
	}

	exponent += 127 - 15
	return math.Float32frombits(sign | uint32(exponent)<<23 | mantissa<<13)
}
