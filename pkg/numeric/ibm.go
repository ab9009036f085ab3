// Package numeric implements the IBM System/360 base-16 hexadecimal
// floating point codec used by every NUMERIC slot in an XPORT stream,
// including the 28 missing-value sentinel patterns that are
// bit-indistinguishable from small positive numbers in the same
// 8-byte slot.
package numeric

import (
	"fmt"
	"math"

	"github.com/go-xport/xport-kit/pkg/model"
)

// fractionBits is the width of the IBM-360 double's fraction field:
// 14 hex digits, 4 bits each.
const fractionBits = 56

// DecodeDouble interprets b as an XPORT NUMERIC slot. Exactly one of
// the three results is meaningful: if isMissing is true, b held a
// missing-value sentinel and value is zero; otherwise value holds the
// decoded float64, unless err is non-nil because b's bit pattern is
// not a value SAS would ever have written.
func DecodeDouble(b [8]byte) (value float64, missing model.MissingValue, isMissing bool, err error) {
	if isAllZero(b) {
		return 0, 0, false, nil
	}

	var fraction uint64
	for _, x := range b[1:] {
		fraction = fraction<<8 | uint64(x)
	}

	// A zero fraction only ever means a missing-value sentinel in slot
	// 0: a real encoded number's fraction is never zero (EncodeDouble
	// only produces a zero fraction for v == 0, which isAllZero above
	// already handles). Check the sentinel here, before interpreting
	// slot 0 as a sign/exponent byte, so a real number whose exponent
	// byte happens to equal a sentinel (e.g. 'A') is never misread as
	// missing: that only happens when the fraction actually is zero.
	if fraction == 0 {
		if model.IsMissingValue(b[0]) {
			return 0, model.ParseMissingValue(b[0]), true, nil
		}
		return 0, 0, false, fmt.Errorf("numeric: byte 0 %#x is not a missing-value sentinel and the fraction is zero", b[0])
	}

	sign := b[0]&0x80 != 0
	exponent := int(b[0]&0x7F) - 64

	// value = (fraction / 2^56) * 16^exponent = fraction * 2^(4*exponent - 56)
	value = math.Ldexp(float64(fraction), 4*exponent-fractionBits)
	if sign {
		value = -value
	}
	if math.IsInf(value, 0) {
		return 0, 0, false, fmt.Errorf("numeric: magnitude exceeds XPORT's representable range (pow(2, 248))")
	}
	return value, 0, false, nil
}

// EncodeDouble converts v to its 8-byte IBM-360 representation. v
// must be finite and within the format's dynamic range
// (roughly pow(16, -65) to pow(2, 248)); NaN and Inf have no XPORT
// encoding.
func EncodeDouble(v float64) ([8]byte, error) {
	var out [8]byte
	switch {
	case math.IsNaN(v):
		return out, fmt.Errorf("numeric: cannot encode NaN")
	case math.IsInf(v, 0):
		return out, fmt.Errorf("numeric: cannot encode infinite value")
	case v == 0:
		if math.Signbit(v) {
			out[0] = 0x00
		}
		return out, nil
	}

	sign := math.Signbit(v)
	frac, exp2 := math.Frexp(math.Abs(v)) // v == frac * 2^exp2, frac in [0.5, 1)

	ibmExponent := int(math.Ceil(float64(exp2) / 4.0))
	shift := ibmExponent*4 - exp2 // in [0, 4): bits frac must additionally drop to normalize to base 16
	frac16 := frac * math.Pow(2, float64(-shift))

	fraction := uint64(math.Round(frac16 * float64(uint64(1)<<fractionBits)))
	if fraction == uint64(1)<<fractionBits {
		// Rounding pushed the fraction to the next power of 16.
		fraction >>= 4
		ibmExponent++
	}

	if exp2-1 > 248 || ibmExponent > 63 {
		return out, fmt.Errorf("XPORT format cannot store numbers larger than pow(2, 248)")
	}
	if ibmExponent < -64 {
		return out, fmt.Errorf("numeric: magnitude too small to represent (underflow past pow(2, -260))")
	}

	exponentByte := byte(ibmExponent + 64)
	if sign {
		exponentByte |= 0x80
	}
	out[0] = exponentByte
	for i := 7; i >= 1; i-- {
		out[i] = byte(fraction & 0xFF)
		fraction >>= 8
	}
	return out, nil
}

// EncodeMissing returns the 8-byte sentinel encoding of m: its byte
// in slot 0, zero elsewhere.
func EncodeMissing(m model.MissingValue) [8]byte {
	var out [8]byte
	out[0] = m.Byte()
	return out
}

func isAllZero(b [8]byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}

