// Package pattern generates and rotates Euclidean trigger patterns.
//
// A pattern is the low `length` bits of a uint16: bit i set means the
// channel fires on step i. Everything here is pure; callers own storage.
package pattern

// MaxLength is the widest pattern the ring can show.
const MaxLength = 16

// Generate spreads `pulses` hits as evenly as possible across `length`
// steps using bucket accumulation: each step adds `pulses` to a bucket,
// and a step fires whenever the bucket overflows `length`. The bucket is
// primed so the overflow lands on step 0 first. Exactly `pulses` bits
// come out set, and step 0 always fires when pulses > 0.
func Generate(pulses, length int) uint16 {
	if length < 1 {
		return 0
	}
	if pulses <= 0 {
		return 0
	}
	if pulses > length {
		pulses = length
	}

	var bits uint16
	bucket := length - pulses
	for i := 0; i < length; i++ {
		bucket += pulses
		if bucket >= length {
			bucket -= length
			bits |= 1 << i
		}
	}
	return bits
}

// RotateLeft moves every bit up one position within the low `length`
// bits; the bit at length-1 wraps around to bit 0. Bits at or above
// `length` are masked off.
func RotateLeft(bits uint16, length int) uint16 {
	if length <= 1 {
		return bits
	}
	mask := uint16(1)<<length - 1
	bits &= mask
	carry := bits >> (length - 1)
	return (bits<<1 | carry) & mask
}

// RotateRight moves every bit down one position within the low `length`
// bits; bit 0 wraps around to length-1.
func RotateRight(bits uint16, length int) uint16 {
	if length <= 1 {
		return bits
	}
	mask := uint16(1)<<length - 1
	bits &= mask
	carry := bits & 1
	return bits>>1 | carry<<(length-1)
}

// OnesCount reports how many steps of the pattern fire.
func OnesCount(bits uint16, length int) int {
	n := 0
	for i := 0; i < length; i++ {
		if bits&(1<<i) != 0 {
			n++
		}
	}
	return n
}
