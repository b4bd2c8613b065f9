// Package twiddle maps 2-D texel coordinates to the bit-interleaved (Morton)
// storage order used by twiddled PVR textures.
package twiddle

// Spread moves bit i of n to bit 2i of the result, leaving odd bits clear.
func Spread(n uint32) uint32 {
	var out uint32
	bit := uint32(1)
	for n != 0 {
		if n&1 != 0 {
			out |= bit
		}
		n >>= 1
		bit <<= 2
	}
	return out
}

// Interleave returns the linear storage index of texel (x, y) in a square
// twiddled layout. X occupies the odd bits, Y the even bits.
func Interleave(x, y uint32) uint32 {
	return Spread(x)<<1 | Spread(y)
}
