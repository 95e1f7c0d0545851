package crypto

// Field arithmetic over GF(2^8) with the AES irreducible polynomial
// x^8 + x^4 + x^3 + x + 1 (0x11B). Shared by shamir.go for the polynomial
// evaluation and Lagrange interpolation that C1 requires.
//
// The exp/log table lookups are data-dependent and not constant-time; this
// is accepted for a storage/database adversary, not a side-channel one.

var gfExp [256]byte
var gfLog [256]byte

// xtime multiplies x by 2 in GF(256) under the AES reduction polynomial.
func xtime(x byte) byte {
	hi := x & 0x80
	x <<= 1
	if hi != 0 {
		x ^= 0x1B
	}
	return x
}

// init builds the exp/log tables by walking the powers of 3, the smallest
// primitive element of this field. 2 is not a generator here (its
// multiplicative order is 51, not 255), so x <<= 1 alone would only ever
// reach 51 of the 255 nonzero elements and leave gfLog undefined everywhere
// else. x*3 = x*2 XOR x, i.e. xtime(x) XOR x, which does cycle through all
// 255 nonzero elements.
func init() {
	x := byte(1)
	for i := 0; i < 255; i++ {
		gfExp[i] = x
		gfLog[x] = byte(i)
		x ^= xtime(x)
	}
	gfExp[255] = gfExp[0]
}

// gfAdd is addition in GF(256), equivalent to XOR.
func gfAdd(a, b byte) byte {
	return a ^ b
}

// gfMul multiplies two GF(256) elements via the log/exp tables.
func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	sum := int(gfLog[a]) + int(gfLog[b])
	if sum >= 255 {
		sum -= 255
	}
	return gfExp[sum]
}

// gfDiv divides a by b in GF(256). b must be non-zero.
func gfDiv(a, b byte) byte {
	if a == 0 {
		return 0
	}
	diff := int(gfLog[a]) - int(gfLog[b])
	if diff < 0 {
		diff += 255
	}
	return gfExp[diff]
}

// gfPow raises x to a non-negative integer power in GF(256).
func gfPow(x byte, n int) byte {
	if n == 0 {
		return 1
	}
	if x == 0 {
		return 0
	}
	e := (int(gfLog[x]) * n) % 255
	if e < 0 {
		e += 255
	}
	return gfExp[e]
}
