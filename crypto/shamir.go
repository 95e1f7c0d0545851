package crypto

import (
	"github.com/tessera-sh/tessera-core/tesseraerr"
)

// ShamirShare is one share of a byte-wise Shamir split: a 1-based evaluation
// point and the polynomial's value at that point for every byte of the
// secret.
type ShamirShare struct {
	Index byte
	Value []byte
}

// ShamirSplit splits secret into n shares such that any m of them
// reconstruct it exactly, per the GF(256) polynomial scheme of C1: for each
// byte position, sample m-1 random coefficients, build
// p(x) = S[i] + c1*x + ... + c_{m-1}*x^{m-1}, and evaluate at x = 1..n via
// Horner's rule.
func ShamirSplit(secret []byte, m, n int) ([]ShamirShare, *tesseraerr.Error) {
	if len(secret) == 0 {
		return nil, tesseraerr.ErrEmptySecret
	}
	if m < 2 || n < m || n > 254 {
		return nil, tesseraerr.ErrInvalidShamirParameters
	}

	coeffs := make([][]byte, len(secret))
	for i := range secret {
		c := make([]byte, m-1)
		if len(c) > 0 {
			if _, err := reader(c); err != nil {
				return nil, tesseraerr.ErrRngFailure.Wrap(err)
			}
		}
		coeffs[i] = c
	}

	shares := make([]ShamirShare, n)
	for k := 1; k <= n; k++ {
		x := byte(k)
		value := make([]byte, len(secret))
		for i, s0 := range secret {
			value[i] = evalPoly(s0, coeffs[i], x)
		}
		shares[k-1] = ShamirShare{Index: x, Value: value}
	}
	return shares, nil
}

// evalPoly evaluates p(x) = s0 + c[0]*x + c[1]*x^2 + ... via Horner's rule,
// working from the highest-degree coefficient down to s0.
func evalPoly(s0 byte, c []byte, x byte) byte {
	result := byte(0)
	for i := len(c) - 1; i >= 0; i-- {
		result = gfAdd(gfMul(result, x), c[i])
	}
	return gfAdd(gfMul(result, x), s0)
}

// ShamirReconstruct recovers the secret from k >= m distinct shares via
// Lagrange interpolation at x = 0, evaluated independently for every byte
// position.
func ShamirReconstruct(shares []ShamirShare, m int) ([]byte, *tesseraerr.Error) {
	if len(shares) < m {
		return nil, tesseraerr.ErrInsufficientShares
	}

	seen := make(map[byte]bool, len(shares))
	length := -1
	for _, s := range shares {
		if seen[s.Index] {
			return nil, tesseraerr.ErrDuplicateShareIndices
		}
		seen[s.Index] = true
		if length == -1 {
			length = len(s.Value)
		} else if len(s.Value) != length {
			return nil, tesseraerr.ErrInconsistentShareLength
		}
	}
	if length <= 0 {
		return nil, tesseraerr.ErrInconsistentShareLength
	}

	secret := make([]byte, length)
	for i := 0; i < length; i++ {
		var acc byte
		for j, sj := range shares {
			num := byte(1)
			den := byte(1)
			for k, sk := range shares {
				if k == j {
					continue
				}
				num = gfMul(num, sk.Index)
				den = gfMul(den, gfAdd(sj.Index, sk.Index))
			}
			term := gfMul(sj.Value[i], gfDiv(num, den))
			acc = gfAdd(acc, term)
		}
		secret[i] = acc
	}
	return secret, nil
}
