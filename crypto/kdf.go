package crypto

import (
	"crypto/hmac"
	"crypto/sha512"
)

const hkdfHashSize = sha512.Size

// HKDFExtract implements HKDF-SHA-512's extract step: PRK = HMAC-SHA-512(salt, ikm).
func HKDFExtract(salt, ikm []byte) []byte {
	mac := hmac.New(sha512.New, salt)
	mac.Write(ikm)
	return mac.Sum(nil)
}

// HKDFExpand implements HKDF-SHA-512's expand step: iteratively compute
// T(i) = HMAC-SHA-512(prk, T(i-1) || info || i), T(0) = empty, concatenate
// and truncate to length bytes.
func HKDFExpand(prk, info []byte, length int) []byte {
	out := make([]byte, 0, length+hkdfHashSize)
	var t []byte
	counter := byte(1)
	for len(out) < length {
		mac := hmac.New(sha512.New, prk)
		mac.Write(t)
		mac.Write(info)
		mac.Write([]byte{counter})
		t = mac.Sum(nil)
		out = append(out, t...)
		counter++
	}
	return out[:length]
}

// HKDFSHA512 derives length bytes from ikm and salt/info in one call.
func HKDFSHA512(salt, ikm, info []byte, length int) []byte {
	prk := HKDFExtract(salt, ikm)
	return HKDFExpand(prk, info, length)
}
