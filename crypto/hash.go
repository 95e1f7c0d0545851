package crypto

import (
	"crypto/sha512"
	"encoding/hex"
)

// SHA512Hex returns the lowercase 128-hex-character SHA-512 digest of data,
// the hash form used for base_hash, plaintext_hash, ciphertext_hash, and
// marker content_hash throughout the core.
func SHA512Hex(data []byte) string {
	sum := sha512.Sum512(data)
	return hex.EncodeToString(sum[:])
}
