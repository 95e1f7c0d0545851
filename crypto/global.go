package crypto

import "crypto/rand"

// GCMNonceSize is the standard nonce size for AES-GCM as recommended by
// NIST SP 800-38D (96 bits). Go's cipher.NewGCM() uses this size by default.
const GCMNonceSize = 12

// AES256KeySize is the key size in bytes for AES-256.
const AES256KeySize = 32

// reader is the source of cryptographic randomness for this package. Tests
// swap it for a deterministic function to make coefficient sampling, nonce
// generation, and key derivation reproducible.
var reader = rand.Read
