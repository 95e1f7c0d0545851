// Package crypto provides the cryptographic primitives the core builds on:
// GF(256) finite-field arithmetic and byte-wise Shamir secret sharing,
// AES-256-GCM authenticated encryption, SHA-512 hashing, and HKDF-SHA-512
// key derivation. All random generation goes through a package-level reader
// variable so tests can substitute a deterministic source.
package crypto
