// Package hsm abstracts the key-custody boundary: the only path by which
// key material is created, retrieved, split, reconstructed, or destroyed.
// Callers never see key material outside the span of one encrypt/decrypt,
// and must zeroize the buffer GetKeyMaterial returns on every exit path.
package hsm

import (
	"github.com/tessera-sh/tessera-core/crypto"
	"github.com/tessera-sh/tessera-core/tesseraerr"
)

// Handle opaquely identifies a key held by a Provider. Callers persist only
// the handle and the key ID; no caller can derive key material from a
// Handle without calling GetKeyMaterial.
type Handle string

// Provider is the capability set C3 names: generate, retrieve, split,
// reconstruct, and destroy key material without ever handing out anything
// but opaque handles and on-demand copies of the material itself.
type Provider interface {
	// GenerateKey creates a new 32-byte AES-256 key and returns its handle
	// and key ID.
	GenerateKey() (Handle, string, *tesseraerr.Error)

	// GetKeyMaterial returns a freshly copied 32-byte buffer for handle.
	// The caller must zero it after use.
	GetKeyMaterial(handle Handle) ([]byte, *tesseraerr.Error)

	// DestroyKey overwrites the key's material with zero and makes the
	// handle unusable: GetKeyMaterial fails for it afterwards. Idempotent:
	// destroying an already-destroyed or unknown handle succeeds.
	DestroyKey(handle Handle) *tesseraerr.Error

	// SplitKeyToShares splits the key at handle into n Shamir shares such
	// that any m reconstruct it, one share per holder in holderIDs.
	SplitKeyToShares(handle Handle, m, n int, holderIDs []string) ([]ShareRecord, *tesseraerr.Error)

	// ReconstructKeyFromShares recovers key material from k >= m shares.
	// The returned buffer must be zeroed by the caller after use.
	ReconstructKeyFromShares(shares []crypto.ShamirShare, m int) ([]byte, *tesseraerr.Error)
}

// ShareRecord is the metadata persisted for one Shamir share: everything
// needed to track custody without retaining the share value itself once
// distributed.
type ShareRecord struct {
	KeyID       string
	HolderID    string
	Index       byte
	Value       []byte
	Distributed bool
}
