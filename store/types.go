// Package store models the persisted-state layout of §6: documents,
// encryption_keys, key_shares, encrypted_content_sets, base_documents, and
// reconstruction_events, plus the row-level document lock the deconstruction
// and rotation engines require. It is grounded on the teacher's kv package:
// a mutex-guarded in-memory map, generalized from kv's single
// path-to-versioned-secret table into one table per persisted entity.
package store

import (
	"time"

	"github.com/tessera-sh/tessera-core/document"
)

// EncryptionKey is one row of the encryption_keys table. At most one row per
// (DocumentID, ContentSetIdentifier) has IsActive = true.
type EncryptionKey struct {
	KeyID                string
	DocumentID           string
	ContentSetIdentifier string
	HSMKeyHandle         string
	M, N                 int
	IsActive             bool
	RotatedFromKeyID     string
	RotatedAt            *time.Time
	DestroyedAt          *time.Time
	CreatedAt            time.Time
}

// KeyShare is one row of the key_shares table: custody metadata for a
// single Shamir share. The share value itself is retained only until
// distributed, per the spec's share-custody model.
type KeyShare struct {
	KeyID       string
	DocumentID  string
	HolderID    string
	Index       byte
	Value       []byte
	Distributed bool
}

// EncryptedContentSet is one row of the encrypted_content_sets table.
// Unique per (DocumentID, ContentSetIdentifier).
type EncryptedContentSet struct {
	DocumentID           string
	ContentSetIdentifier string
	KeyID                string
	Algorithm            string
	IV                   []byte
	Ciphertext           []byte
	PlaintextHash        string
	CiphertextHash       string
	StorageRef           string
	StorageTier          string
	EncryptedAt          time.Time
}

// BaseDocument is one row of the base_documents table: the canonical marker
// listing with no content-set membership, plus its integrity hash.
type BaseDocument struct {
	DocumentID string
	Content    []byte
	BaseHash   string
	CreatedAt  time.Time
}

// ReconstructionEvent is one row of the reconstruction_events table,
// persisted at the end of C7's protocol.
type ReconstructionEvent struct {
	DocumentID             string
	ViewerID               string
	AuthorizedIdentifiers  []string
	VerifiedIdentifiers    []string
	RedactedIdentifiers    []string
	MarkerWidth            int
	ReconstructionHash     string
	IntegrityAllPassed     bool
	CreatedAt              time.Time
}
