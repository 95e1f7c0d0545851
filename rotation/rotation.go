// Package rotation implements C8, key rotation and destruction: re-keying
// every active content set without disturbing visible content, and
// irreversibly erasing a document or a single content set once retention
// and legal-hold preconditions clear.
package rotation

import (
	"context"
	"time"

	"github.com/tessera-sh/tessera-core/anchor"
	"github.com/tessera-sh/tessera-core/audit"
	"github.com/tessera-sh/tessera-core/config/profile"
	"github.com/tessera-sh/tessera-core/crypto"
	"github.com/tessera-sh/tessera-core/document"
	"github.com/tessera-sh/tessera-core/hsm"
	"github.com/tessera-sh/tessera-core/security/mem"
	"github.com/tessera-sh/tessera-core/store"
	"github.com/tessera-sh/tessera-core/tesseraerr"
	"github.com/tessera-sh/tessera-core/tlog"
)

// Engine runs key rotation and destruction over its collaborators.
type Engine struct {
	Store   *store.Store
	HSM     hsm.Provider
	Audit   audit.Sink
	Anchor  anchor.Sink
	Profile profile.SecurityProfile
}

// Rotate re-keys every active content set of documentID under a single
// document-lock hold, per §4.8. Reconstruction after rotation sees
// identical plaintext because Decrypt/Encrypt preserves PlaintextHash.
func (e *Engine) Rotate(ctx context.Context, documentID string) *tesseraerr.Error {
	lock := e.Store.DocumentLock(documentID)
	lock.Lock()
	defer lock.Unlock()

	doc, err := e.Store.GetDocument(documentID)
	if err != nil {
		return err
	}
	if doc.Status != document.StatusActive {
		return tesseraerr.ErrPreconditionViolation
	}

	keys := e.Store.ListKeysForDocument(documentID)
	var rotatedSetIDs []string
	var newKeyIDs []string

	for _, oldKey := range keys {
		if !oldKey.IsActive {
			continue
		}
		if rerr := e.rotateOne(documentID, oldKey); rerr != nil {
			return rerr
		}
		rotatedSetIDs = append(rotatedSetIDs, oldKey.ContentSetIdentifier)
		if newKey, nerr := e.Store.GetActiveKey(documentID, oldKey.ContentSetIdentifier); nerr == nil {
			newKeyIDs = append(newKeyIDs, newKey.KeyID)
		}
	}

	if len(rotatedSetIDs) == 0 {
		return tesseraerr.ErrPreconditionViolation
	}

	e.Audit.Record(audit.New(
		audit.CategoryAction, audit.EventKeysRotated,
		"keys rotated", "document", documentID,
	))

	tx := anchor.Transaction{
		DocumentID: documentID,
		EventType:  string(audit.EventKeysRotated),
		Arrangement: map[string]any{
			"content_set_identifiers": rotatedSetIDs,
		},
		Accrual: map[string]any{
			"new_key_ids": newKeyIDs,
		},
	}
	if aerr := e.Anchor.Submit(ctx, tx); aerr != nil {
		tlog.Log().Warn("anchor submission failed", "document_id", documentID, "error", aerr.Error())
	}

	return nil
}

func (e *Engine) rotateOne(documentID string, oldKey *store.EncryptionKey) *tesseraerr.Error {
	cs, err := e.Store.GetContentSet(documentID, oldKey.ContentSetIdentifier)
	if err != nil {
		return err
	}

	oldHandle := hsm.Handle(oldKey.HSMKeyHandle)
	oldMaterial, err := e.HSM.GetKeyMaterial(oldHandle)
	if err != nil {
		return err
	}
	defer mem.ClearBytes(oldMaterial)

	newHandle, newKeyID, err := e.HSM.GenerateKey()
	if err != nil {
		return err
	}
	newMaterial, err := e.HSM.GetKeyMaterial(newHandle)
	if err != nil {
		return err
	}
	defer mem.ClearBytes(newMaterial)

	oldEnvelope := &crypto.EncryptedEnvelope{
		KeyID:                cs.KeyID,
		ContentSetIdentifier: cs.ContentSetIdentifier,
		Algorithm:            cs.Algorithm,
		IV:                   cs.IV,
		Ciphertext:           cs.Ciphertext,
		PlaintextHash:        cs.PlaintextHash,
		CiphertextHash:       cs.CiphertextHash,
		EncryptedAt:          cs.EncryptedAt,
	}

	newEnvelope, rerr := crypto.ReEncrypt(oldEnvelope, oldMaterial, newMaterial, newKeyID)
	if rerr != nil {
		return rerr
	}

	now := time.Now()
	oldKey.RotatedAt = &now
	e.Store.DeactivateKey(oldKey)

	e.Store.PutKey(&store.EncryptionKey{
		KeyID:                newKeyID,
		DocumentID:           documentID,
		ContentSetIdentifier: oldKey.ContentSetIdentifier,
		HSMKeyHandle:         string(newHandle),
		M:                    oldKey.M,
		N:                    oldKey.N,
		IsActive:             true,
		RotatedFromKeyID:     oldKey.KeyID,
		CreatedAt:            now,
	})

	cs.KeyID = newKeyID
	cs.Algorithm = newEnvelope.Algorithm
	cs.IV = newEnvelope.IV
	cs.Ciphertext = newEnvelope.Ciphertext
	cs.CiphertextHash = newEnvelope.CiphertextHash
	cs.PlaintextHash = newEnvelope.PlaintextHash
	cs.EncryptedAt = newEnvelope.EncryptedAt
	e.Store.PutContentSet(cs)

	return nil
}

// Destroy runs §4.8's verified-destruction protocol: no legal hold,
// retention elapsed, caller-supplied regulatory clearance. Terminal.
func (e *Engine) Destroy(ctx context.Context, documentID string, regulatoryClearance bool) *tesseraerr.Error {
	lock := e.Store.DocumentLock(documentID)
	lock.Lock()
	defer lock.Unlock()

	doc, err := e.Store.GetDocument(documentID)
	if err != nil {
		return err
	}
	if doc.LegalHold {
		return tesseraerr.ErrLegalHold
	}
	if !doc.RetentionUntil.IsZero() && time.Now().Before(doc.RetentionUntil) {
		return tesseraerr.ErrRetentionNotMet
	}
	if !regulatoryClearance {
		return tesseraerr.ErrDestructionNotAuthorized
	}

	if terr := document.Transition(doc, document.StatusDestroying); terr != nil {
		return terr
	}
	e.Store.PutDocument(doc)

	for _, k := range e.Store.ListKeysForDocument(documentID) {
		if derr := e.HSM.DestroyKey(hsm.Handle(k.HSMKeyHandle)); derr != nil {
			tlog.Log().Warn("hsm destroy_key failed", "key_id", k.KeyID, "error", derr.Error())
		}
		now := time.Now()
		e.Store.DeactivateKey(k)
		k.DestroyedAt = &now
		e.Store.PutKey(k)
	}

	e.Store.DeleteSharesForDocument(documentID)
	e.Store.DeleteAllContentSets(documentID)
	e.Store.DeleteBaseDocument(documentID)

	if terr := document.Transition(doc, document.StatusDestroyed); terr != nil {
		return terr
	}
	e.Store.PutDocument(doc)

	e.Audit.Record(audit.New(
		audit.CategoryAction, audit.EventDestroyed,
		"document destroyed", "document", documentID,
	))

	tx := anchor.Transaction{
		DocumentID:  documentID,
		EventType:   string(audit.EventDestroyed),
		Arrangement: map[string]any{"regulatory_clearance": regulatoryClearance},
		Accrual:     map[string]any{},
	}
	if aerr := e.Anchor.Submit(ctx, tx); aerr != nil {
		tlog.Log().Warn("anchor submission failed", "document_id", documentID, "error", aerr.Error())
	}

	return nil
}

// DestroyContentSet runs the right-to-erasure variant of §4.8 scoped to one
// content-set identifier: the document's other sets remain reconstructible.
func (e *Engine) DestroyContentSet(ctx context.Context, documentID, setIdentifier string, regulatoryClearance bool) *tesseraerr.Error {
	lock := e.Store.DocumentLock(documentID)
	lock.Lock()
	defer lock.Unlock()

	doc, err := e.Store.GetDocument(documentID)
	if err != nil {
		return err
	}
	if doc.LegalHold {
		return tesseraerr.ErrLegalHold
	}
	if !doc.RetentionUntil.IsZero() && time.Now().Before(doc.RetentionUntil) {
		return tesseraerr.ErrRetentionNotMet
	}
	if !regulatoryClearance {
		return tesseraerr.ErrDestructionNotAuthorized
	}

	if _, cerr := e.Store.GetContentSet(documentID, setIdentifier); cerr != nil {
		return cerr
	}

	key, kerr := e.Store.GetActiveKey(documentID, setIdentifier)
	if kerr == nil {
		if derr := e.HSM.DestroyKey(hsm.Handle(key.HSMKeyHandle)); derr != nil {
			tlog.Log().Warn("hsm destroy_key failed", "key_id", key.KeyID, "error", derr.Error())
		}
		now := time.Now()
		e.Store.DeactivateKey(key)
		key.DestroyedAt = &now
		e.Store.PutKey(key)
	}

	e.Store.DeleteContentSet(documentID, setIdentifier)

	e.Audit.Record(audit.New(
		audit.CategoryAction, audit.EventContentSetDestroyed,
		"content set destroyed: "+setIdentifier, "document", documentID,
	))

	tx := anchor.Transaction{
		DocumentID:  documentID,
		EventType:   string(audit.EventContentSetDestroyed),
		Arrangement: map[string]any{"content_set_identifier": setIdentifier},
		Accrual:     map[string]any{},
	}
	if aerr := e.Anchor.Submit(ctx, tx); aerr != nil {
		tlog.Log().Warn("anchor submission failed", "document_id", documentID, "error", aerr.Error())
	}

	return nil
}
