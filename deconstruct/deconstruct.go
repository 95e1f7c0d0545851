// Package deconstruct implements C5, the deconstruction engine: the
// protocol in §4.5 that turns an approved assignment set into a base
// document plus one encrypted content set per content-set identifier,
// driving the document through approved -> deconstructing -> active (or
// back to approved on rollback).
package deconstruct

import (
	"context"
	"sort"
	"time"

	"github.com/tessera-sh/tessera-core/anchor"
	"github.com/tessera-sh/tessera-core/audit"
	"github.com/tessera-sh/tessera-core/config/profile"
	"github.com/tessera-sh/tessera-core/crypto"
	"github.com/tessera-sh/tessera-core/document"
	"github.com/tessera-sh/tessera-core/hsm"
	"github.com/tessera-sh/tessera-core/marker"
	"github.com/tessera-sh/tessera-core/security/mem"
	"github.com/tessera-sh/tessera-core/store"
	"github.com/tessera-sh/tessera-core/tesseraerr"
	"github.com/tessera-sh/tessera-core/tlog"
)

// Engine runs the deconstruction protocol over its collaborators. Every
// field is a documented collaborator from §1/§6; no field is optional.
type Engine struct {
	Store   *store.Store
	HSM     hsm.Provider
	Audit   audit.Sink
	Anchor  anchor.Sink
	Profile profile.SecurityProfile
}

// Result is what a successful Deconstruct returns: the committed base hash
// and the content-set identifiers now active.
type Result struct {
	BaseHash string
	SetIDs   []string
	KeyIDs   []string
}

// Deconstruct runs §4.5's eight-step protocol for documentID over
// assignments, the approved assignment set the markup engine collaborator
// supplied. markupSessionID is recorded only in the anchor transaction's
// arrangement; its approval is
// assumed already verified by the caller per the precondition.
func (e *Engine) Deconstruct(ctx context.Context, documentID, markupSessionID string, assignments []marker.Assignment) (*Result, *tesseraerr.Error) {
	lock := e.Store.DocumentLock(documentID)
	lock.Lock()
	defer lock.Unlock()

	doc, err := e.Store.GetDocument(documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != document.StatusApproved {
		return nil, tesseraerr.ErrPreconditionViolation
	}

	if terr := document.Transition(doc, document.StatusDeconstructing); terr != nil {
		return nil, terr
	}
	e.Store.PutDocument(doc)

	result, derr := e.run(documentID, assignments)
	if derr != nil {
		doc.Status = document.StatusApproved
		e.Store.PutDocument(doc)
		return nil, derr
	}

	if terr := document.Transition(doc, document.StatusActive); terr != nil {
		doc.Status = document.StatusApproved
		e.Store.PutDocument(doc)
		return nil, terr
	}
	e.Store.PutDocument(doc)

	e.emitSuccess(ctx, doc, markupSessionID, result)
	return result, nil
}

func (e *Engine) run(documentID string, assignments []marker.Assignment) (*Result, *tesseraerr.Error) {
	if len(assignments) == 0 {
		return nil, tesseraerr.ErrEmptyAssignmentSet
	}

	markers, payloads := marker.Build(assignments)

	baseBody, serr := marker.SerializeBase(markers)
	if serr != nil {
		return nil, serr
	}
	baseHash := crypto.SHA512Hex(baseBody)

	setIDs := make([]string, 0, len(payloads))
	for id := range payloads {
		setIDs = append(setIDs, id)
	}
	sort.Strings(setIDs)

	keyIDs := make([]string, 0, len(setIDs))

	for _, setID := range setIDs {
		keyID, kerr := e.deconstructSet(documentID, setID, payloads[setID])
		if kerr != nil {
			return nil, kerr
		}
		keyIDs = append(keyIDs, keyID)
	}

	e.Store.PutBaseDocument(&store.BaseDocument{
		DocumentID: documentID,
		Content:    baseBody,
		BaseHash:   baseHash,
		CreatedAt:  time.Now(),
	})

	return &Result{BaseHash: baseHash, SetIDs: setIDs, KeyIDs: keyIDs}, nil
}

// deconstructSet runs step 5's (a)-(g) sub-protocol for one content-set
// identifier, returning the new key's ID.
func (e *Engine) deconstructSet(documentID, setID string, records []marker.PayloadRecord) (string, *tesseraerr.Error) {
	handle, keyID, err := e.HSM.GenerateKey()
	if err != nil {
		return "", err
	}

	material, err := e.HSM.GetKeyMaterial(handle)
	if err != nil {
		return "", err
	}
	defer mem.ClearBytes(material)

	payload, serr := marker.SerializePayload(records)
	if serr != nil {
		return "", serr
	}

	envelope, eerr := crypto.Encrypt(payload, material, keyID, setID)
	if eerr != nil {
		return "", eerr
	}

	e.Store.PutKey(&store.EncryptionKey{
		KeyID:                keyID,
		DocumentID:           documentID,
		ContentSetIdentifier: setID,
		HSMKeyHandle:         string(handle),
		M:                    e.Profile.M,
		N:                    e.Profile.N,
		IsActive:             true,
		CreatedAt:            time.Now(),
	})

	shares, serr2 := e.HSM.SplitKeyToShares(handle, e.Profile.M, e.Profile.N, e.Profile.HolderIDs)
	if serr2 != nil {
		return "", serr2
	}

	keyShares := make([]*store.KeyShare, len(shares))
	for i, sh := range shares {
		keyShares[i] = &store.KeyShare{
			KeyID:       keyID,
			DocumentID:  documentID,
			HolderID:    sh.HolderID,
			Index:       sh.Index,
			Value:       sh.Value,
			Distributed: false,
		}
	}
	e.Store.PutShares(keyID, keyShares)

	e.Store.PutContentSet(&store.EncryptedContentSet{
		DocumentID:           documentID,
		ContentSetIdentifier: setID,
		KeyID:                keyID,
		Algorithm:            envelope.Algorithm,
		IV:                   envelope.IV,
		Ciphertext:           envelope.Ciphertext,
		PlaintextHash:        envelope.PlaintextHash,
		CiphertextHash:       envelope.CiphertextHash,
		StorageRef:           storageRef(documentID, setID),
		StorageTier:          string(e.Profile.StorageTier),
		EncryptedAt:          envelope.EncryptedAt,
	})

	return keyID, nil
}

func storageRef(documentID, setID string) string {
	return documentID + "/" + setID
}

func (e *Engine) emitSuccess(ctx context.Context, doc *document.Document, markupSessionID string, result *Result) {
	e.Audit.Record(audit.New(
		audit.CategoryAction,
		audit.EventDeconstructed,
		"document deconstructed",
		"document",
		doc.DocumentID,
	))

	tx := anchor.Transaction{
		DocumentID: doc.DocumentID,
		EventType:  string(audit.EventDeconstructed),
		Arrangement: map[string]any{
			"content_set_identifiers": result.SetIDs,
			"content_set_count":       len(result.SetIDs),
			"storage_tier":            string(e.Profile.StorageTier),
			"m":                       e.Profile.M,
			"n":                       e.Profile.N,
			"markup_session_id":       markupSessionID,
		},
		Accrual: map[string]any{
			"base_hash": result.BaseHash,
			"key_ids":   result.KeyIDs,
		},
	}
	if err := e.Anchor.Submit(ctx, tx); err != nil {
		tlog.Log().Warn("anchor submission failed", "document_id", doc.DocumentID, "error", err.Error())
	}
}
