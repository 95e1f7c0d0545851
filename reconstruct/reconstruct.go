// Package reconstruct implements C7, the reconstruction engine: the
// protocol in §4.7 that authorizes a viewer, verifies the base document and
// every authorized content set, and renders a ReconstructedView with
// unauthorized or tampered content redacted.
package reconstruct

import (
	"context"
	"sort"
	"time"

	"github.com/tessera-sh/tessera-core/anchor"
	"github.com/tessera-sh/tessera-core/audit"
	"github.com/tessera-sh/tessera-core/authz"
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

const redactionGlyph = "█"

// Request is the input to Reconstruct, per §4.7.
type Request struct {
	DocumentID     string
	ViewerID       string
	AccessLevelID  string
	OrganizationID string
}

// Block is one entry of a ReconstructedView.
type Block struct {
	MarkerID    string
	BlockID     string
	Content     string
	IsRedacted  bool
	AccessedVia string
}

// View is the ReconstructedView §4.7 outputs.
type View struct {
	Blocks             []Block
	ReconstructionHash string
}

// Engine runs the reconstruction protocol over its collaborators.
type Engine struct {
	Store   *store.Store
	HSM     hsm.Provider
	Authz   authz.Provider
	Audit   audit.Sink
	Anchor  anchor.Sink
	Profile profile.SecurityProfile
}

// Reconstruct runs §4.7's eight-step protocol.
func (e *Engine) Reconstruct(ctx context.Context, req Request) (*View, *tesseraerr.Error) {
	doc, derr := e.Store.GetDocument(req.DocumentID)
	if derr != nil {
		return nil, derr
	}
	if doc.Status != document.StatusActive {
		return nil, tesseraerr.ErrPreconditionViolation
	}

	authResult, aerr := e.Authz.Authorize(ctx, authz.Request{
		UserID:         req.ViewerID,
		DocumentID:     req.DocumentID,
		AccessLevelID:  req.AccessLevelID,
		OrganizationID: req.OrganizationID,
		AccessType:     authz.AccessReconstruct,
	})
	if aerr != nil {
		return nil, tesseraerr.ErrAuthorizationDenied.Wrap(aerr)
	}
	if !authResult.Granted {
		e.Audit.Record(audit.New(
			audit.CategoryAction, audit.EventReconstructionDenied,
			string(authResult.DenialReason), "document", req.DocumentID,
		))
		return nil, tesseraerr.ErrAuthorizationDenied.WithMsg(string(authResult.DenialReason))
	}

	authorizedSets := make(map[string]bool, len(authResult.ContentSetRefs))
	for _, ref := range authResult.ContentSetRefs {
		authorizedSets[ref.SetIdentifier] = true
	}

	base, berr := e.Store.GetBaseDocument(req.DocumentID)
	if berr != nil {
		return nil, berr
	}
	if crypto.SHA512Hex(base.Content) != base.BaseHash {
		e.Audit.Record(audit.New(
			audit.CategoryAction, audit.EventIntegrityFailure,
			"stage: base_document_hash", "document", req.DocumentID,
		))
		return nil, tesseraerr.ErrBaseDocumentTampered
	}

	markers, uerr := marker.ParseBaseRecords(base.Content)
	if uerr != nil {
		return nil, uerr
	}

	verifiedSets := make(map[string]bool)
	payloadsBySet := make(map[string]map[string]marker.PayloadRecord)

	var orderedSetIDs []string
	for setID := range authorizedSets {
		orderedSetIDs = append(orderedSetIDs, setID)
	}
	sort.Strings(orderedSetIDs)

	for _, setID := range orderedSetIDs {
		payload, ferr := e.decryptSet(req.DocumentID, setID)
		if ferr != nil {
			e.Audit.Record(audit.New(
				audit.CategoryAction, audit.EventIntegrityFailure,
				"content_set_identifier: "+setID, "document", req.DocumentID,
			))
			if e.Profile.Tier == profile.Tier2 || e.Profile.Tier == profile.Tier3 {
				return nil, ferr
			}
			continue
		}
		verifiedSets[setID] = true
		payloadsBySet[setID] = payload
	}

	width := e.Profile.MarkerWidth
	if width < 3 || width > 10 {
		width = 3
	}
	redactionMarker := repeatGlyph(width)

	blocks := make([]Block, 0, len(markers))
	for _, m := range markers {
		block := Block{MarkerID: m.MarkerID, BlockID: m.BlockID, Content: redactionMarker, IsRedacted: true}
		if resolved, via := resolveContent(m, authorizedSets, verifiedSets, payloadsBySet); resolved != nil {
			block.Content = resolved.Content
			block.IsRedacted = false
			block.AccessedVia = via
		}
		blocks = append(blocks, block)
	}

	viewBody := serializeView(blocks)
	reconstructionHash := crypto.SHA512Hex(viewBody)

	view := &View{Blocks: blocks, ReconstructionHash: reconstructionHash}

	e.persistEvent(req, orderedSetIDs, verifiedSets, reconstructionHash, base.BaseHash == crypto.SHA512Hex(base.Content))
	e.emitSuccess(ctx, req, reconstructionHash)

	return view, nil
}

// resolveContent implements §4.7 step 5: a marker is visible iff any of its
// content-set memberships is both authorized and verified, its payload
// entry exists, and its content hash still matches.
func resolveContent(m marker.BaseRecord, authorized, verified map[string]bool, payloads map[string]map[string]marker.PayloadRecord) (*marker.PayloadRecord, string) {
	setIDs := make([]string, 0, len(payloads))
	for setID := range payloads {
		setIDs = append(setIDs, setID)
	}
	sort.Strings(setIDs)
	for _, setID := range setIDs {
		p := payloads[setID]
		if !authorized[setID] || !verified[setID] {
			continue
		}
		rec, ok := p[m.MarkerID]
		if !ok {
			continue
		}
		if crypto.SHA512Hex([]byte(rec.Content)) != m.ContentHash {
			continue
		}
		recCopy := rec
		return &recCopy, setID
	}
	return nil, ""
}

func (e *Engine) decryptSet(documentID, setID string) (map[string]marker.PayloadRecord, *tesseraerr.Error) {
	cs, cerr := e.Store.GetContentSet(documentID, setID)
	if cerr != nil {
		return nil, cerr
	}
	if crypto.SHA512Hex(cs.Ciphertext) != cs.CiphertextHash {
		return nil, tesseraerr.ErrCiphertextIntegrityFailure
	}

	key, kerr := e.Store.GetActiveKey(documentID, setID)
	if kerr != nil {
		return nil, kerr
	}

	material, merr := e.HSM.GetKeyMaterial(hsm.Handle(key.HSMKeyHandle))
	if merr != nil {
		return nil, merr
	}
	defer mem.ClearBytes(material)

	envelope := &crypto.EncryptedEnvelope{
		KeyID:                cs.KeyID,
		ContentSetIdentifier: setID,
		Algorithm:            cs.Algorithm,
		IV:                   cs.IV,
		Ciphertext:           cs.Ciphertext,
		PlaintextHash:        cs.PlaintextHash,
		CiphertextHash:       cs.CiphertextHash,
		EncryptedAt:          cs.EncryptedAt,
	}
	plaintext, derr := crypto.Decrypt(envelope, material)
	if derr != nil {
		return nil, derr
	}

	records, perr := marker.ParsePayload(plaintext)
	if perr != nil {
		return nil, perr
	}
	return records, nil
}

func (e *Engine) persistEvent(req Request, authorizedSetIDs []string, verified map[string]bool, reconstructionHash string, baseOK bool) {
	var verifiedIDs, redactedIDs []string
	allPassed := baseOK
	for _, id := range authorizedSetIDs {
		if verified[id] {
			verifiedIDs = append(verifiedIDs, id)
		} else {
			redactedIDs = append(redactedIDs, id)
			allPassed = false
		}
	}

	e.Store.PutReconstructionEvent(&store.ReconstructionEvent{
		DocumentID:            req.DocumentID,
		ViewerID:              req.ViewerID,
		AuthorizedIdentifiers: authorizedSetIDs,
		VerifiedIdentifiers:   verifiedIDs,
		RedactedIdentifiers:   redactedIDs,
		MarkerWidth:           e.Profile.MarkerWidth,
		ReconstructionHash:    reconstructionHash,
		IntegrityAllPassed:    allPassed,
		CreatedAt:             time.Now(),
	})
}

func (e *Engine) emitSuccess(ctx context.Context, req Request, reconstructionHash string) {
	e.Audit.Record(audit.New(
		audit.CategoryAction, audit.EventReconstructed,
		"document reconstructed", "document", req.DocumentID,
	))

	tx := anchor.Transaction{
		DocumentID: req.DocumentID,
		EventType:  string(audit.EventReconstructed),
		Arrangement: map[string]any{
			"viewer_id": req.ViewerID,
		},
		Accrual: map[string]any{
			"reconstruction_hash": reconstructionHash,
		},
	}
	if err := e.Anchor.Submit(ctx, tx); err != nil {
		tlog.Log().Warn("anchor submission failed", "document_id", req.DocumentID, "error", err.Error())
	}
}

func repeatGlyph(n int) string {
	out := make([]byte, 0, n*len(redactionGlyph))
	for i := 0; i < n; i++ {
		out = append(out, redactionGlyph...)
	}
	return string(out)
}

func serializeView(blocks []Block) []byte {
	out := make([]byte, 0, 64*len(blocks))
	for _, b := range blocks {
		out = append(out, b.MarkerID...)
		out = append(out, '|')
		out = append(out, b.Content...)
		out = append(out, '\n')
	}
	return out
}
