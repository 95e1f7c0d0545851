// Package tessera is the transport-neutral facade over C1-C8: the entry
// points a caller (HTTP handler, RPC server, CLI) wires to without knowing
// about the engines, stores, or providers underneath.
package tessera

import (
	"context"

	"github.com/tessera-sh/tessera-core/anchor"
	"github.com/tessera-sh/tessera-core/audit"
	"github.com/tessera-sh/tessera-core/authz"
	"github.com/tessera-sh/tessera-core/config/profile"
	"github.com/tessera-sh/tessera-core/crypto"
	"github.com/tessera-sh/tessera-core/deconstruct"
	"github.com/tessera-sh/tessera-core/hsm"
	"github.com/tessera-sh/tessera-core/marker"
	"github.com/tessera-sh/tessera-core/reconstruct"
	"github.com/tessera-sh/tessera-core/rotation"
	"github.com/tessera-sh/tessera-core/store"
	"github.com/tessera-sh/tessera-core/tesseraerr"
)

// Core wires together the store and collaborators for one tenant and
// exposes the five operations named in §1: deconstruct, reconstruct,
// verify_integrity, rotate_keys, and destroy (document- or
// content-set-scoped).
type Core struct {
	Store   *store.Store
	HSM     hsm.Provider
	Authz   authz.Provider
	Audit   audit.Sink
	Anchor  anchor.Sink
	Profile profile.SecurityProfile
}

func (c *Core) deconstructEngine() *deconstruct.Engine {
	return &deconstruct.Engine{Store: c.Store, HSM: c.HSM, Audit: c.Audit, Anchor: c.Anchor, Profile: c.Profile}
}

func (c *Core) reconstructEngine() *reconstruct.Engine {
	return &reconstruct.Engine{Store: c.Store, HSM: c.HSM, Authz: c.Authz, Audit: c.Audit, Anchor: c.Anchor, Profile: c.Profile}
}

func (c *Core) rotationEngine() *rotation.Engine {
	return &rotation.Engine{Store: c.Store, HSM: c.HSM, Audit: c.Audit, Anchor: c.Anchor, Profile: c.Profile}
}

// Deconstruct runs C5 over documentID, markupSessionID, and the approved
// assignment set assignments.
func (c *Core) Deconstruct(ctx context.Context, documentID, markupSessionID string, assignments []marker.Assignment) (*deconstruct.Result, *tesseraerr.Error) {
	return c.deconstructEngine().Deconstruct(ctx, documentID, markupSessionID, assignments)
}

// Reconstruct runs C7 for viewerID against documentID.
func (c *Core) Reconstruct(ctx context.Context, documentID, viewerID, accessLevelID, organizationID string) (*reconstruct.View, *tesseraerr.Error) {
	return c.reconstructEngine().Reconstruct(ctx, reconstruct.Request{
		DocumentID:     documentID,
		ViewerID:       viewerID,
		AccessLevelID:  accessLevelID,
		OrganizationID: organizationID,
	})
}

// RotateKeys runs C8's rotation protocol for documentID.
func (c *Core) RotateKeys(ctx context.Context, documentID string) *tesseraerr.Error {
	return c.rotationEngine().Rotate(ctx, documentID)
}

// Destroy runs C8's verified-destruction protocol for documentID.
func (c *Core) Destroy(ctx context.Context, documentID string, regulatoryClearance bool) *tesseraerr.Error {
	return c.rotationEngine().Destroy(ctx, documentID, regulatoryClearance)
}

// DestroyContentSet runs C8's targeted content-set destruction for
// documentID, scoped to contentSetIdentifier.
func (c *Core) DestroyContentSet(ctx context.Context, documentID, contentSetIdentifier string, regulatoryClearance bool) *tesseraerr.Error {
	return c.rotationEngine().DestroyContentSet(ctx, documentID, contentSetIdentifier, regulatoryClearance)
}

// VerifyIntegrity independently checks the base document hash and every
// persisted content set's ciphertext hash for documentID, without
// decrypting anything or requiring authorization. It reports which
// identifiers failed, if any.
func (c *Core) VerifyIntegrity(ctx context.Context, documentID string) (*IntegrityReport, *tesseraerr.Error) {
	base, err := c.Store.GetBaseDocument(documentID)
	if err != nil {
		return nil, err
	}

	report := &IntegrityReport{
		BaseDocumentOK: crypto.SHA512Hex(base.Content) == base.BaseHash,
	}

	for _, cs := range c.Store.ListContentSets(documentID) {
		ok := crypto.SHA512Hex(cs.Ciphertext) == cs.CiphertextHash
		if ok {
			report.VerifiedIdentifiers = append(report.VerifiedIdentifiers, cs.ContentSetIdentifier)
		} else {
			report.FailedIdentifiers = append(report.FailedIdentifiers, cs.ContentSetIdentifier)
		}
	}

	return report, nil
}

// IntegrityReport is VerifyIntegrity's result.
type IntegrityReport struct {
	BaseDocumentOK      bool
	VerifiedIdentifiers []string
	FailedIdentifiers   []string
}
