// Package authz implements C6, the authorization provider abstraction. The
// reconstruction engine calls Provider.Authorize without branching on which
// concrete provider a tenant has configured.
package authz

import "context"

// AccessType is the kind of access a Request is asking for.
type AccessType string

const (
	AccessReconstruct AccessType = "reconstruct"
	AccessExport      AccessType = "export"
)

// DenialReason explains why a Request was refused.
type DenialReason string

const (
	DenialNoGrant            DenialReason = "no_grant"
	DenialExpired            DenialReason = "expired"
	DenialRevoked            DenialReason = "revoked"
	DenialLevelInactive      DenialReason = "level_inactive"
	DenialProofFailed        DenialReason = "proof_failed"
	DenialProviderUnavailable DenialReason = "provider_unavailable"
)

// Request is what the reconstruction engine submits to a Provider.
type Request struct {
	UserID         string
	DocumentID     string
	AccessLevelID  string
	OrganizationID string
	AccessType     AccessType
}

// ContentSetRef identifies one content set a grant authorizes access to.
type ContentSetRef struct {
	ContentSetID   string
	SetIdentifier  string
	StorageRef     string
	EncryptedHash  string
}

// Result is a Provider's answer to a Request.
type Result struct {
	Granted        bool
	ContentSetRefs []ContentSetRef
	Provider       string
	DenialReason   DenialReason
	AuditMetadata  map[string]any
}

// Provider is C6's interface: resolve a Request to a Result. A Provider
// implementation owns its own storage or transport; the core only calls
// Authorize.
type Provider interface {
	Authorize(ctx context.Context, req Request) (Result, error)
}
