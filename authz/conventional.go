package authz

import (
	"context"
	"time"
)

// Grant is one row of the conventional grants table: an active,
// non-revoked, non-expired grant for one (UserID, DocumentID,
// AccessLevelID, OrganizationID) tuple.
type Grant struct {
	UserID         string
	DocumentID     string
	AccessLevelID  string
	OrganizationID string
	Revoked        bool
	ExpiresAt      *time.Time
}

// AccessLevel resolves to the non-hierarchical union of content-set
// identifiers it grants.
type AccessLevel struct {
	AccessLevelID string
	Active        bool
	ContentSets   []ContentSetRef
}

// ConventionalProvider is the default C6 implementation: consult a grants
// table, resolve the matching access level to its content-set identifiers.
type ConventionalProvider struct {
	Grants       []Grant
	AccessLevels map[string]AccessLevel
}

// NewConventionalProvider returns a ConventionalProvider over the given
// grants and access levels, keyed by AccessLevelID.
func NewConventionalProvider(grants []Grant, accessLevels map[string]AccessLevel) *ConventionalProvider {
	return &ConventionalProvider{Grants: grants, AccessLevels: accessLevels}
}

func (p *ConventionalProvider) Authorize(_ context.Context, req Request) (Result, error) {
	level, ok := p.AccessLevels[req.AccessLevelID]
	if !ok || !level.Active {
		return denied(DenialLevelInactive), nil
	}

	for _, g := range p.Grants {
		if g.UserID != req.UserID || g.DocumentID != req.DocumentID ||
			g.AccessLevelID != req.AccessLevelID || g.OrganizationID != req.OrganizationID {
			continue
		}
		if g.Revoked {
			return denied(DenialRevoked), nil
		}
		if g.ExpiresAt != nil && g.ExpiresAt.Before(time.Now()) {
			return denied(DenialExpired), nil
		}
		return Result{
			Granted:        true,
			ContentSetRefs: level.ContentSets,
			Provider:       "conventional",
		}, nil
	}

	return denied(DenialNoGrant), nil
}

func denied(reason DenialReason) Result {
	return Result{Granted: false, DenialReason: reason, Provider: "conventional"}
}
