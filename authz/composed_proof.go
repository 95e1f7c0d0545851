package authz

import (
	"context"

	"github.com/tessera-sh/tessera-core/config/profile"
)

// ProofVerifier is the external collaborator a composed-proof provider
// submits a proof bundle to; the core owns only the client side of this
// interface, per §1.
type ProofVerifier interface {
	Verify(ctx context.Context, req Request) (Result, error)
}

// ComposedProofProvider is the Tier 2/3 C6 implementation: submit a proof
// bundle to an external verifier. Tier 2 falls back to the last cached
// authorization on verifier outage; Tier 3 fails hard.
type ComposedProofProvider struct {
	Verifier ProofVerifier
	Tier     profile.IntegrityTier
	cache    map[string]Result
}

// NewComposedProofProvider returns a ComposedProofProvider backed by
// verifier, using tier to decide fallback behavior on outage.
func NewComposedProofProvider(verifier ProofVerifier, tier profile.IntegrityTier) *ComposedProofProvider {
	return &ComposedProofProvider{Verifier: verifier, Tier: tier, cache: make(map[string]Result)}
}

func (p *ComposedProofProvider) Authorize(ctx context.Context, req Request) (Result, error) {
	result, err := p.Verifier.Verify(ctx, req)
	if err == nil {
		p.cache[cacheKey(req)] = result
		return result, nil
	}

	if p.Tier == profile.Tier3 {
		return Result{Granted: false, DenialReason: DenialProviderUnavailable, Provider: "composed-proof"}, nil
	}

	if cached, ok := p.cache[cacheKey(req)]; ok {
		cached.Provider = "composed-proof-cached"
		return cached, nil
	}

	return Result{Granted: false, DenialReason: DenialProofFailed, Provider: "composed-proof"}, nil
}

func cacheKey(req Request) string {
	return req.UserID + "|" + req.DocumentID + "|" + req.AccessLevelID + "|" + req.OrganizationID
}
