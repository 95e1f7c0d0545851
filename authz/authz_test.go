package authz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-sh/tessera-core/config/profile"
)

func TestConventionalProvider_GrantsAccess(t *testing.T) {
	levels := map[string]AccessLevel{
		"lvl-1": {AccessLevelID: "lvl-1", Active: true, ContentSets: []ContentSetRef{{ContentSetID: "cs1"}}},
	}
	grants := []Grant{{UserID: "u1", DocumentID: "d1", AccessLevelID: "lvl-1", OrganizationID: "o1"}}
	p := NewConventionalProvider(grants, levels)

	result, err := p.Authorize(context.Background(), Request{
		UserID: "u1", DocumentID: "d1", AccessLevelID: "lvl-1", OrganizationID: "o1", AccessType: AccessReconstruct,
	})
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Len(t, result.ContentSetRefs, 1)
}

func TestConventionalProvider_DeniesExpiredGrant(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	levels := map[string]AccessLevel{"lvl-1": {AccessLevelID: "lvl-1", Active: true}}
	grants := []Grant{{UserID: "u1", DocumentID: "d1", AccessLevelID: "lvl-1", OrganizationID: "o1", ExpiresAt: &past}}
	p := NewConventionalProvider(grants, levels)

	result, err := p.Authorize(context.Background(), Request{UserID: "u1", DocumentID: "d1", AccessLevelID: "lvl-1", OrganizationID: "o1"})
	require.NoError(t, err)
	assert.False(t, result.Granted)
	assert.Equal(t, DenialExpired, result.DenialReason)
}

func TestConventionalProvider_NoGrant(t *testing.T) {
	levels := map[string]AccessLevel{"lvl-1": {AccessLevelID: "lvl-1", Active: true}}
	p := NewConventionalProvider(nil, levels)

	result, err := p.Authorize(context.Background(), Request{UserID: "u1", DocumentID: "d1", AccessLevelID: "lvl-1", OrganizationID: "o1"})
	require.NoError(t, err)
	assert.False(t, result.Granted)
	assert.Equal(t, DenialNoGrant, result.DenialReason)
}

type fakeVerifier struct {
	result Result
	err    error
}

func (f fakeVerifier) Verify(_ context.Context, _ Request) (Result, error) {
	return f.result, f.err
}

func TestComposedProofProvider_Tier2FallsBackToCache(t *testing.T) {
	v := fakeVerifier{result: Result{Granted: true, Provider: "composed-proof"}}
	p := NewComposedProofProvider(v, profile.Tier2)

	req := Request{UserID: "u1", DocumentID: "d1", AccessLevelID: "lvl-1", OrganizationID: "o1"}
	first, err := p.Authorize(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, first.Granted)

	p.Verifier = fakeVerifier{err: errors.New("verifier unreachable")}
	second, err2 := p.Authorize(context.Background(), req)
	require.NoError(t, err2)
	assert.True(t, second.Granted)
	assert.Equal(t, "composed-proof-cached", second.Provider)
}

func TestComposedProofProvider_Tier3FailsHard(t *testing.T) {
	p := NewComposedProofProvider(fakeVerifier{err: errors.New("down")}, profile.Tier3)

	result, err := p.Authorize(context.Background(), Request{UserID: "u1"})
	require.NoError(t, err)
	assert.False(t, result.Granted)
	assert.Equal(t, DenialProviderUnavailable, result.DenialReason)
}
