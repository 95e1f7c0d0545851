package reconstruct

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-sh/tessera-core/anchor"
	"github.com/tessera-sh/tessera-core/audit"
	"github.com/tessera-sh/tessera-core/authz"
	"github.com/tessera-sh/tessera-core/config/profile"
	"github.com/tessera-sh/tessera-core/deconstruct"
	"github.com/tessera-sh/tessera-core/document"
	"github.com/tessera-sh/tessera-core/hsm"
	"github.com/tessera-sh/tessera-core/marker"
	"github.com/tessera-sh/tessera-core/store"
)

func intPtr(v int) *int { return &v }

type allowAllProvider struct {
	setIDs []string
}

func (p allowAllProvider) Authorize(_ context.Context, _ authz.Request) (authz.Result, error) {
	refs := make([]authz.ContentSetRef, len(p.setIDs))
	for i, id := range p.setIDs {
		refs[i] = authz.ContentSetRef{SetIdentifier: id}
	}
	return authz.Result{Granted: true, ContentSetRefs: refs, Provider: "test"}, nil
}

type denyAllProvider struct{}

func (denyAllProvider) Authorize(_ context.Context, _ authz.Request) (authz.Result, error) {
	return authz.Result{Granted: false, DenialReason: authz.DenialNoGrant, Provider: "test"}, nil
}

func setupDeconstructed(t *testing.T, setIDs ...string) (*store.Store, hsm.Provider, []string) {
	t.Helper()
	st := store.New()
	st.PutDocument(&document.Document{DocumentID: "doc-1", Status: document.StatusApproved, CreatedAt: time.Now(), UpdatedAt: time.Now()})

	prov := hsm.NewDevProvider()
	decEngine := &deconstruct.Engine{
		Store:   st,
		HSM:     prov,
		Audit:   audit.NewMemorySink(),
		Anchor:  anchor.NewMemorySink(),
		Profile: profile.Default([]string{"holder-a", "holder-b", "holder-c", "holder-d", "holder-e"}),
	}

	var assignments []marker.Assignment
	for _, id := range setIDs {
		assignments = append(assignments, marker.Assignment{
			BlockID: "b-" + id, StartOffset: intPtr(0), EndOffset: intPtr(4),
			ContentSetIdentifier: id, SelectedText: "content-" + id,
		})
	}

	result, err := decEngine.Deconstruct(context.Background(), "doc-1", "session-1", assignments)
	require.Nil(t, err)
	return st, prov, result.SetIDs
}

func TestReconstruct_HappyPath(t *testing.T) {
	st, prov, setIDs := setupDeconstructed(t, "set-a", "set-b")

	eng := &Engine{
		Store:   st,
		HSM:     prov,
		Authz:   allowAllProvider{setIDs: setIDs},
		Audit:   audit.NewMemorySink(),
		Anchor:  anchor.NewMemorySink(),
		Profile: profile.Default(nil),
	}

	view, err := eng.Reconstruct(context.Background(), Request{DocumentID: "doc-1", ViewerID: "viewer-1"})
	require.Nil(t, err)
	require.Len(t, view.Blocks, 2)
	for _, b := range view.Blocks {
		assert.False(t, b.IsRedacted)
		assert.Contains(t, b.Content, "content-")
	}
}

func TestReconstruct_DeniedAuthorization(t *testing.T) {
	st, prov, _ := setupDeconstructed(t, "set-a")

	eng := &Engine{
		Store:   st,
		HSM:     prov,
		Authz:   denyAllProvider{},
		Audit:   audit.NewMemorySink(),
		Anchor:  anchor.NewMemorySink(),
		Profile: profile.Default(nil),
	}

	_, err := eng.Reconstruct(context.Background(), Request{DocumentID: "doc-1", ViewerID: "viewer-1"})
	require.NotNil(t, err)
}

func TestReconstruct_UnauthorizedSetIsRedacted(t *testing.T) {
	st, prov, setIDs := setupDeconstructed(t, "set-a", "set-b")
	require.Len(t, setIDs, 2)

	eng := &Engine{
		Store:   st,
		HSM:     prov,
		Authz:   allowAllProvider{setIDs: []string{"set-a"}},
		Audit:   audit.NewMemorySink(),
		Anchor:  anchor.NewMemorySink(),
		Profile: profile.Default(nil),
	}

	view, err := eng.Reconstruct(context.Background(), Request{DocumentID: "doc-1", ViewerID: "viewer-1"})
	require.Nil(t, err)

	var redactedCount, visibleCount int
	for _, b := range view.Blocks {
		if b.IsRedacted {
			redactedCount++
		} else {
			visibleCount++
		}
	}
	assert.Equal(t, 1, redactedCount)
	assert.Equal(t, 1, visibleCount)
}

func TestReconstruct_TamperedContentSetIsRedacted(t *testing.T) {
	st, prov, setIDs := setupDeconstructed(t, "set-a")
	require.Len(t, setIDs, 1)

	cs, cerr := st.GetContentSet("doc-1", "set-a")
	require.Nil(t, cerr)
	cs.Ciphertext[0] ^= 0xFF
	st.PutContentSet(cs)

	eng := &Engine{
		Store:   st,
		HSM:     prov,
		Authz:   allowAllProvider{setIDs: setIDs},
		Audit:   audit.NewMemorySink(),
		Anchor:  anchor.NewMemorySink(),
		Profile: profile.Default(nil),
	}

	view, err := eng.Reconstruct(context.Background(), Request{DocumentID: "doc-1", ViewerID: "viewer-1"})
	require.Nil(t, err)
	require.Len(t, view.Blocks, 1)
	assert.True(t, view.Blocks[0].IsRedacted)
}

func TestReconstruct_Tier2HaltsOnSetIntegrityFailure(t *testing.T) {
	st, prov, setIDs := setupDeconstructed(t, "set-a", "set-b")
	require.Len(t, setIDs, 2)

	cs, cerr := st.GetContentSet("doc-1", "set-a")
	require.Nil(t, cerr)
	cs.Ciphertext[0] ^= 0xFF
	st.PutContentSet(cs)

	tieredProfile := profile.Default(nil)
	tieredProfile.Tier = profile.Tier2

	eng := &Engine{
		Store:   st,
		HSM:     prov,
		Authz:   allowAllProvider{setIDs: setIDs},
		Audit:   audit.NewMemorySink(),
		Anchor:  anchor.NewMemorySink(),
		Profile: tieredProfile,
	}

	_, err := eng.Reconstruct(context.Background(), Request{DocumentID: "doc-1", ViewerID: "viewer-1"})
	require.NotNil(t, err)
}

func TestReconstruct_TamperedBaseDocumentHalts(t *testing.T) {
	st, prov, setIDs := setupDeconstructed(t, "set-a")
	require.Len(t, setIDs, 1)

	base, berr := st.GetBaseDocument("doc-1")
	require.Nil(t, berr)
	base.Content = append(base.Content, '!')
	st.PutBaseDocument(base)

	eng := &Engine{
		Store:   st,
		HSM:     prov,
		Authz:   allowAllProvider{setIDs: setIDs},
		Audit:   audit.NewMemorySink(),
		Anchor:  anchor.NewMemorySink(),
		Profile: profile.Default(nil),
	}

	_, err := eng.Reconstruct(context.Background(), Request{DocumentID: "doc-1", ViewerID: "viewer-1"})
	require.NotNil(t, err)
}
