package hsm

import (
	"crypto/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/tessera-sh/tessera-core/crypto"
	"github.com/tessera-sh/tessera-core/security/mem"
	"github.com/tessera-sh/tessera-core/tesseraerr"
)

const hkdfInfo = "tessera-aes-256-gcm"
const ikmSize = 32

type keyRecord struct {
	keyID     string
	ikm       []byte
	destroyed bool
}

// DevProvider is an in-memory Provider for development and tests. Keys are
// derived via HKDF-SHA-512 from 32-byte random IKM, never persisted outside
// the process.
type DevProvider struct {
	mu   sync.Mutex
	keys map[Handle]*keyRecord
}

// NewDevProvider returns an empty DevProvider.
func NewDevProvider() *DevProvider {
	return &DevProvider{keys: make(map[Handle]*keyRecord)}
}

func (p *DevProvider) GenerateKey() (Handle, string, *tesseraerr.Error) {
	ikm := make([]byte, ikmSize)
	if _, err := rand.Read(ikm); err != nil {
		return "", "", tesseraerr.ErrRngFailure.Wrap(err)
	}

	keyID := uuid.NewString()
	handle := Handle(uuid.NewString())

	p.mu.Lock()
	p.keys[handle] = &keyRecord{keyID: keyID, ikm: ikm}
	p.mu.Unlock()

	return handle, keyID, nil
}

func (p *DevProvider) GetKeyMaterial(handle Handle) ([]byte, *tesseraerr.Error) {
	p.mu.Lock()
	rec, ok := p.keys[handle]
	p.mu.Unlock()
	if !ok || rec.destroyed {
		return nil, tesseraerr.ErrHSMKeyNotFound
	}
	return deriveKey(rec.keyID, rec.ikm), nil
}

func (p *DevProvider) DestroyKey(handle Handle) *tesseraerr.Error {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok := p.keys[handle]
	if !ok || rec.destroyed {
		return nil
	}
	mem.ClearBytes(rec.ikm)
	rec.destroyed = true
	return nil
}

func (p *DevProvider) SplitKeyToShares(handle Handle, m, n int, holderIDs []string) ([]ShareRecord, *tesseraerr.Error) {
	if len(holderIDs) != n {
		return nil, tesseraerr.ErrInvalidShamirParameters
	}

	material, err := p.GetKeyMaterial(handle)
	if err != nil {
		return nil, err
	}
	defer mem.ClearBytes(material)

	p.mu.Lock()
	rec := p.keys[handle]
	p.mu.Unlock()

	shares, serr := crypto.ShamirSplit(material, m, n)
	if serr != nil {
		return nil, serr
	}

	records := make([]ShareRecord, n)
	for i, s := range shares {
		records[i] = ShareRecord{
			KeyID:       rec.keyID,
			HolderID:    holderIDs[i],
			Index:       s.Index,
			Value:       s.Value,
			Distributed: false,
		}
	}
	return records, nil
}

func (p *DevProvider) ReconstructKeyFromShares(shares []crypto.ShamirShare, m int) ([]byte, *tesseraerr.Error) {
	return crypto.ShamirReconstruct(shares, m)
}

// deriveKey derives a key's material from its stored IKM, its per-key salt
// (the key ID) and the fixed info string. GenerateKey stores only the IKM;
// every GetKeyMaterial call re-derives the same key through this function.
func deriveKey(keyID string, ikm []byte) []byte {
	return crypto.HKDFSHA512([]byte(keyID), ikm, []byte(hkdfInfo), crypto.AES256KeySize)
}
