package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"time"

	"github.com/tessera-sh/tessera-core/tesseraerr"
)

// Algorithm names the only cipher this package speaks, per §3's envelope
// schema.
const Algorithm = "aes-256-gcm"

// EncryptedEnvelope is the persisted, self-verifying unit of ciphertext for
// one content set: IV, ciphertext+tag, and the plaintext/ciphertext hashes
// used to detect tampering independently of GCM's own tag.
type EncryptedEnvelope struct {
	KeyID                string
	ContentSetIdentifier string
	Algorithm            string
	IV                   []byte
	Ciphertext           []byte
	PlaintextHash        string
	CiphertextHash       string
	EncryptedAt          time.Time
}

// Encrypt seals plaintext under key (must be 32 bytes) with AAD bound to
// contentSetIdentifier, per §4.2. A random 12-byte IV is generated for every
// call.
func Encrypt(plaintext, key []byte, keyID, contentSetIdentifier string) (*EncryptedEnvelope, *tesseraerr.Error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, GCMNonceSize)
	if _, rerr := reader(iv); rerr != nil {
		return nil, tesseraerr.ErrRngFailure.Wrap(rerr)
	}

	aad := []byte(contentSetIdentifier)
	ciphertext := gcm.Seal(nil, iv, plaintext, aad)

	return &EncryptedEnvelope{
		KeyID:                keyID,
		ContentSetIdentifier: contentSetIdentifier,
		Algorithm:            Algorithm,
		IV:                   iv,
		Ciphertext:           ciphertext,
		PlaintextHash:        SHA512Hex(plaintext),
		CiphertextHash:       SHA512Hex(ciphertext),
		EncryptedAt:          time.Now(),
	}, nil
}

// Decrypt opens envelope with key, enforcing the three-step verification
// order from §4.2: ciphertext hash, AEAD tag (bound to
// envelope.ContentSetIdentifier as AAD), then plaintext hash.
func Decrypt(envelope *EncryptedEnvelope, key []byte) ([]byte, *tesseraerr.Error) {
	if SHA512Hex(envelope.Ciphertext) != envelope.CiphertextHash {
		return nil, tesseraerr.ErrCiphertextIntegrityFailure
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	aad := []byte(envelope.ContentSetIdentifier)
	plaintext, aerr := gcm.Open(nil, envelope.IV, envelope.Ciphertext, aad)
	if aerr != nil {
		return nil, tesseraerr.ErrAeadAuthenticationFailure.Wrap(aerr)
	}

	if SHA512Hex(plaintext) != envelope.PlaintextHash {
		return nil, tesseraerr.ErrPlaintextIntegrityFailure
	}

	return plaintext, nil
}

// ReEncrypt decrypts envelope under oldKey (full verification) and
// re-encrypts the recovered plaintext under newKey for the same content set.
// The returned envelope's PlaintextHash equals the original's; IV and
// ciphertext are freshly generated.
func ReEncrypt(envelope *EncryptedEnvelope, oldKey, newKey []byte, newKeyID string) (*EncryptedEnvelope, *tesseraerr.Error) {
	plaintext, err := Decrypt(envelope, oldKey)
	if err != nil {
		return nil, err
	}
	return Encrypt(plaintext, newKey, newKeyID, envelope.ContentSetIdentifier)
}

func newGCM(key []byte) (cipher.AEAD, *tesseraerr.Error) {
	if len(key) != AES256KeySize {
		return nil, tesseraerr.ErrInvalidKeyLength
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, tesseraerr.ErrGeneralFailure.Wrap(err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, tesseraerr.ErrGeneralFailure.Wrap(err)
	}
	return gcm, nil
}
