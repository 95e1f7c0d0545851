package store

import "github.com/tessera-sh/tessera-core/tesseraerr"

// PutKey inserts a new EncryptionKey row. If it is active, it becomes the
// (DocumentID, ContentSetIdentifier) active-key index entry; at most one row
// per that pair may be active, enforced here by deactivating any previous
// holder of the index before installing the new one.
func (s *Store) PutKey(k *EncryptionKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[k.KeyID] = k
	if k.IsActive {
		csk := contentSetKey{k.DocumentID, k.ContentSetIdentifier}
		if prevID, ok := s.activeKeyIdx[csk]; ok && prevID != k.KeyID {
			if prev, ok := s.keys[prevID]; ok {
				prev.IsActive = false
			}
		}
		s.activeKeyIdx[csk] = k.KeyID
	}
}

func (s *Store) GetKey(keyID string) (*EncryptionKey, *tesseraerr.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.keys[keyID]
	if !ok {
		return nil, tesseraerr.ErrEntityNotFound
	}
	return k, nil
}

// GetActiveKey returns the currently active key for (documentID,
// contentSetIdentifier), resolved at call time so in-flight rotations are
// tolerated by readers per §5's ordering guarantees.
func (s *Store) GetActiveKey(documentID, contentSetIdentifier string) (*EncryptionKey, *tesseraerr.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keyID, ok := s.activeKeyIdx[contentSetKey{documentID, contentSetIdentifier}]
	if !ok {
		return nil, tesseraerr.ErrEntityNotFound
	}
	k, ok := s.keys[keyID]
	if !ok {
		return nil, tesseraerr.ErrEntityNotFound
	}
	return k, nil
}

// DeactivateKey marks a key inactive and clears it from the active-key
// index if it currently holds that slot.
func (s *Store) DeactivateKey(k *EncryptionKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k.IsActive = false
	csk := contentSetKey{k.DocumentID, k.ContentSetIdentifier}
	if s.activeKeyIdx[csk] == k.KeyID {
		delete(s.activeKeyIdx, csk)
	}
}

// ListKeysForDocument returns every EncryptionKey row for documentID,
// active or not.
func (s *Store) ListKeysForDocument(documentID string) []*EncryptionKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*EncryptionKey
	for _, k := range s.keys {
		if k.DocumentID == documentID {
			out = append(out, k)
		}
	}
	return out
}
