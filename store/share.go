package store

// PutShares appends the shares for one key, matching the teacher's Put-
// appends-a-version shape generalized to append-many.
func (s *Store) PutShares(keyID string, shares []*KeyShare) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shares[keyID] = append(s.shares[keyID], shares...)
}

func (s *Store) GetShares(keyID string) []*KeyShare {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shares[keyID]
}

// DeleteSharesForDocument removes every share row belonging to any key of
// documentID, used by verified destruction.
func (s *Store) DeleteSharesForDocument(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for keyID, shares := range s.shares {
		if len(shares) == 0 {
			continue
		}
		if shares[0].DocumentID == documentID {
			delete(s.shares, keyID)
		}
	}
}
