package store

import "github.com/tessera-sh/tessera-core/tesseraerr"

// PutContentSet inserts or overwrites the unique (DocumentID,
// ContentSetIdentifier) row.
func (s *Store) PutContentSet(cs *EncryptedContentSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contentSets[contentSetKey{cs.DocumentID, cs.ContentSetIdentifier}] = cs
}

func (s *Store) GetContentSet(documentID, identifier string) (*EncryptedContentSet, *tesseraerr.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cs, ok := s.contentSets[contentSetKey{documentID, identifier}]
	if !ok {
		return nil, tesseraerr.ErrEntityNotFound
	}
	return cs, nil
}

// ListContentSets returns every content set persisted for documentID.
func (s *Store) ListContentSets(documentID string) []*EncryptedContentSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*EncryptedContentSet
	for k, v := range s.contentSets {
		if k.documentID == documentID {
			out = append(out, v)
		}
	}
	return out
}

func (s *Store) DeleteContentSet(documentID, identifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contentSets, contentSetKey{documentID, identifier})
}

// DeleteAllContentSets removes every content set row for documentID,
// returning the identifiers removed.
func (s *Store) DeleteAllContentSets(documentID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []string
	for k := range s.contentSets {
		if k.documentID == documentID {
			removed = append(removed, k.identifier)
			delete(s.contentSets, k)
		}
	}
	return removed
}
