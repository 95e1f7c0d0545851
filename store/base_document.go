package store

import "github.com/tessera-sh/tessera-core/tesseraerr"

func (s *Store) PutBaseDocument(b *BaseDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseDocs[b.DocumentID] = b
}

func (s *Store) GetBaseDocument(documentID string) (*BaseDocument, *tesseraerr.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.baseDocs[documentID]
	if !ok {
		return nil, tesseraerr.ErrEntityNotFound
	}
	return b, nil
}

func (s *Store) DeleteBaseDocument(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.baseDocs, documentID)
}
