package store

func (s *Store) PutReconstructionEvent(e *ReconstructionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconEvents = append(s.reconEvents, e)
}

// ListReconstructionEvents returns every event recorded for documentID, in
// insertion order.
func (s *Store) ListReconstructionEvents(documentID string) []*ReconstructionEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*ReconstructionEvent
	for _, e := range s.reconEvents {
		if e.DocumentID == documentID {
			out = append(out, e)
		}
	}
	return out
}
