package store

import (
	"sync"

	"github.com/tessera-sh/tessera-core/document"
	"github.com/tessera-sh/tessera-core/tesseraerr"
)

// Store is an in-memory, mutex-guarded implementation of §6's persisted
// tables. Every table is a map keyed the way its uniqueness constraint
// requires; DocumentLock provides the row-level lock §4.5/§4.9 require for
// deconstruction and rotation.
type Store struct {
	mu sync.RWMutex

	documents    map[string]*document.Document
	baseDocs     map[string]*BaseDocument
	contentSets  map[contentSetKey]*EncryptedContentSet
	keys         map[string]*EncryptionKey   // by KeyID
	activeKeyIdx map[contentSetKey]string    // (doc, set) -> active KeyID
	shares       map[string][]*KeyShare      // by KeyID
	reconEvents  []*ReconstructionEvent

	docLocks map[string]*sync.Mutex
	locksMu  sync.Mutex
}

type contentSetKey struct {
	documentID string
	identifier string
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		documents:    make(map[string]*document.Document),
		baseDocs:     make(map[string]*BaseDocument),
		contentSets:  make(map[contentSetKey]*EncryptedContentSet),
		keys:         make(map[string]*EncryptionKey),
		activeKeyIdx: make(map[contentSetKey]string),
		shares:       make(map[string][]*KeyShare),
		docLocks:     make(map[string]*sync.Mutex),
	}
}

// DocumentLock returns the row-level lock for documentID, creating it on
// first use. Callers must Unlock it.
func (s *Store) DocumentLock(documentID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.docLocks[documentID]
	if !ok {
		lock = &sync.Mutex{}
		s.docLocks[documentID] = lock
	}
	return lock
}

func (s *Store) PutDocument(doc *document.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.DocumentID] = doc
}

func (s *Store) GetDocument(documentID string) (*document.Document, *tesseraerr.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return nil, tesseraerr.ErrEntityNotFound
	}
	return doc, nil
}
