package anchor

import (
	"context"
	"sync"
)

// MemorySink accumulates submitted transactions in memory. Used in tests and
// as a drop-in for local development without a real ledger collaborator.
type MemorySink struct {
	mu           sync.Mutex
	Transactions []Transaction
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Submit(_ context.Context, tx Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Transactions = append(s.Transactions, tx)
	return nil
}

// Last returns the most recently submitted transaction for eventType, or
// false if none was submitted.
func (s *MemorySink) Last(eventType string) (Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.Transactions) - 1; i >= 0; i-- {
		if s.Transactions[i].EventType == eventType {
			return s.Transactions[i], true
		}
	}
	return Transaction{}, false
}
