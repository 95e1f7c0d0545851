// Package anchor models the blockchain-anchoring collaborator the core
// submits one transaction to per successful deconstruct, reconstruct,
// rotate_keys, and destroy operation. The core treats anchor submission as
// fire-and-forget: the engines submit once and log a failure as a warning,
// never rolling back the persisted state. Bounded retries happen only when
// the configured Sink is wrapped in a RetryingSink.
package anchor

import "context"

// Transaction is the opaque payload submitted to the anchor sink. Arrangement
// fields describe identifiers/counts/storage tier/{M,N}; Accrual fields
// describe hashes/marker counts/key record ids/storage confirmations. The
// core never puts key material or plaintext in a Transaction.
type Transaction struct {
	DocumentID string
	EventType  string
	Arrangement map[string]any
	Accrual     map[string]any
}

// Sink accepts an anchor Transaction. A Sink implementation may be backed
// by a remote ledger service; Submit should return promptly and let the
// caller decide on retry policy.
type Sink interface {
	Submit(ctx context.Context, tx Transaction) error
}
