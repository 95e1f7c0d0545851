package anchor

import (
	"context"

	"github.com/tessera-sh/tessera-core/retry"
	"github.com/tessera-sh/tessera-core/tlog"
)

// RetryingSink wraps a Sink with bounded exponential backoff. Submission
// failures never propagate to the caller as an error: exhausting retries is
// logged as a warning and swallowed, since anchor-sink unreachability is a
// retryable degradation, not a fault that should roll back persisted state.
type RetryingSink struct {
	inner   Sink
	options []retry.RetrierOption
}

// NewRetryingSink wraps inner with the given retry.RetrierOptions, falling
// back to retry's defaults when none are supplied.
func NewRetryingSink(inner Sink, options ...retry.RetrierOption) *RetryingSink {
	return &RetryingSink{inner: inner, options: options}
}

func (s *RetryingSink) Submit(ctx context.Context, tx Transaction) error {
	_, err := retry.Do[struct{}](ctx, func() (struct{}, error) {
		return struct{}{}, s.inner.Submit(ctx, tx)
	}, s.options...)
	if err != nil {
		tlog.Log().Warn("anchor submission exhausted retries",
			"document_id", tx.DocumentID, "event_type", tx.EventType, "error", err.Error())
	}
	return nil
}
